// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// Path is the backend collection for contact inquiries.
const Path = "/admin/contacts"

// wireContact is the backend's snake_case contact record.
type wireContact struct {
	ID              apiclient.FlexString  `json:"id"`
	ReferenceNumber apiclient.OptString   `json:"reference_number"`
	FullName        apiclient.OptString   `json:"full_name"`
	CompanyName     apiclient.OptString   `json:"company_name"`
	Email           apiclient.OptString   `json:"email"`
	Phone           apiclient.OptString   `json:"phone"`
	ServiceInterest apiclient.OptString   `json:"service_interest"`
	ProjectBudget   apiclient.OptString   `json:"project_budget"`
	ProjectTimeline apiclient.OptString   `json:"project_timeline"`
	Message         apiclient.OptString   `json:"message"`
	HowHeard        apiclient.OptString   `json:"how_heard"`
	Status          apiclient.LooseString `json:"status"`
	CreatedAt       apiclient.OptString   `json:"created_at"`
	UpdatedAt       apiclient.OptString   `json:"updated_at"`
}

// Store is the gateway for contact inquiries.
type Store struct {
	res apiclient.Resource[wireContact]
}

// New creates a contacts gateway on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{res: apiclient.Resource[wireContact]{Client: api, Path: Path}}
}

// List returns every contact in canonical form.
func (s *Store) List(ctx context.Context, token string) ([]models.Contact, error) {
	raw, err := s.res.List(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]models.Contact, 0, len(raw))
	for _, w := range raw {
		out = append(out, toModel(w))
	}
	return out, nil
}

// UpdateStatus changes a contact's status. When the backend echoes the
// updated record it is returned with ok=true.
func (s *Store) UpdateStatus(ctx context.Context, token, id string, status models.ContactStatus) (models.Contact, bool, error) {
	body := map[string]string{"status": StatusToWire(status)}
	w, ok, err := s.res.Patch(ctx, token, id, body)
	if err != nil {
		return models.Contact{}, false, err
	}
	if !ok || w.ID == "" {
		return models.Contact{}, false, nil
	}
	return toModel(w), true, nil
}

func toModel(w wireContact) models.Contact {
	return models.Contact{
		ID:          string(w.ID),
		FullName:    string(w.FullName),
		Email:       string(w.Email),
		Company:     string(w.CompanyName),
		Phone:       string(w.Phone),
		Service:     string(w.ServiceInterest),
		Budget:      string(w.ProjectBudget),
		Timeline:    string(w.ProjectTimeline),
		Message:     string(w.Message),
		HearAbout:   string(w.HowHeard),
		Status:      StatusFromWire(string(w.Status)),
		CreatedAt:   string(w.CreatedAt),
		LastUpdated: string(w.UpdatedAt),
	}
}
