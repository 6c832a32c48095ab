// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"strconv"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// Path is the backend collection for service offerings.
const Path = "/admin/services"

type wireService struct {
	ID               apiclient.FlexInt   `json:"id"`
	Title            apiclient.OptString `json:"title"`
	Slug             apiclient.OptString `json:"slug"`
	Icon             *string             `json:"icon"`
	ShortDescription apiclient.OptString `json:"shortDescription"`
	FullDescription  *string             `json:"fullDescription"`
	Features         []string            `json:"features"`
	TechnologyStack  []string            `json:"technologyStack"`
	ProcessSteps     []string            `json:"processSteps"`
	IdealFor         []string            `json:"idealFor"`
	OrderIndex       int                 `json:"orderIndex"`
	Published        bool                `json:"published"`
}

type payload struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Icon             *string  `json:"icon"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  *string  `json:"fullDescription,omitempty"`
	Features         []string `json:"features"`
	TechnologyStack  []string `json:"technologyStack"`
	ProcessSteps     []string `json:"processSteps"`
	IdealFor         []string `json:"idealFor"`
	OrderIndex       int      `json:"orderIndex"`
	Published        bool     `json:"published"`
}

// Store is the gateway for service offerings. Services are the one
// collection keyed by a number on the wire.
type Store struct {
	res apiclient.Resource[wireService]
}

// New creates a services gateway on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{res: apiclient.Resource[wireService]{Client: api, Path: Path}}
}

// ParseID converts a path or form identifier into a ServiceID.
func ParseID(v string) (models.ServiceID, bool) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return models.ServiceID(n), true
}

// FormatID renders a ServiceID for use in a URL path.
func FormatID(id models.ServiceID) string {
	return strconv.FormatInt(int64(id), 10)
}

// List returns every service.
func (s *Store) List(ctx context.Context, token string) ([]models.Service, error) {
	raw, err := s.res.List(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]models.Service, 0, len(raw))
	for _, w := range raw {
		out = append(out, toModel(w))
	}
	return out, nil
}

// Create stores svc and returns the backend's record. The caller is expected
// to have derived svc.Slug already.
func (s *Store) Create(ctx context.Context, token string, svc models.Service) (models.Service, error) {
	w, err := s.res.Create(ctx, token, toPayload(svc))
	if err != nil {
		return models.Service{}, err
	}
	return toModel(w), nil
}

// Update replaces service id with svc and returns the backend's record.
func (s *Store) Update(ctx context.Context, token string, id models.ServiceID, svc models.Service) (models.Service, error) {
	w, err := s.res.Update(ctx, token, FormatID(id), toPayload(svc))
	if err != nil {
		return models.Service{}, err
	}
	return toModel(w), nil
}

// Delete removes service id.
func (s *Store) Delete(ctx context.Context, token string, id models.ServiceID) error {
	return s.res.Delete(ctx, token, FormatID(id))
}

func toModel(w wireService) models.Service {
	return models.Service{
		ID:               models.ServiceID(w.ID),
		Title:            string(w.Title),
		Slug:             string(w.Slug),
		Icon:             w.Icon,
		ShortDescription: string(w.ShortDescription),
		FullDescription:  w.FullDescription,
		Features:         orEmpty(w.Features),
		TechnologyStack:  orEmpty(w.TechnologyStack),
		ProcessSteps:     orEmpty(w.ProcessSteps),
		IdealFor:         orEmpty(w.IdealFor),
		OrderIndex:       w.OrderIndex,
		Published:        w.Published,
	}
}

func toPayload(s models.Service) payload {
	return payload{
		Title:            s.Title,
		Slug:             s.Slug,
		Icon:             s.Icon,
		ShortDescription: s.ShortDescription,
		FullDescription:  s.FullDescription,
		Features:         orEmpty(s.Features),
		TechnologyStack:  orEmpty(s.TechnologyStack),
		ProcessSteps:     orEmpty(s.ProcessSteps),
		IdealFor:         orEmpty(s.IdealFor),
		OrderIndex:       s.OrderIndex,
		Published:        s.Published,
	}
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
