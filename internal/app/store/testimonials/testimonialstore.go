// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

import (
	"context"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// Path is the backend collection for client testimonials.
const Path = "/admin/testimonials"

type wireTestimonial struct {
	ID        apiclient.FlexString `json:"id"`
	Name      apiclient.OptString  `json:"name"`
	Position  apiclient.OptString  `json:"position"`
	Company   apiclient.OptString  `json:"company"`
	Message   apiclient.OptString  `json:"message"`
	Rating    apiclient.FlexInt    `json:"rating"`
	Image     apiclient.OptString  `json:"image"`
	Featured  bool                 `json:"featured"`
	CreatedAt apiclient.OptString  `json:"createdAt"`
}

type payload struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
	Image    string `json:"image,omitempty"`
	Featured bool   `json:"featured"`
}

// Store is the gateway for client testimonials.
type Store struct {
	res apiclient.Resource[wireTestimonial]
}

// New creates a testimonials gateway on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{res: apiclient.Resource[wireTestimonial]{Client: api, Path: Path}}
}

// List returns every testimonial.
func (s *Store) List(ctx context.Context, token string) ([]models.Testimonial, error) {
	raw, err := s.res.List(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]models.Testimonial, 0, len(raw))
	for _, w := range raw {
		out = append(out, toModel(w))
	}
	return out, nil
}

// Create stores t and returns the backend's record. The rating is clamped
// into range before it is sent.
func (s *Store) Create(ctx context.Context, token string, t models.Testimonial) (models.Testimonial, error) {
	w, err := s.res.Create(ctx, token, toPayload(t))
	if err != nil {
		return models.Testimonial{}, err
	}
	return toModel(w), nil
}

// Update replaces testimonial id with t and returns the backend's record.
func (s *Store) Update(ctx context.Context, token, id string, t models.Testimonial) (models.Testimonial, error) {
	w, err := s.res.Update(ctx, token, id, toPayload(t))
	if err != nil {
		return models.Testimonial{}, err
	}
	return toModel(w), nil
}

// Delete removes testimonial id.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	return s.res.Delete(ctx, token, id)
}

func toModel(w wireTestimonial) models.Testimonial {
	rating := int(w.Rating)
	if rating == 0 {
		rating = models.DefaultRating
	}
	return models.Testimonial{
		ID:        string(w.ID),
		Name:      string(w.Name),
		Position:  string(w.Position),
		Company:   string(w.Company),
		Message:   string(w.Message),
		Rating:    models.ClampRating(rating),
		Image:     string(w.Image),
		Featured:  w.Featured,
		CreatedAt: string(w.CreatedAt),
	}
}

func toPayload(t models.Testimonial) payload {
	return payload{
		Name:     t.Name,
		Position: t.Position,
		Company:  t.Company,
		Message:  t.Message,
		Rating:   models.ClampRating(t.Rating),
		Image:    t.Image,
		Featured: t.Featured,
	}
}
