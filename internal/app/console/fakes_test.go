package console_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// fakeBackend implements all four gateways over in-memory data. Setting an
// error field makes the matching call fail.
type fakeBackend struct {
	mu sync.Mutex

	contacts     []models.Contact
	projects     []models.Project
	services     []models.Service
	testimonials []models.Testimonial

	listErr   map[string]error
	mutateErr error
	echo      bool
	nextID    int

	lastService     models.Service
	lastTestimonial models.Testimonial
	tokens          []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		contacts: []models.Contact{
			{ID: "c1", FullName: "Ada", Status: models.ContactNew, LastUpdated: "2024-01-01T00:00:00Z"},
			{ID: "c2", FullName: "Bo", Status: models.ContactNew},
			{ID: "c3", FullName: "Cy", Status: models.ContactConverted},
			{ID: "c4", FullName: "Di", Status: models.ContactClosed},
		},
		projects: []models.Project{
			{ID: "p1", Title: "Portal", Status: models.ProjectPublished},
			{ID: "p2", Title: "Mobile", Status: models.ProjectDraft},
		},
		services: []models.Service{
			{ID: 1, Title: "Cloud", Slug: "cloud"},
			{ID: 2, Title: "Security", Slug: "security"},
		},
		testimonials: []models.Testimonial{
			{ID: "t1", Name: "Eve", Rating: 5},
		},
		listErr: map[string]error{},
		echo:    true,
		nextID:  100,
	}
}

func (f *fakeBackend) gateways() console.Gateways {
	return console.Gateways{
		Contacts:     contactGW{f},
		Projects:     projectGW{f},
		Services:     serviceGW{f},
		Testimonials: testimonialGW{f},
	}
}

func (f *fakeBackend) seen(token string) {
	f.mu.Lock()
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
}

func (f *fakeBackend) id() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return strconv.Itoa(f.nextID)
}

type contactGW struct{ f *fakeBackend }

func (g contactGW) List(ctx context.Context, token string) ([]models.Contact, error) {
	g.f.seen(token)
	if err := g.f.listErr["contacts"]; err != nil {
		return nil, err
	}
	return append([]models.Contact(nil), g.f.contacts...), nil
}

func (g contactGW) UpdateStatus(ctx context.Context, token, id string, status models.ContactStatus) (models.Contact, bool, error) {
	if g.f.mutateErr != nil {
		return models.Contact{}, false, g.f.mutateErr
	}
	if !g.f.echo {
		return models.Contact{}, false, nil
	}
	return models.Contact{ID: id, FullName: "From Server", Status: status, LastUpdated: "server-time"}, true, nil
}

type projectGW struct{ f *fakeBackend }

func (g projectGW) List(ctx context.Context, token string) ([]models.Project, error) {
	if err := g.f.listErr["projects"]; err != nil {
		return nil, err
	}
	return append([]models.Project(nil), g.f.projects...), nil
}

func (g projectGW) Create(ctx context.Context, token string, p models.Project) (models.Project, error) {
	if g.f.mutateErr != nil {
		return models.Project{}, g.f.mutateErr
	}
	p.ID = g.f.id()
	return p, nil
}

func (g projectGW) Update(ctx context.Context, token, id string, p models.Project) (models.Project, error) {
	if g.f.mutateErr != nil {
		return models.Project{}, g.f.mutateErr
	}
	p.ID = id
	p.CompletedDate = "server-computed"
	return p, nil
}

func (g projectGW) Delete(ctx context.Context, token, id string) error {
	return g.f.mutateErr
}

type serviceGW struct{ f *fakeBackend }

func (g serviceGW) List(ctx context.Context, token string) ([]models.Service, error) {
	if err := g.f.listErr["services"]; err != nil {
		return nil, err
	}
	return append([]models.Service(nil), g.f.services...), nil
}

func (g serviceGW) Create(ctx context.Context, token string, s models.Service) (models.Service, error) {
	g.f.lastService = s
	if g.f.mutateErr != nil {
		return models.Service{}, g.f.mutateErr
	}
	n, _ := strconv.Atoi(g.f.id())
	s.ID = models.ServiceID(n)
	return s, nil
}

func (g serviceGW) Update(ctx context.Context, token string, id models.ServiceID, s models.Service) (models.Service, error) {
	g.f.lastService = s
	if g.f.mutateErr != nil {
		return models.Service{}, g.f.mutateErr
	}
	s.ID = id
	return s, nil
}

func (g serviceGW) Delete(ctx context.Context, token string, id models.ServiceID) error {
	return g.f.mutateErr
}

type testimonialGW struct{ f *fakeBackend }

func (g testimonialGW) List(ctx context.Context, token string) ([]models.Testimonial, error) {
	if err := g.f.listErr["testimonials"]; err != nil {
		return nil, err
	}
	return append([]models.Testimonial(nil), g.f.testimonials...), nil
}

func (g testimonialGW) Create(ctx context.Context, token string, t models.Testimonial) (models.Testimonial, error) {
	g.f.lastTestimonial = t
	if g.f.mutateErr != nil {
		return models.Testimonial{}, g.f.mutateErr
	}
	t.ID = g.f.id()
	return t, nil
}

func (g testimonialGW) Update(ctx context.Context, token, id string, t models.Testimonial) (models.Testimonial, error) {
	g.f.lastTestimonial = t
	if g.f.mutateErr != nil {
		return models.Testimonial{}, g.f.mutateErr
	}
	t.ID = id
	return t, nil
}

func (g testimonialGW) Delete(ctx context.Context, token, id string) error {
	return g.f.mutateErr
}
