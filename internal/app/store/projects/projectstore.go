// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"strings"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// Path is the backend collection for portfolio projects.
const Path = "/admin/projects"

type wireResult struct {
	Metric apiclient.OptString `json:"metric"`
	Value  apiclient.OptString `json:"value"`
}

type wireProject struct {
	ID            apiclient.FlexString `json:"id"`
	Title         apiclient.OptString  `json:"title"`
	Client        apiclient.OptString  `json:"client"`
	Category      apiclient.OptString  `json:"category"`
	Industry      apiclient.OptString  `json:"industry"`
	Description   apiclient.OptString  `json:"description"`
	Challenge     apiclient.OptString  `json:"challenge"`
	Solution      apiclient.OptString  `json:"solution"`
	Image         apiclient.OptString  `json:"image"`
	Status        apiclient.OptString  `json:"status"`
	Featured      bool                 `json:"featured"`
	Technologies  []string             `json:"technologies"`
	Results       []wireResult         `json:"results"`
	CompletedDate apiclient.OptString  `json:"completedDate"`
}

// payload is what the backend accepts on create and update; it never
// carries an id.
type payload struct {
	Title         string                 `json:"title"`
	Client        string                 `json:"client"`
	Category      string                 `json:"category"`
	Industry      string                 `json:"industry,omitempty"`
	Description   string                 `json:"description"`
	Challenge     string                 `json:"challenge,omitempty"`
	Solution      string                 `json:"solution,omitempty"`
	Image         string                 `json:"image"`
	Status        models.ProjectStatus   `json:"status"`
	Featured      bool                   `json:"featured"`
	Technologies  []string               `json:"technologies"`
	Results       []models.ProjectResult `json:"results"`
	CompletedDate string                 `json:"completedDate"`
}

// Store is the gateway for portfolio projects.
type Store struct {
	res apiclient.Resource[wireProject]
}

// New creates a projects gateway on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{res: apiclient.Resource[wireProject]{Client: api, Path: Path}}
}

// List returns every project.
func (s *Store) List(ctx context.Context, token string) ([]models.Project, error) {
	raw, err := s.res.List(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(raw))
	for _, w := range raw {
		out = append(out, toModel(w))
	}
	return out, nil
}

// Create stores p (its ID is ignored) and returns the backend's record.
func (s *Store) Create(ctx context.Context, token string, p models.Project) (models.Project, error) {
	w, err := s.res.Create(ctx, token, toPayload(p))
	if err != nil {
		return models.Project{}, err
	}
	return toModel(w), nil
}

// Update replaces project id with p and returns the backend's record.
func (s *Store) Update(ctx context.Context, token, id string, p models.Project) (models.Project, error) {
	w, err := s.res.Update(ctx, token, id, toPayload(p))
	if err != nil {
		return models.Project{}, err
	}
	return toModel(w), nil
}

// Delete removes project id.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	return s.res.Delete(ctx, token, id)
}

func toModel(w wireProject) models.Project {
	p := models.Project{
		ID:            string(w.ID),
		Title:         string(w.Title),
		Client:        string(w.Client),
		Category:      string(w.Category),
		Industry:      string(w.Industry),
		Description:   string(w.Description),
		Challenge:     string(w.Challenge),
		Solution:      string(w.Solution),
		Image:         string(w.Image),
		Status:        models.ProjectDraft,
		Featured:      w.Featured,
		Technologies:  w.Technologies,
		Results:       make([]models.ProjectResult, 0, len(w.Results)),
		CompletedDate: string(w.CompletedDate),
	}
	if strings.EqualFold(string(w.Status), string(models.ProjectPublished)) {
		p.Status = models.ProjectPublished
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	for _, r := range w.Results {
		p.Results = append(p.Results, models.ProjectResult{Metric: string(r.Metric), Value: string(r.Value)})
	}
	return p
}

func toPayload(p models.Project) payload {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	results := p.Results
	if results == nil {
		results = []models.ProjectResult{}
	}
	return payload{
		Title:         p.Title,
		Client:        p.Client,
		Category:      p.Category,
		Industry:      p.Industry,
		Description:   p.Description,
		Challenge:     p.Challenge,
		Solution:      p.Solution,
		Image:         p.Image,
		Status:        p.Status,
		Featured:      p.Featured,
		Technologies:  tech,
		Results:       results,
		CompletedDate: p.CompletedDate,
	}
}
