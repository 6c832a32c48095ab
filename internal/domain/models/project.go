package models

// ProjectStatus is the publication state of a portfolio project.
type ProjectStatus string

const (
	ProjectPublished ProjectStatus = "Published"
	ProjectDraft     ProjectStatus = "Draft"
)

// ProjectResult is one measured outcome of a project, e.g. {"Uptime", "99.9%"}.
type ProjectResult struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// Project is a portfolio case study.
type Project struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Client        string          `json:"client"`
	Category      string          `json:"category"`
	Industry      string          `json:"industry,omitempty"`
	Description   string          `json:"description"`
	Challenge     string          `json:"challenge,omitempty"`
	Solution      string          `json:"solution,omitempty"`
	Image         string          `json:"image"`
	Status        ProjectStatus   `json:"status"`
	Featured      bool            `json:"featured"`
	Technologies  []string        `json:"technologies"`
	Results       []ProjectResult `json:"results"`
	CompletedDate string          `json:"completedDate"`
}

// Key returns the identifier used to match projects in a collection.
func (p Project) Key() string { return p.ID }

// Headline returns the first result, which is shown on project cards.
func (p Project) Headline() (ProjectResult, bool) {
	if len(p.Results) == 0 {
		return ProjectResult{}, false
	}
	return p.Results[0], true
}
