// internal/app/features/projects/form.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/formutil"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// blankResultRows is how many empty metric/value rows the form offers
// beyond the project's existing results.
const blankResultRows = 2

type formData struct {
	viewdata.BaseVM
	Error  string
	IsEdit bool
	Action string

	ID            string
	Title         string
	Client        string
	Category      string
	Industry      string
	Description   string
	Challenge     string
	Solution      string
	Image         string
	Published     bool
	Featured      bool
	Technologies  string
	Results       []models.ProjectResult
	CompletedDate string
}

func newFormData(p models.Project) formData {
	results := append([]models.ProjectResult{}, p.Results...)
	for i := 0; i < blankResultRows; i++ {
		results = append(results, models.ProjectResult{})
	}
	return formData{
		ID:            p.ID,
		Title:         p.Title,
		Client:        p.Client,
		Category:      p.Category,
		Industry:      p.Industry,
		Description:   p.Description,
		Challenge:     p.Challenge,
		Solution:      p.Solution,
		Image:         p.Image,
		Published:     p.Status != models.ProjectDraft,
		Featured:      p.Featured,
		Technologies:  formutil.JoinLines(p.Technologies),
		Results:       results,
		CompletedDate: p.CompletedDate,
	}
}

// parseForm reads a submitted project. The returned message is non-empty
// when the input cannot be saved.
func parseForm(r *http.Request) (models.Project, string) {
	p := models.Project{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Client:        strings.TrimSpace(r.FormValue("client")),
		Category:      strings.TrimSpace(r.FormValue("category")),
		Industry:      strings.TrimSpace(r.FormValue("industry")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Challenge:     strings.TrimSpace(r.FormValue("challenge")),
		Solution:      strings.TrimSpace(r.FormValue("solution")),
		Image:         strings.TrimSpace(r.FormValue("image")),
		Status:        models.ProjectDraft,
		Featured:      formutil.Checkbox(r, "featured"),
		Technologies:  formutil.Lines(r.FormValue("technologies")),
		Results:       []models.ProjectResult{},
		CompletedDate: strings.TrimSpace(r.FormValue("completed_date")),
	}
	if strings.EqualFold(strings.TrimSpace(r.FormValue("status")), string(models.ProjectPublished)) {
		p.Status = models.ProjectPublished
	}
	for _, pair := range formutil.Pairs(r.Form["result_metric"], r.Form["result_value"]) {
		p.Results = append(p.Results, models.ProjectResult{Metric: pair[0], Value: pair[1]})
	}

	switch {
	case p.Title == "":
		return p, "Title is required."
	case p.Client == "":
		return p, "Client is required."
	case p.Category == "":
		return p, "Category is required."
	case p.Description == "":
		return p, "Description is required."
	}
	return p, ""
}

// ServeNew handles GET /projects/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, ok := console.FromRequest(w, r); !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, newFormData(models.Project{Status: models.ProjectPublished}), "")
}

// ServeEdit handles GET /projects/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	p, found := c.Project(chi.URLParam(r, "id"))
	if !found {
		h.ErrLog.LogNotFound(w, r, "project not found", "That project no longer exists.", "/projects")
		return
	}
	h.renderForm(w, r, http.StatusOK, newFormData(p), "")
}

// HandleCreate handles POST /projects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/projects")
		return
	}
	p, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(p), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := c.AddProject(ctx, p)
	if err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/projects/new")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventProjectCreated,
		"project", created.ID, map[string]string{"title": created.Title})
	auth.Redirect(w, r, "/projects")
}

// HandleUpdate handles POST /projects/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if _, found := c.Project(id); !found {
		h.ErrLog.LogNotFound(w, r, "project not found", "That project no longer exists.", "/projects")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/projects")
		return
	}
	p, msg := parseForm(r)
	p.ID = id
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(p), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := c.UpdateProject(ctx, id, p); err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/projects/"+id+"/edit")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventProjectUpdated,
		"project", id, map[string]string{"title": p.Title})
	auth.Redirect(w, r, "/projects")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData, msg string) {
	data.BaseVM = viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewProjects, "/projects")
	data.Error = msg
	data.IsEdit = data.ID != ""
	data.Action = "/projects"
	if data.IsEdit {
		data.Action = "/projects/" + data.ID
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "project_form", data)
}
