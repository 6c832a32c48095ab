// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"html/template"
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/htmlsanitize"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
	}
}

type projectCard struct {
	ID            string
	Title         string
	Client        string
	Category      string
	Image         string
	Status        string
	StatusClass   string
	Featured      bool
	Technologies  []string
	Headline      *models.ProjectResult
	CompletedDate string

	// Narrative fields come from the backend and are sanitized for display.
	Description template.HTML
	Challenge   template.HTML
	Solution    template.HTML
}

type listData struct {
	viewdata.BaseVM
	Projects []projectCard
}

// ServeList handles GET /projects.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "projects_list", buildList(w, r, h.SessionMgr, c))
}

func buildList(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, c *console.Controller) listData {
	projects := c.Projects()
	cards := make([]projectCard, 0, len(projects))
	for _, p := range projects {
		card := projectCard{
			ID:            p.ID,
			Title:         p.Title,
			Client:        p.Client,
			Category:      p.Category,
			Image:         p.Image,
			Status:        string(p.Status),
			StatusClass:   viewdata.StatusClass(p.Status),
			Featured:      p.Featured,
			Technologies:  p.Technologies,
			CompletedDate: viewdata.DisplayDate(p.CompletedDate),
			Description:   htmlsanitize.PrepareForDisplay(p.Description),
			Challenge:     htmlsanitize.PrepareForDisplay(p.Challenge),
			Solution:      htmlsanitize.PrepareForDisplay(p.Solution),
		}
		if headline, ok := p.Headline(); ok {
			card.Headline = &headline
		}
		cards = append(cards, card)
	}
	return listData{
		BaseVM:   viewdata.ForView(w, r, notices, viewdata.ViewProjects, "/"),
		Projects: cards,
	}
}

// ServeDelete handles GET /projects/{id}/delete, the confirm step.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	p, found := c.Project(id)
	if !found {
		h.ErrLog.LogNotFound(w, r, "project not found", "That project no longer exists.", "/projects")
		return
	}
	templates.Render(w, r, "confirm_delete", viewdata.ConfirmVM{
		BaseVM:    viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewProjects, "/projects"),
		Kind:      "project",
		Name:      p.Title,
		Action:    "/projects/" + id + "/delete",
		CancelURL: "/projects",
	})
}

// HandleDelete handles POST /projects/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := c.DeleteProject(ctx, id); err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/projects")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventProjectDeleted, "project", id, nil)
	auth.Redirect(w, r, "/projects")
}
