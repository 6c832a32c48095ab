// internal/app/features/services/handler.go
package services

import (
	"context"
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	servicestore "github.com/bobprince4u/admin/internal/app/store/services"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/formutil"
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

type serviceRow struct {
	ID               string
	Title            string
	Slug             string
	Icon             string
	ShortDescription string
	Features         []string
	OrderIndex       int
	Published        bool
}

type listData struct {
	viewdata.BaseVM
	Services []serviceRow
}

// ServeList handles GET /services.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "services_list", buildList(w, r, h.SessionMgr, c))
}

func buildList(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, c *console.Controller) listData {
	services := c.Services()
	rows := make([]serviceRow, 0, len(services))
	for _, s := range services {
		rows = append(rows, serviceRow{
			ID:               servicestore.FormatID(s.ID),
			Title:            s.Title,
			Slug:             s.Slug,
			Icon:             formutil.Deref(s.Icon),
			ShortDescription: s.ShortDescription,
			Features:         s.Features,
			OrderIndex:       s.OrderIndex,
			Published:        s.Published,
		})
	}
	return listData{
		BaseVM:   viewdata.ForView(w, r, notices, viewdata.ViewServices, "/"),
		Services: rows,
	}
}

// lookup resolves the {id} path parameter to a loaded service, reporting
// not-found itself.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, c *console.Controller) (models.Service, bool) {
	if id, ok := servicestore.ParseID(chi.URLParam(r, "id")); ok {
		if s, found := c.Service(id); found {
			return s, true
		}
	}
	h.ErrLog.LogNotFound(w, r, "service not found", "That service no longer exists.", "/services")
	return models.Service{}, false
}

// ServeDelete handles GET /services/{id}/delete, the confirm step.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	s, found := h.lookup(w, r, c)
	if !found {
		return
	}
	id := servicestore.FormatID(s.ID)
	templates.Render(w, r, "confirm_delete", viewdata.ConfirmVM{
		BaseVM:    viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewServices, "/services"),
		Kind:      "service",
		Name:      s.Title,
		Action:    "/services/" + id + "/delete",
		CancelURL: "/services",
	})
}

// HandleDelete handles POST /services/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	s, found := h.lookup(w, r, c)
	if !found {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := c.DeleteService(ctx, s.ID); err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/services")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventServiceDeleted,
		"service", servicestore.FormatID(s.ID), nil)
	auth.Redirect(w, r, "/services")
}
