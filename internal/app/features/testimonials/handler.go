// internal/app/features/testimonials/handler.go
package testimonials

import (
	"context"
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
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

type testimonialCard struct {
	ID       string
	Name     string
	Position string
	Company  string
	Message  string
	Stars    string
	Rating   int
	Image    string
	Featured bool
	Date     string
}

type listData struct {
	viewdata.BaseVM
	Testimonials []testimonialCard
	Featured     int
}

// ServeList handles GET /testimonials.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "testimonials_list", buildList(w, r, h.SessionMgr, c))
}

func buildList(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, c *console.Controller) listData {
	items := c.Testimonials()
	data := listData{
		BaseVM:       viewdata.ForView(w, r, notices, viewdata.ViewTestimonials, "/"),
		Testimonials: make([]testimonialCard, 0, len(items)),
	}
	for _, t := range items {
		if t.Featured {
			data.Featured++
		}
		data.Testimonials = append(data.Testimonials, testimonialCard{
			ID:       t.ID,
			Name:     t.Name,
			Position: t.Position,
			Company:  t.Company,
			Message:  t.Message,
			Stars:    viewdata.Stars(t.Rating),
			Rating:   models.ClampRating(t.Rating),
			Image:    t.Image,
			Featured: t.Featured,
			Date:     viewdata.DisplayDate(t.CreatedAt),
		})
	}
	return data
}

// ServeDelete handles GET /testimonials/{id}/delete, the confirm step.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	t, found := c.Testimonial(id)
	if !found {
		h.ErrLog.LogNotFound(w, r, "testimonial not found", "That testimonial no longer exists.", "/testimonials")
		return
	}
	templates.Render(w, r, "confirm_delete", viewdata.ConfirmVM{
		BaseVM:    viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewTestimonials, "/testimonials"),
		Kind:      "testimonial",
		Name:      t.Name,
		Action:    "/testimonials/" + id + "/delete",
		CancelURL: "/testimonials",
	})
}

// HandleDelete handles POST /testimonials/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := c.DeleteTestimonial(ctx, id); err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/testimonials")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventTestimonialDeleted, "testimonial", id, nil)
	auth.Redirect(w, r, "/testimonials")
}
