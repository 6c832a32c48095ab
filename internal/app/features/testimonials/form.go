// internal/app/features/testimonials/form.go
package testimonials

import (
	"context"
	"net/http"
	"strconv"
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

type ratingOption struct {
	Value    int
	Selected bool
}

type formData struct {
	viewdata.BaseVM
	Error  string
	IsEdit bool
	Action string

	ID       string
	Name     string
	Position string
	Company  string
	Message  string
	Rating   string
	Ratings  []ratingOption
	Image    string
	Featured bool
}

func newFormData(t models.Testimonial, rating string) formData {
	fd := formData{
		ID:       t.ID,
		Name:     t.Name,
		Position: t.Position,
		Company:  t.Company,
		Message:  t.Message,
		Rating:   rating,
		Image:    t.Image,
		Featured: t.Featured,
	}
	for v := models.MaxRating; v >= models.MinRating; v-- {
		fd.Ratings = append(fd.Ratings, ratingOption{Value: v, Selected: strconv.Itoa(v) == rating})
	}
	return fd
}

// parseForm reads a submitted testimonial. Out-of-range ratings are
// clamped when saved; a rating that is not a whole number is rejected.
func parseForm(r *http.Request) (models.Testimonial, string) {
	t := models.Testimonial{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Position: strings.TrimSpace(r.FormValue("position")),
		Company:  strings.TrimSpace(r.FormValue("company")),
		Message:  strings.TrimSpace(r.FormValue("message")),
		Image:    strings.TrimSpace(r.FormValue("image")),
		Featured: formutil.Checkbox(r, "featured"),
	}

	rating, err := formutil.Int(r.FormValue("rating"), models.DefaultRating)
	if err != nil {
		return t, "Rating must be a whole number."
	}
	t.Rating = rating

	switch {
	case t.Name == "":
		return t, "Name is required."
	case t.Message == "":
		return t, "Message is required."
	}
	return t, ""
}

// ServeNew handles GET /testimonials/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, ok := console.FromRequest(w, r); !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, newFormData(models.Testimonial{}, strconv.Itoa(models.DefaultRating)), "")
}

// ServeEdit handles GET /testimonials/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	t, found := c.Testimonial(chi.URLParam(r, "id"))
	if !found {
		h.ErrLog.LogNotFound(w, r, "testimonial not found", "That testimonial no longer exists.", "/testimonials")
		return
	}
	h.renderForm(w, r, http.StatusOK, newFormData(t, strconv.Itoa(models.ClampRating(t.Rating))), "")
}

// HandleCreate handles POST /testimonials.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/testimonials")
		return
	}
	t, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(t, r.FormValue("rating")), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := c.AddTestimonial(ctx, t)
	if err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/testimonials/new")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventTestimonialCreated,
		"testimonial", created.ID, map[string]string{"rating": strconv.Itoa(created.Rating)})
	auth.Redirect(w, r, "/testimonials")
}

// HandleUpdate handles POST /testimonials/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	existing, found := c.Testimonial(id)
	if !found {
		h.ErrLog.LogNotFound(w, r, "testimonial not found", "That testimonial no longer exists.", "/testimonials")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/testimonials")
		return
	}
	t, msg := parseForm(r)
	t.ID = id
	t.CreatedAt = existing.CreatedAt
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(t, r.FormValue("rating")), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := c.UpdateTestimonial(ctx, id, t)
	if err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/testimonials/"+id+"/edit")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventTestimonialUpdated,
		"testimonial", id, map[string]string{"rating": strconv.Itoa(updated.Rating)})
	auth.Redirect(w, r, "/testimonials")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData, msg string) {
	data.BaseVM = viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewTestimonials, "/testimonials")
	data.Error = msg
	data.IsEdit = data.ID != ""
	data.Action = "/testimonials"
	if data.IsEdit {
		data.Action = "/testimonials/" + data.ID
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "testimonial_form", data)
}
