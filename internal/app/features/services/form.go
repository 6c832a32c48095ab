// internal/app/features/services/form.go
package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	servicestore "github.com/bobprince4u/admin/internal/app/store/services"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/formutil"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type formData struct {
	viewdata.BaseVM
	Error  string
	IsEdit bool
	Action string

	ID               string
	Title            string
	Slug             string
	Icon             string
	ShortDescription string
	FullDescription  string
	Features         string
	TechnologyStack  string
	ProcessSteps     string
	IdealFor         string
	OrderIndex       string
	Published        bool
}

func newFormData(s models.Service, orderIndex string) formData {
	fd := formData{
		Title:            s.Title,
		Slug:             s.Slug,
		Icon:             formutil.Deref(s.Icon),
		ShortDescription: s.ShortDescription,
		FullDescription:  formutil.Deref(s.FullDescription),
		Features:         formutil.JoinLines(s.Features),
		TechnologyStack:  formutil.JoinLines(s.TechnologyStack),
		ProcessSteps:     formutil.JoinLines(s.ProcessSteps),
		IdealFor:         formutil.JoinLines(s.IdealFor),
		OrderIndex:       orderIndex,
		Published:        s.Published,
	}
	if s.ID != 0 {
		fd.ID = servicestore.FormatID(s.ID)
	}
	return fd
}

// parseForm reads a submitted service. The slug is derived from the title
// when the service is saved, so it is not read here.
func parseForm(r *http.Request) (models.Service, string) {
	s := models.Service{
		Title:            strings.TrimSpace(r.FormValue("title")),
		Icon:             formutil.OptString(r.FormValue("icon")),
		ShortDescription: strings.TrimSpace(r.FormValue("short_description")),
		FullDescription:  formutil.OptString(r.FormValue("full_description")),
		Features:         formutil.Lines(r.FormValue("features")),
		TechnologyStack:  formutil.Lines(r.FormValue("technology_stack")),
		ProcessSteps:     formutil.Lines(r.FormValue("process_steps")),
		IdealFor:         formutil.Lines(r.FormValue("ideal_for")),
		Published:        formutil.Checkbox(r, "published"),
	}

	order, err := formutil.Int(r.FormValue("order_index"), 0)
	if err != nil {
		return s, "Order must be a whole number."
	}
	s.OrderIndex = order

	switch {
	case s.Title == "":
		return s, "Title is required."
	case s.ShortDescription == "":
		return s, "Short description is required."
	case s.OrderIndex < 0:
		return s, "Order cannot be negative."
	}
	return s, ""
}

// ServeNew handles GET /services/new. New services are placed after the
// existing ones.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	next := 1
	for _, s := range c.Services() {
		if s.OrderIndex >= next {
			next = s.OrderIndex + 1
		}
	}
	h.renderForm(w, r, http.StatusOK, newFormData(models.Service{Published: true}, strconv.Itoa(next)), "")
}

// ServeEdit handles GET /services/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	s, found := h.lookup(w, r, c)
	if !found {
		return
	}
	h.renderForm(w, r, http.StatusOK, newFormData(s, strconv.Itoa(s.OrderIndex)), "")
}

// HandleCreate handles POST /services.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/services")
		return
	}
	s, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(s, r.FormValue("order_index")), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := c.AddService(ctx, s)
	if err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/services/new")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventServiceCreated,
		"service", servicestore.FormatID(created.ID), map[string]string{"slug": created.Slug})
	auth.Redirect(w, r, "/services")
}

// HandleUpdate handles POST /services/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	existing, found := h.lookup(w, r, c)
	if !found {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/services")
		return
	}
	s, msg := parseForm(r)
	s.ID = existing.ID
	id := servicestore.FormatID(existing.ID)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormData(s, r.FormValue("order_index")), msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := c.UpdateService(ctx, existing.ID, s)
	if err != nil {
		h.ErrLog.MutationFailed(w, r, err, "/services/"+id+"/edit")
		return
	}
	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventServiceUpdated,
		"service", id, map[string]string{"slug": updated.Slug})
	auth.Redirect(w, r, "/services")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data formData, msg string) {
	data.BaseVM = viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewServices, "/services")
	data.Error = msg
	data.IsEdit = data.ID != ""
	data.Action = "/services"
	if data.IsEdit {
		data.Action = "/services/" + data.ID
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "service_form", data)
}
