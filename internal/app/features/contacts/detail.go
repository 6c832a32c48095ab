// internal/app/features/contacts/detail.go
package contacts

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/htmlsanitize"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type detailData struct {
	viewdata.BaseVM
	Contact     contactRow
	Budget      string
	Timeline    string
	HearAbout   string
	Message     template.HTML
	LastUpdated string
	Options     []statusOption
}

// ServeDetail handles GET /contacts/{id}: it makes the contact the
// displayed record and renders it.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	ct, found := c.SelectContact(id)
	if !found {
		h.ErrLog.LogNotFound(w, r, "contact not found", "That contact no longer exists.", "/contacts")
		return
	}
	templates.Render(w, r, "contact_detail", buildDetail(w, r, h.SessionMgr, ct))
}

func buildDetail(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, ct models.Contact) detailData {
	options := make([]statusOption, 0, len(models.ContactStatuses))
	for _, s := range models.ContactStatuses {
		options = append(options, statusOption{Value: string(s), Selected: s == ct.Status})
	}
	vm := viewdata.ForView(w, r, notices, viewdata.ViewContacts, "/contacts")
	return detailData{
		BaseVM:      vm,
		Contact:     toRow(ct),
		Budget:      ct.Budget,
		Timeline:    ct.Timeline,
		HearAbout:   ct.HearAbout,
		Message:     htmlsanitize.PrepareForDisplay(ct.Message),
		LastUpdated: viewdata.DisplayDate(ct.LastUpdated),
		Options:     options,
	}
}

// HandleStatus handles POST /contacts/{id}/status. The list, the displayed
// contact and the sidebar badge all reflect the new status afterwards.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	back := auth.SafeReturn(strings.TrimSpace(r.FormValue("return")))
	if back == "/" {
		back = "/contacts/" + id
	}

	status, valid := models.ParseContactStatus(r.FormValue("status"))
	if !valid {
		h.ErrLog.LogBadRequest(w, r, "invalid contact status", console.ErrInvalidStatus, "Unknown contact status.", back)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := c.UpdateContactStatus(ctx, id, status); err != nil {
		if errors.Is(err, console.ErrInvalidStatus) {
			h.ErrLog.LogBadRequest(w, r, "invalid contact status", err, "Unknown contact status.", back)
			return
		}
		if errors.Is(err, console.ErrContactNotFound) {
			h.ErrLog.LogNotFound(w, r, "status change for unknown contact", "Contact not found.", "/contacts")
			return
		}
		h.ErrLog.MutationFailed(w, r, err, back)
		return
	}

	h.AuditLog.ResourceChanged(r.Context(), r, c.Session().User.Email, audit.EventContactStatusChanged,
		"contact", id, map[string]string{"status": string(status)})

	auth.Redirect(w, r, back)
}
