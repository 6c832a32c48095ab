// internal/app/features/contacts/list.go
package contacts

import (
	"net/http"
	"strings"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type contactRow struct {
	ID          string
	Initial     string
	Name        string
	Email       string
	Company     string
	Phone       string
	Service     string
	Status      models.ContactStatus
	StatusClass string
	Date        string
}

type statusOption struct {
	Value    string
	Selected bool
}

type listData struct {
	viewdata.BaseVM
	Q         string
	Status    string
	Options   []statusOption
	Rows      []contactRow
	Shown     int
	Total     int
	ExportURL string
}

// ServeList handles GET /contacts with optional q and status filters.
// Returning to the list closes any displayed contact.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	c.ClearSelection()

	data := buildList(w, r, h.SessionMgr, c)

	// HTMX partial table refresh
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "contacts-table-wrap" {
		templates.RenderSnippet(w, "contacts_table", data)
		return
	}

	templates.Render(w, r, "contacts_list", data)
}

func buildList(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, c *console.Controller) listData {
	q := strings.TrimSpace(query.Get(r, "q"))
	status := strings.TrimSpace(query.Get(r, "status"))
	if status == "" {
		status = StatusAll
	}

	all := c.Contacts()
	filtered := Filter(all, q, status)

	rows := make([]contactRow, 0, len(filtered))
	for _, ct := range filtered {
		rows = append(rows, toRow(ct))
	}

	options := []statusOption{{Value: StatusAll, Selected: status == StatusAll}}
	for _, s := range models.ContactStatuses {
		options = append(options, statusOption{Value: string(s), Selected: strings.EqualFold(status, string(s))})
	}

	return listData{
		BaseVM:    viewdata.ForView(w, r, notices, viewdata.ViewContacts, "/"),
		Q:         q,
		Status:    status,
		Options:   options,
		Rows:      rows,
		Shown:     len(rows),
		Total:     len(all),
		ExportURL: exportURL(q, status),
	}
}

func toRow(ct models.Contact) contactRow {
	return contactRow{
		ID:          ct.ID,
		Initial:     ct.Initial(),
		Name:        ct.FullName,
		Email:       ct.Email,
		Company:     ct.Company,
		Phone:       ct.Phone,
		Service:     ct.Service,
		Status:      ct.Status,
		StatusClass: viewdata.StatusClass(ct.Status),
		Date:        viewdata.DisplayDate(ct.CreatedAt),
	}
}
