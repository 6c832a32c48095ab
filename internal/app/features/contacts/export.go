// internal/app/features/contacts/export.go
package contacts

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/csvutil"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeExport handles GET /contacts/export.csv. It exports the same
// contacts the list shows for the given q and status.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}

	q := strings.TrimSpace(query.Get(r, "q"))
	status := strings.TrimSpace(query.Get(r, "status"))
	rows := Filter(c.Contacts(), q, status)

	var buf bytes.Buffer
	if err := csvutil.WriteContacts(&buf, rows); err != nil {
		h.ErrLog.LogServerError(w, r, "write contacts csv", err, "Failed to export contacts.", "/contacts")
		return
	}

	if u, ok := auth.CurrentUser(r); ok {
		h.AuditLog.ResourceChanged(r.Context(), r, u.Email, audit.EventContactsExported, "contact", "",
			map[string]string{"count": strconv.Itoa(len(rows)), "q": q, "status": status})
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvutil.ContactsFilename(time.Now())+`"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Log.Warn("write contacts export", zap.Error(err))
	}
}

func exportURL(q, status string) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	if status != "" && status != StatusAll {
		v.Set("status", status)
	}
	if len(v) == 0 {
		return "/contacts/export.csv"
	}
	return "/contacts/export.csv?" + v.Encode()
}
