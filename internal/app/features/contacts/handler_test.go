package contacts

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bobprince4u/admin/internal/app/console"
	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/bobprince4u/admin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *console.Controller, *testutil.Backend) {
	t.Helper()
	logger := zap.NewNop()
	sm := testutil.NewSessionManager(t)
	b := testutil.NewBackend(t)
	c := testutil.LoadedController(t, b)
	return NewHandler(sm, uierrors.NewErrorLogger(logger, sm), nil, logger), c, b
}

func statusRequest(c *console.Controller, id, status string) *http.Request {
	req := testutil.NewFormRequest("POST", "/contacts/"+id+"/status", url.Values{"status": {status}})
	req = testutil.WithController(req, c)
	return testutil.WithChiURLParam(req, "id", id)
}

func TestBuildList_Filters(t *testing.T) {
	_, c, _ := newTestHandler(t)

	req := testutil.WithController(httptest.NewRequest("GET", "/contacts?q=hopper&status=New", nil), c)
	data := buildList(httptest.NewRecorder(), req, nil, c)

	if data.Total != 3 || data.Shown != 1 {
		t.Fatalf("shown %d of %d, want 1 of 3", data.Shown, data.Total)
	}
	if data.Rows[0].Name != "Grace Hopper" || data.Rows[0].StatusClass != "status status-new" {
		t.Errorf("row = %+v", data.Rows[0])
	}
	if data.ExportURL != "/contacts/export.csv?q=hopper&status=New" {
		t.Errorf("ExportURL = %q", data.ExportURL)
	}
	if data.Title != "Contact Management" {
		t.Errorf("Title = %q", data.Title)
	}
	selected := 0
	for _, o := range data.Options {
		if o.Selected {
			selected++
			if o.Value != "New" {
				t.Errorf("selected option = %q", o.Value)
			}
		}
	}
	if selected != 1 || len(data.Options) != 6 {
		t.Errorf("options = %+v", data.Options)
	}
}

func TestHandleStatus_UpdatesListSelectionAndStats(t *testing.T) {
	h, c, _ := newTestHandler(t)
	if _, ok := c.SelectContact("11"); !ok {
		t.Fatal("seed contact 11 missing")
	}

	rec := testutil.NewRecorder()
	h.HandleStatus(rec, statusRequest(c, "11", "Contacted"))

	rec.AssertRedirect(t, "/contacts/11")
	sel, ok := c.Selected()
	if !ok || sel.Status != models.ContactContacted {
		t.Errorf("displayed contact = %+v, %v", sel, ok)
	}
	for _, ct := range c.Contacts() {
		if ct.ID == "11" && ct.Status != models.ContactContacted {
			t.Errorf("list entry status = %q", ct.Status)
		}
	}
	if got := c.Stats().NewInquiries; got != 0 {
		t.Errorf("NewInquiries = %d, want 0", got)
	}
}

func TestHandleStatus_InvalidStatusRejected(t *testing.T) {
	h, c, b := newTestHandler(t)

	req := statusRequest(c, "11", "Archived")
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()
	h.HandleStatus(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	for _, r := range b.Requests() {
		if strings.HasPrefix(r, "PATCH") {
			t.Fatalf("invalid status reached the backend: %v", b.Requests())
		}
	}
}

func TestHandleStatus_ExpiredTokenEndsSession(t *testing.T) {
	h, c, b := newTestHandler(t)
	b.ExpireToken()

	rec := testutil.NewRecorder()
	h.HandleStatus(rec, statusRequest(c, "11", "Closed"))

	rec.AssertRedirect(t, "/login")
	if c.State() != console.Unauthenticated {
		t.Errorf("state = %v, want Unauthenticated", c.State())
	}
}

func TestHandleStatus_BackendFailureKeepsState(t *testing.T) {
	h, c, b := newTestHandler(t)
	before := c.Stats()
	b.FailWith("PATCH /admin/contacts/11", http.StatusInternalServerError)

	rec := testutil.NewRecorder()
	h.HandleStatus(rec, statusRequest(c, "11", "Converted"))

	rec.AssertRedirect(t, "/contacts/11")
	if c.State() != console.Ready {
		t.Fatalf("state = %v, want Ready", c.State())
	}
	if c.Stats() != before {
		t.Errorf("stats changed after a failed update: %+v", c.Stats())
	}
}

func TestServeExport_FilteredCSV(t *testing.T) {
	h, c, _ := newTestHandler(t)

	req := testutil.WithController(httptest.NewRequest("GET", "/contacts/export.csv?status=New", nil), c)
	rec := httptest.NewRecorder()
	h.ServeExport(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="contacts-`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Grace Hopper" || rows[1][6] != "2024-03-01" {
		t.Errorf("rows = %v", rows)
	}
}

func TestServeDetail_UnknownContact(t *testing.T) {
	h, c, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.WithController(httptest.NewRequest("GET", "/contacts/999", nil), c), "id", "999")
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()
	h.ServeDetail(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	if _, ok := c.Selected(); ok {
		t.Error("an unknown id must not become the displayed contact")
	}
}

func TestBuildDetail_SanitizesMessage(t *testing.T) {
	ct := models.Contact{ID: "1", FullName: "X", Status: models.ContactNew, Message: "hi<script>alert(1)</script>"}
	data := buildDetail(httptest.NewRecorder(), httptest.NewRequest("GET", "/contacts/1", nil), nil, ct)

	if strings.Contains(string(data.Message), "<script>") {
		t.Errorf("message not sanitized: %q", data.Message)
	}
	for _, o := range data.Options {
		if o.Selected && o.Value != "New" {
			t.Errorf("selected option = %q", o.Value)
		}
	}
}
