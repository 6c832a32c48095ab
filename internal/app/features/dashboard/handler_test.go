package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobprince4u/admin/internal/testutil"
	"go.uber.org/zap"
)

func TestServeDashboard_WithoutConsoleRedirects(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeDashboard(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
}

func TestBuildData_StatsAndRecent(t *testing.T) {
	b := testutil.NewBackend(t)
	c := testutil.LoadedController(t, b)

	req := testutil.WithController(httptest.NewRequest("GET", "/", nil), c)
	data := buildData(httptest.NewRecorder(), req, nil, c)

	// Seed: new, converted, on_hold (normalized to Closed); p1 published.
	if data.Stats.TotalContacts != 3 || data.Stats.NewInquiries != 1 ||
		data.Stats.ActiveProjects != 1 || data.Stats.ConversionRate != 33 {
		t.Errorf("stats = %+v", data.Stats)
	}
	if data.NewInquiries != 1 {
		t.Errorf("sidebar badge = %d, want 1", data.NewInquiries)
	}
	if data.Title != "Dashboard" {
		t.Errorf("Title = %q", data.Title)
	}
	if len(data.Recent) != 3 {
		t.Fatalf("recent rows = %d, want 3", len(data.Recent))
	}
	first := data.Recent[0]
	if first.Name != "Grace Hopper" || first.Initial != "G" || first.Date != "Mar 1, 2024" {
		t.Errorf("first row = %+v", first)
	}
}

func TestBuildData_RecentCapped(t *testing.T) {
	b := testutil.NewBackend(t)
	records := make([]testutil.Record, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, testutil.Record{"id": i + 1, "full_name": "C", "status": "new"})
	}
	b.SetCollection("contacts", records)
	c := testutil.LoadedController(t, b)

	data := buildData(httptest.NewRecorder(), testutil.WithController(httptest.NewRequest("GET", "/", nil), c), nil, c)
	if len(data.Recent) != RecentCount {
		t.Errorf("recent rows = %d, want %d", len(data.Recent), RecentCount)
	}
}
