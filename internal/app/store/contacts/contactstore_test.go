package contactstore_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	contactstore "github.com/bobprince4u/admin/internal/app/store/contacts"
	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/bobprince4u/admin/internal/testutil"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*contactstore.Store, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	return contactstore.New(apiclient.New(b.BaseURL(), 5*time.Second, zap.NewNop())), b
}

func TestStatusFromWire(t *testing.T) {
	tests := map[string]models.ContactStatus{
		"new":         models.ContactNew,
		"contacted":   models.ContactContacted,
		"in_progress": models.ContactInProgress,
		"converted":   models.ContactConverted,
		"closed":      models.ContactClosed,
		"on_hold":     models.ContactClosed,
		"":            models.ContactClosed,
		" NEW ":       models.ContactNew,
	}
	for in, want := range tests {
		if got := contactstore.StatusFromWire(in); got != want {
			t.Errorf("StatusFromWire(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusToWire(t *testing.T) {
	for _, s := range models.ContactStatuses {
		if got := contactstore.StatusFromWire(contactstore.StatusToWire(s)); got != s {
			t.Errorf("%q did not survive the wire: got %q", s, got)
		}
	}
}

func TestList_MapsWireShape(t *testing.T) {
	s, b := newStore(t)

	got, err := s.List(context.Background(), b.Token())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}
	c := got[0]
	if c.ID != "11" || c.FullName != "Grace Hopper" || c.Company != "Navy" || c.Service != "Cloud" ||
		c.Budget != "10k" || c.Timeline != "Q3" || c.HearAbout != "Search" || c.Status != models.ContactNew {
		t.Errorf("unexpected mapping %+v", c)
	}
	if got[1].LastUpdated != "" {
		t.Errorf("null updated_at should map to empty, got %q", got[1].LastUpdated)
	}
	if got[2].Status != models.ContactClosed {
		t.Errorf("unknown status should map to Closed, got %q", got[2].Status)
	}
}

func TestList_NonStringStatusIsClosed(t *testing.T) {
	s, b := newStore(t)
	b.SetCollection("contacts", []testutil.Record{
		{"id": 1, "full_name": "Ada", "status": "new"},
		{"id": 2, "full_name": "Bob", "status": 3},
		{"id": 3, "full_name": "Cy", "status": map[string]any{"code": "new"}},
		{"id": 4, "full_name": "Di", "status": nil},
	})

	got, err := s.List(context.Background(), b.Token())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 contacts, got %d", len(got))
	}
	if got[0].Status != models.ContactNew {
		t.Errorf("contact 1 status = %q, want New", got[0].Status)
	}
	for _, c := range got[1:] {
		if c.Status != models.ContactClosed {
			t.Errorf("contact %s status = %q, want Closed", c.ID, c.Status)
		}
	}
}

func TestList_MissingDataIsEmpty(t *testing.T) {
	s, b := newStore(t)
	b.SetCollection("contacts", nil)

	got, err := s.List(context.Background(), b.Token())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d", len(got))
	}
}

func TestList_ExpiredToken(t *testing.T) {
	s, b := newStore(t)
	b.ExpireToken()

	_, err := s.List(context.Background(), "valid-token")
	if !errors.Is(err, apiclient.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestUpdateStatus_SendsWireToken(t *testing.T) {
	s, b := newStore(t)

	got, echoed, err := s.UpdateStatus(context.Background(), b.Token(), "11", models.ContactInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if body := b.LastBody("PATCH /admin/contacts/11"); body["status"] != "in_progress" {
		t.Errorf("sent status %v, want in_progress", body["status"])
	}
	if !echoed || got.Status != models.ContactInProgress || got.FullName != "Grace Hopper" {
		t.Errorf("unexpected echo %+v (echoed=%v)", got, echoed)
	}
}

func TestUpdateStatus_NoEcho(t *testing.T) {
	s, b := newStore(t)
	b.OmitEcho("PATCH /admin/contacts/11")

	_, echoed, err := s.UpdateStatus(context.Background(), b.Token(), "11", models.ContactClosed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if echoed {
		t.Error("expected echoed=false when the response has no record")
	}
}

func TestUpdateStatus_BackendError(t *testing.T) {
	s, b := newStore(t)
	b.FailWith("PATCH /admin/contacts/*", http.StatusInternalServerError)

	_, _, err := s.UpdateStatus(context.Background(), b.Token(), "11", models.ContactClosed)
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Errorf("expected 500 *apiclient.Error, got %v", err)
	}
}
