package contacts

import (
	"testing"

	"github.com/bobprince4u/admin/internal/domain/models"
)

var sample = []models.Contact{
	{ID: "1", FullName: "Grace Hopper", Email: "grace@navy.mil", Company: "US Navy", Status: models.ContactNew},
	{ID: "2", FullName: "Alan Turing", Email: "alan@example.com", Company: "Bletchley", Status: models.ContactConverted},
	{ID: "3", FullName: "Ada Lovelace", Email: "ada@engine.org", Company: "Analytical", Status: models.ContactNew},
}

func ids(cs []models.Contact) string {
	s := ""
	for _, c := range cs {
		s += c.ID
	}
	return s
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		q      string
		status string
		want   string
	}{
		{"everything", "", "", "123"},
		{"all keyword", "", StatusAll, "123"},
		{"name case-insensitive", "GRACE", "", "1"},
		{"email", "engine.org", "", "3"},
		{"company", "bletch", "", "2"},
		{"status only", "", "New", "13"},
		{"status lower-case", "", "converted", "2"},
		{"query and status", "a", "Converted", "2"},
		{"no match", "zzz", "", ""},
		{"unknown status", "", "Archived", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(sample, tt.q, tt.status)); got != tt.want {
				t.Errorf("Filter(%q, %q) = %q, want %q", tt.q, tt.status, got, tt.want)
			}
		})
	}
}

func TestFilter_DoesNotAlias(t *testing.T) {
	out := Filter(sample, "", "")
	out[0].FullName = "changed"
	if sample[0].FullName != "Grace Hopper" {
		t.Error("Filter must not return the input slice")
	}
}

func TestExportURL(t *testing.T) {
	tests := []struct{ q, status, want string }{
		{"", StatusAll, "/contacts/export.csv"},
		{"", "", "/contacts/export.csv"},
		{"acme", "New", "/contacts/export.csv?q=acme&status=New"},
		{"", "In Progress", "/contacts/export.csv?status=In+Progress"},
	}
	for _, tt := range tests {
		if got := exportURL(tt.q, tt.status); got != tt.want {
			t.Errorf("exportURL(%q, %q) = %q, want %q", tt.q, tt.status, got, tt.want)
		}
	}
}
