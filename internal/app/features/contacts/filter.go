// internal/app/features/contacts/filter.go
package contacts

import (
	"strings"

	"github.com/bobprince4u/admin/internal/domain/models"
)

// StatusAll disables status filtering.
const StatusAll = "All"

// Filter keeps contacts whose name, email or company contains q
// (case-insensitive) and whose status matches status. An empty status or
// StatusAll matches every status; an unknown status matches none.
func Filter(contacts []models.Contact, q, status string) []models.Contact {
	q = strings.ToLower(strings.TrimSpace(q))

	var want models.ContactStatus
	if status = strings.TrimSpace(status); status != "" && status != StatusAll {
		parsed, ok := models.ParseContactStatus(status)
		if !ok {
			return []models.Contact{}
		}
		want = parsed
	}

	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if want != "" && c.Status != want {
			continue
		}
		if q != "" && !matches(c, q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c models.Contact, q string) bool {
	for _, field := range []string{c.FullName, c.Email, c.Company} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
