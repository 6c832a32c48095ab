package contactstore

import (
	"strings"

	"github.com/bobprince4u/admin/internal/domain/models"
)

// StatusFromWire maps the backend's status token to a canonical status.
// Unknown, empty and "closed" all map to Closed.
func StatusFromWire(v string) models.ContactStatus {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "new":
		return models.ContactNew
	case "contacted":
		return models.ContactContacted
	case "in_progress":
		return models.ContactInProgress
	case "converted":
		return models.ContactConverted
	default:
		return models.ContactClosed
	}
}

// StatusToWire maps a canonical status to the backend's token.
func StatusToWire(s models.ContactStatus) string {
	switch s {
	case models.ContactNew:
		return "new"
	case models.ContactContacted:
		return "contacted"
	case models.ContactInProgress:
		return "in_progress"
	case models.ContactConverted:
		return "converted"
	default:
		return "closed"
	}
}
