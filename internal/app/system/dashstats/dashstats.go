// Package dashstats derives the dashboard summary from the loaded contacts
// and projects. The result is never stored on its own; callers recompute it
// whenever either collection changes.
package dashstats

import (
	"math"

	"github.com/bobprince4u/admin/internal/domain/models"
)

// Compute returns totals, new inquiries, published projects and the
// percentage of contacts converted, rounded to the nearest integer.
func Compute(contacts []models.Contact, projects []models.Project) models.DashboardStats {
	var stats models.DashboardStats
	stats.TotalContacts = len(contacts)

	converted := 0
	for _, c := range contacts {
		switch c.Status {
		case models.ContactNew:
			stats.NewInquiries++
		case models.ContactConverted:
			converted++
		}
	}
	for _, p := range projects {
		if p.Status == models.ProjectPublished {
			stats.ActiveProjects++
		}
	}
	if stats.TotalContacts > 0 {
		stats.ConversionRate = int(math.Round(100 * float64(converted) / float64(stats.TotalContacts)))
	}
	return stats
}
