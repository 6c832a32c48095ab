package models

// DashboardStats is derived from the contact and project collections and is
// never edited directly.
type DashboardStats struct {
	TotalContacts  int `json:"totalContacts"`
	NewInquiries   int `json:"newInquiries"`
	ActiveProjects int `json:"activeProjects"`
	ConversionRate int `json:"conversionRate"`
}
