package models

import "strings"

// ContactStatus is the lifecycle stage of an inquiry. The zero value is not a
// valid status; use ParseContactStatus or one of the constants.
type ContactStatus string

const (
	ContactNew        ContactStatus = "New"
	ContactContacted  ContactStatus = "Contacted"
	ContactInProgress ContactStatus = "In Progress"
	ContactConverted  ContactStatus = "Converted"
	ContactClosed     ContactStatus = "Closed"
)

// ContactStatuses lists every status in workflow order.
var ContactStatuses = []ContactStatus{
	ContactNew,
	ContactContacted,
	ContactInProgress,
	ContactConverted,
	ContactClosed,
}

// Valid reports whether s is one of the five known statuses.
func (s ContactStatus) Valid() bool {
	for _, known := range ContactStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseContactStatus accepts the display form ("In Progress") case-insensitively.
// Anything unrecognised yields ok=false.
func ParseContactStatus(v string) (ContactStatus, bool) {
	v = strings.TrimSpace(v)
	for _, known := range ContactStatuses {
		if strings.EqualFold(v, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Contact is an inquiry submitted through the public contact form.
type Contact struct {
	ID          string        `json:"id"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	Company     string        `json:"company"`
	Phone       string        `json:"phone"`
	Service     string        `json:"service"`
	Budget      string        `json:"budget"`
	Timeline    string        `json:"timeline"`
	Message     string        `json:"message"`
	HearAbout   string        `json:"hearAbout"`
	Status      ContactStatus `json:"status"`
	CreatedAt   string        `json:"createdAt"`
	LastUpdated string        `json:"lastUpdated"`
}

// Key returns the identifier used to match contacts in a collection.
func (c Contact) Key() string { return c.ID }

// Initial returns the first letter of the contact's name, or "-".
func (c Contact) Initial() string {
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		return "-"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}
