// Package csvutil writes the contact export.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
)

// ContactHeader is the first row of every contact export.
var ContactHeader = []string{"Name", "Email", "Company", "Phone", "Service", "Status", "Date"}

// ExportDateLayout formats the Date column and the file name.
const ExportDateLayout = "2006-01-02"

// ContactsFilename names an export produced at now.
func ContactsFilename(now time.Time) string {
	return fmt.Sprintf("contacts-%s.csv", now.Format(ExportDateLayout))
}

// ExportDate renders a contact's createdAt as a calendar date. Values that
// are not RFC 3339 timestamps are written as they are.
func ExportDate(createdAt string) string {
	if createdAt == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, ExportDateLayout} {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t.Format(ExportDateLayout)
		}
	}
	return createdAt
}

// WriteContacts writes the header and one row per contact, in order.
func WriteContacts(w io.Writer, contacts []models.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ContactHeader); err != nil {
		return err
	}
	for _, c := range contacts {
		row := []string{
			c.FullName,
			c.Email,
			c.Company,
			c.Phone,
			c.Service,
			string(c.Status),
			ExportDate(c.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
