package viewdata

import (
	"strings"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
)

const displayDateLayout = "Jan 2, 2006"

// DisplayDate renders a backend timestamp for tables and cards. Values that
// do not parse are shown as they are.
func DisplayDate(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return ts
}

// StatusClass is the CSS class for a contact or project status badge.
func StatusClass[S ~string](s S) string {
	return "status status-" + strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

// Stars renders a rating as filled and empty stars.
func Stars(rating int) string {
	r := models.ClampRating(rating)
	return strings.Repeat("★", r) + strings.Repeat("☆", models.MaxRating-r)
}
