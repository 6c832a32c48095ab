package models

import (
	"regexp"
	"strings"
)

// ServiceID is the backend's numeric service identifier. Zero means the
// service has not been assigned an id yet.
type ServiceID int64

// Service is an offering in the service catalog.
type Service struct {
	ID               ServiceID `json:"id,omitempty"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Icon             *string   `json:"icon"`
	ShortDescription string    `json:"shortDescription"`
	FullDescription  *string   `json:"fullDescription,omitempty"`
	Features         []string  `json:"features"`
	TechnologyStack  []string  `json:"technologyStack"`
	ProcessSteps     []string  `json:"processSteps"`
	IdealFor         []string  `json:"idealFor"`
	OrderIndex       int       `json:"orderIndex"`
	Published        bool      `json:"published"`
}

// Key returns the identifier used to match services in a collection.
func (s Service) Key() ServiceID { return s.ID }

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a service slug from its title: surrounding whitespace is
// trimmed, the title is lower-cased and every run of whitespace becomes a
// single hyphen.
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}
