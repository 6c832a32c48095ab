package models

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Testimonial is a piece of client feedback shown on the public site.
type Testimonial struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	Rating    int    `json:"rating"`
	Image     string `json:"image,omitempty"`
	Featured  bool   `json:"featured"`
	CreatedAt string `json:"createdAt"`
}

// Key returns the identifier used to match testimonials in a collection.
func (t Testimonial) Key() string { return t.ID }

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(r int) int {
	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	}
	return r
}
