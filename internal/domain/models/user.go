package models

// AdminUser is the identity returned by the backend on login or signup.
type AdminUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}

// DisplayName prefers the full name and falls back to the email.
func (u AdminUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
