package models

// Session is an authenticated admin's bearer token and identity. ID is the
// console's own handle for the session and is never sent to the backend.
type Session struct {
	ID    string    `json:"id"`
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}
