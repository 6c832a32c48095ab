// internal/app/store/accounts/accountstore.go
package accountstore

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

const (
	LoginPath  = "/admin/login"
	SignupPath = "/admin/create"

	// MinPasswordLength is enforced before a signup request is sent.
	MinPasswordLength = 6
)

// AuthError is a login or signup rejection. Message is safe to show on the
// form.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// SignupInput is the first-admin onboarding form.
type SignupInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

type wireUser struct {
	ID       apiclient.FlexString `json:"id"`
	Email    apiclient.OptString  `json:"email"`
	FullName apiclient.OptString  `json:"fullName"`
	Username apiclient.OptString  `json:"username"`
	Role     apiclient.OptString  `json:"role"`
}

type wireAuth struct {
	Token       apiclient.OptString `json:"token"`
	AccessToken apiclient.OptString `json:"accessToken"`
	User        *wireUser           `json:"user"`
}

// Store performs the unauthenticated login and signup calls.
type Store struct {
	api *apiclient.Client
}

// New creates an accounts store on top of api.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// Login exchanges credentials for a session. The returned session has no ID;
// the session manager assigns one when it persists it.
func (s *Store) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, &AuthError{Message: "Please enter your email and password."}
	}

	body := map[string]string{"email": email, "password": password}
	sess, err := s.exchange(ctx, LoginPath, body, "Login failed")
	if err != nil {
		return models.Session{}, err
	}
	if sess.Token == "" {
		return models.Session{}, &AuthError{Message: "Login failed"}
	}
	return sess, nil
}

// Signup creates the first admin account. The token may be empty if the
// backend does not sign the new admin in.
func (s *Store) Signup(ctx context.Context, in SignupInput) (models.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)

	if in.Email == "" || in.FullName == "" || in.Username == "" {
		return models.Session{}, &AuthError{Message: "Please fill in every field."}
	}
	if len(in.Password) < MinPasswordLength {
		return models.Session{}, &AuthError{Message: "Password must be at least 6 characters"}
	}

	body := map[string]string{
		"fullName": in.FullName,
		"username": in.Username,
		"email":    in.Email,
		"role":     "admin",
		"password": in.Password,
	}
	return s.exchange(ctx, SignupPath, body, "Failed to create account")
}

func (s *Store) exchange(ctx context.Context, path string, body any, fallback string) (models.Session, error) {
	env, err := s.api.Do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		msg := apiclient.MessageOf(err, fallback)
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Status == 0 {
			msg = "The server could not be reached. Please try again."
		}
		return models.Session{}, &AuthError{Message: msg, Err: err}
	}

	w, ok, err := apiclient.DecodeItem[wireAuth](env.Data)
	if err != nil {
		return models.Session{}, &AuthError{Message: fallback, Err: err}
	}
	if !ok {
		return models.Session{}, nil
	}

	token := string(w.Token)
	if token == "" {
		token = string(w.AccessToken)
	}

	var user models.AdminUser
	if w.User != nil {
		user = models.AdminUser{
			ID:       string(w.User.ID),
			Email:    string(w.User.Email),
			FullName: string(w.User.FullName),
			Username: string(w.User.Username),
			Role:     string(w.User.Role),
		}
	}
	return models.Session{Token: token, User: user}, nil
}
