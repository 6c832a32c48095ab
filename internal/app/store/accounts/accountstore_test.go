package accountstore_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	accountstore "github.com/bobprince4u/admin/internal/app/store/accounts"
	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/testutil"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*accountstore.Store, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	return accountstore.New(apiclient.New(b.BaseURL(), 5*time.Second, zap.NewNop())), b
}

func authMessage(t *testing.T, err error) string {
	t.Helper()
	var ae *accountstore.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	return ae.Message
}

func TestLogin_Success(t *testing.T) {
	s, b := newStore(t)

	sess, err := s.Login(context.Background(), " admin@example.com ", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Token != b.Token() {
		t.Errorf("token: got %q", sess.Token)
	}
	if sess.User.FullName != "Ada Admin" || sess.User.Role != "admin" {
		t.Errorf("unexpected user %+v", sess.User)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Login(context.Background(), "admin@example.com", "wrong")
	if msg := authMessage(t, err); msg != "Invalid email or password" {
		t.Errorf("expected backend message, got %q", msg)
	}
}

func TestLogin_EmptyFieldsRejectedLocally(t *testing.T) {
	s, b := newStore(t)

	_, err := s.Login(context.Background(), "", "x")
	authMessage(t, err)
	if len(b.Requests()) != 0 {
		t.Error("no request should reach the backend")
	}
}

func TestLogin_Unreachable(t *testing.T) {
	s := accountstore.New(apiclient.New("http://127.0.0.1:1", time.Second, zap.NewNop()))

	_, err := s.Login(context.Background(), "a@b.c", "secret123")
	if msg := authMessage(t, err); msg != "The server could not be reached. Please try again." {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestSignup_AccessToken(t *testing.T) {
	s, b := newStore(t)

	sess, err := s.Signup(context.Background(), accountstore.SignupInput{
		FullName: "New Admin", Username: "newadmin", Email: "new@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if sess.Token != b.Token() || sess.User.Email != "new@example.com" {
		t.Errorf("unexpected session %+v", sess)
	}
	if role := b.LastBody("POST /admin/create")["role"]; role != "admin" {
		t.Errorf("role sent: %v", role)
	}
}

func TestSignup_Validation(t *testing.T) {
	s, b := newStore(t)

	tests := []struct {
		name string
		in   accountstore.SignupInput
		want string
	}{
		{"missing field", accountstore.SignupInput{FullName: "A", Email: "a@b.c", Password: "secret1"}, "Please fill in every field."},
		{"short password", accountstore.SignupInput{FullName: "A", Username: "a", Email: "a@b.c", Password: "12345"}, "Password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), tt.in)
			if msg := authMessage(t, err); msg != tt.want {
				t.Errorf("got %q, want %q", msg, tt.want)
			}
		})
	}
	if len(b.Requests()) != 0 {
		t.Error("invalid signups must not reach the backend")
	}
}

func TestSignup_Conflict(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Signup(context.Background(), accountstore.SignupInput{
		FullName: "Dup", Username: "dup", Email: "admin@example.com", Password: "secret123",
	})
	msg := authMessage(t, err)
	if msg != "An account with this email already exists" {
		t.Errorf("unexpected message %q", msg)
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Errorf("expected wrapped 409, got %v", err)
	}
}

func TestSignup_WithoutEnvelopeData(t *testing.T) {
	s, b := newStore(t)
	b.OmitEcho("POST /admin/create")

	sess, err := s.Signup(context.Background(), accountstore.SignupInput{
		FullName: "New", Username: "new", Email: "n@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if sess.Token != "" {
		t.Errorf("expected no token, got %q", sess.Token)
	}
}
