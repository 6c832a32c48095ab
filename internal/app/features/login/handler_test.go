package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/app/features/login"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/testutil"
	"go.uber.org/zap"
)

type memSignups struct {
	mu    sync.Mutex
	done  bool
	email string
}

func (m *memSignups) SignupCompleted(ctx context.Context, instance string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done, nil
}

func (m *memSignups) MarkSignupCompleted(ctx context.Context, instance, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done, m.email = true, email
	return nil
}

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Backend, *memSignups) {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	b := testutil.NewBackend(t)
	signups := &memSignups{}
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "log", Admin: "log"}, "test")
	h := login.NewHandler(sm, uierrors.NewErrorLogger(logger, sm), b.Accounts(), signups, nil, audit, "test", logger)
	return h, b, signups
}

// serve runs fn, tolerating a panic from template rendering, which is not
// booted in unit tests.
func serve(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			return c
		}
	}
	return nil
}

func TestServeLogin_ActiveSessionRedirects(t *testing.T) {
	h, _, _ := newTestHandler(t)

	tests := map[string]string{
		"/login":                    "/",
		"/login?return=/contacts":   "/contacts",
		"/login?return=//evil.io":   "/",
		"/login?return=/%5Cevil.io": "/",
	}
	for target, want := range tests {
		req := testutil.WithSession(httptest.NewRequest("GET", target, nil), testutil.AdminSession("tok"))
		rec := httptest.NewRecorder()
		h.ServeLogin(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: status %d, want 303", target, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != want {
			t.Errorf("%s: Location %q, want %q", target, loc, want)
		}
	}
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, b, _ := newTestHandler(t)

	req := postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret123"},
		"return":   {"/projects"},
	})
	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/projects" {
		t.Errorf("Location %q, want /projects", loc)
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	// The persisted session carries the backend token and user.
	next := httptest.NewRequest("GET", "/", nil)
	next.AddCookie(cookie)
	s, ok := h.SessionMgr.Active(next)
	if !ok {
		t.Fatal("expected an active session after login")
	}
	if s.Token != b.Token() || s.User.Email != "admin@example.com" || s.ID == "" {
		t.Errorf("session = %+v", s)
	}
}

func TestHandleLoginPost_HTMXRedirect(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := postForm("/login", url.Values{"email": {"admin@example.com"}, "password": {"secret123"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, req)

	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect = %q, want /", got)
	}
}

func TestHandleLoginPost_BadCredentialsKeepsSessionEmpty(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := postForm("/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}})
	rec := httptest.NewRecorder()
	serve(func() { h.HandleLoginPost(rec, req) })

	if rec.Code == http.StatusSeeOther {
		t.Fatal("bad credentials must not redirect")
	}
	if c := sessionCookie(rec); c != nil {
		next := httptest.NewRequest("GET", "/", nil)
		next.AddCookie(c)
		if _, ok := h.SessionMgr.Active(next); ok {
			t.Error("bad credentials must not create a session")
		}
	}
}

func TestServeSignup_HiddenAfterCompletion(t *testing.T) {
	h, _, signups := newTestHandler(t)
	signups.done = true

	rec := httptest.NewRecorder()
	h.ServeSignup(rec, httptest.NewRequest("GET", "/login/signup", nil))

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location %q, want /login", loc)
	}
}

func TestHandleSignupPost_RefusedAfterCompletion(t *testing.T) {
	h, b, signups := newTestHandler(t)
	signups.done = true

	req := postForm("/login/signup", url.Values{
		"full_name": {"New Admin"}, "username": {"new"}, "email": {"new@example.com"}, "password": {"longenough"},
	})
	rec := httptest.NewRecorder()
	h.HandleSignupPost(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location %q, want /login", loc)
	}
	for _, r := range b.Requests() {
		if strings.Contains(r, "/admin/create") {
			t.Fatalf("signup must not reach the backend once completed: %v", b.Requests())
		}
	}
}

func TestHandleSignupPost_SignsInAndMarksCompleted(t *testing.T) {
	h, b, signups := newTestHandler(t)

	req := postForm("/login/signup", url.Values{
		"full_name": {"New Admin"}, "username": {"new"}, "email": {"new@example.com"}, "password": {"longenough"},
	})
	rec := httptest.NewRecorder()
	h.HandleSignupPost(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("got %d %q, want 303 /", rec.Code, rec.Header().Get("Location"))
	}
	if !signups.done || signups.email != "new@example.com" {
		t.Errorf("signup flag = %v %q", signups.done, signups.email)
	}
	if body := b.LastBody("POST /admin/create"); body["role"] != "admin" {
		t.Errorf("signup body role = %v", body["role"])
	}
}

func TestHandleSignupPost_WithoutTokenGoesToLogin(t *testing.T) {
	h, b, signups := newTestHandler(t)
	b.OmitEcho("POST /admin/create")

	req := postForm("/login/signup", url.Values{
		"full_name": {"New Admin"}, "username": {"new"}, "email": {"new@example.com"}, "password": {"longenough"},
	})
	rec := httptest.NewRecorder()
	h.HandleSignupPost(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location %q, want /login", loc)
	}
	if !signups.done {
		t.Error("signup flag must be set even without a token")
	}

	next := httptest.NewRequest("GET", "/login", nil)
	next.AddCookie(sessionCookie(rec))
	notices := h.SessionMgr.Notices(httptest.NewRecorder(), next)
	if len(notices) != 1 || notices[0] != login.AccountCreatedNotice {
		t.Errorf("notices = %v", notices)
	}
}

func TestHandleSignupPost_ShortPasswordNeverSent(t *testing.T) {
	h, b, signups := newTestHandler(t)

	req := postForm("/login/signup", url.Values{
		"full_name": {"New Admin"}, "username": {"new"}, "email": {"new@example.com"}, "password": {"12345"},
	})
	rec := httptest.NewRecorder()
	serve(func() { h.HandleSignupPost(rec, req) })

	if signups.done {
		t.Error("a rejected signup must not set the flag")
	}
	for _, r := range b.Requests() {
		if strings.Contains(r, "/admin/create") {
			t.Fatalf("short password reached the backend: %v", b.Requests())
		}
	}
}
