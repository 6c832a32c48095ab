package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// carry copies cookies set on rec into a fresh request.
func carry(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func testSession(token string) models.Session {
	return models.Session{
		Token: token,
		User:  models.AdminUser{ID: "7", Email: "admin@example.com", FullName: "Ada Admin", Role: "admin"},
	}
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestBeginAndActive_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	began, err := sm.Begin(rec, httptest.NewRequest("POST", "/login", nil), testSession("opaque-token"))
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if began.ID == "" {
		t.Fatal("expected Begin to assign a session id")
	}

	got, ok := sm.Active(carry(rec, "GET", "/"))
	if !ok {
		t.Fatal("expected an active session")
	}
	if got.ID != began.ID || got.Token != "opaque-token" {
		t.Errorf("got %+v, want id %q and the stored token", got, began.ID)
	}
	if got.User.FullName != "Ada Admin" || got.User.Email != "admin@example.com" {
		t.Errorf("user not persisted: %+v", got.User)
	}
}

func TestActive_NoCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	if _, ok := sm.Active(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("expected no session without a cookie")
	}
}

func TestActive_JWTExpiry(t *testing.T) {
	sm := newTestSessionManager(t)

	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"future exp", time.Now().Add(time.Hour), true},
		{"past exp", time.Now().Add(-time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if _, err := sm.Begin(rec, httptest.NewRequest("POST", "/login", nil), testSession(signedToken(t, tt.exp))); err != nil {
				t.Fatalf("Begin failed: %v", err)
			}
			if _, ok := sm.Active(carry(rec, "GET", "/")); ok != tt.want {
				t.Errorf("Active = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestClear_RemovesSession(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if _, err := sm.Begin(rec, httptest.NewRequest("POST", "/login", nil), testSession("tok")); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	rec2 := httptest.NewRecorder()
	if err := sm.Clear(rec2, carry(rec, "POST", "/logout")); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := sm.Active(carry(rec2, "GET", "/")); ok {
		t.Error("expected no session after Clear")
	}
}

func TestInvalidate_RedirectsWithNotice(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if _, err := sm.Begin(rec, httptest.NewRequest("POST", "/login", nil), testSession("tok")); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	rec2 := httptest.NewRecorder()
	sm.Invalidate(rec2, carry(rec, "GET", "/contacts"))

	if rec2.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec2.Code)
	}
	if loc := rec2.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	next := carry(rec2, "GET", "/login")
	if _, ok := sm.Active(next); ok {
		t.Error("expected session cleared")
	}
	notices := sm.Notices(httptest.NewRecorder(), next)
	if len(notices) != 1 || notices[0] != auth.ExpiredNotice {
		t.Errorf("expected expiry notice, got %v", notices)
	}
}

func TestInvalidate_HTMX(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest("POST", "/projects", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	sm.Invalidate(rec, req)

	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("expected HX-Redirect to /login, got %q", got)
	}
}

func TestNotices_DrainedOnce(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	sm.AddNotice(rec, httptest.NewRequest("POST", "/projects", nil), "Failed to save project")

	rec2 := httptest.NewRecorder()
	req := carry(rec, "GET", "/projects")
	if got := sm.Notices(rec2, req); len(got) != 1 || got[0] != "Failed to save project" {
		t.Fatalf("unexpected notices %v", got)
	}
	if got := sm.Notices(httptest.NewRecorder(), carry(rec2, "GET", "/projects")); len(got) != 0 {
		t.Errorf("expected notices drained, got %v", got)
	}
}

func TestLoadSessionUser_ExpiredTokenQueuesNotice(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if _, err := sm.Begin(rec, httptest.NewRequest("POST", "/login", nil), testSession(signedToken(t, time.Now().Add(-time.Hour)))); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	var sawSession bool
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = auth.CurrentSession(r)
	}))
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, carry(rec, "GET", "/"))

	if sawSession {
		t.Error("expired token must not produce a session in context")
	}
	notices := sm.Notices(httptest.NewRecorder(), carry(rec2, "GET", "/login"))
	if len(notices) != 1 || notices[0] != auth.ExpiredNotice {
		t.Errorf("expected expiry notice, got %v", notices)
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/contacts?status=New", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?return=") {
		t.Errorf("expected redirect to /login with return, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/contacts/export.csv", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireSignedIn_WithSession_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.CurrentUser(r)
		w.Write([]byte(u.DisplayName()))
	}))

	req := auth.WithTestSession(httptest.NewRequest("GET", "/", nil), testSession("tok"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Ada Admin" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestSafeReturn(t *testing.T) {
	tests := map[string]string{
		"":                 "/",
		"/contacts":        "/contacts",
		"//evil.example":   "/",
		"https://evil":     "/",
		"/login?return=/x": "/",
		"/projects?edit=3": "/projects?edit=3",
		"/\\evil.example":  "/",
		"/%5Cevil.example": "/%5Cevil.example",
		"/x\\y":            "/",
	}
	for in, want := range tests {
		if got := auth.SafeReturn(in); got != want {
			t.Errorf("SafeReturn(%q) = %q, want %q", in, got, want)
		}
	}
}
