package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	sessionIDKey    = "console_session_id"
	tokenKey        = "token"
	userIDKey       = "user_id"
	userEmailKey    = "user_email"
	userNameKey     = "user_name"
	userUsernameKey = "user_username"
	userRoleKey     = "user_role"
	noticeKey       = "notice"
)

var sessionValueKeys = []string{sessionIDKey, tokenKey, userIDKey, userEmailKey, userNameKey, userUsernameKey, userRoleKey}

// ExpiredNotice is shown after a session is invalidated by the backend or by
// an expired token.
const ExpiredNotice = "Your session has expired. Please log in again."

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager persists the admin session (bearer token and user record)
// in a signed and encrypted cookie. Exactly one session exists per browser.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
	now   func() time.Time
}

// NewSessionManager builds the cookie store. The session key signs cookies;
// an AES-256 key for encrypting them is derived from it since the cookie
// carries the bearer token.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "admin-session"
	}

	blockKey := sha256.Sum256([]byte(sessionKey))
	store := sessions.NewCookieStore([]byte(sessionKey), blockKey[:])
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger, now: time.Now}, nil
}

// GenerateKey returns a random session key for development use when none is
// configured. Sessions signed with it do not survive a restart.
func GenerateKey() string {
	return fmt.Sprintf("%x", securecookie.GenerateRandomKey(32))
}

// get returns the cookie session. A cookie that no longer decodes (rotated
// key, tampering) is replaced by a fresh session instead of failing the
// request.
func (sm *SessionManager) get(r *http.Request) *sessions.Session {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.log.Debug("discarding undecodable session cookie", zap.Error(err))
		} else {
			sm.log.Warn("session cookie read failed", zap.Error(err))
		}
	}
	return sess
}

// Begin persists a new session, assigning its console id. Any previous
// session in the cookie is replaced.
func (sm *SessionManager) Begin(w http.ResponseWriter, r *http.Request, s models.Session) (models.Session, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	sess := sm.get(r)
	sess.Values[sessionIDKey] = s.ID
	sess.Values[tokenKey] = s.Token
	sess.Values[userIDKey] = s.User.ID
	sess.Values[userEmailKey] = s.User.Email
	sess.Values[userNameKey] = s.User.FullName
	sess.Values[userUsernameKey] = s.User.Username
	sess.Values[userRoleKey] = s.User.Role
	if err := sess.Save(r, w); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Active reads the persisted session without any network call. A missing
// token or a JWT whose exp has passed yields false. Opaque tokens are
// accepted as-is.
func (sm *SessionManager) Active(r *http.Request) (models.Session, bool) {
	s, hasToken := sm.read(r)
	if !hasToken || sm.tokenExpired(s.Token) {
		return models.Session{}, false
	}
	return s, true
}

func (sm *SessionManager) read(r *http.Request) (models.Session, bool) {
	sess := sm.get(r)
	token := getString(sess, tokenKey)
	if token == "" {
		return models.Session{}, false
	}
	return models.Session{
		ID:    getString(sess, sessionIDKey),
		Token: token,
		User: models.AdminUser{
			ID:       getString(sess, userIDKey),
			Email:    getString(sess, userEmailKey),
			FullName: getString(sess, userNameKey),
			Username: getString(sess, userUsernameKey),
			Role:     getString(sess, userRoleKey),
		},
	}, true
}

func (sm *SessionManager) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !sm.now().Before(exp.Time)
}

// Clear removes the token and user record unconditionally. Pending notices
// survive so they can be shown on the login page.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := sm.get(r)
	for _, k := range sessionValueKeys {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// Invalidate clears the session after an authorization failure, queues the
// expiry notice and sends the browser to the login page.
func (sm *SessionManager) Invalidate(w http.ResponseWriter, r *http.Request) {
	sm.InvalidateWithNotice(w, r, ExpiredNotice)
}

// InvalidateWithNotice is Invalidate with a caller-chosen notice.
func (sm *SessionManager) InvalidateWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	sess := sm.get(r)
	for _, k := range sessionValueKeys {
		delete(sess.Values, k)
	}
	sess.AddFlash(notice, noticeKey)
	if err := sess.Save(r, w); err != nil {
		sm.log.Error("failed to save invalidated session", zap.Error(err))
	}
	Redirect(w, r, "/login")
}

// AddNotice queues a blocking notice for the next rendered page.
func (sm *SessionManager) AddNotice(w http.ResponseWriter, r *http.Request, msg string) {
	sess := sm.get(r)
	sess.AddFlash(msg, noticeKey)
	if err := sess.Save(r, w); err != nil {
		sm.log.Error("failed to save notice", zap.Error(err))
	}
}

// Notices drains the queued notices.
func (sm *SessionManager) Notices(w http.ResponseWriter, r *http.Request) []string {
	sess := sm.get(r)
	flashes := sess.Flashes(noticeKey)
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Error("failed to save session after reading notices", zap.Error(err))
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-session helpers                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentSessionKey ctxKey = "currentSession"

// CurrentSession returns the session injected by LoadSessionUser.
func CurrentSession(r *http.Request) (models.Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(models.Session)
	return s, ok
}

// CurrentUser returns the signed-in admin.
func CurrentUser(r *http.Request) (models.AdminUser, bool) {
	s, ok := CurrentSession(r)
	return s.User, ok
}

// WithTestSession injects s into the request context, bypassing the cookie.
func WithTestSession(r *http.Request, s models.Session) *http.Request {
	return withSession(r, s)
}

// LoadSessionUser injects the active session into context. A token that has
// expired on its own is cleared and the expiry notice queued.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, hasToken := sm.read(r)
		switch {
		case !hasToken:
		case sm.tokenExpired(s.Token):
			sm.log.Info("bearer token expired", zap.String("user_email", s.User.Email))
			sess := sm.get(r)
			delete(sess.Values, tokenKey)
			sess.AddFlash(ExpiredNotice, noticeKey)
			if err := sess.Save(r, w); err != nil {
				sm.log.Error("failed to clear expired session", zap.Error(err))
			}
		default:
			r = withSession(r, s)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a session in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// Redirect sends the browser to dest: HX-Redirect for HTMX requests, 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// SafeReturn accepts only local paths as a post-login destination.
// Browsers treat a backslash as a slash, so "/\host" is off-site too.
func SafeReturn(ret string) string {
	if ret == "" || strings.ContainsRune(ret, '\\') {
		return "/"
	}
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/login") {
		return "/"
	}
	u, err := url.Parse(ret)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return ret
}

// helpers

func withSession(r *http.Request, s models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
