// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	accountstore "github.com/bobprince4u/admin/internal/app/store/accounts"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/ratelimit"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Accounts exchanges credentials with the backend.
type Accounts interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Signup(ctx context.Context, in accountstore.SignupInput) (models.Session, error)
}

// SignupFlag records whether first-admin signup has already happened.
type SignupFlag interface {
	SignupCompleted(ctx context.Context, instance string) (bool, error)
	MarkSignupCompleted(ctx context.Context, instance, email string) error
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Accounts   Accounts
	Signups    SignupFlag
	Limiter    *ratelimit.LoginLimiter // nil disables throttling
	AuditLog   *auditlog.Logger
	Instance   string
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error           string
	Email           string
	ReturnURL       string
	SignupAvailable bool
}

type signupFormData struct {
	viewdata.BaseVM
	Error       string
	FullName    string
	Username    string
	Email       string
	MinPassword int
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	accounts Accounts,
	signups SignupFlag,
	limiter *ratelimit.LoginLimiter,
	audit *auditlog.Logger,
	instance string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Accounts:   accounts,
		Signups:    signups,
		Limiter:    limiter,
		AuditLog:   audit,
		Instance:   instance,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeLogin shows the login form. An admin who is already signed in goes
// straight to the dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")
	if _, ok := auth.CurrentSession(r); ok {
		auth.Redirect(w, r, auth.SafeReturn(ret))
		return
	}
	h.renderForm(w, r, http.StatusOK, "", "", ret)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, email); !ok {
			h.AuditLog.LoginRateLimited(r.Context(), r, email)
			h.renderForm(w, r, http.StatusTooManyRequests, msg, email, ret)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Accounts.Login(ctx, email, password)
	if err != nil {
		var authErr *accountstore.AuthError
		if !errors.As(err, &authErr) {
			h.ErrLog.LogServerError(w, r, "login exchange failed", err, "A server error occurred.", "/login")
			return
		}
		h.Log.Info("login rejected", zap.String("email", email), zap.Error(err))
		h.AuditLog.LoginFailed(r.Context(), r, email, authErr.Message)
		h.renderForm(w, r, http.StatusOK, authErr.Message, email, ret)
		return
	}

	h.startSession(w, r, sess, email, ret)
}

// startSession persists sess and sends the admin to ret.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, sess models.Session, email, ret string) {
	if sess.User.Email == "" {
		sess.User.Email = email
	}
	sess, err := h.SessionMgr.Begin(w, r, sess)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "A server error occurred.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	h.AuditLog.LoginSuccess(r.Context(), r, sess.User.ID, sess.User.Email)
	h.Log.Info("admin signed in",
		zap.String("session_id", sess.ID),
		zap.String("user_email", sess.User.Email))

	auth.Redirect(w, r, auth.SafeReturn(ret))
}

// signupAvailable hides signup once it has completed, and also when the
// flag cannot be read.
func (h *Handler) signupAvailable(ctx context.Context) bool {
	if h.Signups == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	done, err := h.Signups.SignupCompleted(ctx, h.Instance)
	if err != nil {
		h.Log.Warn("read signup flag failed", zap.Error(err))
		return false
	}
	return !done
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, msg, email, ret string) {
	data := loginFormData{
		BaseVM:          viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewLogin, "/"),
		Error:           msg,
		Email:           email,
		ReturnURL:       ret,
		SignupAvailable: h.signupAvailable(r.Context()),
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "login", data)
}
