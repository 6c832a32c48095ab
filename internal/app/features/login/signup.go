// internal/app/features/login/signup.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	accountstore "github.com/bobprince4u/admin/internal/app/store/accounts"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// AccountCreatedNotice is shown when the backend creates the admin without
// signing it in.
const AccountCreatedNotice = "Account created. Please log in."

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login/signup                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeSignup shows the one-time admin signup form, or sends the browser
// back to login once signup has happened on this instance.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentSession(r); ok {
		auth.Redirect(w, r, "/")
		return
	}
	if !h.signupAvailable(r.Context()) {
		auth.Redirect(w, r, "/login")
		return
	}
	h.renderSignup(w, r, http.StatusOK, signupFormData{})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login/signup                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if !h.signupAvailable(r.Context()) {
		auth.Redirect(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/signup")
		return
	}

	in := accountstore.SignupInput{
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	form := signupFormData{FullName: in.FullName, Username: in.Username, Email: in.Email}

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, in.Email); !ok {
			h.AuditLog.LoginRateLimited(r.Context(), r, in.Email)
			form.Error = msg
			h.renderSignup(w, r, http.StatusTooManyRequests, form)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Accounts.Signup(ctx, in)
	if err != nil {
		var authErr *accountstore.AuthError
		if !errors.As(err, &authErr) {
			h.ErrLog.LogServerError(w, r, "signup exchange failed", err, "A server error occurred.", "/login/signup")
			return
		}
		h.AuditLog.SignupFailed(r.Context(), r, in.Email, authErr.Message)
		form.Error = authErr.Message
		h.renderSignup(w, r, http.StatusOK, form)
		return
	}

	if err := h.Signups.MarkSignupCompleted(ctx, h.Instance, in.Email); err != nil {
		h.Log.Error("record signup completion failed", zap.String("instance", h.Instance), zap.Error(err))
	}
	h.AuditLog.SignupSuccess(r.Context(), r, sess.User.ID, in.Email)

	if sess.Token == "" {
		h.SessionMgr.AddNotice(w, r, AccountCreatedNotice)
		auth.Redirect(w, r, "/login")
		return
	}
	h.startSession(w, r, sess, in.Email, "/")
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, status int, data signupFormData) {
	data.BaseVM = viewdata.NewBaseVM(w, r, h.SessionMgr, "Create admin account", "/login")
	data.MinPassword = accountstore.MinPasswordLength
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "signup", data)
}
