// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Registry   *console.Registry
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, reg *console.Registry, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Registry:   reg,
		AuditLog:   audit,
	}
}

// ServeLogout handles GET and POST /logout. The backend has no logout
// endpoint; the session ends locally.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := auth.CurrentSession(r); ok {
		if h.Registry != nil {
			h.Registry.End(s.ID)
		}
		h.AuditLog.Logout(r.Context(), r, s.User.ID, s.User.Email)
		h.Log.Info("admin signed out",
			zap.String("session_id", s.ID),
			zap.String("user_email", s.User.Email))
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	auth.Redirect(w, r, "/login")
}
