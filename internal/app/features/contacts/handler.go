// internal/app/features/contacts/handler.go
package contacts

import (
	uierrors "github.com/bobprince4u/admin/internal/app/features/errors"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
	}
}
