// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/bobprince4u/admin/internal/app/store/audit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login, signup, logout and session expiry.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for resource mutations made from the console.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store    *audit.Store
	zapLog   *zap.Logger
	config   Config
	instance string
}

// New creates a new audit Logger. A nil store disables the database sink.
func New(store *audit.Store, zapLog *zap.Logger, config Config, instance string) *Logger {
	return &Logger{
		store:    store,
		zapLog:   zapLog,
		config:   config,
		instance: instance,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("instance", event.Instance),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorEmail != "" {
		fields = append(fields, zap.String("actor_email", event.ActorEmail))
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource), zap.String("resource_id", event.ResourceID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Instance == "" {
		event.Instance = l.instance
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, email string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLoginSuccess,
		ActorID:    userID,
		ActorEmail: email,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// LoginFailed logs a login the backend rejected.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		FailureReason: reason,
	})
}

// LoginRateLimited logs a login attempt refused by the throttle.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginRateLimited,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		FailureReason: "rate limited",
	})
}

// SignupSuccess logs the first admin signup on this instance.
func (l *Logger) SignupSuccess(ctx context.Context, r *http.Request, userID, email string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventSignupSuccess,
		ActorID:    userID,
		ActorEmail: email,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// SignupFailed logs a rejected signup.
func (l *Logger) SignupFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSignupFailed,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		FailureReason: reason,
	})
}

// Logout logs an explicit logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID, email string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLogout,
		ActorID:    userID,
		ActorEmail: email,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// SessionExpired logs a session invalidated by an authorization failure.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSessionExpired,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		FailureReason: reason,
	})
}

// --- Admin Events ---

// ResourceChanged logs a confirmed mutation of a backend resource.
func (l *Logger) ResourceChanged(ctx context.Context, r *http.Request, actorEmail, eventType, resource, resourceID string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  eventType,
		ActorEmail: actorEmail,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Resource:   resource,
		ResourceID: resourceID,
		Success:    true,
		Details:    details,
	})
}
