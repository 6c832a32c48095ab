// internal/app/features/errors/errorlogger.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"go.uber.org/zap"
)

// Notifier ends or annotates the browser session. auth.SessionManager satisfies it.
type Notifier interface {
	Invalidate(w http.ResponseWriter, r *http.Request)
	AddNotice(w http.ResponseWriter, r *http.Request, msg string)
}

// ErrorLogger logs a handler failure and answers the browser.
type ErrorLogger struct {
	log     *zap.Logger
	notices Notifier
}

// NewErrorLogger builds an ErrorLogger. notices may be nil, in which case
// mutation failures fall back to an error page.
func NewErrorLogger(logger *zap.Logger, notices Notifier) *ErrorLogger {
	return &ErrorLogger{log: logger, notices: notices}
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.respond(w, r, http.StatusBadRequest, userMsg, backURL)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg, userMsg, backURL string) {
	e.log.Info(msg, zap.String("path", r.URL.Path))
	e.respond(w, r, http.StatusNotFound, userMsg, backURL)
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.respond(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// MutationFailed reports a failed console operation. An authorization
// failure ends the session; anything else queues a blocking notice and
// sends the browser back to backURL with the console state untouched.
func (e *ErrorLogger) MutationFailed(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	if console.SessionExpired(err) {
		e.log.Info("session expired during mutation", zap.Error(err))
		if e.notices != nil {
			e.notices.Invalidate(w, r)
			return
		}
		auth.Redirect(w, r, "/login")
		return
	}

	notice := "The operation failed. Please try again."
	var me *console.MutationError
	if stderrors.As(err, &me) {
		notice = me.Notice()
	}
	e.log.Warn("console mutation failed", zap.Error(err), zap.String("path", r.URL.Path))

	if e.notices == nil {
		e.respond(w, r, http.StatusBadGateway, notice, backURL)
		return
	}
	e.notices.AddNotice(w, r, notice)
	auth.Redirect(w, r, backURL)
}

// respond answers HTMX requests with a plain-text body the client can swap
// into an error slot, and everything else with the error page.
func (e *ErrorLogger) respond(w http.ResponseWriter, r *http.Request, status int, userMsg, backURL string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(userMsg))
		return
	}
	RenderError(w, r, status, userMsg, backURL)
}
