package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Invalidator ends the browser session and redirects to login.
type Invalidator interface {
	InvalidateWithNotice(w http.ResponseWriter, r *http.Request, notice string)
}

type ctxKey struct{}

// FromContext returns the controller injected by RequireReady.
func FromContext(ctx context.Context) (*Controller, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Controller)
	return c, ok
}

// FromRequest returns the request's controller. Without one the browser is
// sent to the login page and ok is false.
func FromRequest(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	c, ok := FromContext(r.Context())
	if !ok {
		auth.Redirect(w, r, "/login")
	}
	return c, ok
}

// WithController injects c into ctx.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// RequireReady must run after auth.SessionManager.RequireSignedIn. It finds
// the session's controller, loads it if needed and puts it in the request
// context. A failed load ends the session.
func (reg *Registry) RequireReady(inv Invalidator, audit *auditlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := auth.CurrentSession(r)
			if !ok {
				inv.InvalidateWithNotice(w, r, auth.ExpiredNotice)
				return
			}

			c := reg.For(s)
			c.Touch()
			if c.State() != Ready {
				ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), reg.log, "load collections")
				err := c.Load(ctx)
				cancel()
				if err != nil {
					notice := auth.ExpiredNotice
					var fe *FetchError
					if errors.As(err, &fe) {
						notice = fe.Notice()
					}
					reg.log.Warn("ending session after failed load",
						zap.String("user_email", s.User.Email),
						zap.Error(err))
					audit.SessionExpired(r.Context(), r, s.User.Email, err.Error())
					reg.Remove(s.ID)
					inv.InvalidateWithNotice(w, r, notice)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithController(r.Context(), c)))
		})
	}
}
