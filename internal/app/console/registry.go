package console

import (
	"sync"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
	"go.uber.org/zap"
)

// Registry keeps one controller per console session id.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	gw          Gateways
	idle        time.Duration
	log         *zap.Logger
}

// NewRegistry creates a registry whose controllers use gw. Controllers idle
// longer than idle are dropped by Sweep.
func NewRegistry(gw Gateways, idle time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		gw:          gw,
		idle:        idle,
		log:         logger,
	}
}

// For returns the controller for s, creating it on first use. A controller
// built for another token (the admin logged in again) is replaced, as is one
// whose session has ended.
func (reg *Registry) For(s models.Session) *Controller {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if c, ok := reg.controllers[s.ID]; ok {
		if c.session.Token == s.Token && c.State() != Unauthenticated {
			return c
		}
	}
	c := New(s, reg.gw, reg.log)
	c.OnInvalidate(reg.Remove)
	reg.controllers[s.ID] = c
	return c
}

// Remove drops the controller for a session id.
func (reg *Registry) Remove(sessionID string) {
	reg.mu.Lock()
	delete(reg.controllers, sessionID)
	reg.mu.Unlock()
}

// End logs the session's controller out and drops it. It reports whether
// a controller existed.
func (reg *Registry) End(sessionID string) bool {
	reg.mu.Lock()
	c, ok := reg.controllers[sessionID]
	delete(reg.controllers, sessionID)
	reg.mu.Unlock()
	if ok {
		c.Logout()
	}
	return ok
}

// Len returns the number of live controllers.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.controllers)
}

// Sweep drops controllers idle since before now minus the idle timeout.
func (reg *Registry) Sweep(now time.Time) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	n := 0
	for id, c := range reg.controllers {
		if now.Sub(c.IdleSince()) > reg.idle {
			delete(reg.controllers, id)
			n++
		}
	}
	return n
}
