// Package console holds the per-session view controller: the four resource
// collections an admin works on, the dashboard stats derived from them, and
// the operations that keep both consistent with the backend.
package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/app/system/dashstats"
	"github.com/bobprince4u/admin/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is where a controller is in its session lifetime.
type State int

const (
	Unauthenticated State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unauthenticated"
	}
}

// Gateway interfaces. The stores under internal/app/store satisfy them.

type ContactGateway interface {
	List(ctx context.Context, token string) ([]models.Contact, error)
	UpdateStatus(ctx context.Context, token, id string, status models.ContactStatus) (models.Contact, bool, error)
}

type ProjectGateway interface {
	List(ctx context.Context, token string) ([]models.Project, error)
	Create(ctx context.Context, token string, p models.Project) (models.Project, error)
	Update(ctx context.Context, token, id string, p models.Project) (models.Project, error)
	Delete(ctx context.Context, token, id string) error
}

type ServiceGateway interface {
	List(ctx context.Context, token string) ([]models.Service, error)
	Create(ctx context.Context, token string, s models.Service) (models.Service, error)
	Update(ctx context.Context, token string, id models.ServiceID, s models.Service) (models.Service, error)
	Delete(ctx context.Context, token string, id models.ServiceID) error
}

type TestimonialGateway interface {
	List(ctx context.Context, token string) ([]models.Testimonial, error)
	Create(ctx context.Context, token string, t models.Testimonial) (models.Testimonial, error)
	Update(ctx context.Context, token, id string, t models.Testimonial) (models.Testimonial, error)
	Delete(ctx context.Context, token, id string) error
}

// Gateways bundles the four resource gateways.
type Gateways struct {
	Contacts     ContactGateway
	Projects     ProjectGateway
	Services     ServiceGateway
	Testimonials TestimonialGateway
}

// Controller owns one session's collections and stats. All methods are safe
// for concurrent use; mutations call the backend without holding the lock
// and apply the confirmed result atomically.
type Controller struct {
	mu     sync.RWMutex
	loadMu sync.Mutex

	session models.Session
	gw      Gateways
	log     *zap.Logger
	now     func() time.Time

	state        State
	contacts     []models.Contact
	projects     []models.Project
	services     []models.Service
	testimonials []models.Testimonial
	stats        models.DashboardStats
	selectedID   string
	lastUsed     time.Time

	onInvalidate func(sessionID string)
}

// New creates a controller for an authenticated session. It starts in
// Loading; call Load before any mutation. A session without a token yields
// an Unauthenticated controller.
func New(s models.Session, gw Gateways, logger *zap.Logger) *Controller {
	c := &Controller{
		session: s,
		gw:      gw,
		log:     logger,
		now:     time.Now,
		state:   Loading,
	}
	if s.Token == "" {
		c.state = Unauthenticated
	}
	c.lastUsed = c.now()
	return c
}

// OnInvalidate registers a hook fired once when an authorization failure
// ends the session.
func (c *Controller) OnInvalidate(fn func(sessionID string)) {
	c.mu.Lock()
	c.onInvalidate = fn
	c.mu.Unlock()
}

// Load fetches all four collections concurrently. Any failure aborts the
// remaining fetches and ends the session; there is no partial Ready state.
// Calling Load on a Ready controller is a no-op.
func (c *Controller) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.RLock()
	state, token := c.state, c.session.Token
	c.mu.RUnlock()
	switch state {
	case Ready:
		return nil
	case Unauthenticated:
		return ErrUnauthenticated
	}

	var (
		contacts     []models.Contact
		projects     []models.Project
		services     []models.Service
		testimonials []models.Testimonial
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		contacts, err = c.gw.Contacts.List(gctx, token)
		return wrapFetch("contacts", err)
	})
	g.Go(func() (err error) {
		projects, err = c.gw.Projects.List(gctx, token)
		return wrapFetch("projects", err)
	})
	g.Go(func() (err error) {
		services, err = c.gw.Services.List(gctx, token)
		return wrapFetch("services", err)
	})
	g.Go(func() (err error) {
		testimonials, err = c.gw.Testimonials.List(gctx, token)
		return wrapFetch("testimonials", err)
	})
	if err := g.Wait(); err != nil {
		c.log.Warn("initial load failed", zap.String("session_id", c.session.ID), zap.Error(err))
		c.invalidate()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Loading {
		return ErrUnauthenticated
	}
	c.contacts = contacts
	c.projects = projects
	c.services = services
	c.testimonials = testimonials
	c.recompute()
	c.state = Ready
	return nil
}

func wrapFetch(resource string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Resource: resource, Err: err}
}

// Logout ends the session without contacting the backend.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
}

func (c *Controller) invalidate() {
	c.mu.Lock()
	wasActive := c.state != Unauthenticated
	c.reset()
	hook := c.onInvalidate
	c.mu.Unlock()
	if wasActive && hook != nil {
		hook(c.session.ID)
	}
}

// reset must be called with mu held.
func (c *Controller) reset() {
	c.state = Unauthenticated
	c.contacts, c.projects, c.services, c.testimonials = nil, nil, nil, nil
	c.stats = models.DashboardStats{}
	c.selectedID = ""
}

// recompute must be called with mu held.
func (c *Controller) recompute() {
	c.stats = dashstats.Compute(c.contacts, c.projects)
}

// begin snapshots the token for one mutation, failing if not Ready.
func (c *Controller) begin(op, resource string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = c.now()
	switch c.state {
	case Ready:
		return c.session.Token, nil
	case Unauthenticated:
		return "", &MutationError{Op: op, Resource: resource, Err: ErrUnauthenticated}
	default:
		return "", &MutationError{Op: op, Resource: resource, Err: ErrNotReady}
	}
}

// fail wraps a gateway error and ends the session on an authorization failure.
func (c *Controller) fail(op, resource string, err error) error {
	if errors.Is(err, apiclient.ErrSessionExpired) {
		c.invalidate()
	} else {
		c.log.Warn("mutation failed",
			zap.String("op", op),
			zap.String("resource", resource),
			zap.Error(err))
	}
	return &MutationError{Op: op, Resource: resource, Err: err}
}

// commit applies fn under the lock unless the session ended while the
// request was in flight.
func (c *Controller) commit(op, resource string, fn func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Ready {
		return &MutationError{Op: op, Resource: resource, Err: ErrUnauthenticated}
	}
	fn()
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Read accessors                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Session returns the session this controller serves.
func (c *Controller) Session() models.Session {
	return c.session
}

func (c *Controller) Stats() models.DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *Controller) Contacts() []models.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Contact(nil), c.contacts...)
}

func (c *Controller) Projects() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Project(nil), c.projects...)
}

func (c *Controller) Services() []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Service(nil), c.services...)
}

func (c *Controller) Testimonials() []models.Testimonial {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Testimonial(nil), c.testimonials...)
}

func (c *Controller) Project(id string) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findByKey(c.projects, id, models.Project.Key)
}

func (c *Controller) Service(id models.ServiceID) (models.Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findByKey(c.services, id, models.Service.Key)
}

func (c *Controller) Testimonial(id string) (models.Testimonial, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findByKey(c.testimonials, id, models.Testimonial.Key)
}

// SelectContact makes id the displayed single-contact record.
func (c *Controller) SelectContact(id string) (models.Contact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ct, ok := findByKey(c.contacts, id, models.Contact.Key)
	if ok {
		c.selectedID = id
	}
	return ct, ok
}

// ClearSelection closes the displayed contact.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selectedID = ""
	c.mu.Unlock()
}

// Selected returns the displayed contact, read from the collection so both
// views always agree.
func (c *Controller) Selected() (models.Contact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selectedID == "" {
		return models.Contact{}, false
	}
	return findByKey(c.contacts, c.selectedID, models.Contact.Key)
}

// RecentContacts returns up to n contacts from the head of the collection.
func (c *Controller) RecentContacts(n int) []models.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n > len(c.contacts) {
		n = len(c.contacts)
	}
	return append([]models.Contact(nil), c.contacts[:n]...)
}

// Touch records activity for idle eviction.
func (c *Controller) Touch() {
	c.mu.Lock()
	c.lastUsed = c.now()
	c.mu.Unlock()
}

// IdleSince returns the time of the last recorded activity.
func (c *Controller) IdleSince() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUsed
}
