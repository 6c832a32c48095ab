package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bobprince4u/admin/internal/app/console"
	accountstore "github.com/bobprince4u/admin/internal/app/store/accounts"
	contactstore "github.com/bobprince4u/admin/internal/app/store/contacts"
	projectstore "github.com/bobprince4u/admin/internal/app/store/projects"
	servicestore "github.com/bobprince4u/admin/internal/app/store/services"
	testimonialstore "github.com/bobprince4u/admin/internal/app/store/testimonials"
	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// API returns a client pointed at the fake backend.
func (b *Backend) API() *apiclient.Client {
	return apiclient.New(b.BaseURL(), 5*time.Second, zap.NewNop())
}

// Accounts returns the login/signup store for the fake backend.
func (b *Backend) Accounts() *accountstore.Store {
	return accountstore.New(b.API())
}

// Gateways wires the four resource stores to the fake backend.
func (b *Backend) Gateways() console.Gateways {
	api := b.API()
	return console.Gateways{
		Contacts:     contactstore.New(api),
		Projects:     projectstore.New(api),
		Services:     servicestore.New(api),
		Testimonials: testimonialstore.New(api),
	}
}

// LoadedController returns a Ready controller for the backend's admin.
func LoadedController(t *testing.T, b *Backend) *console.Controller {
	t.Helper()
	c := console.New(AdminSession(b.Token()), b.Gateways(), zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Load(ctx); err != nil {
		t.Fatalf("load controller: %v", err)
	}
	return c
}
