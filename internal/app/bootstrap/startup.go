// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/resources"
	accountstore "github.com/bobprince4u/admin/internal/app/store/accounts"
	"github.com/bobprince4u/admin/internal/app/store/audit"
	contactstore "github.com/bobprince4u/admin/internal/app/store/contacts"
	projectstore "github.com/bobprince4u/admin/internal/app/store/projects"
	servicestore "github.com/bobprince4u/admin/internal/app/store/services"
	settingsstore "github.com/bobprince4u/admin/internal/app/store/settings"
	testimonialstore "github.com/bobprince4u/admin/internal/app/store/testimonials"
	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/app/system/auditlog"
	"github.com/bobprince4u/admin/internal/app/system/ratelimit"
	"github.com/bobprince4u/admin/internal/app/system/timeouts"
	"github.com/bobprince4u/admin/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appState is what Startup builds and BuildHandler and Shutdown use.
type appState struct {
	api      *apiclient.Client
	accounts *accountstore.Store
	settings *settingsstore.Store
	registry *console.Registry
	limiter  *ratelimit.LoginLimiter
	audit    *auditlog.Logger
	sweep    *workers.IdleSweep
}

var (
	stateMu sync.Mutex
	state   *appState
)

func currentState() *appState {
	stateMu.Lock()
	defer stateMu.Unlock()
	return state
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: it loads
// shared templates, applies timeout overrides, builds the backend client
// and console registry, and starts the idle sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	s := newAppState(appCfg, deps, logger)
	s.sweep.Start()

	stateMu.Lock()
	state = s
	stateMu.Unlock()

	logger.Info("admin console ready",
		zap.String("api_base_url", appCfg.APIBaseURL),
		zap.String("instance", appCfg.InstanceName),
		zap.Duration("console_idle_timeout", appCfg.ConsoleIdleTimeout))
	return nil
}

func newAppState(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *appState {
	api := apiclient.New(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	gw := console.Gateways{
		Contacts:     contactstore.New(api),
		Projects:     projectstore.New(api),
		Services:     servicestore.New(api),
		Testimonials: testimonialstore.New(api),
	}

	var auditStore *audit.Store
	var settings *settingsstore.Store
	if deps.ConsoleMongoDatabase != nil {
		auditStore = audit.New(deps.ConsoleMongoDatabase)
		settings = settingsstore.New(deps.ConsoleMongoDatabase)
	}

	s := &appState{
		api:      api,
		accounts: accountstore.New(api),
		settings: settings,
		registry: console.NewRegistry(gw, appCfg.ConsoleIdleTimeout, logger),
		audit: auditlog.New(auditStore, logger, auditlog.Config{
			Auth:  appCfg.AuditLogAuth,
			Admin: appCfg.AuditLogAdmin,
		}, appCfg.InstanceName),
	}
	if appCfg.LoginRateLimit > 0 {
		s.limiter = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	}

	sweepers := map[string]workers.Sweeper{"console": s.registry}
	if s.limiter != nil {
		sweepers["login_limiter"] = s.limiter
	}
	interval := appCfg.ConsoleSweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	s.sweep = workers.NewIdleSweep(logger, interval, sweepers)
	return s
}
