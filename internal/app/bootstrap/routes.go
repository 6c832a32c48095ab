// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	contactsfeature "github.com/bobprince4u/admin/internal/app/features/contacts"
	dashboardfeature "github.com/bobprince4u/admin/internal/app/features/dashboard"
	errorsfeature "github.com/bobprince4u/admin/internal/app/features/errors"
	healthfeature "github.com/bobprince4u/admin/internal/app/features/health"
	loginfeature "github.com/bobprince4u/admin/internal/app/features/login"
	logoutfeature "github.com/bobprince4u/admin/internal/app/features/logout"
	projectsfeature "github.com/bobprince4u/admin/internal/app/features/projects"
	servicesfeature "github.com/bobprince4u/admin/internal/app/features/services"
	testimonialsfeature "github.com/bobprince4u/admin/internal/app/features/testimonials"
	"github.com/bobprince4u/admin/internal/app/resources"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for the console.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It boots the template engine, creates the
// session manager, applies session and CSRF middleware, and mounts the
// feature routers: login/logout, the dashboard, and the four resource
// views (contacts, projects, services, testimonials).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	s := currentState()
	if s == nil {
		// Startup did not run (e.g. a custom lifecycle); build state here
		// without the background sweep.
		s = newAppState(appCfg, deps, logger)
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger, sessionMgr)
	ready := s.registry.RequireReady(sessionMgr, s.audit)

	r := chi.NewRouter()

	// Set before mounting so sub-routers inherit them.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check and static assets sit outside session and CSRF handling.
	healthHandler := healthfeature.NewHandler(deps.ConsoleMongoClient, appCfg.APIBaseURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/static/*", resources.StaticHandler())

	r.Group(func(app chi.Router) {
		if !secure {
			app.Use(plaintextHTTP)
		}
		app.Use(csrf.Protect(csrfKey(appCfg.SessionKey),
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.Warn("csrf check failed", zap.Error(csrf.FailureReason(r)), zap.String("path", r.URL.Path))
				errorsfeature.RenderError(w, r, http.StatusForbidden, "Your form expired. Please reload the page and try again.", "/")
			})),
		))

		// Global auth middleware: loads the persisted session into context.
		app.Use(sessionMgr.LoadSessionUser)

		loginHandler := loginfeature.NewHandler(sessionMgr, errLog, s.accounts, s.signupFlag(), s.limiter, s.audit, appCfg.InstanceName, logger)
		app.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, s.registry, s.audit, logger)
		app.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		contactsHandler := contactsfeature.NewHandler(sessionMgr, errLog, s.audit, logger)
		app.Mount("/contacts", contactsfeature.Routes(contactsHandler, sessionMgr, ready))

		projectsHandler := projectsfeature.NewHandler(sessionMgr, errLog, s.audit, logger)
		app.Mount("/projects", projectsfeature.Routes(projectsHandler, sessionMgr, ready))

		servicesHandler := servicesfeature.NewHandler(sessionMgr, errLog, s.audit, logger)
		app.Mount("/services", servicesfeature.Routes(servicesHandler, sessionMgr, ready))

		testimonialsHandler := testimonialsfeature.NewHandler(sessionMgr, errLog, s.audit, logger)
		app.Mount("/testimonials", testimonialsfeature.Routes(testimonialsHandler, sessionMgr, ready))

		dashboardHandler := dashboardfeature.NewHandler(sessionMgr, logger)
		app.Mount("/", dashboardfeature.Routes(dashboardHandler, sessionMgr, ready))
	})

	return r, nil
}

// signupFlag returns the settings store as a login.SignupFlag, or nil
// when there is no database, which hides signup.
func (s *appState) signupFlag() loginfeature.SignupFlag {
	if s.settings == nil {
		return nil
	}
	return s.settings
}

// csrfKey derives the 32-byte CSRF authentication key from the session key.
func csrfKey(sessionKey string) []byte {
	sum := sha256.Sum256([]byte("csrf:" + sessionKey))
	return sum[:]
}

// plaintextHTTP marks requests as plain HTTP so the CSRF origin checks
// accept them outside production.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
