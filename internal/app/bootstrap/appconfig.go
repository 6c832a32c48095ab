// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like ports, TLS, logging and CORS; everything
// specific to the admin console lives here.
type AppConfig struct {
	// REST backend the console administers
	APIBaseURL string        // e.g. https://api.example.com/api (no trailing slash needed)
	APITimeout time.Duration // per-request timeout for backend calls

	// MongoDB connection configuration (console-local state: signup flag, audit log)
	MongoURI      string
	MongoDatabase string

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: adminconsole-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// InstanceName identifies this console for the one-time signup flag.
	InstanceName string

	// Console controllers idle longer than this are evicted by the sweep worker.
	ConsoleIdleTimeout   time.Duration
	ConsoleSweepInterval time.Duration

	// LoginRateLimit is login/signup attempts per minute per IP and per email.
	LoginRateLimit int

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string
}
