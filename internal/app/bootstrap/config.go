// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the admin console.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: ADMINCONSOLE_API_BASE_URL, ADMINCONSOLE_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "https://api.accian.co.uk/api", Desc: "Base URL of the REST backend"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout for a single backend request"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "admin_console", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "adminconsole-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "instance_name", Default: "default", Desc: "Name of this console instance (scopes the one-time signup)"},

	{Name: "console_idle_timeout", Default: "30m", Desc: "Evict console state idle longer than this"},
	{Name: "console_sweep_interval", Default: "5m", Desc: "How often idle console state is swept"},

	{Name: "login_rate_limit", Default: 10, Desc: "Login/signup attempts per minute per IP and per email"},

	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, in order of precedence,
// flags > env (ADMINCONSOLE_*) > config files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ADMINCONSOLE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: strings.TrimRight(strings.TrimSpace(appValues.String("api_base_url")), "/"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		InstanceName: appValues.String("instance_name"),

		ConsoleIdleTimeout:   appValues.Duration("console_idle_timeout", 30*time.Minute),
		ConsoleSweepInterval: appValues.Duration("console_sweep_interval", 5*time.Minute),

		LoginRateLimit: appValues.Int("login_rate_limit"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It rejects a malformed MongoDB URI and a backend URL that is not an
// absolute http(s) URL, before anything tries to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateAPIBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid api_base_url", zap.String("api_base_url", appCfg.APIBaseURL), zap.Error(err))
		return err
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}
	if appCfg.InstanceName == "" {
		return fmt.Errorf("instance_name must not be empty")
	}
	return nil
}

func validateAPIBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}
