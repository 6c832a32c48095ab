package timeouts_test

import (
	"testing"
	"time"

	"github.com/bobprince4u/admin/internal/app/system/timeouts"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Short: 3 * time.Second})

	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("Short: got %v, want 3s", got)
	}
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium: got %v, want default", got)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	t.Setenv("TIMEOUT_LONG", "90s")
	t.Setenv("TIMEOUT_PING", "not-a-duration")

	if n := timeouts.ConfigureFromEnv(); n != 1 {
		t.Errorf("expected 1 value applied, got %d", n)
	}
	if got := timeouts.Long(); got != 90*time.Second {
		t.Errorf("Long: got %v, want 90s", got)
	}
	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping: got %v, want default", got)
	}
}
