package settingsstore_test

import (
	"testing"

	settingsstore "github.com/bobprince4u/admin/internal/app/store/settings"
	"github.com/bobprince4u/admin/internal/testutil"
)

func TestStore_Get_NoSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx, "console-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.Instance != "console-a" {
		t.Errorf("Instance: got %q, want %q", settings.Instance, "console-a")
	}
	if settings.SignupCompleted {
		t.Error("expected SignupCompleted=false for a fresh instance")
	}
}

func TestStore_MarkSignupCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.MarkSignupCompleted(ctx, "console-a", "first@example.com"); err != nil {
		t.Fatalf("MarkSignupCompleted failed: %v", err)
	}

	done, err := store.SignupCompleted(ctx, "console-a")
	if err != nil {
		t.Fatalf("SignupCompleted failed: %v", err)
	}
	if !done {
		t.Error("expected SignupCompleted=true after marking")
	}

	// Other instances are unaffected.
	other, err := store.SignupCompleted(ctx, "console-b")
	if err != nil {
		t.Fatalf("SignupCompleted failed: %v", err)
	}
	if other {
		t.Error("expected console-b to be unaffected")
	}
}

func TestStore_MarkSignupCompleted_KeepsFirstEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.MarkSignupCompleted(ctx, "console-a", "first@example.com"); err != nil {
		t.Fatalf("first mark failed: %v", err)
	}
	if err := store.MarkSignupCompleted(ctx, "console-a", "second@example.com"); err != nil {
		t.Fatalf("second mark failed: %v", err)
	}

	settings, err := store.Get(ctx, "console-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if settings.SignupEmail != "first@example.com" {
		t.Errorf("SignupEmail: got %q, want first@example.com", settings.SignupEmail)
	}
	if settings.SignupCompletedAt == nil {
		t.Error("expected SignupCompletedAt to be set")
	}
}
