package validators_test

import (
	"testing"
	"time"

	"github.com/bobprince4u/admin/internal/app/store/audit"
	settingsstore "github.com/bobprince4u/admin/internal/app/store/settings"
	"github.com/bobprince4u/admin/internal/app/system/validators"
	"github.com/bobprince4u/admin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{settingsstore.Collection, audit.Collection} {
		if !have[want] {
			t.Errorf("collection %q not created", want)
		}
	}
}

func TestSettingsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection(settingsstore.Collection)

	if _, err := coll.InsertOne(ctx, bson.M{"signup_completed": true}); err == nil {
		t.Error("expected a settings document without instance to be rejected")
	}
	if _, err := coll.InsertOne(ctx, bson.M{"instance": "   ", "signup_completed": false}); err == nil {
		t.Error("expected a blank instance name to be rejected")
	}

	// The store's own writes must pass validation.
	store := settingsstore.New(db)
	if err := store.MarkSignupCompleted(ctx, "console-a", "admin@example.com"); err != nil {
		t.Fatalf("MarkSignupCompleted rejected by validator: %v", err)
	}
}

func TestAuditEventsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection(audit.Collection)

	bad := bson.M{
		"event_id":   "e1",
		"timestamp":  time.Now(),
		"instance":   "console-a",
		"category":   "billing",
		"event_type": audit.EventLogout,
		"success":    true,
	}
	if _, err := coll.InsertOne(ctx, bad); err == nil {
		t.Error("expected an unknown category to be rejected")
	}

	err := audit.New(db).Log(ctx, audit.Event{
		EventID:   "e2",
		Instance:  "console-a",
		Category:  audit.CategoryAdmin,
		EventType: audit.EventProjectCreated,
		Success:   true,
	})
	if err != nil {
		t.Fatalf("valid audit event rejected: %v", err)
	}
}
