package ratelimit

import (
	"testing"
	"time"

	"github.com/dimondcastle/cms/internal/testutil"
)

func TestCheckAllowed_NewKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, 3, 15*time.Minute, time.Hour)

	allowed, remaining, blockedUntil := store.CheckAllowed(ctx, "203.0.113.1")
	if !allowed {
		t.Error("fresh key not allowed")
	}
	if remaining != 3 {
		t.Errorf("remaining = %d, want 3", remaining)
	}
	if blockedUntil != nil {
		t.Errorf("fresh key blocked until %v", blockedUntil)
	}
}

func TestRecord_BlocksAtLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, 3, 15*time.Minute, time.Hour)
	key := "203.0.113.2"

	for i := 1; i <= 2; i++ {
		blocked, _ := store.Record(ctx, key)
		if blocked {
			t.Fatalf("blocked after %d attempts, limit is 3", i)
		}
	}

	blocked, until := store.Record(ctx, key)
	if !blocked {
		t.Fatal("not blocked at limit")
	}
	if until == nil || !until.After(time.Now()) {
		t.Errorf("block expiry = %v", until)
	}

	allowed, remaining, blockedUntil := store.CheckAllowed(ctx, key)
	if allowed {
		t.Error("blocked key still allowed")
	}
	if remaining != -1 {
		t.Errorf("blocked remaining = %d, want -1", remaining)
	}
	if blockedUntil == nil {
		t.Error("blocked key has nil blockedUntil")
	}
}

func TestKeyNormalization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, 2, 15*time.Minute, time.Hour)

	store.Record(ctx, "  2001:DB8::1  ")
	store.Record(ctx, "2001:db8::1")

	allowed, _, _ := store.CheckAllowed(ctx, "2001:db8::1")
	if allowed {
		t.Error("case/space variants of the same key were counted separately")
	}
}

func TestClear_Unblocks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, 1, 15*time.Minute, time.Hour)
	key := "203.0.113.3"

	if blocked, _ := store.Record(ctx, key); !blocked {
		t.Fatal("single-attempt limit did not block")
	}
	if err := store.Clear(ctx, key); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	allowed, _, _ := store.CheckAllowed(ctx, key)
	if !allowed {
		t.Error("cleared key still blocked")
	}
}
