package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRevocationRoundTrip(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("IsRevoked = %v, %v; want true, nil", revoked, err)
	}

	revoked, err = store.IsRevoked(ctx, "jti-other")
	if err != nil || revoked {
		t.Fatalf("unknown id reported revoked")
	}
}

func TestMemoryStoreDropsExpiredEntriesOnRevoke(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	// Entries whose tokens already expired must not accumulate
	for _, id := range []string{"stale-1", "stale-2", "stale-3"} {
		if err := store.Revoke(ctx, id, -time.Second); err != nil {
			t.Fatalf("Revoke(%s): %v", id, err)
		}
	}

	if err := store.Revoke(ctx, "fresh", time.Minute); err != nil {
		t.Fatalf("Revoke(fresh): %v", err)
	}

	if got := store.cache.Len(); got != 1 {
		t.Fatalf("stored entries = %d, want 1 (stale ids purged)", got)
	}
	revoked, err := store.IsRevoked(ctx, "fresh")
	if err != nil || !revoked {
		t.Fatalf("fresh id lost during purge")
	}
}
