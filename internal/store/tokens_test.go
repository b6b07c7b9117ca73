package store

import (
	"context"
	"testing"
	"time"

	"github.com/mlakar/inventar/internal/db"
)

func TestRevokeToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected fresh JTI to not be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected JTI to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour)
	if err := RevokeToken(ctx, database, "jti-1", expiry); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "jti-1", expiry); err != nil {
		t.Errorf("expected repeat revocation to succeed, got %v", err)
	}
}

func TestRevokeTokenCleansExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// An already-expired revocation should be swept by the next revoke.
	RevokeToken(ctx, database, "old-jti", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "new-jti", time.Now().Add(time.Hour))

	revoked, err := IsTokenRevoked(ctx, database, "old-jti")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected expired revocation to be cleaned up")
	}
}
