package store

import (
	"context"
	"testing"
	"time"

	"github.com/alfazaa/intake/internal/db"
)

func TestGetTokenSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestPutAndGetSetting(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, ok, err := GetSetting(ctx, database, SettingUnlockHash); err != nil || ok {
		t.Fatalf("expected missing setting, ok=%v err=%v", ok, err)
	}
	if err := PutSetting(ctx, database, SettingUnlockHash, "a"); err != nil {
		t.Fatal(err)
	}
	if err := PutSetting(ctx, database, SettingUnlockHash, "b"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := GetSetting(ctx, database, SettingUnlockHash)
	if err != nil || !ok || v != "b" {
		t.Errorf("expected b, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token not to be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	// Revoking twice is fine.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}

	if revoked, _ := IsTokenRevoked(ctx, database, "jti-1"); !revoked {
		t.Error("expected token to be revoked")
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "jti-2"); revoked {
		t.Error("expected different token not to be revoked")
	}
}

func TestRevokePrunesExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RevokeToken(ctx, database, "old", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "new", time.Now().Add(time.Hour))

	if revoked, _ := IsTokenRevoked(ctx, database, "old"); revoked {
		t.Error("expected expired revocation to be pruned")
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "new"); !revoked {
		t.Error("expected live revocation to remain")
	}
}
