package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/alfazaa/intake/internal/db"
)

func TestUnlockAuthenticateLock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	secret := "secret"

	hash, err := HashCode("4321")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := Unlock(secret, hash, "0000", ""); !errors.Is(err, ErrBadCode) {
		t.Errorf("expected ErrBadCode, got %v", err)
	}
	if _, _, err := Unlock(secret, hash, "", ""); !errors.Is(err, ErrBadCode) {
		t.Errorf("expected ErrBadCode for empty code, got %v", err)
	}

	token, issued, err := Unlock(secret, hash, "4321", "tablet-1")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	claims, err := Authenticate(ctx, database, secret, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if claims.ID != issued.ID || claims.Device != "tablet-1" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if err := Lock(ctx, database, claims); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := Authenticate(ctx, database, secret, token); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked after lock, got %v", err)
	}

	if _, err := Authenticate(ctx, database, "other", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}
