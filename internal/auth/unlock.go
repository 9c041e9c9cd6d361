package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alfazaa/intake/internal/store"
)

// Unlock errors.
var (
	ErrBadCode = errors.New("wrong unlock code")
	ErrLocked  = errors.New("token has been locked")
)

// Unlock checks code against the stored hash and issues an unlock token.
func Unlock(secret, hash, code, device string) (string, *Claims, error) {
	if code == "" || !CheckCode(hash, code) {
		return "", nil, ErrBadCode
	}
	return GenerateToken(secret, device)
}

// Authenticate validates tokenStr and checks that it has not been locked.
func Authenticate(ctx context.Context, db *sql.DB, secret, tokenStr string) (*Claims, error) {
	claims, err := ValidateToken(secret, tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := store.IsTokenRevoked(ctx, db, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrLocked
	}
	return claims, nil
}

// Lock revokes the token described by claims.
func Lock(ctx context.Context, db *sql.DB, claims *Claims) error {
	expiresAt := time.Now().Add(TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := store.RevokeToken(ctx, db, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("locking: %w", err)
	}
	return nil
}
