package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alfazaa/intake/internal/store"
)

// ErrNoUnlockCode is returned when no unlock code is configured.
var ErrNoUnlockCode = errors.New("unlock code not configured")

// HashCode returns the bcrypt hash of an unlock code.
func HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing unlock code: %w", err)
	}
	return string(hash), nil
}

// CheckCode reports whether code matches hash.
func CheckCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// SyncUnlockCode makes the stored unlock hash match the configured code and
// returns it. The hash is only rewritten when the code changed. An empty code
// keeps the stored hash; with nothing stored it yields ErrNoUnlockCode.
func SyncUnlockCode(ctx context.Context, db *sql.DB, code string) (string, error) {
	hash, ok, err := store.GetSetting(ctx, db, store.SettingUnlockHash)
	if err != nil {
		return "", err
	}
	if code == "" {
		if !ok {
			return "", ErrNoUnlockCode
		}
		return hash, nil
	}
	if ok && CheckCode(hash, code) {
		return hash, nil
	}

	hash, err = HashCode(code)
	if err != nil {
		return "", err
	}
	if err := store.PutSetting(ctx, db, store.SettingUnlockHash, hash); err != nil {
		return "", err
	}
	return hash, nil
}
