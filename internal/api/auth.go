package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfazaa/intake/internal/auth"
)

// AuthHandler handles unlocking and locking the device.
type AuthHandler struct {
	*Deps
}

type unlockRequest struct {
	Code   string `json:"code"`
	Device string `json:"device"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Unlock handles POST /api/unlock.
func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, claims, err := auth.Unlock(h.TokenSecret, h.UnlockHash, req.Code, req.Device)
	if errors.Is(err, auth.ErrBadCode) {
		slog.Warn("unlock failed", "device", req.Device, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "wrong unlock code")
		return
	}
	if err != nil {
		slog.Error("failed to issue unlock token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to unlock")
		return
	}

	slog.Info("device unlocked", "device", req.Device, "session", claims.ID)
	jsonResponse(w, http.StatusOK, unlockResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time})
}

// Lock handles POST /api/lock. The token is revoked and its draft discarded.
func (h *AuthHandler) Lock(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "locked")
		return
	}

	if err := auth.Lock(r.Context(), h.Store.DB(), claims); err != nil {
		slog.Error("failed to lock", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to lock")
		return
	}
	h.Sessions.Drop(claims.ID)

	slog.Info("device locked", "device", claims.Device, "session", claims.ID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "locked"})
}
