package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/domain"
)

// SessionHandler caches design images for a customization session, and
// serves them back to the order-assembly path.
type SessionHandler struct {
	store   cache.Store
	logger  *zap.Logger
	timeout time.Duration
}

func NewSessionHandler(store cache.Store, logger *zap.Logger, timeout time.Duration) *SessionHandler {
	return &SessionHandler{
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

type SessionHoldRequestDTO struct {
	SessionID    string `json:"sessionId"`
	FrontDataURL string `json:"frontDataUrl"`
	BackDataURL  string `json:"backDataUrl"`
}

// Hold handles POST /api/session. Image references are opaque strings:
// raw data URLs and hosted URLs are both accepted.
func (h *SessionHandler) Hold(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SessionHoldRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "sessionId required")
		return
	}

	assets := domain.SessionAssets{
		FrontDataURL: req.FrontDataURL,
		BackDataURL:  req.BackDataURL,
	}
	payload, err := json.Marshal(assets)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to encode assets")
		return
	}

	if err := h.store.Set(ctx, cache.SessionKey(req.SessionID), payload, cache.HoldTTL); err != nil {
		h.logger.Error("session hold write failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "cache_unavailable", "failed to hold session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Retrieve handles GET /api/retrieve?sessionId=. Read-only: it neither
// deletes the record nor extends its expiry.
func (h *SessionHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "sessionId required")
		return
	}

	raw, err := h.store.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			respondError(w, http.StatusNotFound, "not_found", "not found")
			return
		}
		h.logger.Error("session read failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("session_id", sessionID),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "cache_unavailable", "failed to read session")
		return
	}

	var assets domain.SessionAssets
	if err := json.Unmarshal(raw, &assets); err != nil {
		h.logger.Error("corrupt session record",
			zap.String("session_id", sessionID),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "corrupt session record")
		return
	}

	respondJSON(w, http.StatusOK, assets)
}
