package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/cache"
)

// HoldHandler caches a cart snapshot at "begin checkout" time so the
// order webhook can correlate it later.
type HoldHandler struct {
	store   cache.Store
	logger  *zap.Logger
	timeout time.Duration
}

func NewHoldHandler(store cache.Store, logger *zap.Logger, timeout time.Duration) *HoldHandler {
	return &HoldHandler{
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

type HoldResponseDTO struct {
	OK        bool   `json:"ok"`
	CartToken string `json:"cartToken"`
	ExpiresIn int    `json:"expiresIn"`
}

// Hold handles POST /api/hold. The body is the cart payload with a
// mandatory cartToken; everything else is stored opaquely. Repeated holds
// for the same token overwrite and reset the expiry.
func (h *HoldHandler) Hold(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var cartToken string
	if raw, ok := body["cartToken"]; ok {
		if err := json.Unmarshal(raw, &cartToken); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_cart_token", "cartToken must be a string")
			return
		}
	}
	if cartToken == "" {
		respondError(w, http.StatusBadRequest, "missing_cart_token", "missing cartToken")
		return
	}

	// The token is the key; storing it again would just duplicate it.
	delete(body, "cartToken")

	payload, err := json.Marshal(body)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to encode cart")
		return
	}

	if err := h.store.Set(ctx, cache.CartKey(cartToken), payload, cache.HoldTTL); err != nil {
		h.logger.Error("cart hold write failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("cart_token", cartToken),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "cache_unavailable", "failed to hold cart")
		return
	}

	respondJSON(w, http.StatusOK, HoldResponseDTO{
		OK:        true,
		CartToken: cartToken,
		ExpiresIn: int(cache.HoldTTL / time.Second),
	})
}

// Health handles GET /api/hold as a liveness probe.
func (h *HoldHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "cart-hold"})
}
