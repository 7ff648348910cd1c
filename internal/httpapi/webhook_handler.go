package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/order"
)

const signatureHeader = "X-Shopify-Hmac-Sha256"

// WebhookHandler receives the asynchronous order-completed event, verifies
// its signature and hands it to the correlation service.
type WebhookHandler struct {
	service *order.Service
	secret  string
	logger  *zap.Logger
	timeout time.Duration
}

func NewWebhookHandler(service *order.Service, secret string, logger *zap.Logger, timeout time.Duration) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		secret:  secret,
		logger:  logger,
		timeout: timeout,
	}
}

// Receive handles POST /api/webhook.
//
// Responses follow the event source's retry contract: 401 is terminal,
// 500 invites a retry (which will land on the soft-success branch once the
// hold is consumed), and 200 acknowledges everything else — including a
// cache miss, where a retry has no path to recovery.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "failed to read body")
		return
	}

	// Verification runs on the exact raw bytes as received.
	if !order.VerifySignature(body, r.Header.Get(signatureHeader), h.secret) {
		h.logger.Warn("webhook signature mismatch",
			zap.String("request_id", getRequestID(r.Context())))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var event domain.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed order event")
		return
	}

	if _, err := h.service.Process(ctx, &event); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("cart_token", event.CartToken),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "upstream_error", "order submission failed")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
