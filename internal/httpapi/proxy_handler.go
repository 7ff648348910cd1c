package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
	"github.com/aurixlab/print-bridge/internal/order"
)

// ProxyHandler forwards ad hoc storefront calls to the fulfillment API so
// browser callers avoid cross-origin restrictions. The create-invoice
// route is the one exception with real behavior: it assembles an order
// from a raw event plus held session assets.
type ProxyHandler struct {
	client  fulfillment.Client
	orders  *order.Service
	logger  *zap.Logger
	timeout time.Duration
}

func NewProxyHandler(client fulfillment.Client, orders *order.Service, logger *zap.Logger, timeout time.Duration) *ProxyHandler {
	return &ProxyHandler{
		client:  client,
		orders:  orders,
		logger:  logger,
		timeout: timeout,
	}
}

type ProxyRequestDTO struct {
	Endpoint string          `json:"endpoint"`
	Method   string          `json:"method"`
	Data     json.RawMessage `json:"data"`
}

// Forward handles POST /api/proxy.
func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProxyRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Endpoint == "" {
		respondError(w, http.StatusBadRequest, "missing_endpoint", "endpoint required")
		return
	}

	if req.Endpoint == "create-invoice" {
		h.createInvoice(ctx, w, r, req.Data)
		return
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))

	data, err := parseOrderData(method, req.Data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := h.client.Call(ctx, req.Endpoint, method, data)
	if err != nil {
		h.logger.Error("proxy call failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("endpoint", req.Endpoint),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "upstream_error", "fulfillment api call failed")
		return
	}

	// Passthrough: upstream status and JSON body verbatim.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

// createInvoice submits a downstream order assembled from a raw order
// event, pulling held design assets by the event's _session_id attribute.
func (h *ProxyHandler) createInvoice(ctx context.Context, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var event domain.OrderEvent
	if len(raw) == 0 || json.Unmarshal(raw, &event) != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "data must be an order event")
		return
	}

	resp, err := h.orders.SubmitDirect(ctx, &event)
	if err != nil {
		if errors.Is(err, order.ErrNoSession) {
			respondError(w, http.StatusBadRequest, "missing_session_id", err.Error())
			return
		}
		h.logger.Error("invoice creation failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "upstream_error", "invoice creation failed")
		return
	}

	// callers read the created order (its id in particular) from the reply
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(resp.Body)
}

// Health handles GET /api/proxy as a liveness probe.
func (h *ProxyHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "fulfillment-proxy"})
}

// parseOrderData decodes the optional structured payload for body-carrying
// methods. Line items must be an array when present; root fields are
// forwarded opaquely.
func parseOrderData(method string, raw json.RawMessage) (*fulfillment.OrderData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		// query-style methods ignore the payload
		return nil, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.New("data must be an object")
	}

	data := &fulfillment.OrderData{Fields: fields}

	rawItems, ok := fields["lineItems"]
	if !ok {
		return nil, errors.New("lineItems must be an array")
	}
	items, ok := rawItems.([]any)
	if !ok {
		return nil, errors.New("lineItems must be an array")
	}
	delete(fields, "lineItems")

	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, errors.New("lineItems must be an array of objects")
		}
		data.LineItems = append(data.LineItems, m)
	}

	return data, nil
}
