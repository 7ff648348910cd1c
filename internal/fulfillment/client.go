package fulfillment

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aurixlab/print-bridge/internal/domain"
)

var (
	// ErrUpstream covers non-success responses and transport failures,
	// including an open circuit breaker.
	ErrUpstream = errors.New("fulfillment api error")

	// ErrBadUpstreamBody means the upstream body was not valid JSON.
	ErrBadUpstreamBody = errors.New("fulfillment api returned non-JSON body")
)

// Response is an upstream reply passed back to proxy callers verbatim.
type Response struct {
	Status int
	Body   json.RawMessage
}

// OrderData is the generic payload the proxy forwards on body-carrying
// calls: arbitrary root fields plus line items in the storefront's shape.
type OrderData struct {
	Fields    map[string]any
	LineItems []map[string]any
}

// Client is the downstream print-fulfillment capability.
type Client interface {
	// CreateOrder submits an assembled order and returns the upstream
	// reply (the created order JSON). A duplicate-order rejection from
	// upstream is treated as success.
	CreateOrder(ctx context.Context, order *domain.FulfillmentOrder) (*Response, error)

	// Call forwards an ad hoc request to the named endpoint and returns
	// the upstream status and JSON body untouched.
	Call(ctx context.Context, endpoint, method string, data *OrderData) (*Response, error)
}
