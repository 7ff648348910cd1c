package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/domain"
)

const maxResponseBytes = 1 << 20 // 1MB

type HTTPClient struct {
	baseURL string
	email   string
	token   string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Response]
	logger     *zap.Logger
}

func NewHTTPClient(baseURL, email, token string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
			Name:    "fulfillment-api",
			Timeout: 30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *HTTPClient) CreateOrder(ctx context.Context, order *domain.FulfillmentOrder) (*Response, error) {
	resp, err := c.do(ctx, http.MethodPost, "orders", encodeOrder(order))
	if err != nil {
		return nil, err
	}

	if resp.Status >= 200 && resp.Status < 300 {
		return resp, nil
	}

	// A redelivered webhook can race the cache delete and submit the same
	// order twice; the second submission bounces off the API's uniqueness
	// checks and is not a failure.
	if isDuplicateRejection(resp) {
		c.logger.Warn("duplicate order rejected upstream, treating as submitted",
			zap.String("visualid", order.VisualID))
		return resp, nil
	}

	return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.Status, resp.Body)
}

func (c *HTTPClient) Call(ctx context.Context, endpoint, method string, data *OrderData) (*Response, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	var form url.Values
	if data != nil && bodyMethod(method) {
		form = encodeOrderData(data)
	}

	return c.do(ctx, method, endpoint, form)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, form url.Values) (*Response, error) {
	target, err := c.endpointURL(endpoint)
	if err != nil {
		return nil, err
	}

	return c.breaker.Execute(func() (*Response, error) {
		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, fmt.Errorf("build fulfillment request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
		}

		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: status %d", ErrBadUpstreamBody, resp.StatusCode)
		}

		return &Response{Status: resp.StatusCode, Body: raw}, nil
	})
}

// endpointURL joins the endpoint path and injects the credential query
// params the API expects on every call.
func (c *HTTPClient) endpointURL(endpoint string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("email", c.email)
	q.Set("token", c.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func bodyMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func isDuplicateRejection(resp *Response) bool {
	if resp.Status != http.StatusUnprocessableEntity {
		return false
	}
	body := strings.ToLower(string(resp.Body))
	return strings.Contains(body, "taken") || strings.Contains(body, "already exists")
}
