package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
)

// Outcome reports how a completed-order event was resolved.
type Outcome int

const (
	// OutcomeSubmitted means a cached cart was correlated and the order
	// was submitted downstream.
	OutcomeSubmitted Outcome = iota

	// OutcomeNoCart means the cached cart was absent (expired, already
	// consumed, or never held). This is a soft success: the event source
	// must still be acknowledged because a retry has no path to recovery.
	OutcomeNoCart
)

// Service runs the correlation half of the hold/webhook protocol:
// look up the cached cart by token, consume it, assemble the downstream
// order and submit it.
type Service struct {
	store      cache.Store
	client     fulfillment.Client
	userID     string
	customerID string
	logger     *zap.Logger

	now func() time.Time
}

func NewService(store cache.Store, client fulfillment.Client, userID, customerID string, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		client:     client,
		userID:     userID,
		customerID: customerID,
		logger:     logger,
		now:        time.Now,
	}
}

// Process handles one verified completed-order event.
//
// The cache delete happens immediately after the read, before any assembly
// work, to keep the duplicate-delivery window as small as the cache allows.
// A redelivery after the delete lands on the OutcomeNoCart branch.
func (s *Service) Process(ctx context.Context, event *domain.OrderEvent) (Outcome, error) {
	// A tokenless event can never correlate; treat it like an expired hold
	// so the source is still acknowledged.
	if event.CartToken == "" {
		s.logger.Warn("completed order carries no cart token",
			zap.String("order_name", event.Name))
		return OutcomeNoCart, nil
	}

	key := cache.CartKey(event.CartToken)

	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("no cached cart for completed order",
			zap.String("cart_token", event.CartToken),
			zap.String("order_name", event.Name))
		return OutcomeNoCart, nil
	}
	if err != nil {
		return OutcomeNoCart, fmt.Errorf("correlate cart: %w", err)
	}

	// Single-use: consume the hold before doing anything else with it.
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete consumed cart hold",
			zap.String("cart_token", event.CartToken),
			zap.Error(err))
	}

	var snapshot domain.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return OutcomeNoCart, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}

	built := buildOrder(&snapshot, event, s.userID, s.customerID, s.now())

	if _, err := s.client.CreateOrder(ctx, built); err != nil {
		return OutcomeSubmitted, fmt.Errorf("submit order: %w", err)
	}

	s.logger.Info("order submitted to fulfillment",
		zap.String("cart_token", event.CartToken),
		zap.String("visualid", built.VisualID),
		zap.Int("line_items", len(built.LineItems)))

	return OutcomeSubmitted, nil
}

// ErrNoSession means a direct-invoice event carried no session reference.
var ErrNoSession = errors.New("order event has no _session_id attribute")

const sessionAttribute = "_session_id"

// SubmitDirect builds and submits an order from the raw event itself,
// attaching held session assets when they are still cached. An expired
// asset record resolves to "none" rather than failing the invoice. The
// upstream reply (the created order JSON) is returned for the caller.
func (s *Service) SubmitDirect(ctx context.Context, event *domain.OrderEvent) (*fulfillment.Response, error) {
	sessionID := event.Attributes[sessionAttribute]
	if sessionID == "" {
		return nil, ErrNoSession
	}

	var assets domain.SessionAssets
	raw, err := s.store.Get(ctx, cache.SessionKey(sessionID))
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &assets); err != nil {
			return nil, fmt.Errorf("unmarshal session assets: %w", err)
		}
	case errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn("session assets expired before invoicing",
			zap.String("session_id", sessionID))
	default:
		return nil, fmt.Errorf("retrieve session assets: %w", err)
	}

	built := buildDirectOrder(event, &assets, sessionID, s.userID, s.customerID, s.now())

	resp, err := s.client.CreateOrder(ctx, built)
	if err != nil {
		return nil, fmt.Errorf("submit invoice: %w", err)
	}

	s.logger.Info("direct invoice submitted to fulfillment",
		zap.String("session_id", sessionID),
		zap.Int("line_items", len(built.LineItems)))

	return resp, nil
}
