package order

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
)

// MockStore implements cache.Store for testing
type MockStore struct {
	mu      sync.Mutex
	Data    map[string][]byte
	GetErr  error
	SetErr  error
	DelErr  error
	Deleted []string
}

func NewMockStore() *MockStore {
	return &MockStore{Data: map[string][]byte{}}
}

func (m *MockStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	return nil
}

func (m *MockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.Data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *MockStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DelErr != nil {
		return m.DelErr
	}
	delete(m.Data, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

// MockFulfillmentClient implements fulfillment.Client and records the
// orders it receives
type MockFulfillmentClient struct {
	CreateErr  error
	CreateResp *fulfillment.Response
	CallResp   *fulfillment.Response
	CallErr    error
	Orders     []*domain.FulfillmentOrder
}

func (m *MockFulfillmentClient) CreateOrder(_ context.Context, order *domain.FulfillmentOrder) (*fulfillment.Response, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Orders = append(m.Orders, order)
	if m.CreateResp != nil {
		return m.CreateResp, nil
	}
	return &fulfillment.Response{Status: 201, Body: json.RawMessage(`{"id":8801}`)}, nil
}

func (m *MockFulfillmentClient) Call(_ context.Context, _, _ string, _ *fulfillment.OrderData) (*fulfillment.Response, error) {
	return m.CallResp, m.CallErr
}
