package httpapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
)

// StoreMock implements cache.Store for handler tests
type StoreMock struct {
	Data   map[string][]byte
	TTLs   map[string]time.Duration
	SetErr error
	GetErr error
}

func NewStoreMock() *StoreMock {
	return &StoreMock{
		Data: map[string][]byte{},
		TTLs: map[string]time.Duration{},
	}
}

func (s *StoreMock) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Data[key] = value
	s.TTLs[key] = ttl
	return nil
}

func (s *StoreMock) Get(_ context.Context, key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.Data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (s *StoreMock) Delete(_ context.Context, key string) error {
	delete(s.Data, key)
	return nil
}

// FulfillmentMock implements fulfillment.Client for handler tests
type FulfillmentMock struct {
	CreateErr  error
	CreateResp *fulfillment.Response
	CallResp   *fulfillment.Response
	CallErr    error

	Orders       []*domain.FulfillmentOrder
	CalledWith   []string
	CalledMethod []string
	CalledData   []*fulfillment.OrderData
}

func (f *FulfillmentMock) CreateOrder(_ context.Context, order *domain.FulfillmentOrder) (*fulfillment.Response, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Orders = append(f.Orders, order)
	if f.CreateResp != nil {
		return f.CreateResp, nil
	}
	return &fulfillment.Response{Status: 201, Body: json.RawMessage(`{"id":8801}`)}, nil
}

func (f *FulfillmentMock) Call(_ context.Context, endpoint, method string, data *fulfillment.OrderData) (*fulfillment.Response, error) {
	f.CalledWith = append(f.CalledWith, endpoint)
	f.CalledMethod = append(f.CalledMethod, method)
	f.CalledData = append(f.CalledData, data)
	return f.CallResp, f.CallErr
}
