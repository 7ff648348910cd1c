package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/domain"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
	"github.com/aurixlab/print-bridge/internal/order"
)

func newProxyHandler(client *FulfillmentMock) *ProxyHandler {
	return newProxyHandlerWithStore(client, NewStoreMock())
}

func newProxyHandlerWithStore(client *FulfillmentMock, store *StoreMock) *ProxyHandler {
	svc := order.NewService(store, client, "87416", "10238441", zap.NewNop())
	return NewProxyHandler(client, svc, zap.NewNop(), 5*time.Second)
}

func TestProxy_ForwardsGet(t *testing.T) {
	client := &FulfillmentMock{
		CallResp: &fulfillment.Response{Status: http.StatusOK, Body: json.RawMessage(`{"id":42}`)},
	}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy", `{"endpoint":"orders/42","method":"get"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	require.Len(t, client.CalledWith, 1)
	assert.Equal(t, "orders/42", client.CalledWith[0])
	assert.Equal(t, "GET", client.CalledMethod[0])
	assert.Nil(t, client.CalledData[0])
}

func TestProxy_ForwardsPostWithLineItems(t *testing.T) {
	client := &FulfillmentMock{
		CallResp: &fulfillment.Response{Status: http.StatusCreated, Body: json.RawMessage(`{"id":7}`)},
	}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy",
		`{"endpoint":"orders","method":"POST","data":{"order_nickname":"Reorder","lineItems":[{"name":"Cap","quantity":3}]}}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, client.CalledData, 1)
	data := client.CalledData[0]
	require.NotNil(t, data)
	assert.Equal(t, "Reorder", data.Fields["order_nickname"])
	require.Len(t, data.LineItems, 1)
	assert.Equal(t, "Cap", data.LineItems[0]["name"])
}

func TestProxy_PostWithoutLineItems(t *testing.T) {
	client := &FulfillmentMock{}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy",
		`{"endpoint":"orders","method":"POST","data":{"order_nickname":"Reorder"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lineItems must be an array")
	assert.Empty(t, client.CalledWith, "invalid payloads never reach upstream")
}

func TestProxy_MissingEndpoint(t *testing.T) {
	h := newProxyHandler(&FulfillmentMock{})

	rec := postJSON(t, h.Forward, "/api/proxy", `{"method":"GET"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxy_PassesThroughUpstreamFailureStatus(t *testing.T) {
	client := &FulfillmentMock{
		CallResp: &fulfillment.Response{Status: http.StatusNotFound, Body: json.RawMessage(`{"error":"no such order"}`)},
	}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy", `{"endpoint":"orders/999","method":"GET"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no such order"}`, rec.Body.String())
}

func TestProxy_UpstreamParseFailure(t *testing.T) {
	client := &FulfillmentMock{CallErr: fulfillment.ErrBadUpstreamBody}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy", `{"endpoint":"orders","method":"GET"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "upstream_error", resp.Code)
}

func TestProxy_UpstreamUnreachable(t *testing.T) {
	client := &FulfillmentMock{CallErr: errors.New("connection refused")}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy", `{"endpoint":"orders","method":"GET"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProxy_CreateInvoice(t *testing.T) {
	store := NewStoreMock()
	raw, _ := json.Marshal(domain.SessionAssets{FrontDataURL: "https://img.example/front.png"})
	store.Data[cache.SessionKey("sess-1")] = raw

	client := &FulfillmentMock{
		CreateResp: &fulfillment.Response{Status: http.StatusCreated, Body: json.RawMessage(`{"id":553,"visualid":"sess-1"}`)},
	}
	h := newProxyHandlerWithStore(client, store)

	rec := postJSON(t, h.Forward, "/api/proxy",
		`{"endpoint":"create-invoice","method":"POST","data":{
			"name":"1001",
			"attributes":{"_session_id":"sess-1"},
			"line_items":[{"title":"Shirt","variant_title":"XL","quantity":2,"price":1999,"sku":"SH-XL"}]
		}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	// the storefront reads the created order back, its id in particular
	assert.JSONEq(t, `{"id":553,"visualid":"sess-1"}`, rec.Body.String())

	require.Len(t, client.Orders, 1)
	submitted := client.Orders[0]
	assert.Equal(t, "sess-1", submitted.VisualID)
	assert.Equal(t, "Front: https://img.example/front.png\nBack: none", submitted.ProductionNotes)
	require.Len(t, submitted.LineItems, 1)
	assert.Equal(t, "XL", submitted.LineItems[0].Style)
	assert.Equal(t, "19.99", submitted.LineItems[0].UnitPrice)
	assert.Equal(t, "SH-XL", submitted.LineItems[0].Description)

	// asset retrieval is read-only
	assert.Contains(t, store.Data, cache.SessionKey("sess-1"))
}

func TestProxy_CreateInvoice_ExpiredAssetsResolveToNone(t *testing.T) {
	client := &FulfillmentMock{}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy",
		`{"endpoint":"create-invoice","method":"POST","data":{"attributes":{"_session_id":"gone"},"line_items":[]}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, client.Orders, 1)
	assert.Equal(t, "Front: none\nBack: none", client.Orders[0].ProductionNotes)
}

func TestProxy_CreateInvoice_MissingSession(t *testing.T) {
	client := &FulfillmentMock{}
	h := newProxyHandler(client)

	rec := postJSON(t, h.Forward, "/api/proxy",
		`{"endpoint":"create-invoice","method":"POST","data":{"line_items":[]}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, client.Orders)
}

func TestProxy_HealthProbe(t *testing.T) {
	h := newProxyHandler(&FulfillmentMock{})

	rec := postJSON(t, h.Health, "/api/proxy", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"fulfillment-proxy"}`, rec.Body.String())
}
