package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
)

func sampleRequest() checkout.OrderRequest {
	return checkout.OrderRequest{
		ShopID: "s1",
		Items: []cart.LineItem{
			{ID: "s1:p1", ProductID: "p1", ShopID: "s1", Quantity: 2, Price: decimal.NewFromInt(50)},
		},
		Total:         decimal.NewFromInt(100),
		PaymentMethod: checkout.PaymentMethodCOD,
		Notes:         `{"tag":"COD_LOCATION"}`,
	}
}

func TestHTTPOrderPlacer_Success(t *testing.T) {
	var received checkout.OrderRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	placer := NewHTTPOrderPlacer(srv.URL, time.Second, nil)
	ctx := WithAuthorization(context.Background(), "tok-123")

	err := placer.PlaceOrder(ctx, sampleRequest())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", auth)
	assert.Equal(t, "s1", received.ShopID)
	assert.True(t, received.Total.Equal(decimal.NewFromInt(100)))
}

func TestHTTPOrderPlacer_UnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	placer := NewHTTPOrderPlacer(srv.URL, time.Second, nil)

	err := placer.PlaceOrder(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, checkout.ErrUnauthenticated)
}

func TestHTTPOrderPlacer_ServerErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	placer := NewHTTPOrderPlacer(srv.URL, time.Second, nil)

	err := placer.PlaceOrder(context.Background(), sampleRequest())

	var subErr *checkout.SubmissionError
	assert.True(t, errors.As(err, &subErr))
	assert.Equal(t, http.StatusBadGateway, subErr.StatusCode)
	assert.Equal(t, "s1", subErr.ShopID)
	assert.Contains(t, subErr.Error(), "upstream down")
}

func TestHTTPOrderPlacer_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	placer := NewHTTPOrderPlacer(srv.URL, time.Second, nil)

	err := placer.PlaceOrder(context.Background(), sampleRequest())

	var subErr *checkout.SubmissionError
	assert.True(t, errors.As(err, &subErr))
	assert.Equal(t, 0, subErr.StatusCode)
}

func TestHTTPOrderPlacer_NoTokenOmitsHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	placer := NewHTTPOrderPlacer(srv.URL, time.Second, nil)

	err := placer.PlaceOrder(context.Background(), sampleRequest())

	assert.NoError(t, err)
	assert.Empty(t, auth)
}
