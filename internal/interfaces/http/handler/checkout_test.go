package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/storefront/backend/internal/application/cart"
	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// fixedFees resolves every shop to the same fee.
type fixedFees struct {
	fee decimal.Decimal
}

func (f *fixedFees) Resolve(_ context.Context, shopIDs []string) map[string]*decimal.Decimal {
	out := make(map[string]*decimal.Decimal, len(shopIDs))
	for _, id := range shopIDs {
		fee := f.fee
		out[id] = &fee
	}
	return out
}

// scriptedPlacer fails shops listed in failWith and records the rest.
type scriptedPlacer struct {
	failWith map[string]error
	placed   []string
}

func (p *scriptedPlacer) PlaceOrder(_ context.Context, req checkout.OrderRequest) error {
	if err, ok := p.failWith[req.ShopID]; ok {
		return err
	}
	p.placed = append(p.placed, req.ShopID)
	return nil
}

type checkoutFixture struct {
	router *gin.Engine
	placer *scriptedPlacer
	carts  *appcart.Service
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	cartService := appcart.NewService(persistence.NewInMemoryCartStorage(), nil)
	placer := &scriptedPlacer{failWith: map[string]error{}}
	checkoutService := appcheckout.NewService(cartService, &fixedFees{fee: decimal.NewFromInt(10)}, placer, nil, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	NewCartHandler(cartService, nil).RegisterRoutes(api)
	NewCheckoutHandler(checkoutService, nil).RegisterRoutes(api)

	fx := &checkoutFixture{router: r, placer: placer, carts: cartService}
	_, err := cartService.Add(context.Background(), "sess-1", cart.LineItem{
		ProductID: "p1",
		ShopID:    "s1",
		Name:      "Mug",
		Quantity:  2,
		Price:     decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	return fx
}

func decodeSummary(t *testing.T, body []byte) appcheckout.Summary {
	t.Helper()
	var resp struct {
		Success bool                `json:"success"`
		Data    appcheckout.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func (fx *checkoutFixture) drive(t *testing.T) {
	t.Helper()
	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, fx.router, http.MethodPut, "/api/v1/checkout/session/location/address", SetAddressRequest{Address: "12 Example St"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutHandler_OpencomputesTotals(t *testing.T) {
	fx := newCheckoutFixture(t)

	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session", nil)

	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeSummary(t, w.Body.Bytes())
	assert.Equal(t, checkout.StepCart, summary.Step)
	assert.True(t, summary.GoodsTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.DeliveryTotal.Equal(decimal.NewFromInt(10)))
	assert.True(t, summary.GrandTotal.Equal(decimal.NewFromInt(110)))
}

func TestCheckoutHandler_OpenEmptyCart(t *testing.T) {
	fx := newCheckoutFixture(t)
	require.NoError(t, fx.carts.Clear(context.Background(), "sess-1"))

	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeCartEmpty, resp.Error.Code)
}

func TestCheckoutHandler_SubmitWithoutLocation(t *testing.T) {
	fx := newCheckoutFixture(t)

	doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session", nil)
	doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/confirm", nil)
	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/submit", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNoLocation, resp.Error.Code)
}

func TestCheckoutHandler_SubmitSuccessClearsCart(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.drive(t)

	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/submit", nil)

	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeSummary(t, w.Body.Bytes())
	assert.Equal(t, checkout.StepSuccess, summary.Step)
	assert.Equal(t, []string{"s1"}, fx.placer.placed)

	remaining, err := fx.carts.Items(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, remaining.IsEmpty())
}

func TestCheckoutHandler_SubmitUnauthenticated(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.placer.failWith["s1"] = checkout.ErrUnauthenticated
	fx.drive(t)

	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/submit", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Cart survives the rejection.
	remaining, err := fx.carts.Items(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, remaining.IsEmpty())
}

func TestCheckoutHandler_SubmitFailureEntersErrorStep(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.placer.failWith["s1"] = &checkout.SubmissionError{ShopID: "s1", StatusCode: 502, Err: assert.AnError}
	fx.drive(t)

	w := doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/submit", nil)

	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeSummary(t, w.Body.Bytes())
	assert.Equal(t, checkout.StepError, summary.Step)
	assert.NotEmpty(t, summary.LastError)
}

func TestCheckoutHandler_CloseThenOperate(t *testing.T) {
	fx := newCheckoutFixture(t)

	doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session", nil)
	w := doJSON(t, fx.router, http.MethodDelete, "/api/v1/checkout/session", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, fx.router, http.MethodPost, "/api/v1/checkout/session/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
