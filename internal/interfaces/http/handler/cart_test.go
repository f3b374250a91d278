package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCartRouter() *gin.Engine {
	service := appcart.NewService(persistence.NewInMemoryCartStorage(), nil)
	h := NewCartHandler(service, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCartView(t *testing.T, w *httptest.ResponseRecorder) CartView {
	t.Helper()
	var resp struct {
		Success bool     `json:"success"`
		Data    CartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	return resp.Data
}

func TestCartHandler_AddAndGet(t *testing.T) {
	r := newCartRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", AddItemRequest{
		ProductID: "p1",
		ShopID:    "s1",
		Name:      "Mug",
		Quantity:  2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeCartView(t, w)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "s1:p1", view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestCartHandler_AddMergesMatchingLines(t *testing.T) {
	r := newCartRouter()

	payload := AddItemRequest{ProductID: "p1", ShopID: "s1", Name: "Mug", Quantity: 1}
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", payload)
	w := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", payload)

	view := decodeCartView(t, w)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestCartHandler_MissingProductID(t *testing.T) {
	r := newCartRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", map[string]any{"shop_id": "s1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestCartHandler_UpdateQuantityToZeroRemovesLine(t *testing.T) {
	r := newCartRouter()

	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: "p1", ShopID: "s1", Quantity: 1})
	w := doJSON(t, r, http.MethodPatch, "/api/v1/cart/items/s1:p1/quantity", UpdateQuantityRequest{Delta: -1})

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeCartView(t, w)
	assert.Empty(t, view.Items)
}

func TestCartHandler_RemoveAbsentLineIsNoop(t *testing.T) {
	r := newCartRouter()

	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: "p1", ShopID: "s1", Quantity: 1})
	w := doJSON(t, r, http.MethodDelete, "/api/v1/cart/items/s9:p9", nil)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeCartView(t, w)
	assert.Len(t, view.Items, 1)
}

func TestCartHandler_Clear(t *testing.T) {
	r := newCartRouter()

	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: "p1", ShopID: "s1", Quantity: 1})
	w := doJSON(t, r, http.MethodDelete, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/cart", nil)
	view := decodeCartView(t, w)
	assert.Empty(t, view.Items)
}

func TestCartHandler_MissingSessionID(t *testing.T) {
	r := newCartRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
