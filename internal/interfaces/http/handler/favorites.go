package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appfavorites "github.com/storefront/backend/internal/application/favorites"
	"github.com/storefront/backend/internal/domain/favorites"
)

// FavoritesHandler serves the favorites endpoints.
type FavoritesHandler struct {
	BaseHandler
	service *appfavorites.Service
	logger  *zap.Logger
}

// NewFavoritesHandler creates a favorites handler
func NewFavoritesHandler(service *appfavorites.Service, logger *zap.Logger) *FavoritesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesHandler{service: service, logger: logger}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/favorites")
	{
		g.GET("", h.List)
		g.POST("/toggle", h.Toggle)
	}
}

// ToggleFavoriteRequest is the toggle payload
type ToggleFavoriteRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	ShopID    string          `json:"shop_id"`
	Name      string          `json:"name"`
	ShopName  string          `json:"shop_name"`
	Price     decimal.Decimal `json:"price"`
}

// ToggleFavoriteResponse reports the state after the toggle
type ToggleFavoriteResponse struct {
	ProductID string `json:"product_id"`
	Favorited bool   `json:"favorited"`
}

// List returns the owner's favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	l, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, l)
}

// Toggle flips the favorited state of a product
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	favorited, err := h.service.Toggle(c.Request.Context(), ownerID, favorites.Item{
		ProductID: req.ProductID,
		ShopID:    req.ShopID,
		Name:      req.Name,
		ShopName:  req.ShopName,
		Price:     req.Price,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToggleFavoriteResponse{ProductID: req.ProductID, Favorited: favorited})
}
