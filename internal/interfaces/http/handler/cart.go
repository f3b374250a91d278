package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcart "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartHandler serves the shopping cart endpoints.
type CartHandler struct {
	BaseHandler
	service *appcart.Service
	logger  *zap.Logger
}

// NewCartHandler creates a cart handler
func NewCartHandler(service *appcart.Service, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{service: service, logger: logger}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/cart")
	{
		g.GET("", h.Get)
		g.DELETE("", h.Clear)
		g.POST("/items", h.AddItem)
		g.DELETE("/items/:lineId", h.RemoveItem)
		g.PATCH("/items/:lineId/quantity", h.UpdateQuantity)
	}
}

// VariantRequest carries the selected variant pair
type VariantRequest struct {
	TypeID string `json:"type_id" binding:"required"`
	SizeID string `json:"size_id" binding:"required"`
}

// AddonRequest carries one selected addon option
type AddonRequest struct {
	OptionID     string          `json:"option_id" binding:"required"`
	VariantID    string          `json:"variant_id" binding:"required"`
	OptionName   string          `json:"option_name"`
	VariantLabel string          `json:"variant_label"`
	Price        decimal.Decimal `json:"price"`
}

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	ShopID    string          `json:"shop_id"`
	Name      string          `json:"name"`
	ShopName  string          `json:"shop_name"`
	Quantity  int             `json:"quantity" binding:"omitempty,min=1"`
	Price     decimal.Decimal `json:"price"`
	Variant   *VariantRequest `json:"variant"`
	Addons    []AddonRequest  `json:"addons"`
}

// UpdateQuantityRequest carries a signed quantity adjustment
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

// CartView is the cart snapshot with its running total
type CartView struct {
	Items      []cart.LineItem `json:"items"`
	GoodsTotal decimal.Decimal `json:"goods_total"`
}

func newCartView(c cart.Cart) CartView {
	return CartView{
		Items:      c.Items,
		GoodsTotal: c.GoodsTotal(),
	}
}

// Get returns the owner's current cart
func (h *CartHandler) Get(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.service.Items(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// AddItem adds a line to the cart, merging with an existing line when the
// product, variant and addons match.
func (h *CartHandler) AddItem(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	candidate := cart.LineItem{
		ProductID: req.ProductID,
		ShopID:    req.ShopID,
		Name:      req.Name,
		ShopName:  req.ShopName,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}
	if req.Variant != nil {
		candidate.Variant = &cart.VariantSelection{
			TypeID: req.Variant.TypeID,
			SizeID: req.Variant.SizeID,
		}
	}
	for _, a := range req.Addons {
		candidate.Addons = append(candidate.Addons, cart.Addon{
			OptionID:     a.OptionID,
			VariantID:    a.VariantID,
			OptionName:   a.OptionName,
			VariantLabel: a.VariantLabel,
			Price:        a.Price,
		})
	}

	current, err := h.service.Add(c.Request.Context(), ownerID, candidate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// RemoveItem deletes a line by its id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.service.Remove(c.Request.Context(), ownerID, c.Param("lineId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// UpdateQuantity adjusts a line's quantity by a signed delta. The line is
// removed when the adjustment takes it to zero or below.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	current, err := h.service.UpdateQuantity(c.Request.Context(), ownerID, c.Param("lineId"), req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Clear(c.Request.Context(), ownerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
