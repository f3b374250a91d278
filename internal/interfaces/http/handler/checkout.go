package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcheckout "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/infrastructure/orders"
)

// CheckoutHandler serves the checkout composer endpoints. The flow mirrors
// the storefront sheet: open, confirm COD, capture a location, submit.
type CheckoutHandler struct {
	BaseHandler
	service *appcheckout.Service
	logger  *zap.Logger
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(service *appcheckout.Service, logger *zap.Logger) *CheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutHandler{service: service, logger: logger}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/checkout")
	{
		g.POST("/session", h.Open)
		g.DELETE("/session", h.Close)
		g.POST("/session/confirm", h.ConfirmPayOnDelivery)
		g.PUT("/session/location/coords", h.SetCoordinates)
		g.PUT("/session/location/address", h.SetAddress)
		g.PUT("/session/location/note", h.SetNote)
		g.POST("/session/retry", h.Retry)
		g.POST("/session/submit", h.Submit)
	}
}

// SetCoordinatesRequest carries a map-pin position
type SetCoordinatesRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// SetAddressRequest carries a typed delivery address
type SetAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// SetNoteRequest carries the optional location note
type SetNoteRequest struct {
	Note string `json:"note"`
}

// Open starts or resumes a checkout session
func (h *CheckoutHandler) Open(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.service.Open(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Close discards the checkout session, leaving the cart untouched
func (h *CheckoutHandler) Close(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.service.Close(ownerID)
	h.NoContent(c)
}

// ConfirmPayOnDelivery moves the session to location collection, attempting
// automatic geolocation
func (h *CheckoutHandler) ConfirmPayOnDelivery(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.service.ConfirmPayOnDelivery(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SetCoordinates overwrites the captured position
func (h *CheckoutHandler) SetCoordinates(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req SetCoordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.service.SetCoordinates(c.Request.Context(), ownerID, req.Lat, req.Lng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SetAddress stores the manually typed delivery address
func (h *CheckoutHandler) SetAddress(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req SetAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.service.SetAddress(c.Request.Context(), ownerID, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SetNote attaches the optional location note
func (h *CheckoutHandler) SetNote(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.service.SetNote(c.Request.Context(), ownerID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Retry returns an errored session to location collection
func (h *CheckoutHandler) Retry(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.service.Retry(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Submit places one order per shop group. The caller's bearer token rides
// the context so the order service sees the storefront user; a 401 from it
// surfaces here as 401 with the cart preserved.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if token := bearerToken(c); token != "" {
		ctx = orders.WithAuthorization(ctx, token)
	}

	summary, err := h.service.Submit(ctx, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
