package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/domains/cart"
	"eversol-backend/internal/kvstore"
	"eversol-backend/internal/shared/middleware"
	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/events"
	"eversol-backend/pkg/logger"
)

// ProductSource resolves a product id to the record the cart engine snapshots
// from. A nil product means the id is unknown.
type ProductSource interface {
	GetCartProduct(ctx context.Context, id string) (*cart.Product, error)
}

// Handler serves the per-customer cart endpoints. Engines are built per
// request on a store scoped to the authenticated customer.
type Handler struct {
	stores   kvstore.Scoper
	bus      *events.Bus
	products ProductSource
	opts     []cart.Option
}

func NewHandler(stores kvstore.Scoper, bus *events.Bus, products ProductSource, opts ...cart.Option) *Handler {
	return &Handler{stores: stores, bus: bus, products: products, opts: opts}
}

// RegisterRoutes mounts the cart routes on rg, which must already be behind
// authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetState)
	rg.POST("/items", h.AddItem)
	rg.PUT("/items/:id", h.UpdateQuantity)
	rg.DELETE("/items/:id", h.RemoveItem)
	rg.POST("/discount", h.ApplyDiscount)
	rg.DELETE("/discount", h.ClearDiscount)
	rg.PUT("/membership", h.SetMembership)
	rg.DELETE("", h.Clear)
}

func (h *Handler) engineFor(c *gin.Context) *cart.Engine {
	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	return cart.NewEngine(store, h.bus, h.opts...)
}

func (h *Handler) GetState(c *gin.Context) {
	response.Success(c, http.StatusOK, h.engineFor(c).State(c.Request.Context()))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		response.BadRequest(c, "Product id is required")
		return
	}

	product, err := h.products.GetCartProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		logger.Error("cart: product lookup failed", err)
		response.InternalServerError(c, "Failed to add item")
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}

	result := h.engineFor(c).AddItemDirect(c.Request.Context(), *product, req.VariantID, req.Quantity)
	h.respond(c, result)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := h.engineFor(c).UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	h.respond(c, result)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	result := h.engineFor(c).RemoveItem(c.Request.Context(), c.Param("id"))
	h.respond(c, result)
}

type discountRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := h.engineFor(c).ApplyDiscount(c.Request.Context(), req.Code)
	h.respond(c, result)
}

func (h *Handler) ClearDiscount(c *gin.Context) {
	h.respond(c, h.engineFor(c).ClearDiscount(c.Request.Context()))
}

type membershipRequest struct {
	IsCoOpMember bool `json:"isCoOpMember"`
}

func (h *Handler) SetMembership(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.respond(c, h.engineFor(c).SetCoOpMember(c.Request.Context(), req.IsCoOpMember))
}

func (h *Handler) Clear(c *gin.Context) {
	h.respond(c, h.engineFor(c).Clear(c.Request.Context()))
}

// respond maps an engine result onto the response envelope, returning the
// fresh cart state on success.
func (h *Handler) respond(c *gin.Context, result cart.Result) {
	if !result.Success {
		switch result.Code {
		case cart.CodeNotFound:
			response.NotFound(c, result.Message)
		case cart.CodeStorageUnavailable:
			response.InternalServerError(c, result.Message)
		default:
			response.BadRequest(c, result.Message)
		}
		return
	}
	response.Success(c, http.StatusOK, h.engineFor(c).State(c.Request.Context()))
}
