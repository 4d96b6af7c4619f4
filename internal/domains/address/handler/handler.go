package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/domains/address"
	"eversol-backend/internal/kvstore"
	"eversol-backend/internal/shared/middleware"
	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/events"
)

// Handler serves the per-customer address book endpoints.
type Handler struct {
	stores kvstore.Scoper
	bus    *events.Bus
}

func NewHandler(stores kvstore.Scoper, bus *events.Bus) *Handler {
	return &Handler{stores: stores, bus: bus}
}

// RegisterRoutes mounts the address routes on rg, which must already be
// behind authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/selected", h.GetSelected)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PUT("/:id/select", h.Select)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) bookFor(c *gin.Context) *address.Book {
	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	return address.NewBook(store, h.bus)
}

func (h *Handler) List(c *gin.Context) {
	book := h.bookFor(c)
	addresses := book.List(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

func (h *Handler) GetSelected(c *gin.Context) {
	selected := h.bookFor(c).Selected(c.Request.Context())
	if selected == nil {
		response.NotFound(c, "No address selected")
		return
	}
	response.Success(c, http.StatusOK, selected)
}

func (h *Handler) Create(c *gin.Context) {
	var input address.NewAddress
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := h.bookFor(c).Create(c.Request.Context(), input)
	if !result.Success {
		response.BadRequest(c, result.Message)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Address saved", result.Address)
}

func (h *Handler) Update(c *gin.Context) {
	var input address.Update
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input.ID = c.Param("id")

	result := h.bookFor(c).Update(c.Request.Context(), input)
	if !result.Success {
		if result.Message == "Address not found" {
			response.NotFound(c, result.Message)
			return
		}
		response.BadRequest(c, result.Message)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Address updated", result.Address)
}

func (h *Handler) Select(c *gin.Context) {
	result := h.bookFor(c).SetSelected(c.Request.Context(), c.Param("id"))
	if !result.Success {
		response.NotFound(c, result.Message)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Address selected", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	result := h.bookFor(c).Delete(c.Request.Context(), c.Param("id"))
	if !result.Success {
		response.NotFound(c, result.Message)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Address deleted", nil)
}
