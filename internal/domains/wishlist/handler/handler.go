package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/domains/cart"
	"eversol-backend/internal/domains/wishlist"
	"eversol-backend/internal/kvstore"
	"eversol-backend/internal/shared/middleware"
	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/events"
)

// ProductSource resolves a product id to the record the cart engine snapshots
// from. A nil product means the id is unknown.
type ProductSource interface {
	GetCartProduct(ctx context.Context, id string) (*cart.Product, error)
}

// Handler serves the per-customer wishlist endpoints. Engines are built per
// request on a store scoped to the authenticated customer.
type Handler struct {
	stores   kvstore.Scoper
	bus      *events.Bus
	products ProductSource
	baseURL  string
}

func NewHandler(stores kvstore.Scoper, bus *events.Bus, products ProductSource, baseURL string) *Handler {
	return &Handler{stores: stores, bus: bus, products: products, baseURL: baseURL}
}

// RegisterRoutes mounts the wishlist routes on rg, which must already be
// behind authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.POST("/toggle", h.Toggle)
	rg.DELETE("/:productId", h.Remove)
	rg.DELETE("", h.Clear)
	rg.GET("/share", h.Share)
	rg.POST("/:productId/move-to-cart", h.MoveToCart)
}

func (h *Handler) engineFor(c *gin.Context) *wishlist.Engine {
	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	return wishlist.NewEngine(store, h.bus)
}

func (h *Handler) cartFor(c *gin.Context) *cart.Engine {
	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	return cart.NewEngine(store, h.bus)
}

func (h *Handler) List(c *gin.Context) {
	engine := h.engineFor(c)
	items := engine.Items(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *Handler) Add(c *gin.Context) {
	var item wishlist.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if item.ProductID == "" {
		item.ProductID = item.ID
	}
	if item.ProductID == "" {
		response.BadRequest(c, "Product id is required")
		return
	}

	added := h.engineFor(c).Add(c.Request.Context(), item)
	response.Success(c, http.StatusOK, gin.H{"added": added})
}

func (h *Handler) Toggle(c *gin.Context) {
	var item wishlist.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if item.ProductID == "" {
		item.ProductID = item.ID
	}
	if item.ProductID == "" {
		response.BadRequest(c, "Product id is required")
		return
	}

	present := h.engineFor(c).Toggle(c.Request.Context(), item)
	response.Success(c, http.StatusOK, gin.H{"inWishlist": present})
}

func (h *Handler) Remove(c *gin.Context) {
	removed := h.engineFor(c).Remove(c.Request.Context(), c.Param("productId"))
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) Clear(c *gin.Context) {
	h.engineFor(c).Clear(c.Request.Context())
	response.SuccessWithMessage(c, http.StatusOK, "Wishlist cleared", nil)
}

func (h *Handler) Share(c *gin.Context) {
	link := h.engineFor(c).ShareableLink(c.Request.Context(), h.baseURL)
	response.Success(c, http.StatusOK, gin.H{"url": link})
}

// MoveToCart adds the saved product to the customer's cart and drops it from
// the wishlist only when the add succeeds.
func (h *Handler) MoveToCart(c *gin.Context) {
	ctx := c.Request.Context()
	cartEngine := h.cartFor(c)

	err := h.engineFor(c).MoveToCart(ctx, c.Param("productId"), func(productID string, quantity int) error {
		product, err := h.products.GetCartProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return cart.ErrProductUnknown
		}
		result := cartEngine.AddItemDirect(ctx, *product, "", quantity)
		if !result.Success {
			return cart.ErrAddFailed
		}
		return nil
	})
	if errors.Is(err, cart.ErrProductUnknown) {
		response.NotFound(c, "Product not found")
		return
	}
	if err != nil {
		response.BadRequest(c, "Could not move item to cart")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Product moved to cart", nil)
}
