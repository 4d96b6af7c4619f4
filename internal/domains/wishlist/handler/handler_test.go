package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"eversol-backend/internal/domains/cart"
	"eversol-backend/internal/domains/wishlist"
	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
)

type fakeProductSource struct {
	products map[string]*cart.Product
}

func (f fakeProductSource) GetCartProduct(ctx context.Context, id string) (*cart.Product, error) {
	return f.products[id], nil
}

func newWishlistRouter(stores kvstore.Scoper, source ProductSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(stores, events.NewBus(), source, "https://eversol.in")
	h.RegisterRoutes(router.Group("/wishlist"))
	return router
}

func saveWishlistItem(t *testing.T, stores kvstore.Scoper, productID string) {
	t.Helper()
	engine := wishlist.NewEngine(stores.Scoped("customer:"), events.NewBus())
	assert.True(t, engine.Add(context.Background(), wishlist.Item{ProductID: productID, Title: "Saved"}))
}

func testProduct(id string, stock int) *cart.Product {
	return &cart.Product{
		ID:   id,
		Name: "Organic Jaggery",
		Variants: []cart.Variant{{
			ID:        "standard",
			Name:      "Standard",
			Price:     decimal.NewFromInt(120),
			CoopPrice: decimal.NewFromInt(100),
			Stock:     stock,
		}},
	}
}

func TestMoveToCartUnknownProductReturns404(t *testing.T) {
	stores := kvstore.NewMemory()
	saveWishlistItem(t, stores, "p-gone")
	router := newWishlistRouter(stores, fakeProductSource{products: map[string]*cart.Product{}})

	req := httptest.NewRequest(http.MethodPost, "/wishlist/p-gone/move-to-cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	engine := wishlist.NewEngine(stores.Scoped("customer:"), events.NewBus())
	assert.True(t, engine.Contains(context.Background(), "p-gone"))
}

func TestMoveToCartAddFailureReturns400(t *testing.T) {
	stores := kvstore.NewMemory()
	saveWishlistItem(t, stores, "p-1")
	source := fakeProductSource{products: map[string]*cart.Product{
		"p-1": testProduct("p-1", 0),
	}}
	router := newWishlistRouter(stores, source)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/p-1/move-to-cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	engine := wishlist.NewEngine(stores.Scoped("customer:"), events.NewBus())
	assert.True(t, engine.Contains(context.Background(), "p-1"))
}

func TestMoveToCartMovesItem(t *testing.T) {
	stores := kvstore.NewMemory()
	saveWishlistItem(t, stores, "p-1")
	source := fakeProductSource{products: map[string]*cart.Product{
		"p-1": testProduct("p-1", 5),
	}}
	router := newWishlistRouter(stores, source)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/p-1/move-to-cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	engine := wishlist.NewEngine(stores.Scoped("customer:"), events.NewBus())
	assert.False(t, engine.Contains(ctx, "p-1"))

	state := cart.NewEngine(stores.Scoped("customer:"), events.NewBus()).State(ctx)
	if assert.Len(t, state.Items, 1) {
		assert.Equal(t, "p-1", state.Items[0].ProductID)
		assert.Equal(t, 1, state.Items[0].Quantity)
	}
}
