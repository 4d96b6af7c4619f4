package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"eversol-backend/internal/domains/catalog"
	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/logger"
)

const defaultPageSize = 12

// ProductLister loads the catalog for the filter pipeline.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Handler serves the storefront catalog endpoints.
type Handler struct {
	repo ProductLister
}

func NewHandler(repo ProductLister) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the catalog routes on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/categories", h.ListCategories)
}

// ListProducts handles GET /products with filter, sort, and page params.
func (h *Handler) ListProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	products, err := h.repo.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load products", err)
		response.InternalServerError(c, "Failed to load products")
		return
	}

	filtered := catalog.ApplyFilters(products, filters)
	result := catalog.Paginate(filtered, page, pageSize)

	response.Success(c, http.StatusOK, gin.H{
		"products":      result.Products,
		"totalProducts": result.TotalProducts,
		"totalPages":    result.TotalPages,
		"currentPage":   result.CurrentPage,
		"activeFilters": catalog.CountActiveFilters(filters),
	})
}

// GetProduct handles GET /products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.repo.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to load product", err)
		response.InternalServerError(c, "Failed to load product")
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.Success(c, http.StatusOK, product)
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load categories", err)
		response.InternalServerError(c, "Failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func parseFilters(c *gin.Context) (catalog.Filters, error) {
	filters := catalog.InitialFilters()
	filters.SearchQuery = c.Query("q")

	if raw := c.Query("categories"); raw != "" {
		filters.Categories = strings.Split(raw, ",")
	}
	if c.Query("inStock") == "true" {
		filters.Availability = true
	}
	if sortBy := c.Query("sortBy"); sortBy != "" {
		filters.SortBy = catalog.SortCriteria(sortBy)
	}

	minRaw, maxRaw := c.Query("minPrice"), c.Query("maxPrice")
	if minRaw != "" || maxRaw != "" {
		min, err := parsePrice(minRaw, decimal.Zero)
		if err != nil {
			return filters, err
		}
		max, err := parsePrice(maxRaw, decimal.NewFromInt(1_000_000))
		if err != nil {
			return filters, err
		}
		filters.PriceRange = &catalog.PriceRange{Min: min, Max: max}
	}

	return filters, nil
}

func parsePrice(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	return decimal.NewFromString(raw)
}
