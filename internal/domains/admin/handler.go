package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"eversol-backend/internal/shared/middleware"
	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/jwt"
	"eversol-backend/pkg/logger"
)

// Handler serves the back-office REST API.
type Handler struct {
	service *Service
	repo    *Repository
}

func NewHandler(service *Service, repo *Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

// RegisterRoutes mounts the admin API under rg. Everything except login is
// behind authentication plus the admin role check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, jwtManager *jwt.Manager) {
	rg.POST("/login", h.Login)

	authed := rg.Group("", middleware.Auth(jwtManager), middleware.AdminOnly())

	authed.GET("/analytics/overview", h.GetOverview)

	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.PUT("/orders/:id/status", h.UpdateOrderStatus)
	authed.DELETE("/orders/:id", h.DeleteOrder)

	authed.GET("/products", h.ListProducts)
	authed.GET("/products/:id", h.GetProduct)
	authed.POST("/products", h.CreateProduct)
	authed.PUT("/products/:id", h.UpdateProduct)
	authed.DELETE("/products/:id", h.DeleteProduct)

	authed.GET("/customers", h.ListCustomers)
	authed.GET("/customers/:id", h.GetCustomer)
	authed.PUT("/customers/:id", h.UpdateCustomer)
	authed.DELETE("/customers/:id", h.DeleteCustomer)

	authed.GET("/categories", h.ListCategories)
	authed.GET("/categories/:id", h.GetCategory)
	authed.POST("/categories", h.CreateCategory)
	authed.PUT("/categories/:id", h.UpdateCategory)
	authed.DELETE("/categories/:id", h.DeleteCategory)

	authed.GET("/coupons", h.ListCoupons)
	authed.GET("/coupons/:id", h.GetCoupon)
	authed.POST("/coupons", h.CreateCoupon)
	authed.PUT("/coupons/:id", h.UpdateCoupon)
	authed.DELETE("/coupons/:id", h.DeleteCoupon)

	authed.GET("/banners", h.ListBanners)
	authed.GET("/banners/:id", h.GetBanner)
	authed.POST("/banners", h.CreateBanner)
	authed.PUT("/banners/:id", h.UpdateBanner)
	authed.DELETE("/banners/:id", h.DeleteBanner)

	authed.GET("/reviews", h.ListReviews)
	authed.GET("/reviews/:id", h.GetReview)
	authed.PUT("/reviews/:id", h.UpdateReview)
	authed.DELETE("/reviews/:id", h.DeleteReview)
}

// Login handles POST /login, returning the token in the body and as a
// cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err == ErrInvalidCredentials {
		response.Unauthorized(c, "Invalid email or password")
		return
	}
	if err != nil {
		if isValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("admin login failed", err)
		response.InternalServerError(c, "Login failed")
		return
	}

	c.SetCookie(middleware.TokenCookieName, result.Token, int((24 * time.Hour).Seconds()), "/", "", false, true)
	response.Success(c, http.StatusOK, result)
}

// --- analytics ---

func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.repo.GetOverview(c.Request.Context())
	if err != nil {
		logger.Error("failed to build analytics overview", err)
		response.InternalServerError(c, "Failed to load analytics")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

// --- orders ---

func (h *Handler) ListOrders(c *gin.Context) {
	filter := OrderFilter{Status: c.Query("status")}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if raw := c.Query("startDate"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndDate = &t
		}
	}
	filter = filter.normalized()

	orders, total, err := h.repo.ListOrders(c.Request.Context(), filter)
	if err != nil {
		logger.Error("failed to list orders", err)
		response.InternalServerError(c, "Failed to load orders")
		return
	}

	pages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	response.Success(c, http.StatusOK, gin.H{
		"orders": orders,
		"pagination": Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.repo.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get order", err)
		response.InternalServerError(c, "Failed to load order")
		return
	}
	if order == nil {
		response.NotFound(c, "Order not found")
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.repo.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		logger.Error("failed to update order status", err)
		response.InternalServerError(c, "Failed to update order")
		return
	}
	if order == nil {
		response.NotFound(c, "Order not found")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	h.deleteResource(c, "Order", h.repo.DeleteOrder)
}

// --- products ---

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.repo.ListAdminProducts(c.Request.Context())
	if err != nil {
		logger.Error("failed to list products", err)
		response.InternalServerError(c, "Failed to load products")
		return
	}
	response.Success(c, http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.repo.GetAdminProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get product", err)
		response.InternalServerError(c, "Failed to load product")
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.Success(c, http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	product := &Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		CoopPrice:   req.CoopPrice,
		Stock:       req.Stock,
		InStock:     req.Stock > 0,
		IsActive:    req.IsActive == nil || *req.IsActive,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.CreateProduct(c.Request.Context(), product); err != nil {
		logger.Error("failed to create product", err)
		response.InternalServerError(c, "Failed to create product")
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Product created successfully", product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.repo.GetAdminProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get product", err)
		response.InternalServerError(c, "Failed to update product")
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.CoopPrice = req.CoopPrice
	product.Stock = req.Stock
	product.InStock = req.Stock > 0
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.ImageURL = req.ImageURL
	product.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceProduct(c.Request.Context(), product); err != nil {
		logger.Error("failed to replace product", err)
		response.InternalServerError(c, "Failed to update product")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Product updated successfully", product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	h.deleteResource(c, "Product", h.repo.DeleteProduct)
}

// --- customers ---

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.repo.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("failed to list customers", err)
		response.InternalServerError(c, "Failed to load customers")
		return
	}
	response.Success(c, http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.repo.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get customer", err)
		response.InternalServerError(c, "Failed to load customer")
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.repo.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get customer", err)
		response.InternalServerError(c, "Failed to update customer")
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceCustomer(c.Request.Context(), customer); err != nil {
		logger.Error("failed to replace customer", err)
		response.InternalServerError(c, "Failed to update customer")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Customer updated successfully", customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	h.deleteResource(c, "Customer", h.repo.DeleteCustomer)
}

// --- categories ---

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListAdminCategories(c.Request.Context())
	if err != nil {
		logger.Error("failed to list categories", err)
		response.InternalServerError(c, "Failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.repo.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get category", err)
		response.InternalServerError(c, "Failed to load category")
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	category := &Category{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      slugify(req.Slug, req.Name),
		ImageURL:  req.ImageURL,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.CreateCategory(c.Request.Context(), category); err != nil {
		logger.Error("failed to create category", err)
		response.InternalServerError(c, "Failed to create category")
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Category created successfully", category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.repo.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get category", err)
		response.InternalServerError(c, "Failed to update category")
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}

	category.Name = req.Name
	category.Slug = slugify(req.Slug, req.Name)
	category.ImageURL = req.ImageURL
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceCategory(c.Request.Context(), category); err != nil {
		logger.Error("failed to replace category", err)
		response.InternalServerError(c, "Failed to update category")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Category updated successfully", category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	h.deleteResource(c, "Category", h.repo.DeleteCategory)
}

// --- coupons ---

func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.repo.ListCoupons(c.Request.Context())
	if err != nil {
		logger.Error("failed to list coupons", err)
		response.InternalServerError(c, "Failed to load coupons")
		return
	}
	response.Success(c, http.StatusOK, coupons)
}

func (h *Handler) GetCoupon(c *gin.Context) {
	coupon, err := h.repo.GetCoupon(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get coupon", err)
		response.InternalServerError(c, "Failed to load coupon")
		return
	}
	if coupon == nil {
		response.NotFound(c, "Coupon not found")
		return
	}
	response.Success(c, http.StatusOK, coupon)
}

func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := h.repo.CouponCodeExists(c.Request.Context(), code, "")
	if err != nil {
		logger.Error("failed to check coupon code", err)
		response.InternalServerError(c, "Failed to create coupon")
		return
	}
	if exists {
		response.BadRequest(c, "Coupon code already exists")
		return
	}

	now := time.Now()
	validFrom := now
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}
	coupon := &Coupon{
		ID:            uuid.NewString(),
		Code:          code,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     validFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
		IsActive:      req.IsActive == nil || *req.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.repo.CreateCoupon(c.Request.Context(), coupon); err != nil {
		logger.Error("failed to create coupon", err)
		response.InternalServerError(c, "Failed to create coupon")
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Coupon created successfully", coupon)
}

func (h *Handler) UpdateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	coupon, err := h.repo.GetCoupon(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get coupon", err)
		response.InternalServerError(c, "Failed to update coupon")
		return
	}
	if coupon == nil {
		response.NotFound(c, "Coupon not found")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := h.repo.CouponCodeExists(c.Request.Context(), code, coupon.ID)
	if err != nil {
		logger.Error("failed to check coupon code", err)
		response.InternalServerError(c, "Failed to update coupon")
		return
	}
	if exists {
		response.BadRequest(c, "Coupon code already exists")
		return
	}

	coupon.Code = code
	coupon.Description = req.Description
	coupon.DiscountType = req.DiscountType
	coupon.DiscountValue = req.DiscountValue
	coupon.MinPurchase = req.MinPurchase
	coupon.MaxDiscount = req.MaxDiscount
	if req.ValidFrom != nil {
		coupon.ValidFrom = *req.ValidFrom
	}
	coupon.ValidUntil = req.ValidUntil
	coupon.UsageLimit = req.UsageLimit
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	coupon.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceCoupon(c.Request.Context(), coupon); err != nil {
		logger.Error("failed to replace coupon", err)
		response.InternalServerError(c, "Failed to update coupon")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Coupon updated successfully", coupon)
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	h.deleteResource(c, "Coupon", h.repo.DeleteCoupon)
}

// --- banners ---

func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.repo.ListBanners(c.Request.Context())
	if err != nil {
		logger.Error("failed to list banners", err)
		response.InternalServerError(c, "Failed to load banners")
		return
	}
	response.Success(c, http.StatusOK, banners)
}

func (h *Handler) GetBanner(c *gin.Context) {
	banner, err := h.repo.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get banner", err)
		response.InternalServerError(c, "Failed to load banner")
		return
	}
	if banner == nil {
		response.NotFound(c, "Banner not found")
		return
	}
	response.Success(c, http.StatusOK, banner)
}

func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	banner := &Banner{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.CreateBanner(c.Request.Context(), banner); err != nil {
		logger.Error("failed to create banner", err)
		response.InternalServerError(c, "Failed to create banner")
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Banner created successfully", banner)
}

func (h *Handler) UpdateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	banner, err := h.repo.GetBanner(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get banner", err)
		response.InternalServerError(c, "Failed to update banner")
		return
	}
	if banner == nil {
		response.NotFound(c, "Banner not found")
		return
	}

	banner.Title = req.Title
	banner.Subtitle = req.Subtitle
	banner.ImageURL = req.ImageURL
	banner.LinkURL = req.LinkURL
	banner.Position = req.Position
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	banner.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceBanner(c.Request.Context(), banner); err != nil {
		logger.Error("failed to replace banner", err)
		response.InternalServerError(c, "Failed to update banner")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Banner updated successfully", banner)
}

func (h *Handler) DeleteBanner(c *gin.Context) {
	h.deleteResource(c, "Banner", h.repo.DeleteBanner)
}

// --- reviews ---

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.repo.ListReviews(c.Request.Context())
	if err != nil {
		logger.Error("failed to list reviews", err)
		response.InternalServerError(c, "Failed to load reviews")
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

func (h *Handler) GetReview(c *gin.Context) {
	review, err := h.repo.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get review", err)
		response.InternalServerError(c, "Failed to load review")
		return
	}
	if review == nil {
		response.NotFound(c, "Review not found")
		return
	}
	response.Success(c, http.StatusOK, review)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.repo.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to get review", err)
		response.InternalServerError(c, "Failed to update review")
		return
	}
	if review == nil {
		response.NotFound(c, "Review not found")
		return
	}

	if req.Rating > 0 {
		review.Rating = req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}
	if req.IsApproved != nil {
		review.IsApproved = *req.IsApproved
	}
	review.UpdatedAt = time.Now()

	if _, err := h.repo.ReplaceReview(c.Request.Context(), review); err != nil {
		logger.Error("failed to replace review", err)
		response.InternalServerError(c, "Failed to update review")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Review updated successfully", review)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	h.deleteResource(c, "Review", h.repo.DeleteReview)
}

// --- helpers ---

func (h *Handler) deleteResource(c *gin.Context, name string, del func(ctx context.Context, id string) (bool, error)) {
	deleted, err := del(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to delete "+strings.ToLower(name), err)
		response.InternalServerError(c, "Failed to delete "+strings.ToLower(name))
		return
	}
	if !deleted {
		response.NotFound(c, name+" not found")
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, name+" deleted successfully", nil)
}

func slugify(slug, fallback string) string {
	source := slug
	if source == "" {
		source = fallback
	}
	source = strings.ToLower(strings.TrimSpace(source))
	return strings.Join(strings.Fields(source), "-")
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
