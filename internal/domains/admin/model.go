package admin

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// Account is a back-office login stored in the admins collection.
type Account struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// LoginRequest is the credential payload for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Order statuses, in lifecycle order.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var orderStatuses = []interface{}{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// OrderItem is one purchased line within an order.
type OrderItem struct {
	ProductID   string          `json:"productId" bson:"product_id"`
	ProductName string          `json:"productName" bson:"product_name"`
	VariantName string          `json:"variantName" bson:"variant_name"`
	Price       decimal.Decimal `json:"price" bson:"price"`
	Quantity    int             `json:"quantity" bson:"quantity"`
}

// Order is a placed customer order.
type Order struct {
	ID            string          `json:"id" bson:"_id"`
	CustomerID    string          `json:"customerId" bson:"customer_id"`
	CustomerName  string          `json:"customerName" bson:"customer_name"`
	CustomerEmail string          `json:"customerEmail" bson:"customer_email"`
	Items         []OrderItem     `json:"items" bson:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice" bson:"total_price"`
	Status        string          `json:"status" bson:"status"`
	IsDelivered   bool            `json:"isDelivered" bson:"is_delivered"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt     time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updated_at"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(orderStatuses...)),
	)
}

// Product is the full back-office product record. It lives in the same
// collection the storefront catalog reads from.
type Product struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description" bson:"description"`
	Category    string          `json:"category" bson:"category"`
	Price       decimal.Decimal `json:"price" bson:"price"`
	CoopPrice   decimal.Decimal `json:"coopPrice" bson:"coop_price"`
	Stock       int             `json:"stock" bson:"stock"`
	InStock     bool            `json:"inStock" bson:"in_stock"`
	IsActive    bool            `json:"isActive" bson:"is_active"`
	Popularity  int             `json:"popularity" bson:"popularity"`
	ImageURL    string          `json:"imageUrl" bson:"image_url"`
	CreatedAt   time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updated_at"`
}

// ProductRequest is the create/update payload for products.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CoopPrice   decimal.Decimal `json:"coopPrice"`
	Stock       int             `json:"stock"`
	IsActive    *bool           `json:"isActive"`
	ImageURL    string          `json:"imageUrl"`
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// Customer is a storefront account with role user.
type Customer struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Role      string    `json:"role" bson:"role"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// CustomerRequest is the update payload for customers.
type CustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"isActive"`
}

func (r CustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 100)),
	)
}

// Category groups products on the storefront.
type Category struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Slug      string    `json:"slug" bson:"slug"`
	ImageURL  string    `json:"imageUrl" bson:"image_url"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
	IsActive *bool  `json:"isActive"`
}

func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is the full promotion record; the cart engine evaluates a
// projection of it.
type Coupon struct {
	ID            string          `json:"id" bson:"_id"`
	Code          string          `json:"code" bson:"code"`
	Description   string          `json:"description" bson:"description"`
	DiscountType  string          `json:"discountType" bson:"discount_type"`
	DiscountValue decimal.Decimal `json:"discountValue" bson:"discount_value"`
	MinPurchase   decimal.Decimal `json:"minPurchase" bson:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount" bson:"max_discount"`
	ValidFrom     time.Time       `json:"validFrom" bson:"valid_from"`
	ValidUntil    time.Time       `json:"validUntil" bson:"valid_until"`
	UsageLimit    int             `json:"usageLimit" bson:"usage_limit"`
	UsedCount     int             `json:"usedCount" bson:"used_count"`
	IsActive      bool            `json:"isActive" bson:"is_active"`
	CreatedAt     time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updated_at"`
}

// CouponRequest is the create/update payload for coupons.
type CouponRequest struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MinPurchase   decimal.Decimal `json:"minPurchase"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount"`
	ValidFrom     *time.Time      `json:"validFrom"`
	ValidUntil    time.Time       `json:"validUntil"`
	UsageLimit    int             `json:"usageLimit"`
	IsActive      *bool           `json:"isActive"`
}

func (r CouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.DiscountType, validation.Required, validation.In(DiscountPercentage, DiscountFixed)),
		validation.Field(&r.ValidUntil, validation.Required),
	)
}

// Banner is a storefront hero/banner slot.
type Banner struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Subtitle  string    `json:"subtitle" bson:"subtitle"`
	ImageURL  string    `json:"imageUrl" bson:"image_url"`
	LinkURL   string    `json:"linkUrl" bson:"link_url"`
	Position  int       `json:"position" bson:"position"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// BannerRequest is the create/update payload for banners.
type BannerRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
	Position int    `json:"position"`
	IsActive *bool  `json:"isActive"`
}

func (r BannerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.ImageURL, validation.Required),
	)
}

// Review is a customer product review awaiting moderation.
type Review struct {
	ID           string    `json:"id" bson:"_id"`
	ProductID    string    `json:"productId" bson:"product_id"`
	ProductName  string    `json:"productName" bson:"product_name"`
	CustomerName string    `json:"customerName" bson:"customer_name"`
	Rating       int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment" bson:"comment"`
	IsApproved   bool      `json:"isApproved" bson:"is_approved"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// ReviewRequest is the moderation payload for reviews.
type ReviewRequest struct {
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	IsApproved *bool  `json:"isApproved"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Min(0), validation.Max(5)),
	)
}

// Pagination echoes the applied paging back to the caller.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Overview is the analytics dashboard payload.
type Overview struct {
	TotalOrders    int64            `json:"totalOrders"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	TotalCustomers int64            `json:"totalCustomers"`
	TotalProducts  int64            `json:"totalProducts"`
	TodayOrders    int64            `json:"todayOrders"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	RecentOrders   []Order          `json:"recentOrders"`
	TopProducts    []TopProduct     `json:"topProducts"`
}

// TopProduct is one entry in the best-sellers list.
type TopProduct struct {
	ProductID string          `json:"productId" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	UnitsSold int64           `json:"unitsSold" bson:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue" bson:"revenue"`
}
