package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Sentinel errors for callers that feed products into the engine.
var (
	ErrProductUnknown = errors.New("product not found")
	ErrAddFailed      = errors.New("could not add item to cart")
)

// StorageKey is where the whole cart aggregate is persisted as one value.
const StorageKey = "eversol-cart"

// Result codes for failed mutations. Callers branch on the code, not the
// message text.
const (
	CodeValidation         = "Validation"
	CodeNotFound           = "NotFound"
	CodeCapacityExceeded   = "CapacityExceeded"
	CodeStorageUnavailable = "StorageUnavailable"
)

// Result is the outcome descriptor every mutation returns.
type Result struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func failure(code, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}

// Variant is one purchasable variant of a product.
type Variant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CoopPrice decimal.Decimal `json:"coopPrice"`
	Stock     int             `json:"stock"`
}

// Product is the record AddItem snapshots line data from.
type Product struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl"`
	Variants []Variant `json:"variants"`
}

// Item is one cart line: a single product variant and its quantity. Price,
// co-op price, and stock are snapshots taken at add time.
type Item struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	VariantID    string          `json:"variantId"`
	VariantName  string          `json:"variantName"`
	Price        decimal.Decimal `json:"price"`
	CoopPrice    decimal.Decimal `json:"coopPrice"`
	Quantity     int             `json:"quantity"`
	Stock        int             `json:"stock"`
}

// effectivePrice is the per-unit price charged for this line.
func (i Item) effectivePrice(isCoOpMember bool) decimal.Decimal {
	if isCoOpMember {
		return i.CoopPrice
	}
	return i.Price
}

// Discount is the applied coupon descriptor stored with the cart.
type Discount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is the promotion record a discount is evaluated from.
type Coupon struct {
	Code          string          `json:"code" bson:"code"`
	DiscountType  string          `json:"discountType" bson:"discount_type"`
	DiscountValue decimal.Decimal `json:"discountValue" bson:"discount_value"`
	MinPurchase   decimal.Decimal `json:"minPurchase" bson:"min_purchase"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount" bson:"max_discount"`
	Active        bool            `json:"active" bson:"active"`
}

// DiscountAmount evaluates the coupon against subtotal. The min-purchase gate
// applies first; the computed amount is then capped by MaxDiscount and finally
// clamped to the subtotal. A zero amount with ok=false means the gate failed.
func (c Coupon) DiscountAmount(subtotal decimal.Decimal) (decimal.Decimal, bool) {
	if c.MinPurchase.IsPositive() && subtotal.LessThan(c.MinPurchase) {
		return decimal.Zero, false
	}

	var amount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		amount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		amount = c.DiscountValue
	default:
		return decimal.Zero, false
	}

	if c.MaxDiscount.IsPositive() && amount.GreaterThan(c.MaxDiscount) {
		amount = c.MaxDiscount
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount, true
}

// storedCart is the persisted aggregate. Totals are derived on read, never
// stored.
type storedCart struct {
	Items        []Item    `json:"items"`
	IsCoOpMember bool      `json:"isCoOpMember"`
	Discount     *Discount `json:"discount,omitempty"`
}

// Cart is the full state view with derived totals.
type Cart struct {
	Items        []Item          `json:"items"`
	IsCoOpMember bool            `json:"isCoOpMember"`
	Discount     *Discount       `json:"discount,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"itemCount"`
}
