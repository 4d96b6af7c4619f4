package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
	"eversol-backend/pkg/logger"
)

const msgStorageUnavailable = "Cart storage is unavailable"

// CouponResolver looks up a coupon record by its code. A nil coupon with a
// nil error means the code is unknown.
type CouponResolver interface {
	ResolveCoupon(ctx context.Context, code string) (*Coupon, error)
}

// Engine maintains the cart aggregate. Every successful mutation is one
// whole-aggregate write followed by the cart-updated event; failed
// preconditions never touch stored state.
type Engine struct {
	store   kvstore.Store
	bus     *events.Bus
	coupons CouponResolver
	taxRate decimal.Decimal
}

// Option configures an Engine.
type Option func(*Engine)

// WithTaxRate sets the rate applied to the discounted subtotal.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) { e.taxRate = rate }
}

// WithCouponResolver installs the coupon lookup used by ApplyDiscount.
func WithCouponResolver(resolver CouponResolver) Option {
	return func(e *Engine) { e.coupons = resolver }
}

func NewEngine(store kvstore.Store, bus *events.Bus, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		bus:     bus,
		taxRate: decimal.Zero,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UpdateEventName returns the change event published after every mutation.
func (e *Engine) UpdateEventName() string {
	return events.CartUpdated
}

// State recomputes the derived totals from the current line items and the
// membership flag on every read.
func (e *Engine) State(ctx context.Context) Cart {
	stored := e.load(ctx)

	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range stored.Items {
		lineTotal := item.effectivePrice(stored.IsCoOpMember).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		itemCount += item.Quantity
	}

	discountAmount := decimal.Zero
	if stored.Discount != nil {
		discountAmount = stored.Discount.Amount
		if discountAmount.GreaterThan(subtotal) {
			discountAmount = subtotal
		}
	}

	taxable := subtotal.Sub(discountAmount)
	tax := taxable.Mul(e.taxRate)

	total := subtotal.Sub(discountAmount).Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Cart{
		Items:        stored.Items,
		IsCoOpMember: stored.IsCoOpMember,
		Discount:     stored.Discount,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		ItemCount:    itemCount,
	}
}

// Count returns the total quantity across all lines.
func (e *Engine) Count(ctx context.Context) int {
	return e.State(ctx).ItemCount
}

// AddItem inserts a new line for the chosen variant or increments the
// matching one. The merged quantity must fit within the variant's stock.
func (e *Engine) AddItem(ctx context.Context, product Product, variantID string, quantity int) Result {
	if quantity < 1 {
		return failure(CodeValidation, "Quantity must be at least 1")
	}
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	variant := findVariant(product, variantID)
	if variant == nil {
		return failure(CodeNotFound, "Selected variant not found")
	}

	stored := e.load(ctx)

	existing := -1
	for i, item := range stored.Items {
		if item.ProductID == product.ID && item.VariantID == variant.ID {
			existing = i
			break
		}
	}

	merged := quantity
	if existing >= 0 {
		merged += stored.Items[existing].Quantity
	}
	if merged > variant.Stock {
		e.bus.Notify(events.Notification{
			Message: fmt.Sprintf("Only %d left in stock for %s", variant.Stock, variant.Name),
			Type:    events.NotifyError,
		})
		return failure(CodeCapacityExceeded, fmt.Sprintf("Only %d left in stock", variant.Stock))
	}

	if existing >= 0 {
		stored.Items[existing].Quantity = merged
	} else {
		stored.Items = append(stored.Items, Item{
			ID:           "cart_" + uuid.NewString(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			VariantID:    variant.ID,
			VariantName:  variant.Name,
			Price:        variant.Price,
			CoopPrice:    variant.CoopPrice,
			Quantity:     quantity,
			Stock:        variant.Stock,
		})
	}

	e.persist(ctx, stored)
	e.bus.Notify(events.Notification{
		Message: fmt.Sprintf("%s added to cart", product.Name),
		Type:    events.NotifySuccess,
	})
	return Result{Success: true}
}

// AddItemDirect adds a product given its full record, defaulting to the
// first variant when no variant id is passed.
func (e *Engine) AddItemDirect(ctx context.Context, product Product, variantID string, quantity int) Result {
	if variantID == "" {
		if len(product.Variants) == 0 {
			return failure(CodeNotFound, "Product has no variants")
		}
		variantID = product.Variants[0].ID
	}
	return e.AddItem(ctx, product, variantID, quantity)
}

// UpdateQuantity rewrites the line's quantity. A quantity of zero or less is
// a removal request; larger quantities are re-validated against the line's
// stock snapshot.
func (e *Engine) UpdateQuantity(ctx context.Context, itemID string, quantity int) Result {
	if quantity <= 0 {
		return e.RemoveItem(ctx, itemID)
	}
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	stored := e.load(ctx)
	for i, item := range stored.Items {
		if item.ID != itemID {
			continue
		}
		if quantity > item.Stock {
			e.bus.Notify(events.Notification{
				Message: fmt.Sprintf("Only %d left in stock for %s", item.Stock, item.VariantName),
				Type:    events.NotifyError,
			})
			return failure(CodeCapacityExceeded, fmt.Sprintf("Only %d left in stock", item.Stock))
		}
		stored.Items[i].Quantity = quantity
		e.persist(ctx, stored)
		return Result{Success: true}
	}
	return failure(CodeNotFound, "Cart item not found")
}

// RemoveItem deletes the matching line. Absent lines are a no-op with no
// write and no event.
func (e *Engine) RemoveItem(ctx context.Context, itemID string) Result {
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	stored := e.load(ctx)
	kept := make([]Item, 0, len(stored.Items))
	for _, item := range stored.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(stored.Items) {
		return Result{Success: true}
	}

	stored.Items = kept
	e.persist(ctx, stored)
	e.bus.Notify(events.Notification{
		Message: "Item removed from cart",
		Type:    events.NotifyInfo,
	})
	return Result{Success: true}
}

// ApplyDiscount evaluates the coupon for code against the current subtotal
// and stores the resulting descriptor.
func (e *Engine) ApplyDiscount(ctx context.Context, code string) Result {
	if code == "" {
		return failure(CodeValidation, "Coupon code is required")
	}
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}
	if e.coupons == nil {
		return failure(CodeNotFound, "Invalid coupon code")
	}

	coupon, err := e.coupons.ResolveCoupon(ctx, code)
	if err != nil {
		logger.Error("cart: coupon lookup failed", err)
		return failure(CodeNotFound, "Could not verify coupon code")
	}
	if coupon == nil || !coupon.Active {
		e.bus.Notify(events.Notification{
			Message: "Invalid coupon code",
			Type:    events.NotifyError,
		})
		return failure(CodeNotFound, "Invalid coupon code")
	}

	subtotal := e.State(ctx).Subtotal
	amount, ok := coupon.DiscountAmount(subtotal)
	if !ok {
		msg := fmt.Sprintf("This coupon requires a minimum purchase of %s", coupon.MinPurchase.StringFixed(2))
		e.bus.Notify(events.Notification{Message: msg, Type: events.NotifyError})
		return failure(CodeValidation, msg)
	}

	stored := e.load(ctx)
	stored.Discount = &Discount{Code: coupon.Code, Amount: amount}
	e.persist(ctx, stored)
	e.bus.Notify(events.Notification{
		Message: fmt.Sprintf("Coupon %s applied", coupon.Code),
		Type:    events.NotifySuccess,
	})
	return Result{Success: true}
}

// ClearDiscount drops the applied coupon, if any.
func (e *Engine) ClearDiscount(ctx context.Context) Result {
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	stored := e.load(ctx)
	if stored.Discount == nil {
		return Result{Success: true}
	}
	stored.Discount = nil
	e.persist(ctx, stored)
	return Result{Success: true}
}

// SetCoOpMember flips the membership pricing flag.
func (e *Engine) SetCoOpMember(ctx context.Context, member bool) Result {
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	stored := e.load(ctx)
	if stored.IsCoOpMember == member {
		return Result{Success: true}
	}
	stored.IsCoOpMember = member
	e.persist(ctx, stored)
	return Result{Success: true}
}

// Clear empties the cart unconditionally, keeping the membership flag.
func (e *Engine) Clear(ctx context.Context) Result {
	if !kvstore.Available(e.store) {
		return failure(CodeStorageUnavailable, msgStorageUnavailable)
	}

	stored := e.load(ctx)
	stored.Items = nil
	stored.Discount = nil
	e.persist(ctx, stored)
	return Result{Success: true}
}

func findVariant(product Product, variantID string) *Variant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}

// load reads the stored aggregate; unreadable data is purged and reads as an
// empty cart.
func (e *Engine) load(ctx context.Context) storedCart {
	raw, ok := e.store.Get(ctx, StorageKey)
	if !ok {
		return storedCart{}
	}

	var stored storedCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("cart: purging unreadable stored data", map[string]interface{}{
			"key": StorageKey,
		})
		e.store.Remove(ctx, StorageKey)
		return storedCart{}
	}
	return stored
}

// persist writes the full aggregate as one value, then signals observers.
// The event fires only after the write.
func (e *Engine) persist(ctx context.Context, stored storedCart) {
	data, err := json.Marshal(stored)
	if err != nil {
		logger.Error("cart: failed to encode aggregate", err)
		return
	}
	e.store.Set(ctx, StorageKey, string(data))
	e.bus.Publish(events.CartUpdated)
}
