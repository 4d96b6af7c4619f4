package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
)

type staticCoupons map[string]Coupon

func (s staticCoupons) ResolveCoupon(ctx context.Context, code string) (*Coupon, error) {
	c, ok := s[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type failingCoupons struct{}

func (failingCoupons) ResolveCoupon(ctx context.Context, code string) (*Coupon, error) {
	return nil, errors.New("lookup unavailable")
}

func testProduct() Product {
	return Product{
		ID:       "prod_1",
		Name:     "Organic Tomatoes",
		ImageURL: "/images/tomatoes.jpg",
		Variants: []Variant{
			{ID: "var_500g", Name: "500g", Price: decimal.NewFromInt(100), CoopPrice: decimal.NewFromInt(85), Stock: 10},
			{ID: "var_1kg", Name: "1kg", Price: decimal.NewFromInt(180), CoopPrice: decimal.NewFromInt(155), Stock: 4},
		},
	}
}

func newTestEngine(opts ...Option) (*Engine, kvstore.Store, *events.Bus) {
	store := kvstore.NewMemory()
	bus := events.NewBus()
	return NewEngine(store, bus, opts...), store, bus
}

func TestAddItemInsertsAndIncrements(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)
	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 3).Success)

	state := engine.State(ctx)
	require.Len(t, state.Items, 1, "same variant merges into one line")
	assert.Equal(t, 5, state.Items[0].Quantity)
	assert.Equal(t, 5, state.ItemCount)
	assert.True(t, decimal.NewFromInt(500).Equal(state.Subtotal))
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	result := engine.AddItem(ctx, testProduct(), "var_500g", 0)
	assert.False(t, result.Success)
	assert.Equal(t, CodeValidation, result.Code)

	result = engine.AddItem(ctx, testProduct(), "var_missing", 1)
	assert.False(t, result.Success)
	assert.Equal(t, CodeNotFound, result.Code)
}

func TestStockBoundaryLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	engine, store, _ := newTestEngine()

	require.True(t, engine.AddItem(ctx, testProduct(), "var_1kg", 3).Success)
	before, _ := store.Get(ctx, StorageKey)

	result := engine.AddItem(ctx, testProduct(), "var_1kg", 2)
	require.False(t, result.Success, "3 + 2 exceeds stock of 4")
	assert.Equal(t, CodeCapacityExceeded, result.Code)

	after, _ := store.Get(ctx, StorageKey)
	assert.Equal(t, before, after, "stored aggregate is byte-for-byte unchanged")
}

func TestCoOpPricingAndPercentageCoupon(t *testing.T) {
	ctx := context.Background()
	coupons := staticCoupons{
		"COOP10": {Code: "COOP10", DiscountType: DiscountPercentage, DiscountValue: decimal.NewFromInt(10), Active: true},
	}
	engine, _, _ := newTestEngine(WithCouponResolver(coupons))

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)
	require.True(t, engine.SetCoOpMember(ctx, true).Success)

	state := engine.State(ctx)
	assert.True(t, decimal.NewFromInt(170).Equal(state.Subtotal), "member pays the co-op price: 85 x 2")

	require.True(t, engine.ApplyDiscount(ctx, "COOP10").Success)
	state = engine.State(ctx)
	require.NotNil(t, state.Discount)
	assert.True(t, decimal.NewFromInt(17).Equal(state.Discount.Amount))
	assert.True(t, decimal.NewFromInt(153).Equal(state.Total), "170 - 17 with zero tax")
}

func TestTaxAppliedToDiscountedSubtotal(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(WithTaxRate(decimal.NewFromFloat(0.05)))

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)

	state := engine.State(ctx)
	assert.True(t, decimal.NewFromInt(200).Equal(state.Subtotal))
	assert.True(t, decimal.NewFromInt(10).Equal(state.Tax))
	assert.True(t, decimal.NewFromInt(210).Equal(state.Total))
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)
	require.True(t, engine.AddItem(ctx, testProduct(), "var_1kg", 1).Success)

	state := engine.State(ctx)
	require.Len(t, state.Items, 2, "two variants of one product are separate lines")

	secondLine := state.Items[1].ID
	require.True(t, engine.UpdateQuantity(ctx, secondLine, 0).Success)

	state = engine.State(ctx)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "var_500g", state.Items[0].VariantID)
	assert.Equal(t, state.Items[0].Quantity, state.ItemCount)
}

func TestUpdateQuantityRechecksStockSnapshot(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	require.True(t, engine.AddItem(ctx, testProduct(), "var_1kg", 1).Success)
	itemID := engine.State(ctx).Items[0].ID

	result := engine.UpdateQuantity(ctx, itemID, 5)
	assert.False(t, result.Success, "stock snapshot is 4")
	assert.Equal(t, CodeCapacityExceeded, result.Code)

	require.True(t, engine.UpdateQuantity(ctx, itemID, 4).Success)
	assert.Equal(t, 4, engine.State(ctx).Items[0].Quantity)

	result = engine.UpdateQuantity(ctx, "cart_missing", 1)
	assert.False(t, result.Success)
	assert.Equal(t, CodeNotFound, result.Code)
}

func TestRemoveAbsentItemFiresNoEvent(t *testing.T) {
	ctx := context.Background()
	engine, _, bus := newTestEngine()

	fired := false
	unsubscribe := bus.Subscribe(events.CartUpdated, func() { fired = true })
	defer unsubscribe()

	result := engine.RemoveItem(ctx, "cart_missing")
	assert.True(t, result.Success)
	assert.False(t, fired, "no write means no event")
}

func TestDiscountMinPurchaseGateAndCap(t *testing.T) {
	ctx := context.Background()
	coupons := staticCoupons{
		"BIG50": {
			Code:          "BIG50",
			DiscountType:  DiscountPercentage,
			DiscountValue: decimal.NewFromInt(50),
			MinPurchase:   decimal.NewFromInt(500),
			MaxDiscount:   decimal.NewFromInt(60),
			Active:        true,
		},
	}
	engine, _, _ := newTestEngine(WithCouponResolver(coupons))

	// Subtotal 200 is below the gate.
	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)
	result := engine.ApplyDiscount(ctx, "BIG50")
	assert.False(t, result.Success)
	assert.Equal(t, CodeValidation, result.Code)
	assert.Nil(t, engine.State(ctx).Discount)

	// Subtotal 600 passes the gate; 50% of 600 is capped at 60.
	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 4).Success)
	require.True(t, engine.ApplyDiscount(ctx, "BIG50").Success)
	state := engine.State(ctx)
	require.NotNil(t, state.Discount)
	assert.True(t, decimal.NewFromInt(60).Equal(state.Discount.Amount))
}

func TestFixedDiscountClampsToSubtotal(t *testing.T) {
	ctx := context.Background()
	coupons := staticCoupons{
		"FLAT500": {Code: "FLAT500", DiscountType: DiscountFixed, DiscountValue: decimal.NewFromInt(500), Active: true},
	}
	engine, _, _ := newTestEngine(WithCouponResolver(coupons))

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 2).Success)
	require.True(t, engine.ApplyDiscount(ctx, "FLAT500").Success)

	state := engine.State(ctx)
	require.NotNil(t, state.Discount)
	assert.True(t, decimal.NewFromInt(200).Equal(state.Discount.Amount), "discount never exceeds subtotal")
	assert.True(t, state.Total.IsZero())
}

func TestApplyDiscountFailures(t *testing.T) {
	ctx := context.Background()

	engine, _, _ := newTestEngine(WithCouponResolver(staticCoupons{}))
	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 1).Success)

	result := engine.ApplyDiscount(ctx, "NOPE")
	assert.False(t, result.Success)
	assert.Equal(t, CodeNotFound, result.Code)

	result = engine.ApplyDiscount(ctx, "")
	assert.Equal(t, CodeValidation, result.Code)

	engine, _, _ = newTestEngine(WithCouponResolver(failingCoupons{}))
	result = engine.ApplyDiscount(ctx, "ANY")
	assert.False(t, result.Success)

	inactive := staticCoupons{
		"OLD": {Code: "OLD", DiscountType: DiscountFixed, DiscountValue: decimal.NewFromInt(10)},
	}
	engine, _, _ = newTestEngine(WithCouponResolver(inactive))
	result = engine.ApplyDiscount(ctx, "OLD")
	assert.False(t, result.Success)
}

func TestClearDiscountAndClear(t *testing.T) {
	ctx := context.Background()
	coupons := staticCoupons{
		"TEN": {Code: "TEN", DiscountType: DiscountFixed, DiscountValue: decimal.NewFromInt(10), Active: true},
	}
	engine, _, _ := newTestEngine(WithCouponResolver(coupons))

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 1).Success)
	require.True(t, engine.SetCoOpMember(ctx, true).Success)
	require.True(t, engine.ApplyDiscount(ctx, "TEN").Success)

	require.True(t, engine.ClearDiscount(ctx).Success)
	assert.Nil(t, engine.State(ctx).Discount)

	require.True(t, engine.Clear(ctx).Success)
	state := engine.State(ctx)
	assert.Empty(t, state.Items)
	assert.True(t, state.IsCoOpMember, "membership flag survives a cart clear")
	assert.True(t, state.Subtotal.IsZero())
}

func TestEventFiresAfterPersist(t *testing.T) {
	ctx := context.Background()
	engine, store, bus := newTestEngine()

	var seen string
	unsubscribe := bus.Subscribe(events.CartUpdated, func() {
		seen, _ = store.Get(ctx, StorageKey)
	})
	defer unsubscribe()

	require.True(t, engine.AddItem(ctx, testProduct(), "var_500g", 1).Success)
	assert.NotEmpty(t, seen, "observer already sees the written aggregate")
}

func TestCorruptStoredCartIsPurged(t *testing.T) {
	ctx := context.Background()
	engine, store, _ := newTestEngine()

	store.Set(ctx, StorageKey, "{not json")
	state := engine.State(ctx)
	assert.Empty(t, state.Items)

	_, ok := store.Get(ctx, StorageKey)
	assert.False(t, ok, "corrupt value is removed")
}

func TestOperationsWithoutStorageFail(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(kvstore.Unavailable{}, events.NewBus())

	result := engine.AddItem(ctx, testProduct(), "var_500g", 1)
	assert.False(t, result.Success)
	assert.Equal(t, CodeStorageUnavailable, result.Code)

	assert.False(t, engine.UpdateQuantity(ctx, "x", 2).Success)
	assert.False(t, engine.RemoveItem(ctx, "x").Success)
	assert.False(t, engine.ApplyDiscount(ctx, "TEN").Success)
	assert.False(t, engine.SetCoOpMember(ctx, true).Success)
	assert.False(t, engine.Clear(ctx).Success)
	assert.Equal(t, 0, engine.Count(ctx))
}

func TestAddItemDirectDefaultsToFirstVariant(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	require.True(t, engine.AddItemDirect(ctx, testProduct(), "", 1).Success)
	assert.Equal(t, "var_500g", engine.State(ctx).Items[0].VariantID)

	result := engine.AddItemDirect(ctx, Product{ID: "p", Name: "No Variants"}, "", 1)
	assert.False(t, result.Success)
	assert.Equal(t, CodeNotFound, result.Code)
}
