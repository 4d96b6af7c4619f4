package admin

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidation(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "admin@eversol.in", Password: "secret"}.Validate())
	assert.Error(t, LoginRequest{Email: "not-an-email", Password: "secret"}.Validate())
	assert.Error(t, LoginRequest{Email: "admin@eversol.in"}.Validate())
}

func TestUpdateOrderStatusRequestValidation(t *testing.T) {
	for _, status := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.NoError(t, UpdateOrderStatusRequest{Status: status}.Validate())
	}
	assert.Error(t, UpdateOrderStatusRequest{Status: "lost"}.Validate())
	assert.Error(t, UpdateOrderStatusRequest{}.Validate())
}

func TestProductRequestValidation(t *testing.T) {
	valid := ProductRequest{Name: "Organic Jaggery", Category: "Pantry", Price: decimal.NewFromInt(90), Stock: 5}
	assert.NoError(t, valid.Validate())

	missingCategory := valid
	missingCategory.Category = ""
	assert.Error(t, missingCategory.Validate())

	negativeStock := valid
	negativeStock.Stock = -1
	assert.Error(t, negativeStock.Validate())
}

func TestCouponRequestValidation(t *testing.T) {
	valid := CouponRequest{
		Code:          "WELCOME10",
		DiscountType:  DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		ValidUntil:    time.Now().AddDate(0, 1, 0),
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.DiscountType = "bogo"
	assert.Error(t, badType.Validate())

	noExpiry := valid
	noExpiry.ValidUntil = time.Time{}
	assert.Error(t, noExpiry.Validate())
}

func TestOrderFilterNormalized(t *testing.T) {
	// A zero limit would otherwise reach the pagination division.
	f := OrderFilter{Page: 0, Limit: 0}.normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)

	f = OrderFilter{Page: -3, Limit: -1}.normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)

	f = OrderFilter{Status: OrderShipped, Page: 4, Limit: 25}.normalized()
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, OrderShipped, f.Status)
}

func TestStartOfDayUsesLocalZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2026, time.August, 31, 1, 30, 0, 0, ist)

	start := startOfDay(late)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, ist), start)
	assert.Equal(t, ist, start.Location())

	// In UTC this instant is still Aug 30; the day boundary must follow the
	// deployment zone, not UTC.
	assert.Equal(t, 30, late.UTC().Day())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "fresh-vegetables", slugify("", "Fresh Vegetables"))
	assert.Equal(t, "given-slug", slugify("Given Slug", "ignored"))
	assert.Equal(t, "dairy", slugify("  Dairy  ", ""))
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
}
