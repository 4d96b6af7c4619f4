package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eversol-backend/internal/domains/cart"
)

// Collection names used by the back office.
const (
	collAdmins     = "admins"
	collOrders     = "orders"
	collProducts   = "products"
	collCustomers  = "users"
	collCategories = "categories"
	collCoupons    = "coupons"
	collBanners    = "banners"
	collReviews    = "reviews"
)

// Repository is the MongoDB data access layer for the back office.
type Repository struct {
	db *mongo.Database
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// OrderFilter narrows ListOrders.
type OrderFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// normalized returns the filter with paging clamped to usable values, so
// every consumer divides and skips by the same numbers.
func (f OrderFilter) normalized() OrderFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	return f
}

// --- accounts ---

// GetAccountByEmail returns the admin account for email, or nil when absent.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.Collection(collAdmins).FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin account: %w", err)
	}
	return &account, nil
}

// --- orders ---

func (r *Repository) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		window := bson.M{}
		if filter.StartDate != nil {
			window["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			window["$lte"] = *filter.EndDate
		}
		query["created_at"] = window
	}

	filter = filter.normalized()

	coll := r.db.Collection(collOrders)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, total, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	err := r.db.Collection(collOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus rewrites the order's status; delivered orders are also
// stamped with the delivery time.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	now := time.Now()
	update := bson.M{"status": status, "updated_at": now}
	if status == OrderDelivered {
		update["is_delivered"] = true
		update["delivered_at"] = now
	}

	result, err := r.db.Collection(collOrders).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.GetOrder(ctx, id)
}

func (r *Repository) DeleteOrder(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Collection(collOrders).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// --- products ---

func (r *Repository) ListAdminProducts(ctx context.Context) ([]Product, error) {
	return listAll[Product](ctx, r.db.Collection(collProducts))
}

func (r *Repository) GetAdminProduct(ctx context.Context, id string) (*Product, error) {
	return getByID[Product](ctx, r.db.Collection(collProducts), id)
}

func (r *Repository) CreateProduct(ctx context.Context, product *Product) error {
	return insertOne(ctx, r.db.Collection(collProducts), product)
}

func (r *Repository) ReplaceProduct(ctx context.Context, product *Product) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collProducts), product.ID, product)
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collProducts), id)
}

// GetCartProduct projects a product record into the shape the cart engine
// snapshots from, as a single standard variant. Inactive and unknown
// products resolve to nil.
func (r *Repository) GetCartProduct(ctx context.Context, id string) (*cart.Product, error) {
	product, err := r.GetAdminProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, nil
	}
	return &cart.Product{
		ID:       product.ID,
		Name:     product.Name,
		ImageURL: product.ImageURL,
		Variants: []cart.Variant{{
			ID:        "standard",
			Name:      "Standard",
			Price:     product.Price,
			CoopPrice: product.CoopPrice,
			Stock:     product.Stock,
		}},
	}, nil
}

// --- customers ---

func (r *Repository) ListCustomers(ctx context.Context) ([]Customer, error) {
	cursor, err := r.db.Collection(collCustomers).Find(ctx, bson.M{"role": "user"},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return getByID[Customer](ctx, r.db.Collection(collCustomers), id)
}

func (r *Repository) ReplaceCustomer(ctx context.Context, customer *Customer) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collCustomers), customer.ID, customer)
}

func (r *Repository) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collCustomers), id)
}

// --- categories ---

func (r *Repository) ListAdminCategories(ctx context.Context) ([]Category, error) {
	return listAll[Category](ctx, r.db.Collection(collCategories))
}

func (r *Repository) GetCategory(ctx context.Context, id string) (*Category, error) {
	return getByID[Category](ctx, r.db.Collection(collCategories), id)
}

func (r *Repository) CreateCategory(ctx context.Context, category *Category) error {
	return insertOne(ctx, r.db.Collection(collCategories), category)
}

func (r *Repository) ReplaceCategory(ctx context.Context, category *Category) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collCategories), category.ID, category)
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collCategories), id)
}

// --- coupons ---

func (r *Repository) ListCoupons(ctx context.Context) ([]Coupon, error) {
	return listAll[Coupon](ctx, r.db.Collection(collCoupons))
}

func (r *Repository) GetCoupon(ctx context.Context, id string) (*Coupon, error) {
	return getByID[Coupon](ctx, r.db.Collection(collCoupons), id)
}

func (r *Repository) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	return insertOne(ctx, r.db.Collection(collCoupons), coupon)
}

func (r *Repository) ReplaceCoupon(ctx context.Context, coupon *Coupon) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collCoupons), coupon.ID, coupon)
}

func (r *Repository) DeleteCoupon(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collCoupons), id)
}

// CouponCodeExists reports whether another coupon already uses code.
func (r *Repository) CouponCodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	query := bson.M{"code": code}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.db.Collection(collCoupons).CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}
	return count > 0, nil
}

// ResolveCoupon implements the cart engine's coupon lookup. Only currently
// valid coupons resolve.
func (r *Repository) ResolveCoupon(ctx context.Context, code string) (*cart.Coupon, error) {
	var coupon Coupon
	err := r.db.Collection(collCoupons).FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve coupon %s: %w", code, err)
	}

	now := time.Now()
	active := coupon.IsActive &&
		!now.Before(coupon.ValidFrom) &&
		(coupon.ValidUntil.IsZero() || !now.After(coupon.ValidUntil)) &&
		(coupon.UsageLimit == 0 || coupon.UsedCount < coupon.UsageLimit)

	return &cart.Coupon{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
		MinPurchase:   coupon.MinPurchase,
		MaxDiscount:   coupon.MaxDiscount,
		Active:        active,
	}, nil
}

// --- banners ---

func (r *Repository) ListBanners(ctx context.Context) ([]Banner, error) {
	cursor, err := r.db.Collection(collBanners).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}
	return banners, nil
}

func (r *Repository) GetBanner(ctx context.Context, id string) (*Banner, error) {
	return getByID[Banner](ctx, r.db.Collection(collBanners), id)
}

func (r *Repository) CreateBanner(ctx context.Context, banner *Banner) error {
	return insertOne(ctx, r.db.Collection(collBanners), banner)
}

func (r *Repository) ReplaceBanner(ctx context.Context, banner *Banner) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collBanners), banner.ID, banner)
}

func (r *Repository) DeleteBanner(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collBanners), id)
}

// --- reviews ---

func (r *Repository) ListReviews(ctx context.Context) ([]Review, error) {
	return listAll[Review](ctx, r.db.Collection(collReviews))
}

func (r *Repository) GetReview(ctx context.Context, id string) (*Review, error) {
	return getByID[Review](ctx, r.db.Collection(collReviews), id)
}

func (r *Repository) ReplaceReview(ctx context.Context, review *Review) (bool, error) {
	return replaceByID(ctx, r.db.Collection(collReviews), review.ID, review)
}

func (r *Repository) DeleteReview(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db.Collection(collReviews), id)
}

// --- analytics ---

// GetOverview assembles the dashboard numbers.
func (r *Repository) GetOverview(ctx context.Context) (*Overview, error) {
	orders := r.db.Collection(collOrders)

	totalOrders, err := orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	totalCustomers, err := r.db.Collection(collCustomers).CountDocuments(ctx, bson.M{"role": "user"})
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	totalProducts, err := r.db.Collection(collProducts).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	todayOrders, err := orders.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": startOfDay(time.Now())}})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}

	byStatus := make(map[string]int64, len(orderStatuses))
	for _, status := range orderStatuses {
		s := status.(string)
		count, err := orders.CountDocuments(ctx, bson.M{"status": s})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", s, err)
		}
		byStatus[s] = count
	}

	totalRevenue, err := r.sumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	recentCursor, err := orders.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(5))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer recentCursor.Close(ctx)
	var recent []Order
	if err := recentCursor.All(ctx, &recent); err != nil {
		return nil, fmt.Errorf("failed to decode recent orders: %w", err)
	}

	topProducts, err := r.topProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue,
		TotalCustomers: totalCustomers,
		TotalProducts:  totalProducts,
		TodayOrders:    todayOrders,
		OrdersByStatus: byStatus,
		RecentOrders:   recent,
		TopProducts:    topProducts,
	}, nil
}

func (r *Repository) sumRevenue(ctx context.Context) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
	cursor, err := r.db.Collection(collOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(results[0].Total), nil
}

func (r *Repository) topProducts(ctx context.Context) ([]TopProduct, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.product_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$items.product_name"}}},
			{Key: "units_sold", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$items.quantity", "$items.price"}},
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "units_sold", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 5}},
	}
	cursor, err := r.db.Collection(collOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	defer cursor.Close(ctx)

	var top []TopProduct
	if err := cursor.All(ctx, &top); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}
	return top, nil
}

// startOfDay returns midnight of t's day in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// --- generic helpers ---

func listAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func getByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", coll.Name(), id, err)
	}
	return &doc, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func replaceByID(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) (bool, error) {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return false, fmt.Errorf("failed to replace %s %s: %w", coll.Name(), id, err)
	}
	return result.MatchedCount > 0, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", coll.Name(), id, err)
	}
	return result.DeletedCount > 0, nil
}
