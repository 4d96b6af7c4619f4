package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eversol-backend/internal/domains/catalog"
)

const collectionName = "products"

// Mongo loads the product list that feeds the filter pipeline.
type Mongo struct {
	collection *mongo.Collection
}

// NewMongo creates a repository bound to the products collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{collection: db.Collection(collectionName)}
}

// ListProducts returns every product, newest first.
func (r *Mongo) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product by id.
func (r *Mongo) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// ListCategories returns the distinct category names in the catalog.
func (r *Mongo) ListCategories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
