package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"eversol-backend/internal/config"
	"eversol-backend/pkg/logger"
)

// NewMongoDatabase connects to MongoDB and verifies the connection with a
// ping before returning the database handle.
func NewMongoDatabase(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", map[string]interface{}{
		"database": cfg.Database,
	})

	return client.Database(cfg.Database), nil
}

// Disconnect closes the client behind db, best-effort.
func Disconnect(ctx context.Context, db *mongo.Database) {
	if db == nil {
		return
	}
	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(closeCtx); err != nil {
		logger.Error("Failed to disconnect from MongoDB", err)
	}
}
