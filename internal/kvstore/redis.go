package kvstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"eversol-backend/pkg/logger"
)

// Redis is the durable Store used in a server deployment. Keys are scoped
// with a prefix so one client can carry the state of many customers.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(host, password string, db int) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:         host,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Ping verifies the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Scoped returns a view of the store whose keys are prefixed, one prefix
// per customer.
func (r *Redis) Scoped(prefix string) Store {
	return &Redis{client: r.client, prefix: prefix}
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Error("kvstore: redis get failed", err)
		return "", false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		logger.Error("kvstore: redis set failed", err)
	}
}

func (r *Redis) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		logger.Error("kvstore: redis del failed", err)
	}
}
