package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Yulia51188/HistoryQuiz/internal/config"
)

// Redis stores sessions in a Redis database.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies connectivity before returning.
func NewRedis(cfg config.RedisConfig, log *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("redis connect failed",
			slog.String("event", "store.connect"),
			slog.String("host", cfg.Host),
			slog.String("port", cfg.Port),
			slog.String("err", err.Error()),
		)
		_ = client.Close()
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	log.Info("redis connected",
		slog.String("event", "store.connect"),
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.Int("db", cfg.DB),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)

	return &Redis{client: client}, nil
}

// Get returns the value for key or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", unavailable("redis get", err)
	}
	return val, nil
}

// Set stores a single key without expiry.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return unavailable("redis set", err)
	}
	return nil
}

// SetMulti applies all writes in a single MSET.
func (r *Redis) SetMulti(ctx context.Context, kv map[string]string) error {
	if len(kv) == 0 {
		return nil
	}
	pairs := make([]interface{}, 0, len(kv)*2)
	for k, v := range kv {
		pairs = append(pairs, k, v)
	}
	if err := r.client.MSet(ctx, pairs...).Err(); err != nil {
		return unavailable("redis mset", err)
	}
	return nil
}

// Close releases the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
