// Package cache provides the Redis-backed read cache used on hotel and room
// query paths. Cache failures degrade to direct reads; they are logged and
// never surfaced to callers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Service wraps a Redis client with JSON serialization and pattern-based
// invalidation.
type Service struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a cache Service. A nil client disables caching: Get
// always misses and writes are no-ops.
func NewService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient connects to Redis and verifies the connection. Returns nil
// when Redis is unreachable so the service can run uncached.
func NewRedisClient(addr, password string, db int, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, running without cache", zap.Error(err))
		return nil
	}
	return client
}

// Get loads the value at key into out. Returns ErrMiss when absent or when
// caching is disabled.
func (s *Service) Get(ctx context.Context, key string, out interface{}) error {
	if s.client == nil {
		return ErrMiss
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return ErrMiss
	}
	return json.Unmarshal(raw, out)
}

// Set stores value at key with the configured TTL.
func (s *Service) Set(ctx context.Context, key string, value interface{}) {
	if s.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes exact keys.
func (s *Service) Delete(ctx context.Context, keys ...string) {
	if s.client == nil || len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("cache delete failed", zap.Error(err))
	}
}

// DeletePattern removes every key matching a glob pattern, scanning in
// batches to avoid blocking Redis.
func (s *Service) DeletePattern(ctx context.Context, pattern string) {
	if s.client == nil {
		return
	}
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			s.Delete(ctx, keys...)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
	s.Delete(ctx, keys...)
}
