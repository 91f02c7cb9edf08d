package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// RedisStorage implements Storage using Redis.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveSession(ctx context.Context, data *state.SaveData) error {
	blob, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal save data", "error", err)
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	if err := r.client.Set(ctx, SaveKey, string(blob), 0).Err(); err != nil {
		r.logger.Error("Failed to write save slot", "error", err)
		return fmt.Errorf("failed to write save slot: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context) (*state.SaveData, error) {
	blob, err := r.client.Get(ctx, SaveKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // empty slot is not an error
		}
		r.logger.Error("Failed to read save slot", "error", err)
		return nil, fmt.Errorf("failed to read save slot: %w", err)
	}
	if blob == "" {
		return nil, nil
	}

	var data state.SaveData
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		r.logger.Warn("Save slot holds malformed JSON", "error", err)
		return nil, nil // corrupt saves read as absent
	}
	return &data, nil
}

func (r *RedisStorage) HasSession(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, SaveKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check save slot: %w", err)
	}
	return n > 0, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context) error {
	if err := r.client.Del(ctx, SaveKey).Err(); err != nil {
		return fmt.Errorf("failed to clear save slot: %w", err)
	}
	return nil
}
