package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lastPing:"

type RedisRecencyCache struct {
	client *redis.Client
}

func NewRedisRecencyCache(host string, port int) (*RedisRecencyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRecencyCache{client: client}, nil
}

// Get returns the last known position for a device, or nil on a miss.
func (c *RedisRecencyCache) Get(ctx context.Context, deviceID string) (*model.RecencyRecord, error) {
	value, err := c.client.Get(ctx, keyPrefix+deviceID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	rec := &model.RecencyRecord{}
	if err := json.Unmarshal([]byte(value), rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recency record: %w", err)
	}
	return rec, nil
}

func (c *RedisRecencyCache) Set(ctx context.Context, deviceID string, rec model.RecencyRecord, ttl time.Duration) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recency record: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+deviceID, body, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes a device's cached position, used by administrative cleanup.
func (c *RedisRecencyCache) Delete(ctx context.Context, deviceID string) error {
	if err := c.client.Del(ctx, keyPrefix+deviceID).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *RedisRecencyCache) Close() error {
	return c.client.Close()
}
