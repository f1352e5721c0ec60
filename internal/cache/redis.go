package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, storeID string) ([]domain.ParkedOrder, error) {
	data, err := r.client.Get(ctx, cacheKey(storeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var orders []domain.ParkedOrder
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal parked orders failed: %w", err)
	}
	return orders, nil
}

func (r RedisCache) Set(ctx context.Context, storeID string, orders []domain.ParkedOrder) error {
	if orders == nil {
		orders = []domain.ParkedOrder{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal parked orders failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(15)) * time.Second
	if err := r.client.Set(ctx, cacheKey(storeID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, storeID string) error {
	if err := r.client.Del(ctx, cacheKey(storeID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(storeID string) string {
	return fmt.Sprintf("hang-orders:%s", storeID)
}
