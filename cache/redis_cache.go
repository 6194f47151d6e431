package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rakadenny/tablepos-backend/models"
)

const settlementKeyPrefix = "settlement:"

// RedisSettlementCache caches finalized settlements with a TTL.
type RedisSettlementCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSettlementCache(addr string, password string, db int, ttl time.Duration) *RedisSettlementCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisSettlementCache{client: client, ttl: ttl}
}

func (c *RedisSettlementCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSettlementCache) Close() error {
	return c.client.Close()
}

func (c *RedisSettlementCache) Get(ctx context.Context, id string) (*models.Settlement, bool, error) {
	val, err := c.client.Get(ctx, settlementKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var settlement models.Settlement
	if err := json.Unmarshal([]byte(val), &settlement); err != nil {
		return nil, false, err
	}
	return &settlement, true, nil
}

func (c *RedisSettlementCache) Set(ctx context.Context, id string, settlement *models.Settlement) error {
	if settlement == nil {
		return nil
	}
	payload, err := json.Marshal(settlement)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settlementKeyPrefix+id, payload, c.ttl).Err()
}
