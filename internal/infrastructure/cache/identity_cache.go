package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
)

func identityKey(userID uuid.UUID) string {
	return "identity:" + userID.String()
}

// RedisIdentityCache хранит разрешённые identity в Redis, чтобы не ходить в БД на каждый запрос.
type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdentityCache(client *redis.Client, ttl time.Duration) *RedisIdentityCache {
	return &RedisIdentityCache{client: client, ttl: ttl}
}

// Get возвращает (identity, true, nil) при попадании и (_, false, nil) при промахе.
func (c *RedisIdentityCache) Get(ctx context.Context, userID uuid.UUID) (entity.Identity, bool, error) {
	raw, err := c.client.Get(ctx, identityKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Identity{}, false, nil
	}
	if err != nil {
		return entity.Identity{}, false, err
	}

	var identity entity.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return entity.Identity{}, false, err
	}
	return identity, true, nil
}

func (c *RedisIdentityCache) Set(ctx context.Context, identity entity.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, identityKey(identity.ID), raw, c.ttl).Err()
}

func (c *RedisIdentityCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, identityKey(userID)).Err()
}
