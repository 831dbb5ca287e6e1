package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"menu-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const menuVersionKey = "menu:version"

// RedisMenuCache stores serialized menu pages keyed by query plus a version
// counter. Mutations bump the counter, so stale pages simply stop being
// addressable and age out with the TTL.
type RedisMenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{Client: client, TTL: ttl}
}

func (c *RedisMenuCache) pageKey(ctx context.Context, q domain.MenuQuery) (string, error) {
	version, err := c.Client.Get(ctx, menuVersionKey).Result()
	if err == redis.Nil {
		version = "0"
	} else if err != nil {
		return "", err
	}

	category := ""
	if q.Category != nil {
		category = string(*q.Category)
	}
	available := ""
	if q.Available != nil {
		available = fmt.Sprintf("%t", *q.Available)
	}
	return fmt.Sprintf("menu:v%s:%s|%s|%s|%s|%s|%d|%d",
		version, domain.NormalizedName(q.Search), category, available, q.Sort, q.Order, q.Page, q.PageSize), nil
}

// GetPage resolves the current version exactly once and hands the resulting
// key back to the caller. SetPage never re-reads the version: writing under
// the key observed at read time means a concurrent Invalidate orphans an
// in-flight page instead of storing pre-mutation data under the new version.
func (c *RedisMenuCache) GetPage(ctx context.Context, q domain.MenuQuery) (*domain.Page, string, error) {
	key, err := c.pageKey(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, key, nil
	}
	if err != nil {
		return nil, key, err
	}
	var page domain.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, key, err
	}
	return &page, key, nil
}

func (c *RedisMenuCache) SetPage(ctx context.Context, key string, page *domain.Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, c.TTL).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.Client.Incr(ctx, menuVersionKey).Err()
}
