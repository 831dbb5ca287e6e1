package storage

import (
	"context"
	"testing"
	"time"

	"menu-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) *RedisMenuCache {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewRedisMenuCache(client, time.Minute)
}

func TestRedisMenuCache_MissThenHit(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	query := domain.DefaultMenuQuery()

	page, key, err := cache.GetPage(ctx, query)
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.NotEmpty(t, key)

	stored := &domain.Page{Page: 1, PageSize: 10, Total: 1, Items: []domain.Item{{ID: "a", Name: "Burger"}}}
	assert.NoError(t, cache.SetPage(ctx, key, stored))

	page, _, err = cache.GetPage(ctx, query)
	assert.NoError(t, err)
	if assert.NotNil(t, page) {
		assert.Equal(t, 1, page.Total)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, "a", page.Items[0].ID)
		assert.Equal(t, "Burger", page.Items[0].Name)
	}
}

func TestRedisMenuCache_DistinctQueriesDistinctKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := domain.DefaultMenuQuery()
	second := domain.DefaultMenuQuery()
	second.Page = 2

	_, firstKey, err := cache.GetPage(ctx, first)
	assert.NoError(t, err)
	assert.NoError(t, cache.SetPage(ctx, firstKey, &domain.Page{Page: 1, PageSize: 10}))

	page, secondKey, err := cache.GetPage(ctx, second)
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.NotEqual(t, firstKey, secondKey)
}

func TestRedisMenuCache_InvalidateDropsStalePages(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	query := domain.DefaultMenuQuery()

	_, key, err := cache.GetPage(ctx, query)
	assert.NoError(t, err)
	assert.NoError(t, cache.SetPage(ctx, key, &domain.Page{Page: 1, PageSize: 10, Total: 5}))
	assert.NoError(t, cache.Invalidate(ctx))

	page, _, err := cache.GetPage(ctx, query)
	assert.NoError(t, err)
	assert.Nil(t, page)
}

func TestRedisMenuCache_InvalidationFencesInFlightWrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	query := domain.DefaultMenuQuery()

	// A reader misses and starts computing a page under the current version.
	_, key, err := cache.GetPage(ctx, query)
	assert.NoError(t, err)

	// A mutation lands before the reader finishes.
	assert.NoError(t, cache.Invalidate(ctx))

	// The reader's write goes to the superseded version, so the current
	// version still misses instead of serving pre-mutation data.
	stale := &domain.Page{Page: 1, PageSize: 10, Total: 1, Items: []domain.Item{{ID: "old"}}}
	assert.NoError(t, cache.SetPage(ctx, key, stale))

	page, _, err := cache.GetPage(ctx, query)
	assert.NoError(t, err)
	assert.Nil(t, page)
}
