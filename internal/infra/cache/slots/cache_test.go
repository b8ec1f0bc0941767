package slots

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, 5*time.Minute, nopLogger{}), mr
}

var day = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestCache_MissThenHit(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	q := Query{Date: day, MasterID: ptr.Ptr(int64(1))}

	lookup := cache.Get(ctx, q)
	assert.False(t, lookup.Hit)

	cache.Put(ctx, lookup, []types.TimeString{"10:00", "14:00"})

	again := cache.Get(ctx, q)
	require.True(t, again.Hit)
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, again.Times)

	assert.True(t, mr.Exists("slots:2024-06-10:v0:1:any:any"))
	assert.Equal(t, 5*time.Minute, mr.TTL("slots:2024-06-10:v0:1:any:any"))
}

func TestCache_EmptyListIsCached(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()
	q := Query{Date: day}

	cache.Put(ctx, cache.Get(ctx, q), nil)

	lookup := cache.Get(ctx, q)
	assert.True(t, lookup.Hit)
	assert.Empty(t, lookup.Times)
}

func TestCache_InvalidateDate(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	q := Query{Date: day, SalonID: ptr.Ptr(int64(2))}

	cache.Put(ctx, cache.Get(ctx, q), []types.TimeString{"10:00"})
	cache.InvalidateDate(ctx, day)

	lookup := cache.Get(ctx, q)
	assert.False(t, lookup.Hit)

	ver, err := mr.Get("slots:ver:2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, "1", ver)
	assert.Equal(t, minVersionTTL, mr.TTL("slots:ver:2024-06-10"))

	// другие даты не затрагиваются
	other := Query{Date: day.AddDate(0, 0, 1)}
	cache.Put(ctx, cache.Get(ctx, other), []types.TimeString{"11:00"})
	cache.InvalidateDate(ctx, day)
	assert.True(t, cache.Get(ctx, other).Hit)
}

func TestCache_StalePutAfterInvalidationIsInvisible(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()
	q := Query{Date: day}

	lookup := cache.Get(ctx, q)
	cache.InvalidateDate(ctx, day)
	cache.Put(ctx, lookup, []types.TimeString{"10:00"})

	assert.False(t, cache.Get(ctx, q).Hit)
}

func TestCache_RedisDownFallsThrough(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	mr.Close()

	lookup := cache.Get(ctx, Query{Date: day})
	assert.False(t, lookup.Hit)

	assert.NotPanics(t, func() {
		cache.Put(ctx, lookup, []types.TimeString{"10:00"})
		cache.InvalidateDate(ctx, day)
	})
}

func TestCache_NilIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	lookup := cache.Get(ctx, Query{Date: day})
	assert.False(t, lookup.Hit)
	cache.Put(ctx, lookup, nil)
	cache.InvalidateDate(ctx, day)
}
