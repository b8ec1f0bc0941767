package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	keyPrefix = "slots"

	// минимальное время жизни ключа версии; должно быть заметно больше ttl записей
	minVersionTTL = 24 * time.Hour
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Query параметры выборки занятого времени; nil означает "любой"
type Query struct {
	Date      time.Time
	MasterID  *int64
	SalonID   *int64
	ServiceID *int64
}

// Lookup результат чтения из кэша
// Версия даты фиксируется до похода в хранилище: если между чтением и Put дата
// была инвалидирована, Put запишет значение под старой версией, которое уже никто не прочитает.
type Lookup struct {
	Query Query
	Times []types.TimeString
	Hit   bool

	version   int64
	cacheable bool
}

// Cache кэш занятого времени на дату в redis
// Ошибки redis не прерывают запрос: они логируются, и вызывающий идёт в хранилище.
type Cache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// New создает кэш; nil-кэш допустим и ничего не делает
func New(rdb redis.Cmdable, ttl time.Duration, logger Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Get читает занятое время; промах или ошибка дают Hit=false
func (c *Cache) Get(ctx context.Context, q Query) *Lookup {
	lookup := &Lookup{Query: q}
	if !c.enabled() {
		return lookup
	}

	date := types.FormatDate(q.Date)
	version, err := c.rdb.Get(ctx, versionKey(date)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		version = 0
	case err != nil:
		c.logger.Warn("SlotsCache.Get: failed to read version for %s: %v", date, err)
		return lookup
	}
	lookup.version = version
	lookup.cacheable = true

	raw, err := c.rdb.Get(ctx, entryKey(date, version, q)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup
	}
	if err != nil {
		c.logger.Warn("SlotsCache.Get: failed to read entry for %s: %v", date, err)
		return lookup
	}

	var times []types.TimeString
	if err := json.Unmarshal(raw, &times); err != nil {
		c.logger.Warn("SlotsCache.Get: corrupted entry for %s: %v", date, err)
		return lookup
	}

	lookup.Times = times
	lookup.Hit = true
	return lookup
}

// Put сохраняет занятое время под версией, зафиксированной в Get
func (c *Cache) Put(ctx context.Context, lookup *Lookup, times []types.TimeString) {
	if !c.enabled() || lookup == nil || !lookup.cacheable {
		return
	}
	if times == nil {
		times = []types.TimeString{}
	}

	payload, err := json.Marshal(times)
	if err != nil {
		c.logger.Warn("SlotsCache.Put: marshal: %v", err)
		return
	}

	date := types.FormatDate(lookup.Query.Date)
	if err := c.rdb.Set(ctx, entryKey(date, lookup.version, lookup.Query), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("SlotsCache.Put: failed to store entry for %s: %v", date, err)
	}
}

// InvalidateDate делает недоступными все записи кэша на дату
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) {
	if !c.enabled() {
		return
	}

	key := versionKey(types.FormatDate(date))
	versionTTL := 2 * c.ttl
	if versionTTL < minVersionTTL {
		versionTTL = minVersionTTL
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, versionTTL)
		return nil
	})
	if err != nil {
		c.logger.Warn("SlotsCache.InvalidateDate: failed for %s: %v", key, err)
	}
}

func versionKey(date string) string {
	return fmt.Sprintf("%s:ver:%s", keyPrefix, date)
}

func entryKey(date string, version int64, q Query) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%s:%s", keyPrefix, date, version, idPart(q.MasterID), idPart(q.SalonID), idPart(q.ServiceID))
}

func idPart(id *int64) string {
	if id == nil {
		return "any"
	}
	return strconv.FormatInt(*id, 10)
}
