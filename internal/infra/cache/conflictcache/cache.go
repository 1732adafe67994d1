package conflictcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

const (
	versionKey = "conflicts:version"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Cache кэш индекса конфликтов календаря в Redis.
// Ключ содержит номер версии; любая запись бронирования увеличивает версию,
// поэтому устаревшие записи не читаются и истекают по TTL.
type Cache struct {
	client  redis.Cmdable
	ttl     time.Duration
	logger  Logger
	metrics MetricsRecorder
}

// New создает кэш. client == nil или ttl <= 0 отключают кэширование
func New(client redis.Cmdable, ttl time.Duration, logger Logger, metrics MetricsRecorder) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Lookup ищет индекс конфликтов за период.
// Возвращает текущую версию, которую нужно передать в Store после построения индекса.
func (c *Cache) Lookup(ctx context.Context, from, to time.Time) (map[string][]domain.ConflictRecord, int64, bool) {
	if !c.enabled() {
		return nil, 0, false
	}

	version, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("ConflictCache: failed to read version: %v", err)
		c.record(resultError)
		return nil, 0, false
	}

	val, err := c.client.Get(ctx, key(version, from, to)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("ConflictCache: failed to read index: %v", err)
			c.record(resultError)
		} else {
			c.record(resultMiss)
		}
		return nil, version, false
	}

	var index map[string][]domain.ConflictRecord
	if err := json.Unmarshal([]byte(val), &index); err != nil {
		c.logger.Warn("ConflictCache: failed to decode index: %v", err)
		c.record(resultError)
		return nil, version, false
	}

	c.record(resultHit)
	return index, version, true
}

// Store сохраняет индекс конфликтов за период под версией, полученной из Lookup
func (c *Cache) Store(ctx context.Context, version int64, from, to time.Time, index map[string][]domain.ConflictRecord) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(index)
	if err != nil {
		c.logger.Warn("ConflictCache: failed to encode index: %v", err)
		return
	}

	if err := c.client.Set(ctx, key(version, from, to), data, c.ttl).Err(); err != nil {
		c.logger.Warn("ConflictCache: failed to store index: %v", err)
	}
}

// Invalidate увеличивает версию, делая все сохраненные индексы недоступными
func (c *Cache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("ConflictCache: failed to bump version: %v", err)
	}
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *Cache) record(result string) {
	if c.metrics != nil {
		c.metrics.IncCache(result)
	}
}

func key(version int64, from, to time.Time) string {
	return fmt.Sprintf("conflicts:v%d:%s:%s", version, types.FormatDate(from), types.FormatDate(to))
}
