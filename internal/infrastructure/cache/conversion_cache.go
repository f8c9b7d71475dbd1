package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultScanBatchSize      = 100
	defaultConversionCacheTTL = 10 * time.Minute
	conversionKeySegment      = "conversions:"
	generationKeySegment      = "conversions-gen:"
	allProductsGeneration     = "all"
)

// setIfCurrentScript stores a loaded table only while both generation
// counters still hold the values read before the load. A missing counter
// reads as "0".
var setIfCurrentScript = redis.NewScript(`
local function generation(key)
	local v = redis.call("GET", key)
	if not v then
		return "0"
	end
	return v
end
if generation(KEYS[2]) ~= ARGV[1] or generation(KEYS[3]) ~= ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[3], "PX", ARGV[4])
return 1
`)

// generation is the pair of invalidation counters observed before a load
type generation struct {
	product string
	all     string
}

// cachedConversion is the msgpack wire form of a catalog.ConversionEntry
type cachedConversion struct {
	FromUnitID       string `msgpack:"fu"`
	FromAbbreviation string `msgpack:"fa"`
	FromName         string `msgpack:"fn"`
	ToUnitID         string `msgpack:"tu"`
	ToAbbreviation   string `msgpack:"ta"`
	ToName           string `msgpack:"tn"`
	Factor           string `msgpack:"f"`
	Label            string `msgpack:"l"`
}

// RedisConversionCache caches product conversion tables in Redis. Concurrent
// misses for the same product share a single load. Every invalidation bumps a
// generation counter, and a load only writes back when no invalidation
// happened while it ran.
type RedisConversionCache struct {
	client    *redis.Client
	keyPrefix string
	genPrefix string
	ttl       time.Duration
	logger    *zap.Logger
	group     singleflight.Group
}

// NewRedisConversionCache creates a cache on an existing client. The caller
// retains ownership of the client.
func NewRedisConversionCache(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *RedisConversionCache {
	if ttl <= 0 {
		ttl = defaultConversionCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisConversionCache{
		client:    client,
		keyPrefix: keyPrefix + conversionKeySegment,
		genPrefix: keyPrefix + generationKeySegment,
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *RedisConversionCache) key(productID uuid.UUID) string {
	return c.keyPrefix + productID.String()
}

func (c *RedisConversionCache) generationKey(productID uuid.UUID) string {
	return c.genPrefix + productID.String()
}

func (c *RedisConversionCache) allGenerationKey() string {
	return c.genPrefix + allProductsGeneration
}

// GetOrLoad returns the cached table or loads and caches it. Redis failures
// degrade to loading from storage.
func (c *RedisConversionCache) GetOrLoad(ctx context.Context, productID uuid.UUID, load appcatalog.ConversionTableLoader) ([]catalog.ConversionEntry, error) {
	key := c.key(productID)

	if table, ok := c.get(ctx, key); ok {
		return table, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen, genErr := c.generation(ctx, productID)
		table, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			c.logger.Error("failed to read conversion cache generation", zap.String("key", key), zap.Error(genErr))
			return table, nil
		}
		c.setIfCurrent(ctx, productID, gen, table)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.ConversionEntry), nil
}

func (c *RedisConversionCache) get(ctx context.Context, key string) ([]catalog.ConversionEntry, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("conversion cache miss", zap.String("key", key))
		return nil, false
	}
	if err != nil {
		c.logger.Error("failed to read conversion cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	table, err := decodeConversions(data)
	if err != nil {
		c.logger.Error("failed to decode cached conversions", zap.String("key", key), zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, key)
		return nil, false
	}

	c.logger.Debug("conversion cache hit", zap.String("key", key))
	return table, true
}

func (c *RedisConversionCache) generation(ctx context.Context, productID uuid.UUID) (generation, error) {
	vals, err := c.client.MGet(ctx, c.generationKey(productID), c.allGenerationKey()).Result()
	if err != nil {
		return generation{}, err
	}
	gen := generation{product: "0", all: "0"}
	if v, ok := vals[0].(string); ok {
		gen.product = v
	}
	if v, ok := vals[1].(string); ok {
		gen.all = v
	}
	return gen, nil
}

// setIfCurrent writes the table unless an invalidation ran since gen was read
func (c *RedisConversionCache) setIfCurrent(ctx context.Context, productID uuid.UUID, gen generation, table []catalog.ConversionEntry) {
	key := c.key(productID)
	data, err := encodeConversions(table)
	if err != nil {
		c.logger.Error("failed to encode conversions", zap.String("key", key), zap.Error(err))
		return
	}

	stored, err := setIfCurrentScript.Run(ctx, c.client,
		[]string{key, c.generationKey(productID), c.allGenerationKey()},
		gen.product, gen.all, data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		c.logger.Error("failed to write conversion cache", zap.String("key", key), zap.Error(err))
		return
	}
	if stored == 0 {
		c.logger.Debug("conversion table invalidated during load, not cached", zap.String("key", key))
	}
}

// Invalidate drops the cached table of one product and fences off loads
// that started before the call
func (c *RedisConversionCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(productID))
		pipe.Del(ctx, c.key(productID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate conversions: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached table and fences off every load in flight
func (c *RedisConversionCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.allGenerationKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate conversions: %w", err)
	}

	var cursor uint64
	var total int64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan conversion keys: %w", err)
		}
		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete conversion keys: %w", err)
			}
			total += deleted
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("conversion cache cleared", zap.Int64("deleted", total))
	return nil
}

func encodeConversions(table []catalog.ConversionEntry) ([]byte, error) {
	wire := make([]cachedConversion, len(table))
	for i, e := range table {
		wire[i] = cachedConversion{
			FromUnitID:       e.FromUnitID.String(),
			FromAbbreviation: e.FromAbbreviation,
			FromName:         e.FromName,
			ToUnitID:         e.ToUnitID.String(),
			ToAbbreviation:   e.ToAbbreviation,
			ToName:           e.ToName,
			Factor:           e.Factor.String(),
			Label:            e.Label,
		}
	}
	return msgpack.Marshal(wire)
}

func decodeConversions(data []byte) ([]catalog.ConversionEntry, error) {
	var wire []cachedConversion
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	table := make([]catalog.ConversionEntry, len(wire))
	for i, w := range wire {
		fromID, err := uuid.Parse(w.FromUnitID)
		if err != nil {
			return nil, err
		}
		toID, err := uuid.Parse(w.ToUnitID)
		if err != nil {
			return nil, err
		}
		factor, err := decimal.NewFromString(w.Factor)
		if err != nil {
			return nil, err
		}
		table[i] = catalog.ConversionEntry{
			FromUnitID:       fromID,
			FromAbbreviation: w.FromAbbreviation,
			FromName:         w.FromName,
			ToUnitID:         toID,
			ToAbbreviation:   w.ToAbbreviation,
			ToName:           w.ToName,
			Factor:           factor,
			Label:            w.Label,
		}
	}
	return table, nil
}

// NoopConversionCache always loads from storage
type NoopConversionCache struct{}

// GetOrLoad calls load
func (NoopConversionCache) GetOrLoad(ctx context.Context, _ uuid.UUID, load appcatalog.ConversionTableLoader) ([]catalog.ConversionEntry, error) {
	return load(ctx)
}

// Invalidate does nothing
func (NoopConversionCache) Invalidate(context.Context, uuid.UUID) error { return nil }

// InvalidateAll does nothing
func (NoopConversionCache) InvalidateAll(context.Context) error { return nil }

var (
	_ appcatalog.ConversionCache = (*RedisConversionCache)(nil)
	_ appcatalog.ConversionCache = NoopConversionCache{}
)
