package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nuoidev/api/internal/pkg/log"
)

// GenericCacheService provides JSON marshalling, key prefixing and stats on
// top of a Cache backend. All modules share one instance.
type GenericCacheService struct {
	cache  Cache
	config *CacheConfig
	stats  serviceStats
}

type serviceStats struct {
	hits    int64
	misses  int64
	errors  int64
	sets    int64
	deletes int64
}

// NewGenericCacheService creates a new generic cache service
func NewGenericCacheService(cache Cache, config *CacheConfig) *GenericCacheService {
	if config == nil {
		config = DefaultCacheConfig()
	}

	return &GenericCacheService{
		cache:  cache,
		config: config,
	}
}

// GetCached retrieves and unmarshals cached data into the target interface
func (gcs *GenericCacheService) GetCached(ctx context.Context, key string, target interface{}) error {
	if !gcs.IsEnabled() {
		atomic.AddInt64(&gcs.stats.misses, 1)
		return ErrCacheDisabled
	}

	fullKey := gcs.buildKey(key)

	data, err := gcs.cache.Get(ctx, fullKey)
	if err != nil {
		if err == ErrKeyNotFound {
			atomic.AddInt64(&gcs.stats.misses, 1)
		} else {
			atomic.AddInt64(&gcs.stats.errors, 1)
			log.Error("Cache get error for key %s: %v", fullKey, err)
		}
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache data unmarshal error for key %s: %v", fullKey, err)
		return fmt.Errorf("%w: %v", ErrDeserializationFailed, err)
	}

	atomic.AddInt64(&gcs.stats.hits, 1)
	return nil
}

// CacheData marshals and stores data in cache with TTL
func (gcs *GenericCacheService) CacheData(ctx context.Context, key string, data interface{}, ttl ...time.Duration) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	cacheTTL := gcs.config.TTL
	if len(ttl) > 0 && ttl[0] > 0 {
		cacheTTL = ttl[0]
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache data marshal error for key %s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	fullKey := gcs.buildKey(key)

	if err := gcs.cache.Set(ctx, fullKey, jsonData, cacheTTL); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set error for key %s: %v", fullKey, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.sets, 1)
	return nil
}

// InvalidateKey removes a specific key from cache
func (gcs *GenericCacheService) InvalidateKey(ctx context.Context, key string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullKey := gcs.buildKey(key)

	if err := gcs.cache.Delete(ctx, fullKey); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache key invalidation error for key %s: %v", fullKey, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// InvalidatePattern removes all cache keys matching the given pattern
func (gcs *GenericCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}

	fullPattern := gcs.buildKey(pattern)

	if err := gcs.cache.DeletePattern(ctx, fullPattern); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache pattern invalidation error for pattern %s: %v", fullPattern, err)
		return err
	}

	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// setOps defines optional set operations supported by some cache backends.
// Both bundled backends implement it; the check stays at runtime so a custom
// backend without sets degrades to ErrCacheDisabled.
type setOps interface {
	SetAdd(ctx context.Context, key string, member string) error
	SetIsMember(ctx context.Context, key string, member string) (bool, error)
	SetRemove(ctx context.Context, key string, member string) error
}

// SetAdd adds a member to a set stored at key.
func (gcs *GenericCacheService) SetAdd(ctx context.Context, key string, member string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}
	setCache, ok := gcs.cache.(setOps)
	if !ok {
		return ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	if err := setCache.SetAdd(ctx, fullKey, member); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set add error for key %s: %v", fullKey, err)
		return err
	}
	atomic.AddInt64(&gcs.stats.sets, 1)
	return nil
}

// SetIsMember checks if a member is part of the set at key.
func (gcs *GenericCacheService) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	if !gcs.IsEnabled() {
		return false, ErrCacheDisabled
	}
	setCache, ok := gcs.cache.(setOps)
	if !ok {
		return false, ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	isMember, err := setCache.SetIsMember(ctx, fullKey, member)
	if err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set isMember error for key %s: %v", fullKey, err)
		return false, err
	}
	return isMember, nil
}

// SetRemove removes a member from the set at key.
func (gcs *GenericCacheService) SetRemove(ctx context.Context, key string, member string) error {
	if !gcs.IsEnabled() {
		return ErrCacheDisabled
	}
	setCache, ok := gcs.cache.(setOps)
	if !ok {
		return ErrCacheDisabled
	}
	fullKey := gcs.buildKey(key)
	if err := setCache.SetRemove(ctx, fullKey, member); err != nil {
		atomic.AddInt64(&gcs.stats.errors, 1)
		log.Error("Cache set remove error for key %s: %v", fullKey, err)
		return err
	}
	atomic.AddInt64(&gcs.stats.deletes, 1)
	return nil
}

// GenerateHashKey creates a deterministic hash-based cache key from parameters
func (gcs *GenericCacheService) GenerateHashKey(prefix string, params map[string]interface{}) string {
	h := sha256.New()
	h.Write([]byte(prefix + ":"))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		h.Write([]byte(fmt.Sprintf("%s=%v;", k, params[k])))
	}

	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h.Sum(nil))[:16])
}

// Increment atomically increments a numeric value at key.
func (gcs *GenericCacheService) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	if !gcs.IsEnabled() {
		return 0, ErrCacheDisabled
	}
	return gcs.cache.Increment(ctx, gcs.buildKey(key), delta)
}

// GetStats returns service-level cache statistics.
func (gcs *GenericCacheService) GetStats() CacheStats {
	hits := atomic.LoadInt64(&gcs.stats.hits)
	misses := atomic.LoadInt64(&gcs.stats.misses)
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return CacheStats{
		Hits:     hits,
		Misses:   misses,
		HitRatio: ratio,
	}
}

// IsEnabled reports whether the service has a usable backend.
func (gcs *GenericCacheService) IsEnabled() bool {
	return gcs.config.Enabled && gcs.cache != nil
}

// Close closes the underlying cache backend.
func (gcs *GenericCacheService) Close() error {
	if gcs.cache == nil {
		return nil
	}
	return gcs.cache.Close()
}

func (gcs *GenericCacheService) buildKey(key string) string {
	if gcs.config.Prefix == "" {
		return key
	}
	if strings.HasPrefix(key, gcs.config.Prefix) {
		return key
	}
	return gcs.config.Prefix + key
}
