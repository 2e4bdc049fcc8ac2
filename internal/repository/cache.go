package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/redis/go-redis/v9"
)

// Cache TTL defaults
const (
	DefaultListCacheTTL      = 2 * time.Minute
	DefaultAnalyticsCacheTTL = 5 * time.Minute

	cacheKeyPrefix = "tesseract:tracking:"
	maxL1CacheTTL  = 30 * time.Second
)

// CacheTTLs configures how long read-through entries live
type CacheTTLs struct {
	List      time.Duration
	Analytics time.Duration
}

func (t CacheTTLs) withDefaults() CacheTTLs {
	if t.List <= 0 {
		t.List = DefaultListCacheTTL
	}
	if t.Analytics <= 0 {
		t.Analytics = DefaultAnalyticsCacheTTL
	}
	return t
}

// NewCacheLayer wraps an existing Redis client in a two-level cache.
// It returns nil without Redis, in which case repositories read the
// database directly.
func NewCacheLayer(redisClient *redis.Client, ttls CacheTTLs) *cache.CacheLayer {
	if redisClient == nil {
		return nil
	}
	ttls = ttls.withDefaults()
	cacheConfig := cache.CacheConfig{
		L1Enabled:  true,
		L1MaxItems: 1000,
		L1TTL:      l1TTL(ttls),
		DefaultTTL: ttls.List,
		KeyPrefix:  cacheKeyPrefix,
	}
	return cache.NewCacheLayerFromClient(redisClient, cacheConfig)
}

// l1TTL keeps in-process entries from outliving their Redis copy
func l1TTL(ttls CacheTTLs) time.Duration {
	ttl := maxL1CacheTTL
	if ttls.List < ttl {
		ttl = ttls.List
	}
	if ttls.Analytics < ttl {
		ttl = ttls.Analytics
	}
	return ttl
}

func shipmentListKey(tenantID string) string {
	return fmt.Sprintf("shipments:list:%s:all", tenantID)
}

func analyticsKey(tenantID string) string {
	return fmt.Sprintf("shipments:analytics:%s", tenantID)
}

func carrierListKey(tenantID string, activeOnly bool) string {
	scope := "all"
	if activeOnly {
		scope = "active"
	}
	return fmt.Sprintf("carriers:list:%s:%s", tenantID, scope)
}

// invalidateShipmentReads drops every cached read derived from the tenant's
// shipments. Keys are deleted by name so the L1 copy goes even when Redis
// has already expired it. Redis errors are ignored: a stale entry expires
// with its TTL.
func invalidateShipmentReads(ctx context.Context, layer *cache.CacheLayer, tenantID string) {
	if layer == nil {
		return
	}
	_ = layer.Delete(ctx, shipmentListKey(tenantID), analyticsKey(tenantID))
}

func invalidateCarrierReads(ctx context.Context, layer *cache.CacheLayer, tenantID string) {
	if layer == nil {
		return
	}
	// carrier names feed the analytics payload
	_ = layer.Delete(ctx,
		carrierListKey(tenantID, false),
		carrierListKey(tenantID, true),
		analyticsKey(tenantID),
	)
}
