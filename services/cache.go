package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// reportCacheTTL bounds how stale the cross-partner admin reports may be
const reportCacheTTL = 5 * time.Minute

// ReportCache is a thin read-through cache for the expensive cross-partner
// aggregations. A nil client disables caching entirely.
type ReportCache struct {
	client *redis.Client
}

func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get loads a cached report into dest, returning false on miss or when
// caching is disabled
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Failed to decode cached report %s: %v", key, err)
		return false
	}
	return true
}

// Set stores a report. Failures only cost a cache miss, so they are logged
// and swallowed.
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to encode report %s for cache: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache report %s: %v", key, err)
	}
}

// Invalidate drops cached reports after a mutation
func (c *ReportCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate report cache: %v", err)
	}
}
