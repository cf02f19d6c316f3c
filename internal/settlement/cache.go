package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// ResultCacheSchemaVersion invalidates cached results when their shape changes
const ResultCacheSchemaVersion = "1.0"

type cachedResult struct {
	Version string
	Result  *domain.SettlementResult
}

// resultCache keeps finished settlements queryable after their pending
// record is deleted.
type resultCache struct {
	lru *expirable.LRU[uuid.UUID, *cachedResult]
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	if size <= 0 {
		size = DefaultResultCacheSize
	}
	return &resultCache{
		lru: expirable.NewLRU[uuid.UUID, *cachedResult](size, nil, ttl),
	}
}

func (c *resultCache) Get(id uuid.UUID) (*domain.SettlementResult, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		return nil, false
	}
	if entry.Version != ResultCacheSchemaVersion {
		c.lru.Remove(id)
		return nil, false
	}
	return entry.Result, true
}

func (c *resultCache) Set(result *domain.SettlementResult) {
	c.lru.Add(result.ID, &cachedResult{Version: ResultCacheSchemaVersion, Result: result})
}
