package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
)

const cleanupInterval = 30 * time.Second

type ruleCacheEntry struct {
	ruleSet   []rules.ReturnRule
	expiresAt time.Time
}

func (e *ruleCacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryRuleCache implements RuleCache with process-local storage.
// Suitable for tests and single-instance deployments; multi-instance setups
// need the Redis cache so rule changes invalidate everywhere.
type InMemoryRuleCache struct {
	entries sync.Map // map[uuid.UUID]*ruleCacheEntry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// NewInMemoryRuleCache creates a new in-memory rule cache
func NewInMemoryRuleCache(ttl time.Duration) *InMemoryRuleCache {
	if ttl <= 0 {
		ttl = defaultRuleCacheTTL
	}
	cache := &InMemoryRuleCache{
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go cache.cleanupExpired()
	return cache
}

// GetActiveRules retrieves the cached active rules for a tenant
func (c *InMemoryRuleCache) GetActiveRules(_ context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, bool, error) {
	value, ok := c.entries.Load(tenantID)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}

	entry := value.(*ruleCacheEntry)
	if entry.isExpired() {
		c.entries.Delete(tenantID)
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}

	atomic.AddInt64(&c.hits, 1)
	ruleSet := make([]rules.ReturnRule, len(entry.ruleSet))
	copy(ruleSet, entry.ruleSet)
	return ruleSet, true, nil
}

// SetActiveRules caches the active rules for a tenant
func (c *InMemoryRuleCache) SetActiveRules(_ context.Context, tenantID uuid.UUID, ruleSet []rules.ReturnRule) error {
	stored := make([]rules.ReturnRule, len(ruleSet))
	copy(stored, ruleSet)
	c.entries.Store(tenantID, &ruleCacheEntry{
		ruleSet:   stored,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// Invalidate drops the cached rule set for a tenant
func (c *InMemoryRuleCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.entries.Delete(tenantID)
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryRuleCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryRuleCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemoryRuleCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*ruleCacheEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ RuleCache = (*InMemoryRuleCache)(nil)
