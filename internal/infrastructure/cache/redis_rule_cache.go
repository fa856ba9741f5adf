package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
)

const defaultRuleCacheTTL = 5 * time.Minute

// RedisRuleCache implements RuleCache using Redis
type RedisRuleCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisRuleCacheOption is a functional option for configuring the cache
type RedisRuleCacheOption func(*RedisRuleCache)

// WithRuleCacheTTL sets the cache entry lifetime
func WithRuleCacheTTL(ttl time.Duration) RedisRuleCacheOption {
	return func(c *RedisRuleCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRuleCacheLogger sets the logger for the cache
func WithRuleCacheLogger(logger *zap.Logger) RedisRuleCacheOption {
	return func(c *RedisRuleCache) {
		c.logger = logger
	}
}

// NewRedisRuleCache creates a new Redis-based rule cache
func NewRedisRuleCache(cfg config.RedisConfig, opts ...RedisRuleCacheOption) (*RedisRuleCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisRuleCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultRuleCacheTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisRuleCacheWithClient creates a cache on an existing Redis client.
// The caller retains ownership of the client.
func NewRedisRuleCacheWithClient(client *redis.Client, opts ...RedisRuleCacheOption) *RedisRuleCache {
	cache := &RedisRuleCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultRuleCacheTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func (c *RedisRuleCache) cacheKey(tenantID uuid.UUID) string {
	return "return_rules:active:" + tenantID.String()
}

// GetActiveRules retrieves the cached active rules for a tenant
func (c *RedisRuleCache) GetActiveRules(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, bool, error) {
	data, err := c.client.Get(ctx, c.cacheKey(tenantID)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("rule cache miss", zap.String("tenant_id", tenantID.String()))
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("failed to read rule cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, false, fmt.Errorf("failed to read rule cache: %w", err)
	}

	var ruleSet []rules.ReturnRule
	if err := json.Unmarshal(data, &ruleSet); err != nil {
		c.logger.Warn("corrupt rule cache entry, dropping",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, c.cacheKey(tenantID)).Err()
		return nil, false, nil
	}

	return ruleSet, true, nil
}

// SetActiveRules caches the active rules for a tenant
func (c *RedisRuleCache) SetActiveRules(ctx context.Context, tenantID uuid.UUID, ruleSet []rules.ReturnRule) error {
	if ruleSet == nil {
		ruleSet = []rules.ReturnRule{}
	}

	data, err := json.Marshal(ruleSet)
	if err != nil {
		return fmt.Errorf("failed to serialize rule set: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(tenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rule cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached rule set for a tenant
func (c *RedisRuleCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate rule cache: %w", err)
	}
	return nil
}

// Close closes the Redis client when this cache owns it
func (c *RedisRuleCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ RuleCache = (*RedisRuleCache)(nil)
