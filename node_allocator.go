package uuid256

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NodeAllocator leases v1 node ids from a Redis counter, so that processes
// sharing the key never share a node id (until the counter passes 2^32 and
// wraps).
//
//	alloc := uuid256.NewNodeAllocator(redis.NewClient(uuid256.RedisOptions()), "", logger, metrics)
//	node, err := alloc.Allocate(ctx)
//	gen, err := uuid256.NewGenerator(uuid256.GeneratorConfig{Node: &node}, logger, metrics)
type NodeAllocator struct {
	redis   *redis.Client
	key     string
	logger  Logger
	metrics Metrics
}

// NewNodeAllocator creates an allocator on key; an empty key means
// DefaultNodeKey.
func NewNodeAllocator(redis *redis.Client, key string, logger Logger, metrics Metrics) *NodeAllocator {
	if key == "" {
		key = DefaultNodeKey
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	if metrics == nil {
		metrics = &NoOpMetrics{}
	}

	return &NodeAllocator{
		redis:   redis,
		key:     key,
		logger:  logger,
		metrics: metrics,
	}
}

// Key returns the Redis key the allocator increments.
func (a *NodeAllocator) Key() string {
	return a.key
}

// Allocate atomically increments the counter and returns the new value,
// truncated to 32 bits, as a node id. The first lease on a fresh key is 1.
func (a *NodeAllocator) Allocate(ctx context.Context) (uint32, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis not available")
	}

	val, err := a.redis.Incr(ctx, a.key).Result()
	if err != nil {
		a.metrics.Increment(MetricNodeErrors, "operation", "allocate")
		return 0, fmt.Errorf("failed to allocate node id: %w", err)
	}

	node := uint32(val)
	a.metrics.Increment(MetricNodeAllocated)
	a.logger.Debug("node id allocated", "key", a.key, "node", node)
	return node, nil
}

// Current returns the most recently leased node id, 0 if none.
func (a *NodeAllocator) Current(ctx context.Context) (uint32, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis not available")
	}

	val, err := a.redis.Get(ctx, a.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		a.metrics.Increment(MetricNodeErrors, "operation", "get")
		return 0, fmt.Errorf("failed to read node counter: %w", err)
	}

	intVal, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid node counter value %q: %w", val, err)
	}

	return uint32(intVal), nil
}

// Reset deletes the counter so the next lease is 1 again.
// ⚠️ Only safe when no running generator holds a leased node id.
func (a *NodeAllocator) Reset(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis not available")
	}

	if err := a.redis.Del(ctx, a.key).Err(); err != nil {
		a.metrics.Increment(MetricNodeErrors, "operation", "reset")
		return fmt.Errorf("failed to reset node counter: %w", err)
	}

	a.logger.Warn("node counter reset", "key", a.key)
	return nil
}

// NewGenerator leases a node id and returns a Generator fixed to it. cfg.Node
// is overwritten.
func (a *NodeAllocator) NewGenerator(ctx context.Context, cfg GeneratorConfig) (*Generator, error) {
	node, err := a.Allocate(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Node = &node
	return NewGenerator(cfg, a.logger, a.metrics)
}
