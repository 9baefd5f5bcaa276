package uuid256

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"
)

// V1Options are per call options for Generator.NextV1.
type V1Options struct {
	// Node32 fixes the node id, but only on the call that initializes it.
	// Once the generator has a node id later values are ignored.
	Node32 *uint32
}

// Generator produces version 1 identifiers:
//
//	0001 | T48 unix ms | N32 node | C16 counter | R156 random
//
// The node id is fixed on the first successful call and kept for the life
// of the Generator. The counter restarts on every new millisecond and is
// incremented before use, so the first id of a millisecond carries 1; it
// wraps to 0 after 0xffff.
//
// A Generator is safe for concurrent use. Create one per process (or per
// node id) and share it.
type Generator struct {
	clock   func() time.Time
	random  io.Reader
	logger  Logger
	metrics Metrics

	// configured node id, applied on the first call
	cfgNode *uint32

	mu sync.Mutex
	// node is valid once nodeSet is true
	node    uint32
	nodeSet bool
	// lastMS and counter are always read and written together under mu
	lastMS  int64
	counter uint32
}

// NewGenerator creates a Generator. Nil logger and metrics default to no-ops.
func NewGenerator(cfg GeneratorConfig, logger Logger, metrics Metrics) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	if metrics == nil {
		metrics = &NoOpMetrics{}
	}

	g := &Generator{
		clock:   cfg.Clock,
		random:  cfg.Random,
		logger:  logger,
		metrics: metrics,
		lastMS:  -1,
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.random == nil {
		g.random = rand.Reader
	}
	if cfg.Node != nil {
		node := *cfg.Node
		g.cfgNode = &node
	}
	return g, nil
}

// NextV1 returns the next version 1 identifier. opts may be nil.
//
// It fails when the random source fails or when the clock reads a time that
// does not fit 48 bits of unix milliseconds. Either way the generator state
// (node id, counter) is left as it was.
func (g *Generator) NextV1(opts *V1Options) (U256, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock().UnixMilli()
	if err := checkClock(now); err != nil {
		g.metrics.Increment(MetricGeneratorErrors, "reason", "clock")
		g.logger.Error("clock out of range", "unix_ms", now)
		return Zero, err
	}

	node := g.node
	source := ""
	if !g.nodeSet {
		switch {
		case g.cfgNode != nil:
			node, source = *g.cfgNode, "config"
		case opts != nil && opts.Node32 != nil:
			node, source = *opts.Node32, "options"
		default:
			var b [4]byte
			if _, err := io.ReadFull(g.random, b[:]); err != nil {
				return Zero, g.randomFailure("node", err)
			}
			node, source = binary.BigEndian.Uint32(b[:]), "random"
		}
	}

	counter := g.counter
	if now != g.lastMS {
		counter = 0
	}
	counter = (counter + 1) & CounterMask

	// 160 bits read, the low 156 used
	var r [20]byte
	if _, err := io.ReadFull(g.random, r[:]); err != nil {
		return Zero, g.randomFailure("random", err)
	}

	// commit
	if !g.nodeSet {
		g.node, g.nodeSet = node, true
		g.logger.Debug("node id initialized", "node", node, "source", source)
		g.metrics.Gauge(MetricNodeValue, float64(node))
	}
	if counter == 0 {
		g.logger.Debug("v1 counter wrapped", "unix_ms", now)
		g.metrics.Increment(MetricCounterWraps)
	}
	g.lastMS, g.counter = now, counter

	g.metrics.Increment(MetricIDsGenerated, "version", "1")
	return packV1(uint64(now), node, counter, r[:]), nil
}

// Node returns the node id and true once the first identifier has been
// generated.
func (g *Generator) Node() (uint32, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.node, g.nodeSet
}

// NextV0 returns a version 0 identifier from the generator's random source.
func (g *Generator) NextV0() (U256, error) {
	// the reader is shared with NextV1
	g.mu.Lock()
	id, err := NewU256IDV0(g.random)
	g.mu.Unlock()
	if err != nil {
		g.metrics.Increment(MetricGeneratorErrors, "reason", "random")
		return Zero, err
	}
	g.metrics.Increment(MetricIDsGenerated, "version", "0")
	return id, nil
}

func (g *Generator) randomFailure(field string, err error) error {
	g.metrics.Increment(MetricGeneratorErrors, "reason", "random")
	g.logger.Error("random source failed", "field", field, "error", err)
	return fmt.Errorf("%w: reading %s bits: %w", ErrRandomSource, field, err)
}
