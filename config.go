package uuid256

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Textual forms
const (
	// CanonicalPrefix starts every canonical 256-bit hex string.
	CanonicalPrefix = "0x"
	// CanonicalHexLen is the number of hex digits after CanonicalPrefix.
	CanonicalHexLen = 64
	// Base58Prefix starts the human readable form.
	Base58Prefix = "u2:"
	// ShortPrefix starts the display-only short form. Never decoded.
	ShortPrefix = "u2s:"
)

// v1 layout, most significant field first: 0001 | T48 | N32 | C16 | R156
const (
	VersionBits   = 4
	TimestampBits = 48
	NodeBits      = 32
	CounterBits   = 16
	RandomBits    = 156

	TimestampMask uint64 = (1 << TimestampBits) - 1
	CounterMask   uint32 = (1 << CounterBits) - 1
)

// Node id leasing
const (
	// DefaultNodeKey is the Redis key NodeAllocator increments.
	DefaultNodeKey = "uuid256:node"

	// EnvNode names the environment variable GeneratorConfigFromEnv reads.
	EnvNode = "UUID256_NODE"
)

// GeneratorConfig configures a v1 Generator. The zero value is usable: the
// node id is drawn at the first call, the clock is time.Now and randomness
// comes from crypto/rand.
type GeneratorConfig struct {
	// Node fixes the 32-bit node id. When nil, the first NextV1 call decides.
	Node *uint32

	// Clock returns the current time. Only millisecond precision is used.
	Clock func() time.Time

	// Random supplies the node id (when drawn) and the 156 random bits.
	Random io.Reader
}

// DefaultGeneratorConfig returns the zero configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{}
}

// Validate checks if the GeneratorConfig is valid. The clock is read once;
// Generator.NextV1 checks every later reading again.
func (c GeneratorConfig) Validate() error {
	if c.Clock != nil {
		return checkClock(c.Clock().UnixMilli())
	}
	return nil
}

func checkClock(ms int64) error {
	if ms < 0 || uint64(ms) > TimestampMask {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Clock",
			"value":  ms,
			"reason": "must read a unix millisecond time that fits 48 bits",
		})
	}
	return nil
}

// GeneratorConfigFromEnv returns a GeneratorConfig with Node taken from
// UUID256_NODE when that is set. The value may be decimal or 0x-prefixed hex
// and must fit 32 bits.
func GeneratorConfigFromEnv() (GeneratorConfig, error) {
	cfg := DefaultGeneratorConfig()

	raw := strings.TrimSpace(os.Getenv(EnvNode))
	if raw == "" {
		return cfg, nil
	}

	node, err := parseNode(raw)
	if err != nil {
		return cfg, WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  EnvNode,
			"value":  raw,
			"reason": "must be an unsigned 32-bit integer",
		})
	}
	cfg.Node = &node
	return cfg, nil
}

// ParseNode parses a node id given as decimal or 0x-prefixed hex.
func ParseNode(s string) (uint32, error) {
	node, err := parseNode(strings.TrimSpace(s))
	if err != nil {
		return 0, WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "node",
			"value":  s,
			"reason": "must be an unsigned 32-bit integer",
		})
	}
	return node, nil
}

func parseNode(s string) (uint32, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, NodeBits)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
