package uuid256

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// Bit offsets of the v1 fields, counted from the least significant bit.
const (
	shiftVersion   = TimestampBits + NodeBits + CounterBits + RandomBits // 252
	shiftTimestamp = NodeBits + CounterBits + RandomBits                 // 204
	shiftNode      = CounterBits + RandomBits                            // 172
	shiftCounter   = RandomBits                                          // 156
)

var (
	maskTimestamp = lowMask(TimestampBits)
	maskNode      = lowMask(NodeBits)
	maskCounter   = lowMask(CounterBits)
	maskRandom    = lowMask(RandomBits)
)

// U256IDV0 returns a purely random identifier with version nibble 0.
func U256IDV0() U256 {
	x, err := NewU256IDV0(rand.Reader)
	if err != nil {
		// crypto/rand.Read does not return errors
		panic(err)
	}
	return x
}

// NewU256IDV0 is U256IDV0 reading from r.
func NewU256IDV0(r io.Reader) (U256, error) {
	var x U256
	if _, err := io.ReadFull(r, x[:]); err != nil {
		return Zero, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	x[0] &= 0x0f
	return x, nil
}

// VersionOf returns the version nibble, bits 252-255, as 0-15.
func VersionOf(id U256) int {
	return int(id[0] >> 4)
}

// V1Fields are the packed fields of a version 1 identifier, less the random
// tail.
type V1Fields struct {
	Timestamp time.Time `json:"timestamp"`
	Node      uint32    `json:"node"`
	Counter   uint16    `json:"counter"`
}

// UnixMilli returns the timestamp field as stored.
func (f V1Fields) UnixMilli() int64 {
	return f.Timestamp.UnixMilli()
}

// DecodeV1 unpacks a version 1 identifier. It fails with
// ErrUnsupportedVersion for any other version.
func DecodeV1(id U256) (V1Fields, error) {
	if v := VersionOf(id); v != 1 {
		return V1Fields{}, WithContext(ErrUnsupportedVersion, map[string]interface{}{
			"input":   id.Hex(),
			"version": v,
		})
	}

	x := new(big.Int).SetBytes(id[:])
	field := func(shift uint, mask *big.Int) uint64 {
		return new(big.Int).And(new(big.Int).Rsh(x, shift), mask).Uint64()
	}

	return V1Fields{
		Timestamp: time.UnixMilli(int64(field(shiftTimestamp, maskTimestamp))).UTC(),
		Node:      uint32(field(shiftNode, maskNode)),
		Counter:   uint16(field(shiftCounter, maskCounter)),
	}, nil
}

// packV1 lays out 0001 | T48 | N32 | C16 | R156. Only the low 156 bits of
// random are used.
func packV1(ms uint64, node uint32, counter uint32, random []byte) U256 {
	x := new(big.Int).Lsh(big.NewInt(1), shiftVersion)

	t := new(big.Int).SetUint64(ms)
	x.Or(x, t.And(t, maskTimestamp).Lsh(t, shiftTimestamp))

	n := new(big.Int).SetUint64(uint64(node))
	x.Or(x, n.Lsh(n, shiftNode))

	c := new(big.Int).SetUint64(uint64(counter))
	x.Or(x, c.And(c, maskCounter).Lsh(c, shiftCounter))

	r := new(big.Int).SetBytes(random)
	x.Or(x, r.And(r, maskRandom))

	var id U256
	x.FillBytes(id[:])
	return id
}

func lowMask(bits uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), bits)
	return m.Sub(m, big.NewInt(1))
}

// SampleValues is a set of values showing each form of the scheme.
type SampleValues struct {
	V0    U256   `json:"v0"`
	V1    U256   `json:"v1"`
	HR    string `json:"hr"`
	Short string `json:"short"`
}

// Sample generates one v0 and one v1 identifier (from g) and renders the v0
// in both text forms.
func Sample(g *Generator) (SampleValues, error) {
	v0, err := g.NextV0()
	if err != nil {
		return SampleValues{}, err
	}
	v1, err := g.NextV1(nil)
	if err != nil {
		return SampleValues{}, err
	}
	return SampleValues{
		V0:    v0,
		V1:    v1,
		HR:    ToBase58(v0),
		Short: ToShort(v0),
	}, nil
}
