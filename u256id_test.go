package uuid256

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestU256IDV0(t *testing.T) {
	seen := make(map[U256]bool)
	for i := 0; i < 100; i++ {
		x := U256IDV0()
		if VersionOf(x) != 0 {
			t.Fatalf("VersionOf(%s) = %d, want 0", x, VersionOf(x))
		}
		if !IsCanonical(x.Hex()) {
			t.Fatalf("%s is not canonical", x)
		}
		if seen[x] {
			t.Fatalf("duplicate v0 id %s", x)
		}
		seen[x] = true
	}
}

func TestNewU256IDV0ClearsVersion(t *testing.T) {
	x, err := NewU256IDV0(bytes.NewReader(bytes.Repeat([]byte{0xff}, 32)))
	if err != nil {
		t.Fatalf("NewU256IDV0: %v", err)
	}
	want := "0x0" + strings.Repeat("f", 63)
	if x.Hex() != want {
		t.Errorf("NewU256IDV0 = %s, want %s", x, want)
	}

	_, err = NewU256IDV0(bytes.NewReader(make([]byte, 31)))
	if !errors.Is(err, ErrRandomSource) {
		t.Errorf("short read: expected ErrRandomSource, got %v", err)
	}
}

func TestVersionOf(t *testing.T) {
	for v := 0; v < 16; v++ {
		var x U256
		x[0] = byte(v<<4) | 0x0f
		if got := VersionOf(x); got != v {
			t.Errorf("VersionOf(%s) = %d, want %d", x, got, v)
		}
	}
}

func TestPackV1Layout(t *testing.T) {
	id := packV1(0x0123456789ab, 0xdeadbeef, 1, make([]byte, 20))
	want := "0x1" + "0123456789ab" + "deadbeef" + "0001" + strings.Repeat("0", 39)
	if id.Hex() != want {
		t.Errorf("packV1 = %s\n          want %s", id.Hex(), want)
	}

	// only the low 156 bits of random are kept
	id = packV1(0, 0, 0, bytes.Repeat([]byte{0xff}, 20))
	want = "0x1" + strings.Repeat("0", 24) + strings.Repeat("f", 39)
	if id.Hex() != want {
		t.Errorf("packV1 random = %s\n                 want %s", id.Hex(), want)
	}
}

func TestDecodeV1(t *testing.T) {
	ms := int64(1_700_000_000_123)
	id := packV1(uint64(ms), 42, 0xbeef, bytes.Repeat([]byte{0xa5}, 20))

	f, err := DecodeV1(id)
	if err != nil {
		t.Fatalf("DecodeV1: %v", err)
	}
	if f.UnixMilli() != ms {
		t.Errorf("UnixMilli() = %d, want %d", f.UnixMilli(), ms)
	}
	if !f.Timestamp.Equal(time.UnixMilli(ms)) || f.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v", f.Timestamp)
	}
	if f.Node != 42 {
		t.Errorf("Node = %d, want 42", f.Node)
	}
	if f.Counter != 0xbeef {
		t.Errorf("Counter = %#x, want 0xbeef", f.Counter)
	}
}

func TestDecodeV1WrongVersion(t *testing.T) {
	for _, id := range []U256{Zero, U256IDV0(), MustParseU256("0x2" + strings.Repeat("0", 63))} {
		_, err := DecodeV1(id)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("DecodeV1(%s): expected ErrUnsupportedVersion, got %v", id, err)
		}
	}
}

func TestSample(t *testing.T) {
	g, err := NewGenerator(DefaultGeneratorConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	s, err := Sample(g)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if VersionOf(s.V0) != 0 {
		t.Errorf("V0 version = %d", VersionOf(s.V0))
	}
	if VersionOf(s.V1) != 1 {
		t.Errorf("V1 version = %d", VersionOf(s.V1))
	}
	if s.HR != ToBase58(s.V0) {
		t.Errorf("HR = %q, want %q", s.HR, ToBase58(s.V0))
	}
	if s.Short != ToShort(s.V0) {
		t.Errorf("Short = %q, want %q", s.Short, ToShort(s.V0))
	}

	back, err := FromBase58(s.HR)
	if err != nil || back != s.V0 {
		t.Errorf("FromBase58(HR) = %s, %v; want %s", back, err, s.V0)
	}
}
