package uuid256

import (
	"encoding/hex"
)

// U256 is an unsigned 256-bit integer held big-endian. Its text form is the
// canonical hex string: "0x" followed by exactly 64 lowercase hex digits.
//
// A U256 obtained from this package is always valid; string input is
// checked once, by AsCanonical (or UnmarshalText).
type U256 [32]byte

// Zero is the all-zero value.
var Zero U256

// IsCanonical reports whether s is "0x" followed by exactly 64 lowercase hex
// digits.
func IsCanonical(s string) bool {
	if len(s) != len(CanonicalPrefix)+CanonicalHexLen || s[:2] != CanonicalPrefix {
		return false
	}
	return isLowerHex(s[2:])
}

// AsCanonical validates s and returns its value. It fails with
// ErrInvalidU256Format when s is not canonical.
func AsCanonical(s string) (U256, error) {
	var x U256
	if !IsCanonical(s) {
		return x, WithContext(ErrInvalidU256Format, map[string]interface{}{
			"input": s,
		})
	}
	// cannot fail after IsCanonical
	_, _ = hex.Decode(x[:], []byte(s[2:]))
	return x, nil
}

// ParseU256 is AsCanonical.
func ParseU256(s string) (U256, error) {
	return AsCanonical(s)
}

// MustParseU256 is like ParseU256 but panics on error. For constants in
// tests and examples.
func MustParseU256(s string) U256 {
	x, err := AsCanonical(s)
	if err != nil {
		panic(err)
	}
	return x
}

// U256FromBytes interprets b as a big-endian unsigned integer. Leading zero
// bytes are ignored; more than 32 significant bytes fail with
// ErrInvalidU256Format.
func U256FromBytes(b []byte) (U256, error) {
	var x U256
	b = trimLeadingZeros(b)
	if len(b) > len(x) {
		return x, WithContext(ErrInvalidU256Format, map[string]interface{}{
			"bytes": len(b),
		})
	}
	copy(x[len(x)-len(b):], b)
	return x, nil
}

// Hex returns the canonical form.
func (x U256) Hex() string {
	buf := make([]byte, len(CanonicalPrefix)+CanonicalHexLen)
	copy(buf, CanonicalPrefix)
	hex.Encode(buf[len(CanonicalPrefix):], x[:])
	return string(buf)
}

func (x U256) String() string {
	return x.Hex()
}

// Bytes returns a copy of the 32 big-endian bytes.
func (x U256) Bytes() []byte {
	b := make([]byte, len(x))
	copy(b, x[:])
	return b
}

func (x U256) IsZero() bool {
	return x == Zero
}

// Version returns the top nibble. See VersionOf.
func (x U256) Version() int {
	return VersionOf(x)
}

// MarshalText implements encoding.TextMarshaler with the canonical form.
func (x U256) MarshalText() ([]byte, error) {
	return []byte(x.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only the canonical form
// is accepted.
func (x *U256) UnmarshalText(text []byte) error {
	v, err := AsCanonical(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
