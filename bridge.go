package uuid256

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// UUIDToU256 places a UUID in the lower 128 bits of a 256-bit value; the
// upper 128 bits are zero. s may be hyphenated or 32 bare hex digits, in
// either case. The version nibble is not checked, so any UUID version
// bridges.
func UUIDToU256(s string) (U256, error) {
	var x U256
	cleaned := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if len(cleaned) != 32 || !isLowerHex(cleaned) {
		return x, invalidUUID(s, "want 32 hex digits once hyphens are removed")
	}
	_, _ = hex.Decode(x[16:], []byte(cleaned))
	return x, nil
}

// FromUUID is UUIDToU256 for an already parsed UUID.
func FromUUID(u uuid.UUID) U256 {
	var x U256
	copy(x[16:], u[:])
	return x
}

// U256ToUUID recovers the UUID from a canonical 256-bit hex string produced
// by UUIDToU256. It fails with ErrInvalidU256Format when s is not canonical
// and with ErrUpper128NotZero when any of the upper 128 bits is set.
func U256ToUUID(s string) (uuid.UUID, error) {
	x, err := AsCanonical(s)
	if err != nil {
		return uuid.Nil, err
	}
	return x.UUID()
}

// IsBridged reports whether the upper 128 bits are zero, ie whether x can
// have come from a UUID.
func (x U256) IsBridged() bool {
	for _, b := range x[:16] {
		if b != 0 {
			return false
		}
	}
	return true
}

// UUID returns the lower 128 bits as a UUID. It fails with
// ErrUpper128NotZero rather than truncate.
func (x U256) UUID() (uuid.UUID, error) {
	if !x.IsBridged() {
		return uuid.Nil, WithContext(ErrUpper128NotZero, map[string]interface{}{
			"input": x.Hex(),
		})
	}
	var u uuid.UUID
	copy(u[:], x[16:])
	return u, nil
}
