package uuid256

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

// ToBase58 returns the human readable form: "u2:" followed by the Bitcoin
// alphabet Base58 digits of the 256-bit integer. Zero is "u2:1".
func ToBase58(id U256) string {
	digits := trimLeadingZeros(id[:])
	if len(digits) == 0 {
		return Base58Prefix + "1"
	}
	// no leading zero bytes, so no leading '1' padding either
	return Base58Prefix + base58.Encode(digits)
}

// FromBase58 parses the human readable form, with or without the "u2:"
// prefix. Leading '1' digits are zeros and do not change the value.
//
// It fails with ErrInvalidBase58 for an empty string or any character outside
// the alphabet (which includes every ShortPrefix string) and with
// ErrBase58Overflow when the value does not fit 256 bits.
func FromBase58(s string) (U256, error) {
	var x U256
	digits := strings.TrimPrefix(s, Base58Prefix)
	if digits == "" {
		return x, WithContext(ErrInvalidBase58, map[string]interface{}{
			"input":  s,
			"reason": "empty",
		})
	}

	raw, err := base58.Decode(digits)
	if err != nil {
		return x, WithContext(ErrInvalidBase58, map[string]interface{}{
			"input":  s,
			"reason": err.Error(),
		})
	}

	x, err = U256FromBytes(raw)
	if err != nil {
		return x, WithContext(ErrBase58Overflow, map[string]interface{}{
			"input": s,
		})
	}
	return x, nil
}

// ToShort returns a display-only abbreviation: "u2s:" + the first 8 and the
// last 8 hex digits around an ellipsis. It drops 192 bits and no function in
// this package decodes it.
func ToShort(id U256) string {
	h := hex.EncodeToString(id[:])
	return ShortPrefix + h[:8] + "…" + h[len(h)-8:]
}
