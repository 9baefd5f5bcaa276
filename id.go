package uuid256

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUUIDV7 generates a UUIDv7 (time-ordered) identifier:
//   - bytes 0-5: unix milliseconds, big-endian
//   - remaining 10 bytes random, except the version nibble (7) and the
//     RFC 4122 variant bits
//
// Its String form is lowercase and sorts by creation time at millisecond
// granularity.
func GenerateUUIDV7() uuid.UUID {
	u, err := NewUUIDV7(time.Now(), rand.Reader)
	if err != nil {
		// crypto/rand.Read does not return errors
		panic(err)
	}
	return u
}

// NewUUIDV7 builds a UUIDv7 from an explicit clock reading and random source.
// It fails only when r fails.
func NewUUIDV7(now time.Time, r io.Reader) (uuid.UUID, error) {
	var u uuid.UUID

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(now.UnixMilli())&TimestampMask)
	copy(u[:6], ts[2:])

	if _, err := io.ReadFull(r, u[6:]); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // variant 10xxxxxx
	return u, nil
}

// GenerateUUID generates a random (v4) UUID.
func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// IsUUID reports whether s is a lowercase hyphenated 8-4-4-4-12 UUID with a
// version between 1 and 8 and the RFC 4122 variant. UUIDToU256 is more
// lenient and takes either case.
func IsUUID(s string) bool {
	_, ok := parseRFC4122(s)
	return ok
}

// IsUUIDV7 is IsUUID restricted to version 7.
func IsUUIDV7(s string) bool {
	u, ok := parseRFC4122(s)
	return ok && u.Version() == 7
}

// AsUUID validates s with IsUUID. It fails with ErrInvalidUUIDFormat.
func AsUUID(s string) (uuid.UUID, error) {
	u, ok := parseRFC4122(s)
	if !ok {
		return uuid.Nil, invalidUUID(s, "not an RFC 4122 UUID")
	}
	return u, nil
}

// AsUUIDV7 validates s with IsUUIDV7. It fails with ErrInvalidUUIDFormat.
func AsUUIDV7(s string) (uuid.UUID, error) {
	u, ok := parseRFC4122(s)
	if !ok || u.Version() != 7 {
		return uuid.Nil, invalidUUID(s, "not a version 7 UUID")
	}
	return u, nil
}

// parseRFC4122 only accepts the 36 character lowercase hyphenated form;
// uuid.Parse alone would also take uppercase and the braced, urn and 32 digit
// forms.
func parseRFC4122(s string) (uuid.UUID, bool) {
	if len(s) != 36 || strings.ToLower(s) != s {
		return uuid.Nil, false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	if v := u.Version(); v < 1 || v > 8 {
		return uuid.Nil, false
	}
	if u.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return u, true
}

func invalidUUID(s, reason string) error {
	return WithContext(ErrInvalidUUIDFormat, map[string]interface{}{
		"input":  s,
		"reason": reason,
	})
}
