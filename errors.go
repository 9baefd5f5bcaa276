package uuid256

import (
	"errors"
	"fmt"
)

// Sentinel errors. The message of each sentinel is its stable error code, so
// callers in other runtimes can match on the same strings.
var (
	// Format errors
	ErrInvalidUUIDFormat = errors.New("INVALID_UUID_FORMAT")
	ErrInvalidU256Format = errors.New("INVALID_U256_FORMAT")
	ErrUpper128NotZero   = errors.New("UPPER128_NOT_ZERO")

	// Base58 errors
	ErrInvalidBase58  = errors.New("INVALID_BASE58")
	ErrBase58Overflow = errors.New("BASE58_OVERFLOW")

	// Scheme errors
	ErrUnsupportedVersion = errors.New("UNSUPPORTED_VERSION")

	// Generator errors
	ErrRandomSource = errors.New("RANDOM_SOURCE")

	// Configuration errors
	ErrInvalidConfig = errors.New("INVALID_CONFIG")
)

var sentinels = []error{
	ErrInvalidUUIDFormat,
	ErrInvalidU256Format,
	ErrUpper128NotZero,
	ErrInvalidBase58,
	ErrBase58Overflow,
	ErrUnsupportedVersion,
	ErrRandomSource,
	ErrInvalidConfig,
}

// ErrorWithContext adds additional context to errors for better debugging and logging
type ErrorWithContext struct {
	Err     error
	Context map[string]interface{}
}

func (e *ErrorWithContext) Error() string {
	if len(e.Context) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (context: %+v)", e.Err, e.Context)
}

func (e *ErrorWithContext) Unwrap() error {
	return e.Err
}

// WithContext adds context to an error
func WithContext(err error, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ErrorWithContext{
		Err:     err,
		Context: context,
	}
}

// Code returns the error code of the first sentinel err wraps, or "" if err
// is nil or not one of ours.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return ""
}

// IsInvalidFormat reports whether err rejects the shape of an input string.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidUUIDFormat) ||
		errors.Is(err, ErrInvalidU256Format) ||
		errors.Is(err, ErrInvalidBase58)
}

// IsUpper128NotZero reports whether err rejects a value that was not produced
// by the UUID bridge.
func IsUpper128NotZero(err error) bool {
	return errors.Is(err, ErrUpper128NotZero)
}
