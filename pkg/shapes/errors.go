package shapes

import (
	"errors"
	"fmt"
)

// Reason enumerates why a shape configuration was rejected.
type Reason int

const (
	ReasonSideCountOutOfRange Reason = iota + 1
	ReasonTopBelowBottom
	ReasonRatioNotInteger
	ReasonNegativeDimension
)

// Sentinel errors, one per Reason. A *ConfigError unwraps to the sentinel of
// its Reason and also matches ErrInvalidConfig.
var (
	ErrInvalidConfig       = errors.New("invalid shape configuration")
	ErrSideCountOutOfRange = errors.New("side count out of range")
	ErrTopBelowBottom      = errors.New("top side count below bottom side count")
	ErrRatioNotInteger     = errors.New("top side count is not an integer multiple of bottom side count")
	ErrNegativeDimension   = errors.New("negative dimension")
	errUnknownReason       = errors.New("unknown reason")
)

func (r Reason) sentinel() error {
	switch r {
	case ReasonSideCountOutOfRange:
		return ErrSideCountOutOfRange
	case ReasonTopBelowBottom:
		return ErrTopBelowBottom
	case ReasonRatioNotInteger:
		return ErrRatioNotInteger
	case ReasonNegativeDimension:
		return ErrNegativeDimension
	default:
		return errUnknownReason
	}
}

func (r Reason) String() string {
	switch r {
	case ReasonSideCountOutOfRange:
		return "SideCountOutOfRange"
	case ReasonTopBelowBottom:
		return "TopBelowBottom"
	case ReasonRatioNotInteger:
		return "RatioNotInteger"
	case ReasonNegativeDimension:
		return "NegativeDimension"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ConfigError reports a shape that cannot be built from its parameters.
// No geometry is produced when it is returned.
type ConfigError struct {
	Shape  string
	Reason Reason
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Shape, e.Reason.sentinel(), e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Reason.sentinel()
}

// Is matches ErrInvalidConfig for every reason.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configError(shape string, reason Reason, format string, args ...any) *ConfigError {
	return &ConfigError{Shape: shape, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
