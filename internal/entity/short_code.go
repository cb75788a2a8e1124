package entity

import "fmt"

const (
	// MinShortCodeLength is the shortest accepted short code.
	MinShortCodeLength = 4
	// MaxShortCodeLength is the longest accepted short code.
	MaxShortCodeLength = 12
)

// ShortCode is the validated key under which an original URL is stored.
type ShortCode struct {
	value string
}

// NewShortCode validates s and returns it as a ShortCode.
func NewShortCode(s string) (ShortCode, error) {
	if len(s) < MinShortCodeLength {
		return ShortCode{}, fmt.Errorf("%w: too short: must be at least %d characters", ErrInvalidShortCode, MinShortCodeLength)
	}
	if len(s) > MaxShortCodeLength {
		return ShortCode{}, fmt.Errorf("%w: too long: must be at most %d characters", ErrInvalidShortCode, MaxShortCodeLength)
	}

	for i := 0; i < len(s); i++ {
		if !isAlphanumeric(s[i]) {
			return ShortCode{}, fmt.Errorf("%w: must contain only alphanumeric characters", ErrInvalidShortCode)
		}
	}

	return ShortCode{value: s}, nil
}

func (c ShortCode) String() string {
	return c.value
}

// IsZero reports whether c was never constructed.
func (c ShortCode) IsZero() bool {
	return c.value == ""
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
