package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShortCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "empty", code: "", wantErr: true},
		{name: "too short", code: "abc", wantErr: true},
		{name: "too long", code: strings.Repeat("a", 13), wantErr: true},
		{name: "dash", code: "abc-123", wantErr: true},
		{name: "underscore", code: "abc_123", wantErr: true},
		{name: "space", code: "abc 123", wantErr: true},
		{name: "at sign", code: "abc@123", wantErr: true},
		{name: "hash", code: "abc#123", wantErr: true},
		{name: "non-ascii letter", code: "abcdé", wantErr: true},
		{name: "minimum length", code: "abcd"},
		{name: "maximum length", code: strings.Repeat("a", 12)},
		{name: "mixed case", code: "AbC123"},
		{name: "digits only", code: "123456"},
		{name: "letters only", code: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NewShortCode(tt.code)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidShortCode)
				assert.True(t, code.IsZero())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.code, code.String())
		})
	}
}

func TestNewShortCode_AllLengths(t *testing.T) {
	const alphabet = "aB3"

	for n := 0; n <= MaxShortCodeLength+2; n++ {
		s := strings.Repeat(alphabet, n)[:n]

		_, err := NewShortCode(s)

		if n < MinShortCodeLength || n > MaxShortCodeLength {
			assert.ErrorIs(t, err, ErrInvalidShortCode, "length %d", n)
		} else {
			assert.NoError(t, err, "length %d", n)
		}
	}
}

func TestShortCode_Equality(t *testing.T) {
	a, _ := NewShortCode("abc123")
	b, _ := NewShortCode("abc123")
	c, _ := NewShortCode("xyz789")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	set := map[ShortCode]struct{}{a: {}}
	_, ok := set[b]
	assert.True(t, ok)
}
