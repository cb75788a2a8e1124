// Package generator produces random record identifiers and candidate short
// codes. Randomness comes from crypto/rand through go-nanoid.
package generator

import (
	"fmt"

	"github.com/vadimbarashkov/shortener/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultShortCodeLength is used when no length option is given.
	DefaultShortCodeLength = 6
	// MaxAttempts bounds the number of candidates drawn by GenerateShortCode.
	MaxAttempts = 100

	idLength = 16
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Option func(*Generator)

// WithShortCodeLength sets the length of generated short codes. It must lie
// within [entity.MinShortCodeLength, entity.MaxShortCodeLength].
func WithShortCodeLength(n int) Option {
	return func(g *Generator) {
		g.shortCodeLength = n
	}
}

// Generator is safe for concurrent use.
type Generator struct {
	shortCodeLength int
	draw            func(alphabet string, size int) (string, error)
}

// New returns a Generator. It panics if the configured short code length is
// out of range.
func New(opts ...Option) *Generator {
	g := &Generator{
		shortCodeLength: DefaultShortCodeLength,
		draw:            gonanoid.Generate,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.shortCodeLength < entity.MinShortCodeLength || g.shortCodeLength > entity.MaxShortCodeLength {
		panic(fmt.Sprintf("generator: short code length must be between %d and %d, got %d",
			entity.MinShortCodeLength, entity.MaxShortCodeLength, g.shortCodeLength))
	}

	return g
}

// ShortCodeLength returns the configured length of generated short codes.
func (g *Generator) ShortCodeLength() int {
	return g.shortCodeLength
}

// GenerateID returns a random alphanumeric identifier. Uniqueness is not
// checked.
func (g *Generator) GenerateID() entity.ID {
	return entity.ID(gonanoid.MustGenerate(alphabet, idLength))
}

// GenerateShortCode draws candidates until one passes short code validation.
// It knows nothing about codes already in use.
func (g *Generator) GenerateShortCode() (entity.ShortCode, error) {
	const op = "adapter.generator.Generator.GenerateShortCode"

	for i := 0; i < MaxAttempts; i++ {
		candidate, err := g.draw(alphabet, g.shortCodeLength)
		if err != nil {
			return entity.ShortCode{}, fmt.Errorf("%s: failed to draw candidate: %w", op, err)
		}

		shortCode, err := entity.NewShortCode(candidate)
		if err != nil {
			continue
		}

		return shortCode, nil
	}

	return entity.ShortCode{}, fmt.Errorf("%s: %w", op, &entity.GenerationError{Attempts: MaxAttempts})
}
