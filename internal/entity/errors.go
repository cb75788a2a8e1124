package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when a string cannot be used as an original URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidShortCode is returned when a string is not a well-formed short code.
	ErrInvalidShortCode = errors.New("invalid short code")
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrMaxRetriesExceeded is returned when a generation loop runs out of attempts.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")
)

// GenerationError reports how many attempts were made before giving up on
// producing a short code. It matches ErrMaxRetriesExceeded with errors.Is.
type GenerationError struct {
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate short code after %d attempts", e.Attempts)
}

func (e *GenerationError) Unwrap() error {
	return ErrMaxRetriesExceeded
}
