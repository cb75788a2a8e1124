// Package entity defines the entities and errors used in the application.
// It includes the URL aggregate, which represents a shortened URL, the
// validated value types it is built from, and the error kinds shared by
// every layer.
package entity

import (
	"math"
	"time"
)

// ID identifies a URL record for bookkeeping. It is never used as a lookup key.
type ID string

func (id ID) String() string {
	return string(id)
}

// URL represents a shortened URL.
type URL struct {
	ID          ID          // ID is the unique identifier of the record.
	ShortCode   ShortCode   // ShortCode is the key used to look up the original URL.
	OriginalURL OriginalURL // OriginalURL is the full URL that the short code resolves to.
	URLStats                // URLStats contains statistics about the URL.
	CreatedAt   time.Time   // CreatedAt is the timestamp when the URL was created.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	AccessCount uint64 // AccessCount is the number of times the shortened URL has been accessed.
}

// NewURL returns a fresh record with a zero access count.
func NewURL(id ID, shortCode ShortCode, originalURL OriginalURL) URL {
	return URL{
		ID:          id,
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   time.Now().UTC(),
	}
}

// RecordAccess increments the access count by one. The counter saturates at
// math.MaxUint64.
func (u *URL) RecordAccess() {
	if u.AccessCount < math.MaxUint64 {
		u.AccessCount++
	}
}
