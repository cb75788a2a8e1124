package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// OriginalURL is an absolute http or https URL kept in normalized form.
type OriginalURL struct {
	value  string
	scheme string
	host   string
}

// NewOriginalURL parses and normalizes s. Only the http and https schemes are
// accepted. The scheme and host are lower-cased and an empty path becomes "/".
func NewOriginalURL(s string) (OriginalURL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return OriginalURL{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if !u.IsAbs() {
		return OriginalURL{}, fmt.Errorf("%w: relative url without scheme", ErrInvalidURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return OriginalURL{}, fmt.Errorf("%w: unsupported scheme: %s: only http and https are allowed", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" || u.Hostname() == "" {
		return OriginalURL{}, fmt.Errorf("%w: empty host", ErrInvalidURL)
	}

	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}

	return OriginalURL{
		value:  u.String(),
		scheme: u.Scheme,
		host:   u.Hostname(),
	}, nil
}

func (u OriginalURL) String() string {
	return u.value
}

// Scheme returns either "http" or "https".
func (u OriginalURL) Scheme() string {
	return u.scheme
}

// Host returns the host name without the port.
func (u OriginalURL) Host() string {
	return u.host
}
