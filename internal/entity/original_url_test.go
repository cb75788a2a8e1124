package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOriginalURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "http", url: "http://x.com", want: "http://x.com/"},
		{name: "https", url: "https://x.com", want: "https://x.com/"},
		{name: "path kept", url: "https://example.com/very/long/path", want: "https://example.com/very/long/path"},
		{name: "query kept", url: "https://example.com/search?q=test", want: "https://example.com/search?q=test"},
		{name: "fragment kept", url: "https://example.com/page#section", want: "https://example.com/page#section"},
		{name: "scheme and host lower-cased", url: "HTTPS://Example.COM/Path", want: "https://example.com/Path"},
		{name: "port kept", url: "http://localhost:8080", want: "http://localhost:8080/"},
		{name: "ftp scheme", url: "ftp://x.com", wantErr: true},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: true},
		{name: "not a url", url: "not a url", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "bad escape", url: "https://example.com/%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewOriginalURL(tt.url)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestOriginalURL_Accessors(t *testing.T) {
	u, err := NewOriginalURL("http://example.com:8080/path")

	assert.NoError(t, err)
	assert.Equal(t, "http", u.Scheme())
	assert.Equal(t, "example.com", u.Host())
}
