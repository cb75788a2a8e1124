// Package memory provides the in-memory URL repository. All mutations run
// under a single write lock, so the existence check and insert in Save form
// one atomic step.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vadimbarashkov/shortener/internal/entity"
)

type URLRepository struct {
	mu   sync.RWMutex
	urls map[string]entity.URL
}

func NewURLRepository() *URLRepository {
	return &URLRepository{urls: make(map[string]entity.URL)}
}

// Save inserts url unless its short code is already taken.
func (r *URLRepository) Save(_ context.Context, url entity.URL) error {
	const op = "adapter.repository.memory.URLRepository.Save"

	key := url.ShortCode.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.urls[key]; ok {
		return fmt.Errorf("%s: %w: %s", op, entity.ErrShortCodeExists, key)
	}

	r.urls[key] = url

	return nil
}

// RetrieveByShortCode returns a copy of the stored record.
func (r *URLRepository) RetrieveByShortCode(_ context.Context, shortCode entity.ShortCode) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveByShortCode"

	key := shortCode.String()

	r.mu.RLock()
	url, ok := r.urls[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, key)
	}

	return &url, nil
}

// Update replaces an existing record. It never inserts.
func (r *URLRepository) Update(_ context.Context, url entity.URL) error {
	const op = "adapter.repository.memory.URLRepository.Update"

	key := url.ShortCode.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.urls[key]; !ok {
		return fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, key)
	}

	r.urls[key] = url

	return nil
}

func (r *URLRepository) Exists(_ context.Context, shortCode entity.ShortCode) (bool, error) {
	r.mu.RLock()
	_, ok := r.urls[shortCode.String()]
	r.mu.RUnlock()

	return ok, nil
}

func (r *URLRepository) Remove(_ context.Context, shortCode entity.ShortCode) error {
	const op = "adapter.repository.memory.URLRepository.Remove"

	key := shortCode.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.urls[key]; !ok {
		return fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, key)
	}

	delete(r.urls, key)

	return nil
}

// List returns a snapshot of all records in unspecified order.
func (r *URLRepository) List(_ context.Context) ([]entity.URL, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	urls := make([]entity.URL, 0, len(r.urls))
	for _, url := range r.urls {
		urls = append(urls, url)
	}

	return urls, nil
}

// Len returns the number of stored records.
func (r *URLRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.urls)
}
