// Package usecase implements URL shortening on top of a swappable repository
// and code generator.
package usecase

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/shortener/internal/entity"
)

// DefaultMaxGenerationAttempts bounds the search for a free short code.
const DefaultMaxGenerationAttempts = 10

type urlRepository interface {
	Save(ctx context.Context, url entity.URL) error
	RetrieveByShortCode(ctx context.Context, shortCode entity.ShortCode) (*entity.URL, error)
	Update(ctx context.Context, url entity.URL) error
	Exists(ctx context.Context, shortCode entity.ShortCode) (bool, error)
	Remove(ctx context.Context, shortCode entity.ShortCode) error
	List(ctx context.Context) ([]entity.URL, error)
}

type codeGenerator interface {
	GenerateID() entity.ID
	GenerateShortCode() (entity.ShortCode, error)
}

type Option func(*URLUseCase)

// WithMaxGenerationAttempts overrides DefaultMaxGenerationAttempts. Values
// below one are ignored.
func WithMaxGenerationAttempts(n int) Option {
	return func(uc *URLUseCase) {
		if n > 0 {
			uc.maxGenerationAttempts = n
		}
	}
}

// URLUseCase holds no state of its own and is safe for concurrent use as long
// as its repository is.
type URLUseCase struct {
	maxGenerationAttempts int
	urlRepo               urlRepository
	generator             codeGenerator
}

func New(urlRepo urlRepository, generator codeGenerator, opts ...Option) *URLUseCase {
	uc := &URLUseCase{
		maxGenerationAttempts: DefaultMaxGenerationAttempts,
		urlRepo:               urlRepo,
		generator:             generator,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ShortenURL stores originalURL under a newly generated short code.
func (uc *URLUseCase) ShortenURL(ctx context.Context, originalURL entity.OriginalURL) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	shortCode, err := uc.generateUniqueShortCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	url := entity.NewURL(uc.generator.GenerateID(), shortCode, originalURL)

	if err := uc.urlRepo.Save(ctx, url); err != nil {
		return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
	}

	return &url, nil
}

// ShortenURLWithCode stores originalURL under a caller supplied short code.
// The existence check reports a taken code early; Save stays the final
// authority when callers race for the same code.
func (uc *URLUseCase) ShortenURLWithCode(ctx context.Context, originalURL entity.OriginalURL, shortCode entity.ShortCode) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURLWithCode"

	exists, err := uc.urlRepo.Exists(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check short code: %w", op, err)
	}

	if exists {
		return nil, fmt.Errorf("%s: %w: %s", op, entity.ErrShortCodeExists, shortCode)
	}

	url := entity.NewURL(uc.generator.GenerateID(), shortCode, originalURL)

	if err := uc.urlRepo.Save(ctx, url); err != nil {
		return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
	}

	return &url, nil
}

// ResolveShortCode returns the original URL and counts the access.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode entity.ShortCode) (entity.OriginalURL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return entity.OriginalURL{}, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	url.RecordAccess()

	if err := uc.urlRepo.Update(ctx, *url); err != nil {
		return entity.OriginalURL{}, fmt.Errorf("%s: failed to record access: %w", op, err)
	}

	return url.OriginalURL, nil
}

func (uc *URLUseCase) GetURLStats(ctx context.Context, shortCode entity.ShortCode) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLStats"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) DeactivateURL(ctx context.Context, shortCode entity.ShortCode) error {
	const op = "usecase.URLUseCase.DeactivateURL"

	if err := uc.urlRepo.Remove(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to deactivate url: %w", op, err)
	}

	return nil
}

func (uc *URLUseCase) ListURLs(ctx context.Context) ([]entity.URL, error) {
	const op = "usecase.URLUseCase.ListURLs"

	urls, err := uc.urlRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

func (uc *URLUseCase) generateUniqueShortCode(ctx context.Context) (entity.ShortCode, error) {
	for i := 0; i < uc.maxGenerationAttempts; i++ {
		shortCode, err := uc.generator.GenerateShortCode()
		if err != nil {
			return entity.ShortCode{}, fmt.Errorf("failed to generate short code: %w", err)
		}

		exists, err := uc.urlRepo.Exists(ctx, shortCode)
		if err != nil {
			return entity.ShortCode{}, fmt.Errorf("failed to check short code: %w", err)
		}

		if !exists {
			return shortCode, nil
		}
	}

	return entity.ShortCode{}, &entity.GenerationError{Attempts: uc.maxGenerationAttempts}
}
