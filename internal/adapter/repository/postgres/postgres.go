// Package postgres implements the URL repository on top of PostgreSQL. The
// UNIQUE constraint on short_code makes Save atomic across processes.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortener/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

const urlColumns = `id, short_code, original_url, access_count, created_at`

// access_count is NUMERIC(20, 0) so the full uint64 range fits; it travels
// as a decimal string.
type urlDB struct {
	ID          string    `db:"id"`
	ShortCode   string    `db:"short_code"`
	OriginalURL string    `db:"original_url"`
	AccessCount string    `db:"access_count"`
	CreatedAt   time.Time `db:"created_at"`
}

func (u *urlDB) toEntity() (*entity.URL, error) {
	shortCode, err := entity.NewShortCode(u.ShortCode)
	if err != nil {
		return nil, err
	}

	originalURL, err := entity.NewOriginalURL(u.OriginalURL)
	if err != nil {
		return nil, err
	}

	accessCount, err := strconv.ParseUint(u.AccessCount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid access count %q: %w", u.AccessCount, err)
	}

	return &entity.URL{
		ID:          entity.ID(u.ID),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		URLStats: entity.URLStats{
			AccessCount: accessCount,
		},
		CreatedAt: u.CreatedAt,
	}, nil
}

func formatAccessCount(n uint64) string {
	return strconv.FormatUint(n, 10)
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Save(ctx context.Context, url entity.URL) error {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(` + urlColumns + `) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		url.ID.String(),
		url.ShortCode.String(),
		url.OriginalURL.String(),
		formatAccessCount(url.AccessCount),
		url.CreatedAt,
	)
	if err != nil {
		if isUniqueViolationError(err) {
			return fmt.Errorf("%s: %w: %s", op, entity.ErrShortCodeExists, url.ShortCode)
		}

		return fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return nil
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode entity.ShortCode) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT ` + urlColumns + ` FROM urls WHERE short_code = $1`

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query, shortCode.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, shortCode)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	url, err := row.toEntity()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to decode urls table row: %w", op, err)
	}

	return url, nil
}

// Update writes the mutable fields of url back. The id and creation time are
// never changed.
func (r *URLRepository) Update(ctx context.Context, url entity.URL) error {
	const op = "adapter.repository.postgres.URLRepository.Update"
	const query = `UPDATE urls SET original_url = $1, access_count = $2 WHERE short_code = $3`

	res, err := r.db.ExecContext(ctx, query,
		url.OriginalURL.String(),
		formatAccessCount(url.AccessCount),
		url.ShortCode.String(),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, url.ShortCode)
	}

	return nil
}

func (r *URLRepository) Exists(ctx context.Context, shortCode entity.ShortCode) (bool, error) {
	const op = "adapter.repository.postgres.URLRepository.Exists"
	const query = `SELECT EXISTS(SELECT 1 FROM urls WHERE short_code = $1)`

	var exists bool

	if err := r.db.GetContext(ctx, &exists, query, shortCode.String()); err != nil {
		return false, fmt.Errorf("%s: failed to check urls table: %w", op, err)
	}

	return exists, nil
}

func (r *URLRepository) Remove(ctx context.Context, shortCode entity.ShortCode) error {
	const op = "adapter.repository.postgres.URLRepository.Remove"
	const query = `DELETE FROM urls WHERE short_code = $1`

	res, err := r.db.ExecContext(ctx, query, shortCode.String())
	if err != nil {
		return fmt.Errorf("%s: failed to delete from urls table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w: %s", op, entity.ErrURLNotFound, shortCode)
	}

	return nil
}

func (r *URLRepository) List(ctx context.Context) ([]entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.List"
	const query = `SELECT ` + urlColumns + ` FROM urls`

	var rows []urlDB

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to select from urls table: %w", op, err)
	}

	urls := make([]entity.URL, 0, len(rows))
	for _, row := range rows {
		url, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to decode urls table row: %w", op, err)
		}

		urls = append(urls, *url)
	}

	return urls, nil
}
