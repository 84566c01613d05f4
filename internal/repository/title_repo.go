package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TanmoyTheBoT/fmdb-api/internal/database"
	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
	"github.com/TanmoyTheBoT/fmdb-api/internal/policy"
)

// ErrTitleNotFound is returned when no catalog row matches the lookup
var ErrTitleNotFound = errors.New("title not found")

// TitleRepository handles read-only imdb_data queries. The column list on
// every query comes from the policy tables, so rows are scanned into generic
// maps keyed by column name.
type TitleRepository struct {
	db *database.DB
}

// NewTitleRepository creates a new title repository
func NewTitleRepository(db *database.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// GetByID fetches a single catalog row by IMDb identifier, restricted to the
// given projection. imdb_id is the primary key, so at most one row exists.
func (r *TitleRepository) GetByID(ctx context.Context, imdbID string, fields []string) (models.Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM imdb_data WHERE imdb_id = $1`, policy.SelectList(fields))

	rows, err := r.db.Query(ctx, query, imdbID)
	if err != nil {
		return nil, fmt.Errorf("failed to query title: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read title row: %w", err)
		}
		return nil, ErrTitleNotFound
	}

	title, err := rowToTitle(rows)
	if err != nil {
		return nil, err
	}

	return title, nil
}

// SearchByTitle returns up to limit rows whose title contains the term,
// role-projected and offset for pagination. Match semantics (case folding,
// substring) are the backing store's ILIKE with wildcards on both sides.
func (r *TitleRepository) SearchByTitle(ctx context.Context, term string, fields []string, limit, offset int) ([]models.Title, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM imdb_data WHERE title ILIKE '%%' || $1 || '%%' LIMIT $2 OFFSET $3`,
		policy.SelectList(fields))

	rows, err := r.db.Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	defer rows.Close()

	var titles []models.Title
	for rows.Next() {
		title, err := rowToTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating titles: %w", err)
	}

	return titles, nil
}

// CountByTitle returns the total number of rows matching the same search
// predicate, independent of pagination.
func (r *TitleRepository) CountByTitle(ctx context.Context, term string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM imdb_data WHERE title ILIKE '%' || $1 || '%'`, term).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}
	return total, nil
}

// CountByType returns catalog row counts grouped by entry type
func (r *TitleRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT type, COUNT(*) FROM imdb_data GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var entryType *string
		var count int
		if err := rows.Scan(&entryType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		if entryType == nil {
			continue
		}
		counts[*entryType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type counts: %w", err)
	}

	return counts, nil
}

// rowToTitle scans the current row into a column-name-keyed map so the
// projection can vary per role without per-shape structs.
func rowToTitle(rows pgx.Rows) (models.Title, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read row values: %w", err)
	}

	descriptions := rows.FieldDescriptions()
	title := make(models.Title, len(descriptions))
	for i, fd := range descriptions {
		title[string(fd.Name)] = values[i]
	}

	return title, nil
}
