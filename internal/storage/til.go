package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

const tilColumns = `id, til_date::text, content, category, created_at`

// ListTIL returns the entries for one day, newest first.
func (db *DB) ListTIL(ctx context.Context, date string) ([]models.TILRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+tilColumns+` FROM daily_til WHERE til_date = $1::date ORDER BY created_at DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("querying til entries: %w", err)
	}
	defer rows.Close()

	var result []models.TILRow
	for rows.Next() {
		var e models.TILRow
		if err := rows.Scan(&e.ID, &e.TILDate, &e.Content, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning til entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// CountTIL returns the number of entries recorded on a day.
func (db *DB) CountTIL(ctx context.Context, date string) (int, error) {
	var n int
	if err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM daily_til WHERE til_date = $1::date`, date,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting til entries: %w", err)
	}
	return n, nil
}

// CreateTIL records something learned. A blank category is stored as NULL.
func (db *DB) CreateTIL(ctx context.Context, date, content string, category *string) (*models.TILRow, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("til content is required: %w", ErrInvalidInput)
	}

	var e models.TILRow
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO daily_til (til_date, content, category)
		 VALUES ($1::date, $2, $3)
		 RETURNING `+tilColumns,
		date, content, blankToNil(category),
	).Scan(&e.ID, &e.TILDate, &e.Content, &e.Category, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting til entry: %w", err)
	}
	return &e, nil
}

// UpdateTIL rewrites an entry's content and category.
func (db *DB) UpdateTIL(ctx context.Context, id uuid.UUID, content string, category *string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("til content is required: %w", ErrInvalidInput)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE daily_til SET content = $2, category = $3 WHERE id = $1`,
		id, content, blankToNil(category))
	if err != nil {
		return fmt.Errorf("updating til entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("til entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTIL removes an entry.
func (db *DB) DeleteTIL(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM daily_til WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting til entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("til entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
