package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifeops/lifeops/internal/models"
)

const frogColumns = `id, frog_date::text, title, description, is_completed, completed_at, created_at`

// ListFrogs returns the frogs for one day in creation order.
func (db *DB) ListFrogs(ctx context.Context, date string) ([]models.FrogRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+frogColumns+` FROM daily_frogs WHERE frog_date = $1::date ORDER BY created_at`, date)
	if err != nil {
		return nil, fmt.Errorf("querying frogs: %w", err)
	}
	defer rows.Close()

	var result []models.FrogRow
	for rows.Next() {
		var f models.FrogRow
		if err := rows.Scan(&f.ID, &f.FrogDate, &f.Title, &f.Description,
			&f.IsCompleted, &f.CompletedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning frog: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// FrogStats returns the number of completed and total frogs for a day.
func (db *DB) FrogStats(ctx context.Context, date string) (completed, total int, err error) {
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE is_completed)::int, COUNT(*)::int
		 FROM daily_frogs WHERE frog_date = $1::date`, date,
	).Scan(&completed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("counting frogs: %w", err)
	}
	return completed, total, nil
}

// CreateFrog adds a frog to a day. It returns ErrFrogLimit when the day
// already holds MaxFrogsPerDay frogs.
func (db *DB) CreateFrog(ctx context.Context, date, title string, description *string) (*models.FrogRow, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("frog title is required: %w", ErrInvalidInput)
	}

	var f models.FrogRow
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		// Serialize inserts per day so the limit check holds under concurrency.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('frogs:' || $1))`, date); err != nil {
			return fmt.Errorf("locking frog day: %w", err)
		}
		var n int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*)::int FROM daily_frogs WHERE frog_date = $1::date`, date,
		).Scan(&n); err != nil {
			return fmt.Errorf("counting frogs: %w", err)
		}
		if n >= models.MaxFrogsPerDay {
			return ErrFrogLimit
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO daily_frogs (frog_date, title, description)
			 VALUES ($1::date, $2, $3)
			 RETURNING `+frogColumns,
			date, title, description,
		).Scan(&f.ID, &f.FrogDate, &f.Title, &f.Description, &f.IsCompleted, &f.CompletedAt, &f.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting frog: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFrog changes a frog's title and description.
func (db *DB) UpdateFrog(ctx context.Context, id uuid.UUID, title string, description *string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("frog title is required: %w", ErrInvalidInput)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE daily_frogs SET title = $2, description = $3 WHERE id = $1`, id, title, description)
	if err != nil {
		return fmt.Errorf("updating frog %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("frog %s: %w", id, ErrNotFound)
	}
	return nil
}

// ToggleFrog flips a frog's completion. Completing stamps completed_at,
// reopening clears it.
func (db *DB) ToggleFrog(ctx context.Context, id uuid.UUID) (*models.FrogRow, error) {
	var f models.FrogRow
	err := db.Pool.QueryRow(ctx,
		`UPDATE daily_frogs
		 SET is_completed = NOT is_completed,
		     completed_at = CASE WHEN is_completed THEN NULL ELSE NOW() END
		 WHERE id = $1
		 RETURNING `+frogColumns, id,
	).Scan(&f.ID, &f.FrogDate, &f.Title, &f.Description, &f.IsCompleted, &f.CompletedAt, &f.CreatedAt)
	if err != nil {
		return nil, notFound(err, "frog")
	}
	return &f, nil
}

// DeleteFrog removes a frog.
func (db *DB) DeleteFrog(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM daily_frogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting frog %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("frog %s: %w", id, ErrNotFound)
	}
	return nil
}
