package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifeops/lifeops/internal/models"
)

const sessionColumns = `id, workout_date::text, notes, created_at`

// QuerySessions retrieves sessions with start <= workout_date <= end, most recent first.
// Dates are YYYY-MM-DD strings; an empty end means no upper bound.
func (db *DB) QuerySessions(ctx context.Context, start, end string) ([]models.WorkoutSessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions WHERE workout_date >= $1::date`
	args := []any{start}
	if end != "" {
		query += ` AND workout_date <= $2::date`
		args = append(args, end)
	}
	query += ` ORDER BY workout_date DESC, created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// RecentSessions retrieves the latest sessions, most recent first.
// A non-positive limit returns every session.
func (db *DB) RecentSessions(ctx context.Context, limit int) ([]models.WorkoutSessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions ORDER BY workout_date DESC, created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	return scanSessionRows(rows)
}

// AllSessions retrieves every session, most recent first.
func (db *DB) AllSessions(ctx context.Context) ([]models.WorkoutSessionRow, error) {
	return db.RecentSessions(ctx, 0)
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSessionRow, error) {
	var s models.WorkoutSessionRow
	err := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.WorkoutDate, &s.Notes, &s.CreatedAt)
	if err != nil {
		return nil, notFound(err, "workout session")
	}
	return &s, nil
}

// CreateWorkout inserts a session and its sets in one transaction.
func (db *DB) CreateWorkout(ctx context.Context, date string, notes *string, sets []models.NewSetRow) (uuid.UUID, error) {
	var id uuid.UUID
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_sessions (workout_date, notes) VALUES ($1::date, $2) RETURNING id`,
			date, notes,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("inserting workout session: %w", err)
		}
		return insertSets(ctx, tx, id, sets)
	})
	return id, err
}

// ReplaceWorkout updates a session's date and notes and replaces all of its sets.
func (db *DB) ReplaceWorkout(ctx context.Context, id uuid.UUID, date string, notes *string, sets []models.NewSetRow) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE workout_sessions SET workout_date = $2::date, notes = $3 WHERE id = $1`,
			id, date, notes)
		if err != nil {
			return fmt.Errorf("updating workout session %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("workout session %s: %w", id, ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workout_sets WHERE session_id = $1`, id); err != nil {
			return fmt.Errorf("deleting sets of session %s: %w", id, err)
		}
		return insertSets(ctx, tx, id, sets)
	})
}

// UpsertImportedWorkout stores a session identified by an external import key.
// A session already imported under the key is updated and its sets replaced.
// created reports whether a new session was inserted.
func (db *DB) UpsertImportedWorkout(ctx context.Context, externalID, date string, notes *string, sets []models.NewSetRow) (id uuid.UUID, created bool, err error) {
	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_sessions (workout_date, notes, external_id)
			 VALUES ($1::date, $2, $3)
			 ON CONFLICT (external_id) DO UPDATE
			 SET workout_date = EXCLUDED.workout_date, notes = EXCLUDED.notes
			 RETURNING id, (xmax = 0)`,
			date, notes, externalID,
		).Scan(&id, &created)
		if err != nil {
			return fmt.Errorf("upserting workout session %s: %w", externalID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workout_sets WHERE session_id = $1`, id); err != nil {
			return fmt.Errorf("deleting sets of session %s: %w", id, err)
		}
		return insertSets(ctx, tx, id, sets)
	})
	return id, created, err
}

// DeleteWorkout removes a session and its sets.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workout_sets WHERE session_id = $1`, id); err != nil {
			return fmt.Errorf("deleting sets of session %s: %w", id, err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM workout_sessions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("deleting workout session %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("workout session %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// insertSets batch-inserts set rows for one session.
func insertSets(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, rows []models.NewSetRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO workout_sets (session_id, exercise_type_id, set_order, weight, reps) VALUES `
	args := make([]any, 0, len(rows)*5)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, sessionID, r.ExerciseTypeID, r.SetOrder, r.Weight, r.Reps)
	}

	query += strings.Join(valueStrings, ",")

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting workout sets: %w", err)
	}
	return nil
}

func scanSessionRows(rows rowScanner) ([]models.WorkoutSessionRow, error) {
	var result []models.WorkoutSessionRow
	for rows.Next() {
		var s models.WorkoutSessionRow
		if err := rows.Scan(&s.ID, &s.WorkoutDate, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
