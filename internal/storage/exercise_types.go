package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

const exerciseTypeColumns = `id, name, category, tracking_mode, default_unit`

// ListExerciseTypes returns all exercise types ordered by category, then name.
func (db *DB) ListExerciseTypes(ctx context.Context) ([]models.ExerciseTypeRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise types: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseTypeRow
	for rows.Next() {
		var e models.ExerciseTypeRow
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.TrackingMode, &e.DefaultUnit); err != nil {
			return nil, fmt.Errorf("scanning exercise type: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExerciseType retrieves one exercise type by ID.
func (db *DB) GetExerciseType(ctx context.Context, id uuid.UUID) (*models.ExerciseTypeRow, error) {
	var e models.ExerciseTypeRow
	err := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Category, &e.TrackingMode, &e.DefaultUnit)
	if err != nil {
		return nil, notFound(err, "exercise type")
	}
	return &e, nil
}

// InsertExerciseType creates a weight/reps exercise type measured in kg.
func (db *DB) InsertExerciseType(ctx context.Context, name, category string) (*models.ExerciseTypeRow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("exercise name is required: %w", ErrInvalidInput)
	}
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	var e models.ExerciseTypeRow
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercise_types (name, category, tracking_mode, default_unit)
		 VALUES ($1, $2, 'weight_reps', 'kg')
		 RETURNING `+exerciseTypeColumns,
		name, category,
	).Scan(&e.ID, &e.Name, &e.Category, &e.TrackingMode, &e.DefaultUnit)
	if err != nil {
		return nil, duplicate(err, "inserting", "exercise type")
	}
	return &e, nil
}

// RenameExerciseType updates an exercise type's name.
func (db *DB) RenameExerciseType(ctx context.Context, id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("exercise name is required: %w", ErrInvalidInput)
	}
	tag, err := db.Pool.Exec(ctx, `UPDATE exercise_types SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return duplicate(err, "renaming", "exercise type")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exercise type %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteExerciseType removes an exercise type. Existing sets keep their rows
// with a NULL exercise type.
func (db *DB) DeleteExerciseType(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercise_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise type %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exercise type %s: %w", id, ErrNotFound)
	}
	return nil
}

// ExerciseTypesByName returns exercise types keyed by lower-cased name.
func (db *DB) ExerciseTypesByName(ctx context.Context) (map[string]models.ExerciseTypeRow, error) {
	types, err := db.ListExerciseTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.ExerciseTypeRow, len(types))
	for _, t := range types {
		out[strings.ToLower(t.Name)] = t
	}
	return out, nil
}
