package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

// Sets are joined with their exercise type; a failed join leaves et.* NULL.
const setSelect = `SELECT ws.id, ws.session_id, ws.set_order, ws.weight, ws.reps,
	 et.id, et.name, et.category
	 FROM workout_sets ws
	 LEFT JOIN exercise_types et ON et.id = ws.exercise_type_id`

// QuerySetsBySession retrieves one session's sets in ascending set_order.
func (db *DB) QuerySetsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.WorkoutSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		setSelect+` WHERE ws.session_id = $1 ORDER BY ws.set_order ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	return scanSetRows(rows)
}

// QuerySetsBySessions retrieves the sets of several sessions, ordered by
// session and then ascending set_order.
func (db *DB) QuerySetsBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]models.WorkoutSetRow, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	rows, err := db.Pool.Query(ctx,
		setSelect+` WHERE ws.session_id = ANY($1) ORDER BY ws.session_id, ws.set_order ASC`, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	return scanSetRows(rows)
}

// AllSets retrieves every set row.
func (db *DB) AllSets(ctx context.Context) ([]models.WorkoutSetRow, error) {
	rows, err := db.Pool.Query(ctx, setSelect+` ORDER BY ws.session_id, ws.set_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying all workout sets: %w", err)
	}
	defer rows.Close()

	return scanSetRows(rows)
}

func scanSetRows(rows rowScanner) ([]models.WorkoutSetRow, error) {
	var result []models.WorkoutSetRow
	for rows.Next() {
		var (
			r        models.WorkoutSetRow
			typeID   *uuid.UUID
			name     *string
			category *string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.SetOrder, &r.Weight, &r.Reps,
			&typeID, &name, &category); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		if typeID != nil {
			r.ExerciseType = &models.ExerciseTypeRef{ID: *typeID}
			if name != nil {
				r.ExerciseType.Name = *name
			}
			if category != nil {
				r.ExerciseType.Category = *category
			}
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
