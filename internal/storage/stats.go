package storage

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts  int64             `json:"total_workouts"`
	TotalSets      int64             `json:"total_sets"`
	TotalVolume    float64           `json:"total_volume"`
	ExerciseTypes  int64             `json:"exercise_types"`
	TotalFrogs     int64             `json:"total_frogs"`
	CompletedFrogs int64             `json:"completed_frogs"`
	TotalTIL       int64             `json:"total_til"`
	TotalNotes     int64             `json:"total_notes"`
	EarliestData   *string           `json:"earliest_data"`
	LatestData     *string           `json:"latest_data"`
	SetsByCategory []CategorySetStat `json:"sets_by_category"`
}

// CategorySetStat holds set count and volume for one exercise category.
type CategorySetStat struct {
	Category string  `json:"category"`
	Sets     int64   `json:"sets"`
	Volume   float64 `json:"volume"`
}

// GetDataStats returns aggregate statistics across every table.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(workout_date)::text, MAX(workout_date)::text FROM workout_sessions`,
	).Scan(&stats.TotalWorkouts, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	// Volume treats a missing weight or reps as zero.
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(COALESCE(weight, 0) * COALESCE(reps, 0)), 0)::float8
		 FROM workout_sets`,
	).Scan(&stats.TotalSets, &stats.TotalVolume)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercise_types`).Scan(&stats.ExerciseTypes)
	if err != nil {
		return nil, fmt.Errorf("counting exercise types: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_completed) FROM daily_frogs`,
	).Scan(&stats.TotalFrogs, &stats.CompletedFrogs)
	if err != nil {
		return nil, fmt.Errorf("counting frogs: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM daily_til`).Scan(&stats.TotalTIL)
	if err != nil {
		return nil, fmt.Errorf("counting til entries: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM quick_notes`).Scan(&stats.TotalNotes)
	if err != nil {
		return nil, fmt.Errorf("counting quick notes: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT COALESCE(et.category, 'other'), COUNT(*),
		        COALESCE(SUM(COALESCE(ws.weight, 0) * COALESCE(ws.reps, 0)), 0)::float8
		 FROM workout_sets ws
		 LEFT JOIN exercise_types et ON et.id = ws.exercise_type_id
		 GROUP BY 1
		 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sets by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s CategorySetStat
		if err := rows.Scan(&s.Category, &s.Sets, &s.Volume); err != nil {
			return nil, fmt.Errorf("scanning category stat: %w", err)
		}
		stats.SetsByCategory = append(stats.SetsByCategory, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
