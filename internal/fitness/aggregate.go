// Package fitness turns fetched workout rows into the summaries the dashboard
// shows: per-exercise rollups, day and month groupings, and weekly statistics.
// Everything here is a pure function over an immutable snapshot of rows.
package fitness

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

// AggregatedExercise is the per-session rollup of all sets of one exercise type.
// Weight and Reps come from the first set seen, not an average.
type AggregatedExercise struct {
	ExerciseTypeID uuid.UUID `json:"exercise_type_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Weight         float64   `json:"weight"`
	Sets           int       `json:"sets"`
	Reps           int       `json:"reps"`
}

// SessionSummary is a workout session with its aggregated exercises.
type SessionSummary struct {
	ID        uuid.UUID            `json:"id"`
	Date      string               `json:"date"`
	Notes     *string              `json:"notes"`
	Exercises []AggregatedExercise `json:"exercises"`
}

// AggregateExercises collapses set rows into one entry per exercise type, in
// order of first appearance. sets must already be in ascending set_order; use
// SortSets when the source does not guarantee it. Rows without a resolved
// exercise type are dropped.
func AggregateExercises(sets []models.WorkoutSetRow) []AggregatedExercise {
	result := make([]AggregatedExercise, 0)
	index := make(map[uuid.UUID]int)

	for _, s := range sets {
		if s.ExerciseType == nil {
			continue
		}
		key := s.ExerciseType.ID
		if i, ok := index[key]; ok {
			result[i].Sets++
			continue
		}
		index[key] = len(result)
		result = append(result, AggregatedExercise{
			ExerciseTypeID: key,
			Name:           s.ExerciseType.Name,
			Category:       s.ExerciseType.Category,
			Weight:         weightOf(s),
			Sets:           1,
			Reps:           repsOf(s),
		})
	}
	return result
}

// SortSets returns a copy of sets stably ordered by SetOrder.
func SortSets(sets []models.WorkoutSetRow) []models.WorkoutSetRow {
	sorted := make([]models.WorkoutSetRow, len(sets))
	copy(sorted, sets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SetOrder < sorted[j].SetOrder
	})
	return sorted
}

// SetsBySession partitions a multi-session set listing by session ID,
// keeping the relative order of rows within each session.
func SetsBySession(sets []models.WorkoutSetRow) map[uuid.UUID][]models.WorkoutSetRow {
	out := make(map[uuid.UUID][]models.WorkoutSetRow)
	for _, s := range sets {
		out[s.SessionID] = append(out[s.SessionID], s)
	}
	return out
}

// Summarize builds the summary of one session from its sets.
func Summarize(session models.WorkoutSessionRow, sets []models.WorkoutSetRow) SessionSummary {
	return SessionSummary{
		ID:        session.ID,
		Date:      session.WorkoutDate,
		Notes:     session.Notes,
		Exercises: AggregateExercises(sets),
	}
}

// SummarizeAll summarizes each session, in input order, from a combined set
// listing covering all of them.
func SummarizeAll(sessions []models.WorkoutSessionRow, sets []models.WorkoutSetRow) []SessionSummary {
	bySession := SetsBySession(sets)
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, Summarize(s, bySession[s.ID]))
	}
	return out
}

// ExpandExercises turns exercise lines into individual set rows.
// set_order is exerciseIndex*100 + setIndex + 1 so exercises stay contiguous.
func ExpandExercises(entries []models.ExerciseEntry) []models.NewSetRow {
	var rows []models.NewSetRow
	for i, e := range entries {
		for j := 0; j < e.Sets; j++ {
			rows = append(rows, models.NewSetRow{
				ExerciseTypeID: e.ExerciseTypeID,
				SetOrder:       i*100 + j + 1,
				Weight:         e.Weight,
				Reps:           e.Reps,
			})
		}
	}
	return rows
}

func weightOf(s models.WorkoutSetRow) float64 {
	if s.Weight == nil {
		return 0
	}
	return *s.Weight
}

func repsOf(s models.WorkoutSetRow) int {
	if s.Reps == nil {
		return 0
	}
	return *s.Reps
}
