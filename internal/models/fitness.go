package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise categories accepted by the exercise_types table.
const (
	CategoryChest     = "chest"
	CategoryBack      = "back"
	CategoryLegs      = "legs"
	CategoryShoulders = "shoulders"
	CategoryArms      = "arms"
	CategoryCore      = "core"
	CategoryCardio    = "cardio"
)

// Categories lists the exercise categories in display order.
var Categories = []string{
	CategoryChest, CategoryBack, CategoryLegs, CategoryShoulders,
	CategoryArms, CategoryCore, CategoryCardio,
}

// ValidCategory reports whether c is one of the fixed exercise categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ExerciseTypeRow is a row of the exercise_types table.
type ExerciseTypeRow struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	TrackingMode string    `json:"tracking_mode"`
	DefaultUnit  *string   `json:"default_unit"`
}

// ExerciseTypeRef is the exercise type joined onto a set row.
type ExerciseTypeRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// WorkoutSessionRow is a row of the workout_sessions table.
// WorkoutDate is kept as a YYYY-MM-DD string so it never shifts across time zones.
type WorkoutSessionRow struct {
	ID          uuid.UUID `json:"id"`
	WorkoutDate string    `json:"workout_date"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkoutSetRow is one physical set, optionally joined with its exercise type.
// ExerciseType is nil when the join did not resolve.
type WorkoutSetRow struct {
	ID           uuid.UUID        `json:"id"`
	SessionID    uuid.UUID        `json:"session_id"`
	SetOrder     int              `json:"set_order"`
	Weight       *float64         `json:"weight"`
	Reps         *int             `json:"reps"`
	ExerciseType *ExerciseTypeRef `json:"exercise_type"`
}

// ExerciseEntry is one exercise line of a workout being saved. It expands into
// Sets identical set rows.
type ExerciseEntry struct {
	ExerciseTypeID uuid.UUID `json:"exercise_type_id"`
	Weight         float64   `json:"weight"`
	Sets           int       `json:"sets"`
	Reps           int       `json:"reps"`
}

// WorkoutInput is the write-path payload for creating or replacing a workout.
type WorkoutInput struct {
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// Validate checks the payload before it reaches storage.
func (in WorkoutInput) Validate() error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", in.Date)
	}
	if len(in.Exercises) == 0 {
		return errors.New("at least one exercise is required")
	}
	for i, e := range in.Exercises {
		switch {
		case e.ExerciseTypeID == uuid.Nil:
			return fmt.Errorf("exercise %d: exercise_type_id is required", i+1)
		case e.Sets < 1:
			return fmt.Errorf("exercise %d: sets must be at least 1", i+1)
		case e.Reps < 0:
			return fmt.Errorf("exercise %d: reps must not be negative", i+1)
		case e.Weight < 0:
			return fmt.Errorf("exercise %d: weight must not be negative", i+1)
		}
	}
	return nil
}

// NotesPtr returns the trimmed notes, or nil when blank.
func (in WorkoutInput) NotesPtr() *string {
	n := strings.TrimSpace(in.Notes)
	if n == "" {
		return nil
	}
	return &n
}

// NewSetRow is a single set ready for insertion into workout_sets.
type NewSetRow struct {
	ExerciseTypeID uuid.UUID
	SetOrder       int
	Weight         float64
	Reps           int
}
