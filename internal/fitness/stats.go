package fitness

import (
	"math"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

// CategoryOther collects sets whose exercise type or category did not resolve.
const CategoryOther = "other"

// WeeklyStats summarizes the current Sunday-to-Saturday week.
// Streak is computed over the whole history window, not only this week.
type WeeklyStats struct {
	Count             int            `json:"count"`
	TotalSets         int            `json:"total_sets"`
	TotalVolume       float64        `json:"total_volume"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
	TrainedToday      bool           `json:"trained_today"`
	LastWorkoutID     *uuid.UUID     `json:"last_workout_id"`
	Streak            int            `json:"streak"`
}

// Totals holds all-time counters for the history view.
type Totals struct {
	Workouts    int     `json:"total_workouts"`
	TotalSets   int     `json:"total_sets"`
	TotalVolume float64 `json:"total_volume"`
}

// ComputeWeeklyStats derives the weekly statistics. weekSessions must be
// ordered most recent first; history only needs to cover the streak window.
func ComputeWeeklyStats(weekSessions []models.WorkoutSessionRow, weekSets []models.WorkoutSetRow, history []models.WorkoutSessionRow, today string) WeeklyStats {
	stats := WeeklyStats{
		CategoryBreakdown: make(map[string]int),
	}

	days := distinctDates(weekSessions)
	stats.Count = len(days)
	_, stats.TrainedToday = days[today]

	if len(weekSessions) > 0 {
		id := weekSessions[0].ID
		stats.LastWorkoutID = &id
	}

	for _, s := range weekSets {
		stats.TotalSets++
		stats.TotalVolume += volumeOf(s)
		stats.CategoryBreakdown[categoryOf(s)]++
	}

	stats.Streak = Streak(history, today)
	return stats
}

// Streak counts consecutive session days walking back from today. When today
// has no session the walk may start from yesterday instead; when neither day
// has one the streak is zero.
func Streak(history []models.WorkoutSessionRow, today string) int {
	days := distinctDates(history)

	cursor, err := ParseDate(today)
	if err != nil {
		return 0
	}

	if _, ok := days[FormatDate(cursor)]; !ok {
		yesterday := cursor.AddDate(0, 0, -1)
		if _, ok := days[FormatDate(yesterday)]; !ok {
			return 0
		}
		cursor = yesterday
	}

	streak := 0
	for {
		if _, ok := days[FormatDate(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// ComputeTotals counts sets and volume across every set row.
func ComputeTotals(sessionCount int, sets []models.WorkoutSetRow) Totals {
	t := Totals{Workouts: sessionCount}
	for _, s := range sets {
		t.TotalSets++
		t.TotalVolume += volumeOf(s)
	}
	return t
}

// Goal statuses, derived from the uncapped progress percentage.
const (
	StatusOnTrack    = "on_track"
	StatusInProgress = "in_progress"
	StatusAttention  = "attention"
)

// GoalProgress describes progress toward a numeric target.
// Display is capped at 100; Status uses the raw Progress.
type GoalProgress struct {
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Progress int    `json:"progress"`
	Display  int    `json:"display"`
	Status   string `json:"status"`
}

// Goal computes round(current / target * 100) and its status.
// A non-positive target yields zero progress.
func Goal(current, target int) GoalProgress {
	g := GoalProgress{Current: current, Target: target}
	if target > 0 {
		g.Progress = int(math.Round(float64(current) / float64(target) * 100))
	}
	g.Display = min(g.Progress, 100)

	switch {
	case g.Progress >= 100:
		g.Status = StatusOnTrack
	case g.Progress >= 50:
		g.Status = StatusInProgress
	default:
		g.Status = StatusAttention
	}
	return g
}

// DayCount returns the number of distinct calendar dates across sessions.
func DayCount(sessions []models.WorkoutSessionRow) int {
	return len(distinctDates(sessions))
}

func distinctDates(sessions []models.WorkoutSessionRow) map[string]struct{} {
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		days[s.WorkoutDate] = struct{}{}
	}
	return days
}

func volumeOf(s models.WorkoutSetRow) float64 {
	return weightOf(s) * float64(repsOf(s))
}

func categoryOf(s models.WorkoutSetRow) string {
	if s.ExerciseType == nil || s.ExerciseType.Category == "" {
		return CategoryOther
	}
	return s.ExerciseType.Category
}
