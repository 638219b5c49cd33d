package overview

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
)

// HistoryView is the full workout history grouped by month.
type HistoryView struct {
	Months []fitness.MonthGroup `json:"months"`
	Totals fitness.Totals       `json:"totals"`
}

// WorkoutDetail is one session with its raw sets and aggregated exercises.
type WorkoutDetail struct {
	Session   models.WorkoutSessionRow     `json:"session"`
	Sets      []models.WorkoutSetRow       `json:"sets"`
	Exercises []fitness.AggregatedExercise `json:"exercises"`
}

// RecentWorkouts returns the latest sessions grouped by day. A non-positive
// limit uses the configured default.
func (s *Service) RecentWorkouts(ctx context.Context, limit int) []fitness.DateGroup {
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}
	sessions, err := s.src.RecentSessions(ctx, limit)
	if err != nil {
		s.logger.Error("querying recent sessions", "limit", limit, "error", err)
		return []fitness.DateGroup{}
	}
	sets := s.setsFor(ctx, sessions)
	return fitness.GroupByDay(fitness.SummarizeAll(sessions, sets))
}

// History returns every session grouped by month, labelled in locale
// (empty means the configured locale), with overall totals.
func (s *Service) History(ctx context.Context, locale string) HistoryView {
	if locale == "" {
		locale = s.cfg.MonthLocale
	}
	view := HistoryView{Months: []fitness.MonthGroup{}}

	sessions, err := s.src.AllSessions(ctx)
	if err != nil {
		s.logger.Error("querying all sessions", "error", err)
		return view
	}
	sets, err := s.src.AllSets(ctx)
	if err != nil {
		s.logger.Error("querying all sets", "error", err)
		sets = nil
	}

	view.Months = fitness.GroupByMonth(fitness.SummarizeAll(sessions, sets), fitness.MonthLabeler(locale))
	view.Totals = fitness.ComputeTotals(len(sessions), sets)
	return view
}

// Workout returns a single session. Unlike the list views, a missing session
// or a failed query is returned as an error.
func (s *Service) Workout(ctx context.Context, id uuid.UUID) (*WorkoutDetail, error) {
	session, err := s.src.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	sets, err := s.src.QuerySetsBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading sets of workout %s: %w", id, err)
	}
	if sets == nil {
		sets = []models.WorkoutSetRow{}
	}
	return &WorkoutDetail{
		Session:   *session,
		Sets:      sets,
		Exercises: fitness.AggregateExercises(fitness.SortSets(sets)),
	}, nil
}
