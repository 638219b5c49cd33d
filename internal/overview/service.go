// Package overview composes storage queries with the fitness core into the
// views served over HTTP and MCP. Read paths never fail: a query error is
// logged and the affected part of the view falls back to its empty value.
package overview

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
)

// Source is the persistence surface the service reads from. *storage.DB
// satisfies it.
type Source interface {
	RecentSessions(ctx context.Context, limit int) ([]models.WorkoutSessionRow, error)
	AllSessions(ctx context.Context) ([]models.WorkoutSessionRow, error)
	QuerySessions(ctx context.Context, start, end string) ([]models.WorkoutSessionRow, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSessionRow, error)
	QuerySetsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.WorkoutSetRow, error)
	QuerySetsBySessions(ctx context.Context, sessionIDs []uuid.UUID) ([]models.WorkoutSetRow, error)
	AllSets(ctx context.Context) ([]models.WorkoutSetRow, error)
	ListExerciseTypes(ctx context.Context) ([]models.ExerciseTypeRow, error)
	FrogStats(ctx context.Context, date string) (completed, total int, err error)
	CountTIL(ctx context.Context, date string) (int, error)
}

// Config tunes the derived views.
type Config struct {
	WeeklyGoal    int
	HistoryWindow int
	RecentLimit   int
	MonthLocale   string
	Location      *time.Location
}

// Service builds dashboard views.
type Service struct {
	src    Source
	cfg    Config
	logger *slog.Logger
}

// New creates a Service. Zero config values fall back to the defaults.
func New(src Source, cfg Config, logger *slog.Logger) *Service {
	if cfg.WeeklyGoal <= 0 {
		cfg.WeeklyGoal = 3
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 30
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 20
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{src: src, cfg: cfg, logger: logger}
}

// Now returns the current time in the configured location.
func (s *Service) Now() time.Time {
	return time.Now().In(s.cfg.Location)
}

// Today returns the current calendar date in the configured location.
func (s *Service) Today() string {
	return fitness.FormatDate(s.Now())
}

// Location returns the configured location.
func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

// ExerciseTypes lists the exercise catalog.
func (s *Service) ExerciseTypes(ctx context.Context) []models.ExerciseTypeRow {
	types, err := s.src.ListExerciseTypes(ctx)
	if err != nil {
		s.logger.Error("listing exercise types", "error", err)
		return []models.ExerciseTypeRow{}
	}
	if types == nil {
		return []models.ExerciseTypeRow{}
	}
	return types
}

// setsFor fetches the sets of the given sessions in one query.
func (s *Service) setsFor(ctx context.Context, sessions []models.WorkoutSessionRow) []models.WorkoutSetRow {
	if len(sessions) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	sets, err := s.src.QuerySetsBySessions(ctx, ids)
	if err != nil {
		s.logger.Error("querying workout sets", "sessions", len(ids), "error", err)
		return nil
	}
	return sets
}
