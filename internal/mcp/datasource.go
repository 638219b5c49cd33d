package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/overview"
)

// DataSource abstracts the views served to MCP clients. Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	RecentWorkouts(ctx context.Context, limit int) ([]fitness.DateGroup, error)
	History(ctx context.Context, locale string) (*overview.HistoryView, error)
	// Weekly reports the week containing today (YYYY-MM-DD); empty means now.
	Weekly(ctx context.Context, today string) (*overview.WeeklyView, error)
	Workout(ctx context.Context, id uuid.UUID) (*overview.WorkoutDetail, error)
	ExerciseTypes(ctx context.Context) ([]models.ExerciseTypeRow, error)
	Home(ctx context.Context) (*overview.HomeSummary, error)
}

// Local serves views straight from an overview.Service.
type Local struct {
	views *overview.Service
}

var _ DataSource = (*Local)(nil)

// NewLocal wraps views for in-process use.
func NewLocal(views *overview.Service) *Local {
	return &Local{views: views}
}

func (l *Local) RecentWorkouts(ctx context.Context, limit int) ([]fitness.DateGroup, error) {
	return l.views.RecentWorkouts(ctx, limit), nil
}

func (l *Local) History(ctx context.Context, locale string) (*overview.HistoryView, error) {
	v := l.views.History(ctx, locale)
	return &v, nil
}

func (l *Local) Weekly(ctx context.Context, today string) (*overview.WeeklyView, error) {
	now := l.views.Now()
	if today != "" {
		var err error
		if now, err = fitness.NoonIn(today, l.views.Location()); err != nil {
			return nil, err
		}
	}
	v := l.views.Weekly(ctx, now)
	return &v, nil
}

func (l *Local) Workout(ctx context.Context, id uuid.UUID) (*overview.WorkoutDetail, error) {
	return l.views.Workout(ctx, id)
}

func (l *Local) ExerciseTypes(ctx context.Context) ([]models.ExerciseTypeRow, error) {
	return l.views.ExerciseTypes(ctx), nil
}

func (l *Local) Home(ctx context.Context) (*overview.HomeSummary, error) {
	v := l.views.Home(ctx, l.views.Now())
	return &v, nil
}
