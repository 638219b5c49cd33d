package overview

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
)

// FrogProgress counts today's completed frogs.
type FrogProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Max       int `json:"max"`
}

// AreaCard is a life-area status card on the home screen.
type AreaCard struct {
	Key  string               `json:"key"`
	Name string               `json:"name"`
	Unit string               `json:"unit"`
	Goal fitness.GoalProgress `json:"goal"`
}

// HomeSummary is the home screen: today's habits plus the weekly areas.
type HomeSummary struct {
	Date        string       `json:"date"`
	Greeting    string       `json:"greeting"`
	Frogs       FrogProgress `json:"frogs"`
	TILCount    int          `json:"til_count"`
	WorkoutDays int          `json:"workout_days"`
	WorkoutGoal int          `json:"workout_goal"`
	Areas       []AreaCard   `json:"areas"`
}

// Greeting returns the time-of-day greeting for an hour 0-23.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "早上好"
	case hour >= 12 && hour < 18:
		return "下午好"
	default:
		return "晚上好"
	}
}

// Home gathers today's frog and TIL counts and this week's workout days.
func (s *Service) Home(ctx context.Context, now time.Time) HomeSummary {
	now = now.In(s.cfg.Location)
	today := fitness.FormatDate(now)
	start, end := fitness.WeekRange(now)

	summary := HomeSummary{
		Date:        today,
		Greeting:    Greeting(now.Hour()),
		Frogs:       FrogProgress{Max: models.MaxFrogsPerDay},
		WorkoutGoal: s.cfg.WeeklyGoal,
	}

	var g errgroup.Group
	g.Go(func() error {
		completed, total, err := s.src.FrogStats(ctx, today)
		if err != nil {
			s.logger.Error("querying today's frogs", "date", today, "error", err)
			return nil
		}
		summary.Frogs.Completed, summary.Frogs.Total = completed, total
		return nil
	})
	g.Go(func() error {
		n, err := s.src.CountTIL(ctx, today)
		if err != nil {
			s.logger.Error("counting today's til entries", "date", today, "error", err)
			return nil
		}
		summary.TILCount = n
		return nil
	})
	g.Go(func() error {
		sessions, err := s.src.QuerySessions(ctx, start, end)
		if err != nil {
			s.logger.Error("querying week sessions", "start", start, "end", end, "error", err)
			return nil
		}
		summary.WorkoutDays = fitness.DayCount(sessions)
		return nil
	})
	_ = g.Wait()

	summary.Areas = []AreaCard{{
		Key:  "fitness",
		Name: "健身",
		Unit: "次",
		Goal: fitness.Goal(summary.WorkoutDays, s.cfg.WeeklyGoal),
	}}
	return summary
}
