package overview

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
)

// WeeklyView is the current week's statistics and goal progress.
type WeeklyView struct {
	Today     string               `json:"today"`
	WeekStart string               `json:"week_start"`
	WeekEnd   string               `json:"week_end"`
	Stats     fitness.WeeklyStats  `json:"stats"`
	Goal      fitness.GoalProgress `json:"goal"`
}

// Weekly computes the statistics for the Sunday-to-Saturday week containing now.
// The week and the streak history are fetched concurrently.
func (s *Service) Weekly(ctx context.Context, now time.Time) WeeklyView {
	now = now.In(s.cfg.Location)
	today := fitness.FormatDate(now)
	start, end := fitness.WeekRange(now)

	var (
		weekSessions []models.WorkoutSessionRow
		weekSets     []models.WorkoutSetRow
		history      []models.WorkoutSessionRow
	)

	var g errgroup.Group
	g.Go(func() error {
		sessions, err := s.src.QuerySessions(ctx, start, end)
		if err != nil {
			s.logger.Error("querying week sessions", "start", start, "end", end, "error", err)
			return nil
		}
		weekSessions = sessions
		weekSets = s.setsFor(ctx, sessions)
		return nil
	})
	g.Go(func() error {
		sessions, err := s.src.RecentSessions(ctx, s.cfg.HistoryWindow)
		if err != nil {
			s.logger.Error("querying streak history", "window", s.cfg.HistoryWindow, "error", err)
			return nil
		}
		history = sessions
		return nil
	})
	_ = g.Wait()

	stats := fitness.ComputeWeeklyStats(weekSessions, weekSets, history, today)
	return WeeklyView{
		Today:     today,
		WeekStart: start,
		WeekEnd:   end,
		Stats:     stats,
		Goal:      fitness.Goal(stats.Count, s.cfg.WeeklyGoal),
	}
}
