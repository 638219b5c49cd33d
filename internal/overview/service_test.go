package overview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

// fakeSource serves fixed rows. Setting err makes every query fail.
type fakeSource struct {
	sessions []models.WorkoutSessionRow
	sets     []models.WorkoutSetRow
	types    []models.ExerciseTypeRow
	frogs    [2]int
	til      int
	err      error
}

func (f *fakeSource) RecentSessions(_ context.Context, limit int) ([]models.WorkoutSessionRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.sessions) {
		return f.sessions[:limit], nil
	}
	return f.sessions, nil
}

func (f *fakeSource) AllSessions(ctx context.Context) ([]models.WorkoutSessionRow, error) {
	return f.RecentSessions(ctx, 0)
}

func (f *fakeSource) QuerySessions(_ context.Context, start, end string) ([]models.WorkoutSessionRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.WorkoutSessionRow
	for _, s := range f.sessions {
		if s.WorkoutDate >= start && s.WorkoutDate <= end {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) GetSession(_ context.Context, id uuid.UUID) (*models.WorkoutSessionRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.sessions {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, errors.New("workout session: not found")
}

func (f *fakeSource) QuerySetsBySession(ctx context.Context, id uuid.UUID) ([]models.WorkoutSetRow, error) {
	return f.QuerySetsBySessions(ctx, []uuid.UUID{id})
}

func (f *fakeSource) QuerySetsBySessions(_ context.Context, ids []uuid.UUID) ([]models.WorkoutSetRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.WorkoutSetRow
	for _, s := range f.sets {
		if want[s.SessionID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) AllSets(_ context.Context) ([]models.WorkoutSetRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sets, nil
}

func (f *fakeSource) ListExerciseTypes(_ context.Context) ([]models.ExerciseTypeRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.types, nil
}

func (f *fakeSource) FrogStats(_ context.Context, _ string) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.frogs[0], f.frogs[1], nil
}

func (f *fakeSource) CountTIL(_ context.Context, _ string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.til, nil
}

var (
	benchRef = &models.ExerciseTypeRef{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000b1"), Name: "Bench Press", Category: models.CategoryChest}
	squatRef = &models.ExerciseTypeRef{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1"), Name: "Squat", Category: models.CategoryLegs}
)

func ptr[T any](v T) *T { return &v }

func session(date string) models.WorkoutSessionRow {
	return models.WorkoutSessionRow{ID: uuid.New(), WorkoutDate: date}
}

func setOf(sess models.WorkoutSessionRow, ex *models.ExerciseTypeRef, order int, weight float64, reps int) models.WorkoutSetRow {
	return models.WorkoutSetRow{
		ID: uuid.New(), SessionID: sess.ID, SetOrder: order,
		Weight: ptr(weight), Reps: ptr(reps), ExerciseType: ex,
	}
}

func newTestService(src Source) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(src, Config{MonthLocale: "zh", Location: time.UTC}, logger)
}

// fixture: Wed 2024-06-12 is "today"; the week runs 2024-06-09..2024-06-15.
func fixture() *fakeSource {
	s1 := session("2024-06-12")
	s2 := session("2024-06-11")
	s3 := session("2024-05-30")
	return &fakeSource{
		sessions: []models.WorkoutSessionRow{s1, s2, s3},
		sets: []models.WorkoutSetRow{
			setOf(s1, squatRef, 1, 100, 5),
			setOf(s1, squatRef, 2, 100, 5),
			setOf(s1, benchRef, 101, 60, 8),
			setOf(s2, benchRef, 1, 50, 10),
			setOf(s3, squatRef, 1, 80, 5),
		},
		frogs: [2]int{1, 3},
		til:   2,
	}
}

var wednesday = time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)

func TestRecentWorkouts(t *testing.T) {
	svc := newTestService(fixture())

	groups := svc.RecentWorkouts(context.Background(), 0)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-06-12", groups[0].Date)
	require.Len(t, groups[0].Sessions, 1)
	ex := groups[0].Sessions[0].Exercises
	require.Len(t, ex, 2)
	assert.Equal(t, "Squat", ex[0].Name)
	assert.Equal(t, 2, ex[0].Sets)
	assert.Equal(t, "Bench Press", ex[1].Name)
}

func TestRecentWorkoutsLimit(t *testing.T) {
	svc := newTestService(fixture())
	groups := svc.RecentWorkouts(context.Background(), 1)
	require.Len(t, groups, 1)
	assert.Equal(t, "2024-06-12", groups[0].Date)
}

// TestReadPathsDegrade verifies that query failures produce empty views
// instead of errors.
func TestReadPathsDegrade(t *testing.T) {
	svc := newTestService(&fakeSource{err: errBackend})
	ctx := context.Background()

	groups := svc.RecentWorkouts(ctx, 0)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	history := svc.History(ctx, "")
	assert.NotNil(t, history.Months)
	assert.Empty(t, history.Months)
	assert.Equal(t, fitness.Totals{}, history.Totals)

	weekly := svc.Weekly(ctx, wednesday)
	assert.Equal(t, 0, weekly.Stats.Count)
	assert.Equal(t, 0, weekly.Stats.Streak)
	assert.Equal(t, fitness.StatusAttention, weekly.Goal.Status)

	home := svc.Home(ctx, wednesday)
	assert.Equal(t, 0, home.Frogs.Total)
	assert.Equal(t, 0, home.TILCount)
	assert.Equal(t, 0, home.WorkoutDays)

	assert.NotNil(t, svc.ExerciseTypes(ctx))
}

func TestHistory(t *testing.T) {
	svc := newTestService(fixture())

	view := svc.History(context.Background(), "")

	require.Len(t, view.Months, 2)
	assert.Equal(t, "2024-06", view.Months[0].Month)
	assert.Equal(t, "2024年6月", view.Months[0].Label)
	assert.Len(t, view.Months[0].Sessions, 2)
	assert.Equal(t, "2024年5月", view.Months[1].Label)
	assert.Equal(t, fitness.Totals{Workouts: 3, TotalSets: 5, TotalVolume: 2380}, view.Totals)

	en := svc.History(context.Background(), "en")
	assert.Equal(t, "June 2024", en.Months[0].Label)
}

func TestWorkout(t *testing.T) {
	src := fixture()
	svc := newTestService(src)
	id := src.sessions[0].ID

	detail, err := svc.Workout(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, detail.Session.ID)
	assert.Len(t, detail.Sets, 3)
	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, 60.0, detail.Exercises[1].Weight)

	_, err = svc.Workout(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestWeekly(t *testing.T) {
	svc := newTestService(fixture())

	view := svc.Weekly(context.Background(), wednesday)

	assert.Equal(t, "2024-06-12", view.Today)
	assert.Equal(t, "2024-06-09", view.WeekStart)
	assert.Equal(t, "2024-06-15", view.WeekEnd)
	assert.Equal(t, 2, view.Stats.Count)
	assert.Equal(t, 4, view.Stats.TotalSets)
	assert.Equal(t, 1000.0+480+500, view.Stats.TotalVolume)
	assert.Equal(t, map[string]int{models.CategoryLegs: 2, models.CategoryChest: 2}, view.Stats.CategoryBreakdown)
	assert.True(t, view.Stats.TrainedToday)
	assert.Equal(t, 2, view.Stats.Streak)
	assert.Equal(t, fitness.GoalProgress{Current: 2, Target: 3, Progress: 67, Display: 67, Status: fitness.StatusInProgress}, view.Goal)
}

func TestHome(t *testing.T) {
	svc := newTestService(fixture())

	home := svc.Home(context.Background(), wednesday)

	assert.Equal(t, "2024-06-12", home.Date)
	assert.Equal(t, "早上好", home.Greeting)
	assert.Equal(t, FrogProgress{Completed: 1, Total: 3, Max: models.MaxFrogsPerDay}, home.Frogs)
	assert.Equal(t, 2, home.TILCount)
	assert.Equal(t, 2, home.WorkoutDays)
	assert.Equal(t, 3, home.WorkoutGoal)
	require.Len(t, home.Areas, 1)
	assert.Equal(t, "fitness", home.Areas[0].Key)
	assert.Equal(t, 67, home.Areas[0].Goal.Progress)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{4, "晚上好"},
		{5, "早上好"},
		{11, "早上好"},
		{12, "下午好"},
		{17, "下午好"},
		{18, "晚上好"},
		{23, "晚上好"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(tt.hour), "hour %d", tt.hour)
	}
}
