package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/overview"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubSource records the arguments it receives and returns canned views.
type stubSource struct {
	limit  int
	locale string
	today  string
	id     uuid.UUID
	err    error
}

func (s *stubSource) RecentWorkouts(_ context.Context, limit int) ([]fitness.DateGroup, error) {
	s.limit = limit
	return []fitness.DateGroup{{Date: "2024-06-12"}}, s.err
}

func (s *stubSource) History(_ context.Context, locale string) (*overview.HistoryView, error) {
	s.locale = locale
	return &overview.HistoryView{Months: []fitness.MonthGroup{}, Totals: fitness.Totals{Workouts: 4}}, s.err
}

func (s *stubSource) Weekly(_ context.Context, today string) (*overview.WeeklyView, error) {
	s.today = today
	return &overview.WeeklyView{Today: "2024-06-12", Stats: fitness.WeeklyStats{Count: 2}}, s.err
}

func (s *stubSource) Workout(_ context.Context, id uuid.UUID) (*overview.WorkoutDetail, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &overview.WorkoutDetail{Session: models.WorkoutSessionRow{ID: id, WorkoutDate: "2024-06-12"}}, nil
}

func (s *stubSource) ExerciseTypes(context.Context) ([]models.ExerciseTypeRow, error) {
	return []models.ExerciseTypeRow{{ID: uuid.New(), Name: "Squat", Category: models.CategoryLegs}}, s.err
}

func (s *stubSource) Home(context.Context) (*overview.HomeSummary, error) {
	return &overview.HomeSummary{Date: "2024-06-12", Greeting: "早上好", WorkoutGoal: 3}, s.err
}

func newHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// resultText returns the text of a tool result's first content block.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func TestNewRegistersEverything(t *testing.T) {
	s := New(&stubSource{}, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s == nil {
		t.Fatal("New returned nil")
	}
}

func TestGetRecentWorkoutsLimit(t *testing.T) {
	ds := &stubSource{}
	h := newHandlers(ds)

	res, err := h.getRecentWorkouts(context.Background(), callRequest(map[string]any{"limit": float64(5)}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if ds.limit != 5 {
		t.Errorf("limit = %d, want 5", ds.limit)
	}

	var groups []fitness.DateGroup
	if err := json.Unmarshal([]byte(resultText(t, res)), &groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups) != 1 || groups[0].Date != "2024-06-12" {
		t.Errorf("groups = %+v", groups)
	}
}

func TestGetRecentWorkoutsNegativeLimit(t *testing.T) {
	h := newHandlers(&stubSource{})
	res, _ := h.getRecentWorkouts(context.Background(), callRequest(map[string]any{"limit": float64(-1)}))
	if !res.IsError {
		t.Error("negative limit accepted")
	}
}

func TestGetWorkoutHistoryLocale(t *testing.T) {
	ds := &stubSource{}
	h := newHandlers(ds)

	if _, err := h.getWorkoutHistory(context.Background(), callRequest(map[string]any{"locale": "en"})); err != nil {
		t.Fatal(err)
	}
	if ds.locale != "en" {
		t.Errorf("locale = %q, want en", ds.locale)
	}
}

func TestGetWorkout(t *testing.T) {
	ds := &stubSource{}
	h := newHandlers(ds)
	id := uuid.New()

	res, err := h.getWorkout(context.Background(), callRequest(map[string]any{"id": id.String()}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if ds.id != id {
		t.Errorf("id = %s, want %s", ds.id, id)
	}
}

func TestGetWorkoutBadInput(t *testing.T) {
	h := newHandlers(&stubSource{})
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing id", map[string]any{}},
		{"not a uuid", map[string]any{"id": "42"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.getWorkout(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Error("expected tool error")
			}
		})
	}
}

func TestGetWeeklyStatsDate(t *testing.T) {
	ds := &stubSource{}
	h := newHandlers(ds)

	res, _ := h.getWeeklyStats(context.Background(), callRequest(map[string]any{"date": "2024-06-12"}))
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if ds.today != "2024-06-12" {
		t.Errorf("today = %q", ds.today)
	}

	res, _ = h.getWeeklyStats(context.Background(), callRequest(map[string]any{"date": "June 12"}))
	if !res.IsError {
		t.Error("invalid date accepted")
	}
}

// TestSourceErrorsBecomeToolErrors verifies data-layer failures are reported
// in the tool result rather than as protocol errors.
func TestSourceErrorsBecomeToolErrors(t *testing.T) {
	h := newHandlers(&stubSource{err: errors.New("connection refused")})

	res, err := h.getDailyOverview(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("protocol error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

func TestResources(t *testing.T) {
	h := newHandlers(&stubSource{})

	var req mcp.ReadResourceRequest
	req.Params.URI = "lifeops://exercise_catalog"
	contents, err := h.exerciseCatalog(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type = %T", contents[0])
	}
	if text.URI != "lifeops://exercise_catalog" || text.MIMEType != "application/json" {
		t.Errorf("contents = %+v", text)
	}
	var types []models.ExerciseTypeRow
	if err := json.Unmarshal([]byte(text.Text), &types); err != nil || len(types) != 1 {
		t.Errorf("catalog = %s (%v)", text.Text, err)
	}

	req.Params.URI = "lifeops://weekly_summary"
	if _, err := h.weeklySummary(context.Background(), req); err != nil {
		t.Fatal(err)
	}
}
