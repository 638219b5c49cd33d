package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/overview"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestRecentWorkouts verifies the limit query param and array decoding.
func TestRecentWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "7" {
				t.Errorf("limit=%q, want 7", got)
			}
			writeTestJSON(t, w, []fitness.DateGroup{
				{Date: "2024-06-12", Sessions: []fitness.SessionSummary{{Date: "2024-06-12"}}},
			})
		},
	})
	defer ts.Close()

	groups, err := NewHTTPClient(ts.URL, "").RecentWorkouts(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || len(groups[0].Sessions) != 1 {
		t.Errorf("groups = %+v", groups)
	}
}

// TestRecentWorkoutsNoLimit verifies a zero limit leaves the server default.
func TestRecentWorkoutsNoLimit(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/workouts": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				t.Errorf("query=%q, want empty", r.URL.RawQuery)
			}
			writeTestJSON(t, w, []fitness.DateGroup{})
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL, "").RecentWorkouts(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/history": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("locale"); got != "zh" {
				t.Errorf("locale=%q, want zh", got)
			}
			writeTestJSON(t, w, overview.HistoryView{
				Months: []fitness.MonthGroup{{Month: "2024-06", Label: "2024年6月"}},
				Totals: fitness.Totals{Workouts: 3, TotalSets: 12, TotalVolume: 2400},
			})
		},
	})
	defer ts.Close()

	v, err := NewHTTPClient(ts.URL, "").History(context.Background(), "zh")
	if err != nil {
		t.Fatal(err)
	}
	if v.Totals.Workouts != 3 || v.Totals.TotalVolume != 2400 {
		t.Errorf("totals = %+v", v.Totals)
	}
	if len(v.Months) != 1 || v.Months[0].Label != "2024年6月" {
		t.Errorf("months = %+v", v.Months)
	}
}

func TestWeekly(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/weekly": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("today"); got != "2024-06-12" {
				t.Errorf("today=%q, want 2024-06-12", got)
			}
			writeTestJSON(t, w, overview.WeeklyView{
				Today: "2024-06-12", WeekStart: "2024-06-09", WeekEnd: "2024-06-15",
				Stats: fitness.WeeklyStats{Count: 2, Streak: 2, CategoryBreakdown: map[string]int{"chest": 4}},
				Goal:  fitness.Goal(2, 3),
			})
		},
	})
	defer ts.Close()

	v, err := NewHTTPClient(ts.URL, "").Weekly(context.Background(), "2024-06-12")
	if err != nil {
		t.Fatal(err)
	}
	if v.Stats.Count != 2 || v.Stats.CategoryBreakdown["chest"] != 4 {
		t.Errorf("stats = %+v", v.Stats)
	}
	if v.Goal.Status != fitness.StatusInProgress {
		t.Errorf("goal status = %q", v.Goal.Status)
	}
}

func TestWorkoutPath(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/workouts/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, overview.WorkoutDetail{Session: models.WorkoutSessionRow{ID: id}})
		},
	})
	defer ts.Close()

	d, err := NewHTTPClient(ts.URL, "").Workout(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if d.Session.ID != id {
		t.Errorf("session id = %s", d.Session.ID)
	}
}

// TestErrorBodySurfaced verifies the API's {"error": ...} message reaches the caller.
func TestErrorBodySurfaced(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/fitness/workouts/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeTestJSON(t, w, map[string]string{"error": "workout session: not found"})
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL, "").Workout(context.Background(), id)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}

// TestAPIKeyHeader verifies the optional key is forwarded.
func TestAPIKeyHeader(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/overview": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "k" {
				t.Errorf("X-API-Key=%q, want k", got)
			}
			writeTestJSON(t, w, overview.HomeSummary{Date: "2024-06-12", WorkoutGoal: 3})
		},
		"/api/v1/fitness/exercise-types": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.ExerciseTypeRow{{Name: "Squat"}})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL+"/", "k")
	home, err := c.Home(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if home.WorkoutGoal != 3 {
		t.Errorf("goal = %d", home.WorkoutGoal)
	}
	types, err := c.ExerciseTypes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 1 {
		t.Errorf("types = %+v", types)
	}
}
