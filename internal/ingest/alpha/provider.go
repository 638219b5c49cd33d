package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/ingest"
	"github.com/lifeops/lifeops/internal/models"
)

// Store is the persistence surface the provider writes through. *storage.DB
// satisfies it.
type Store interface {
	ExerciseTypesByName(ctx context.Context) (map[string]models.ExerciseTypeRow, error)
	UpsertImportedWorkout(ctx context.Context, externalID, date string, notes *string, sets []models.NewSetRow) (uuid.UUID, bool, error)
}

// Provider processes Alpha Progression CSV exports.
type Provider struct {
	store Store
	log   *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(store Store, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Workout is an export session resolved against the exercise catalog.
type Workout struct {
	Key   string
	Date  string
	Notes string
	Sets  []models.NewSetRow
}

// Plan maps parsed sessions onto exercise types, keyed by lower-cased name.
// Warmups are dropped and working sets keep file order, numbered
// exerciseNumber*100 + setIndex. Exercises with no matching type are skipped
// and their names returned sorted; sessions left without sets are dropped.
func Plan(sessions []Session, types map[string]models.ExerciseTypeRow, result *ingest.Result) []Workout {
	rejected := make(map[string]struct{})
	var workouts []Workout

	for _, s := range sessions {
		w := Workout{Key: s.Key(), Date: s.Day(), Notes: sessionNotes(s)}
		for _, ex := range s.Exercises {
			working := ex.WorkingSets()
			result.SetsReceived += len(working)
			result.WarmupsSkipped += len(ex.Sets) - len(working)

			et, ok := types[strings.ToLower(ex.Name)]
			if !ok {
				rejected[ex.Name] = struct{}{}
				continue
			}
			for i, set := range working {
				w.Sets = append(w.Sets, models.NewSetRow{
					ExerciseTypeID: et.ID,
					SetOrder:       ex.Number*100 + i + 1,
					Weight:         set.Weight,
					Reps:           set.Reps,
				})
			}
		}
		if len(w.Sets) == 0 {
			result.WorkoutsSkipped++
			continue
		}
		workouts = append(workouts, w)
	}

	for name := range rejected {
		result.RejectedNames = append(result.RejectedNames, name)
	}
	sort.Strings(result.RejectedNames)
	return workouts
}

// Ingest parses a CSV export and stores one workout session per export session.
// Re-importing the same export replaces the earlier sets.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	types, err := p.store.ExerciseTypesByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exercise types: %w", err)
	}

	result := &ingest.Result{WorkoutsReceived: len(sessions)}
	workouts := Plan(sessions, types, result)

	for _, w := range workouts {
		notes := w.Notes
		_, created, err := p.store.UpsertImportedWorkout(ctx, w.Key, w.Date, &notes, w.Sets)
		if err != nil {
			return result, fmt.Errorf("storing session %s: %w", w.Key, err)
		}
		if created {
			result.WorkoutsInserted++
		} else {
			result.WorkoutsUpdated++
		}
		result.SetsInserted += len(w.Sets)
	}

	if len(result.RejectedNames) > 0 {
		p.log.Info("alpha import: unknown exercises skipped", "names", result.RejectedNames)
	}
	result.Message = fmt.Sprintf("%d new, %d updated, %d skipped",
		result.WorkoutsInserted, result.WorkoutsUpdated, result.WorkoutsSkipped)
	return result, nil
}

func sessionNotes(s Session) string {
	if s.Duration == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Duration)
}
