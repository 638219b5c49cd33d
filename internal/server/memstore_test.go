package server

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/storage"
)

// memStore is an in-memory Store and overview.Source for handler tests.
type memStore struct {
	mu       sync.Mutex
	types    []models.ExerciseTypeRow
	sessions []models.WorkoutSessionRow
	sets     []models.WorkoutSetRow
	frogs    []models.FrogRow
	logs     []storage.ImportLog
}

func (m *memStore) typeRef(id uuid.UUID) *models.ExerciseTypeRef {
	for _, t := range m.types {
		if t.ID == id {
			return &models.ExerciseTypeRef{ID: t.ID, Name: t.Name, Category: t.Category}
		}
	}
	return nil
}

// overview.Source

func (m *memStore) RecentSessions(_ context.Context, limit int) ([]models.WorkoutSessionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.WorkoutSessionRow(nil), m.sessions...)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) AllSessions(ctx context.Context) ([]models.WorkoutSessionRow, error) {
	return m.RecentSessions(ctx, 0)
}

func (m *memStore) QuerySessions(_ context.Context, start, end string) ([]models.WorkoutSessionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutSessionRow
	for _, s := range m.sessions {
		if s.WorkoutDate >= start && s.WorkoutDate <= end {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (*models.WorkoutSessionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("workout session: %w", storage.ErrNotFound)
}

func (m *memStore) QuerySetsBySession(ctx context.Context, id uuid.UUID) ([]models.WorkoutSetRow, error) {
	return m.QuerySetsBySessions(ctx, []uuid.UUID{id})
}

func (m *memStore) QuerySetsBySessions(_ context.Context, ids []uuid.UUID) ([]models.WorkoutSetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutSetRow
	for _, id := range ids {
		for _, s := range m.sets {
			if s.SessionID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (m *memStore) AllSets(_ context.Context) ([]models.WorkoutSetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.WorkoutSetRow(nil), m.sets...), nil
}

func (m *memStore) ListExerciseTypes(_ context.Context) ([]models.ExerciseTypeRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ExerciseTypeRow(nil), m.types...), nil
}

func (m *memStore) FrogStats(_ context.Context, date string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	completed, total := 0, 0
	for _, f := range m.frogs {
		if f.FrogDate == date {
			total++
			if f.IsCompleted {
				completed++
			}
		}
	}
	return completed, total, nil
}

func (m *memStore) CountTIL(context.Context, string) (int, error) { return 0, nil }

// Store

// requireText mirrors the storage layer's blank-field check.
func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required: %w", field, storage.ErrInvalidInput)
	}
	return nil
}

// nameTaken reports whether another exercise type already uses name, ignoring case.
func (m *memStore) nameTaken(name string, except uuid.UUID) bool {
	for _, t := range m.types {
		if t.ID != except && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (m *memStore) InsertExerciseType(_ context.Context, name, category string) (*models.ExerciseTypeRow, error) {
	if err := requireText("exercise name", name); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(name, uuid.Nil) {
		return nil, fmt.Errorf("exercise type: %w", storage.ErrDuplicate)
	}
	et := models.ExerciseTypeRow{ID: uuid.New(), Name: name, Category: category, TrackingMode: "weight_reps"}
	m.types = append(m.types, et)
	return &et, nil
}

func (m *memStore) RenameExerciseType(_ context.Context, id uuid.UUID, name string) error {
	if err := requireText("exercise name", name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(name, id) {
		return fmt.Errorf("exercise type: %w", storage.ErrDuplicate)
	}
	for i := range m.types {
		if m.types[i].ID == id {
			m.types[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("exercise type %s: %w", id, storage.ErrNotFound)
}

func (m *memStore) DeleteExerciseType(context.Context, uuid.UUID) error { return nil }

func (m *memStore) CreateWorkout(_ context.Context, date string, notes *string, sets []models.NewSetRow) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.sessions = append([]models.WorkoutSessionRow{{ID: id, WorkoutDate: date, Notes: notes}}, m.sessions...)
	m.addSets(id, sets)
	return id, nil
}

func (m *memStore) addSets(id uuid.UUID, sets []models.NewSetRow) {
	for _, s := range sets {
		w, r := s.Weight, s.Reps
		m.sets = append(m.sets, models.WorkoutSetRow{
			ID: uuid.New(), SessionID: id, SetOrder: s.SetOrder,
			Weight: &w, Reps: &r, ExerciseType: m.typeRef(s.ExerciseTypeID),
		})
	}
}

func (m *memStore) ReplaceWorkout(_ context.Context, id uuid.UUID, date string, notes *string, sets []models.NewSetRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].WorkoutDate, m.sessions[i].Notes = date, notes
			kept := m.sets[:0]
			for _, s := range m.sets {
				if s.SessionID != id {
					kept = append(kept, s)
				}
			}
			m.sets = kept
			m.addSets(id, sets)
			return nil
		}
	}
	return fmt.Errorf("workout session %s: %w", id, storage.ErrNotFound)
}

func (m *memStore) DeleteWorkout(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.ID == id {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("workout session %s: %w", id, storage.ErrNotFound)
}

func (m *memStore) ListFrogs(_ context.Context, date string) ([]models.FrogRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FrogRow
	for _, f := range m.frogs {
		if f.FrogDate == date {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) CreateFrog(_ context.Context, date, title string, description *string) (*models.FrogRow, error) {
	if err := requireText("frog title", title); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, f := range m.frogs {
		if f.FrogDate == date {
			n++
		}
	}
	if n >= models.MaxFrogsPerDay {
		return nil, storage.ErrFrogLimit
	}
	f := models.FrogRow{ID: uuid.New(), FrogDate: date, Title: title, Description: description}
	m.frogs = append(m.frogs, f)
	return &f, nil
}

func (m *memStore) UpdateFrog(context.Context, uuid.UUID, string, *string) error { return nil }

func (m *memStore) ToggleFrog(_ context.Context, id uuid.UUID) (*models.FrogRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.frogs {
		if m.frogs[i].ID == id {
			m.frogs[i].IsCompleted = !m.frogs[i].IsCompleted
			f := m.frogs[i]
			return &f, nil
		}
	}
	return nil, fmt.Errorf("frog: %w", storage.ErrNotFound)
}

func (m *memStore) DeleteFrog(context.Context, uuid.UUID) error { return nil }

func (m *memStore) ListTIL(context.Context, string) ([]models.TILRow, error) { return nil, nil }

func (m *memStore) CreateTIL(_ context.Context, date, content string, category *string) (*models.TILRow, error) {
	if err := requireText("til content", content); err != nil {
		return nil, err
	}
	return &models.TILRow{ID: uuid.New(), TILDate: date, Content: content, Category: category}, nil
}

func (m *memStore) UpdateTIL(context.Context, uuid.UUID, string, *string) error { return nil }
func (m *memStore) DeleteTIL(context.Context, uuid.UUID) error                  { return nil }

func (m *memStore) ListQuickNotes(context.Context, string, string) ([]models.QuickNoteRow, error) {
	return nil, nil
}

func (m *memStore) CreateQuickNote(_ context.Context, date, noteType, content string, answer *string) (*models.QuickNoteRow, error) {
	if !models.ValidNoteType(noteType) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidNoteType, noteType)
	}
	if err := requireText("note content", content); err != nil {
		return nil, err
	}
	return &models.QuickNoteRow{ID: uuid.New(), NoteDate: date, Type: noteType, Content: content, Answer: answer}, nil
}

func (m *memStore) UpdateQuickNote(context.Context, uuid.UUID, string, string, *string) error {
	return nil
}
func (m *memStore) DeleteQuickNote(context.Context, uuid.UUID) error { return nil }

func (m *memStore) GetDataStats(context.Context) (*storage.DataStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &storage.DataStats{TotalWorkouts: int64(len(m.sessions)), TotalSets: int64(len(m.sets))}, nil
}

func (m *memStore) QueryImportLogs(context.Context, int) ([]storage.ImportLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.ImportLog(nil), m.logs...), nil
}

func (m *memStore) InsertImportLog(_ context.Context, l storage.ImportLog) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
	return int64(len(m.logs)), nil
}
