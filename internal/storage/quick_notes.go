package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/models"
)

const noteColumns = `id, note_date::text, type, content, answer, is_answered, created_at, updated_at`

// ListQuickNotes returns the notes for one day, newest first. An empty
// noteType returns every type.
func (db *DB) ListQuickNotes(ctx context.Context, date, noteType string) ([]models.QuickNoteRow, error) {
	query := `SELECT ` + noteColumns + ` FROM quick_notes WHERE note_date = $1::date`
	args := []any{date}
	if noteType != "" {
		query += ` AND type = $2`
		args = append(args, noteType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying quick notes: %w", err)
	}
	defer rows.Close()

	var result []models.QuickNoteRow
	for rows.Next() {
		var n models.QuickNoteRow
		if err := rows.Scan(&n.ID, &n.NoteDate, &n.Type, &n.Content, &n.Answer,
			&n.IsAnswered, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning quick note: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// CreateQuickNote inserts a note. Answers are kept only for questions.
func (db *DB) CreateQuickNote(ctx context.Context, date, noteType, content string, answer *string) (*models.QuickNoteRow, error) {
	if !models.ValidNoteType(noteType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNoteType, noteType)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("note content is required: %w", ErrInvalidInput)
	}
	answer = noteAnswer(noteType, answer)

	var n models.QuickNoteRow
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO quick_notes (note_date, type, content, answer, is_answered)
		 VALUES ($1::date, $2, $3, $4, $5)
		 RETURNING `+noteColumns,
		date, noteType, content, answer, answer != nil,
	).Scan(&n.ID, &n.NoteDate, &n.Type, &n.Content, &n.Answer, &n.IsAnswered, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting quick note: %w", err)
	}
	return &n, nil
}

// UpdateQuickNote rewrites a note's type, content and answer.
func (db *DB) UpdateQuickNote(ctx context.Context, id uuid.UUID, noteType, content string, answer *string) error {
	if !models.ValidNoteType(noteType) {
		return fmt.Errorf("%w: %q", ErrInvalidNoteType, noteType)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("note content is required: %w", ErrInvalidInput)
	}
	answer = noteAnswer(noteType, answer)

	tag, err := db.Pool.Exec(ctx,
		`UPDATE quick_notes
		 SET type = $2, content = $3, answer = $4, is_answered = $5, updated_at = NOW()
		 WHERE id = $1`,
		id, noteType, content, answer, answer != nil)
	if err != nil {
		return fmt.Errorf("updating quick note %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quick note %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteQuickNote removes a note.
func (db *DB) DeleteQuickNote(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM quick_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quick note %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quick note %s: %w", id, ErrNotFound)
	}
	return nil
}

// noteAnswer drops answers on non-question notes and blank answers.
func noteAnswer(noteType string, answer *string) *string {
	if noteType != models.NoteQuestion {
		return nil
	}
	return blankToNil(answer)
}
