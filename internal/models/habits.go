package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxFrogsPerDay caps the number of daily priorities.
const MaxFrogsPerDay = 3

// FrogRow is a row of the daily_frogs table.
type FrogRow struct {
	ID          uuid.UUID  `json:"id"`
	FrogDate    string     `json:"frog_date"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TILRow is a row of the daily_til table.
type TILRow struct {
	ID        uuid.UUID `json:"id"`
	TILDate   string    `json:"til_date"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Quick note types.
const (
	NoteMemo     = "memo"
	NoteIdea     = "idea"
	NoteQuestion = "question"
)

// ValidNoteType reports whether t is a known quick note type.
func ValidNoteType(t string) bool {
	return t == NoteMemo || t == NoteIdea || t == NoteQuestion
}

// QuickNoteRow is a row of the quick_notes table.
type QuickNoteRow struct {
	ID         uuid.UUID  `json:"id"`
	NoteDate   string     `json:"note_date"`
	Type       string     `json:"type"`
	Content    string     `json:"content"`
	Answer     *string    `json:"answer"`
	IsAnswered bool       `json:"is_answered"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
