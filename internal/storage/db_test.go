package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateMapsUniqueViolation(t *testing.T) {
	err := duplicate(&pgconn.PgError{Code: "23505", ConstraintName: "exercise_types_name_key"}, "inserting", "exercise type")
	assert.ErrorIs(t, err, ErrDuplicate)

	other := errors.New("connection reset")
	err = duplicate(other, "inserting", "exercise type")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.EqualError(t, err, "inserting exercise type: connection reset")
}

// Blank-field checks run before the pool is touched, so a zero DB is enough.
func TestBlankFieldsAreInvalidInput(t *testing.T) {
	ctx := context.Background()
	db := &DB{}
	id := uuid.New()

	_, err := db.CreateFrog(ctx, "2024-06-12", "  ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, db.UpdateFrog(ctx, id, "", nil), ErrInvalidInput)

	_, err = db.CreateTIL(ctx, "2024-06-12", "\n", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, db.UpdateTIL(ctx, id, " ", nil), ErrInvalidInput)

	_, err = db.CreateQuickNote(ctx, "2024-06-12", "memo", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, db.UpdateQuickNote(ctx, id, "memo", " ", nil), ErrInvalidInput)

	_, err = db.InsertExerciseType(ctx, "", "chest")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, db.RenameExerciseType(ctx, id, "\t"), ErrInvalidInput)
}
