package server

import (
	"net/http"

	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
)

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var in models.WorkoutInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateWorkout(r.Context(), in.Date, in.NotesPtr(), fitness.ExpandExercises(in.Exercises))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleReplaceWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in models.WorkoutInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.ReplaceWorkout(r.Context(), id, in.Date, in.NotesPtr(), fitness.ExpandExercises(in.Exercises)); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteWorkout(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exerciseTypeInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *Server) handleCreateExerciseType(w http.ResponseWriter, r *http.Request) {
	var in exerciseTypeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !models.ValidCategory(in.Category) {
		writeError(w, http.StatusBadRequest, "invalid category: "+in.Category)
		return
	}
	et, err := s.store.InsertExerciseType(r.Context(), in.Name, in.Category)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, et)
}

func (s *Server) handleRenameExerciseType(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in exerciseTypeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.store.RenameExerciseType(r.Context(), id, in.Name); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExerciseType(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteExerciseType(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
