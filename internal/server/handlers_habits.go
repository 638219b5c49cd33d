package server

import (
	"net/http"

	"github.com/lifeops/lifeops/internal/fitness"
)

type frogInput struct {
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type tilInput struct {
	Date     string  `json:"date"`
	Content  string  `json:"content"`
	Category *string `json:"category"`
}

type noteInput struct {
	Date    string  `json:"date"`
	Type    string  `json:"type"`
	Content string  `json:"content"`
	Answer  *string `json:"answer"`
}

// bodyDate validates an optional body date, defaulting to today.
func (s *Server) bodyDate(w http.ResponseWriter, date string) (string, bool) {
	if date == "" {
		return s.views.Today(), true
	}
	if _, err := fitness.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return date, true
}

func (s *Server) handleListFrogs(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	frogs, err := s.store.ListFrogs(r.Context(), date)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(frogs))
}

func (s *Server) handleCreateFrog(w http.ResponseWriter, r *http.Request) {
	var in frogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	date, ok := s.bodyDate(w, in.Date)
	if !ok {
		return
	}
	frog, err := s.store.CreateFrog(r.Context(), date, in.Title, in.Description)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, frog)
}

func (s *Server) handleUpdateFrog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in frogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.store.UpdateFrog(r.Context(), id, in.Title, in.Description); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFrog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	frog, err := s.store.ToggleFrog(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frog)
}

func (s *Server) handleDeleteFrog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteFrog(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTIL(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.store.ListTIL(r.Context(), date)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleCreateTIL(w http.ResponseWriter, r *http.Request) {
	var in tilInput
	if !decodeJSON(w, r, &in) {
		return
	}
	date, ok := s.bodyDate(w, in.Date)
	if !ok {
		return
	}
	entry, err := s.store.CreateTIL(r.Context(), date, in.Content, in.Category)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateTIL(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in tilInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.store.UpdateTIL(r.Context(), id, in.Content, in.Category); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTIL(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTIL(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notes, err := s.store.ListQuickNotes(r.Context(), date, r.URL.Query().Get("type"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var in noteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	date, ok := s.bodyDate(w, in.Date)
	if !ok {
		return
	}
	note, err := s.store.CreateQuickNote(r.Context(), date, in.Type, in.Content, in.Answer)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in noteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.store.UpdateQuickNote(r.Context(), id, in.Type, in.Content, in.Answer); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteQuickNote(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
