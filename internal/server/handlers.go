package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/storage"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.Home(r.Context(), s.views.Now()))
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, s.views.RecentWorkouts(r.Context(), limit))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.History(r.Context(), r.URL.Query().Get("locale")))
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	now, err := s.referenceTime(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.views.Weekly(r.Context(), now))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	detail, err := s.views.Workout(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListExerciseTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.ExerciseTypes(r.Context()))
}

// referenceTime reads ?today=YYYY-MM-DD as noon of that day in the service's
// location, defaulting to now.
func (s *Server) referenceTime(r *http.Request) (time.Time, error) {
	today := r.URL.Query().Get("today")
	if today == "" {
		return s.views.Now(), nil
	}
	return fitness.NoonIn(today, s.views.Location())
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today.
func (s *Server) dateParam(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return s.views.Today(), nil
	}
	if _, err := fitness.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

func urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// writeStoreError maps storage sentinels to status codes. The underlying
// message is reported as is.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrFrogLimit), errors.Is(err, storage.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrInvalidCategory), errors.Is(err, storage.ErrInvalidNoteType),
		errors.Is(err, storage.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("store error", "error", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
