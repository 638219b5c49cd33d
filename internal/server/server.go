package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/ingest"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/overview"
	"github.com/lifeops/lifeops/internal/storage"
)

// Store is the write side of the API. *storage.DB satisfies it.
type Store interface {
	InsertExerciseType(ctx context.Context, name, category string) (*models.ExerciseTypeRow, error)
	RenameExerciseType(ctx context.Context, id uuid.UUID, name string) error
	DeleteExerciseType(ctx context.Context, id uuid.UUID) error

	CreateWorkout(ctx context.Context, date string, notes *string, sets []models.NewSetRow) (uuid.UUID, error)
	ReplaceWorkout(ctx context.Context, id uuid.UUID, date string, notes *string, sets []models.NewSetRow) error
	DeleteWorkout(ctx context.Context, id uuid.UUID) error

	ListFrogs(ctx context.Context, date string) ([]models.FrogRow, error)
	CreateFrog(ctx context.Context, date, title string, description *string) (*models.FrogRow, error)
	UpdateFrog(ctx context.Context, id uuid.UUID, title string, description *string) error
	ToggleFrog(ctx context.Context, id uuid.UUID) (*models.FrogRow, error)
	DeleteFrog(ctx context.Context, id uuid.UUID) error

	ListTIL(ctx context.Context, date string) ([]models.TILRow, error)
	CreateTIL(ctx context.Context, date, content string, category *string) (*models.TILRow, error)
	UpdateTIL(ctx context.Context, id uuid.UUID, content string, category *string) error
	DeleteTIL(ctx context.Context, id uuid.UUID) error

	ListQuickNotes(ctx context.Context, date, noteType string) ([]models.QuickNoteRow, error)
	CreateQuickNote(ctx context.Context, date, noteType, content string, answer *string) (*models.QuickNoteRow, error)
	UpdateQuickNote(ctx context.Context, id uuid.UUID, noteType, content string, answer *string) error
	DeleteQuickNote(ctx context.Context, id uuid.UUID) error

	GetDataStats(ctx context.Context) (*storage.DataStats, error)
	QueryImportLogs(ctx context.Context, limit int) ([]storage.ImportLog, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
}

// Ingester imports an uploaded export. *alpha.Provider satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	views  *overview.Service
	alpha  Ingester
	log    *slog.Logger
	apiKey string
	who    WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, views *overview.Service, alphaProvider Ingester, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		views:  views,
		alpha:  alphaProvider,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.identity)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(CORS)

	// Read endpoints (no auth; tsnet handles access)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/overview", s.handleOverview)
		r.Get("/stats", s.handleStats)
		r.Get("/import-logs", s.handleImportLogs)

		r.Get("/fitness/workouts", s.handleRecentWorkouts)
		r.Get("/fitness/workouts/{id}", s.handleGetWorkout)
		r.Get("/fitness/history", s.handleHistory)
		r.Get("/fitness/weekly", s.handleWeekly)
		r.Get("/fitness/exercise-types", s.handleListExerciseTypes)

		r.Get("/frogs", s.handleListFrogs)
		r.Get("/til", s.handleListTIL)
		r.Get("/notes", s.handleListNotes)

		// Mutations (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))

			r.Post("/ingest/alpha", s.handleAlphaIngest)

			r.Post("/fitness/workouts", s.handleCreateWorkout)
			r.Put("/fitness/workouts/{id}", s.handleReplaceWorkout)
			r.Delete("/fitness/workouts/{id}", s.handleDeleteWorkout)

			r.Post("/fitness/exercise-types", s.handleCreateExerciseType)
			r.Patch("/fitness/exercise-types/{id}", s.handleRenameExerciseType)
			r.Delete("/fitness/exercise-types/{id}", s.handleDeleteExerciseType)

			r.Post("/frogs", s.handleCreateFrog)
			r.Put("/frogs/{id}", s.handleUpdateFrog)
			r.Post("/frogs/{id}/toggle", s.handleToggleFrog)
			r.Delete("/frogs/{id}", s.handleDeleteFrog)

			r.Post("/til", s.handleCreateTIL)
			r.Put("/til/{id}", s.handleUpdateTIL)
			r.Delete("/til/{id}", s.handleDeleteTIL)

			r.Post("/notes", s.handleCreateNote)
			r.Put("/notes/{id}", s.handleUpdateNote)
			r.Delete("/notes/{id}", s.handleDeleteNote)
		})
	})
}

// SetTailscale enables caller identity lookup for tailnet requests.
func (s *Server) SetTailscale(who WhoIser) {
	s.who = who
}

func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.who == nil {
			next.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(s.who, s.log)(next).ServeHTTP(w, r)
	})
}

// MountMCP serves an MCP transport handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
