package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"

	"github.com/meltforce/liftlog/internal/catalog"
	"github.com/meltforce/liftlog/internal/workout"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	manager  *workout.Manager
	catalog  *catalog.DB
	log      *slog.Logger
	adminKey string
	router   chi.Router
}

// New creates a new Server with all routes configured. A nil catalog
// disables the catalog endpoints (local-only mode).
func New(manager *workout.Manager, cat *catalog.DB, adminKey string, log *slog.Logger) *Server {
	s := &Server{
		manager:  manager,
		catalog:  cat,
		log:      log,
		adminKey: adminKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches identity resolution to the tailnet local client.
// Must be called before serving; replaces the dev identity.
func (s *Server) SetTailscale(lc *local.Client) {
	inner := s.router
	s.router = chi.NewRouter()
	s.router.Use(TailscaleIdentity(lc))
	s.router.Mount("/", inner)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/state", s.handleState)

		// Active workout lifecycle
		r.Get("/workout", s.handleActiveWorkout)
		r.Post("/workout/start", s.handleStartWorkout)
		r.Patch("/workout/series/{exerciseID}", s.handleUpdateAllSeries)
		r.Patch("/workout/series/{exerciseID}/{seriesID}", s.handleUpdateSeries)
		r.Post("/workout/finish", s.handleFinishWorkout)
		r.Post("/workout/cancel", s.handleCancelWorkout)

		// History and projections
		r.Get("/sessions", s.handleSessions)
		r.Delete("/sessions/{id}", s.handleRemoveSession)
		r.Get("/progress/volume", s.handleVolumeByDate)
		r.Get("/progress/evolution/{exerciseID}", s.handleLoadEvolution)
		r.Get("/progress/distribution", s.handleDistribution)
		r.Get("/progress/day/{date}", s.handleSessionsOnDay)

		// Plan management
		r.Post("/categories", s.handleAddCategory)
		r.Patch("/categories/{id}", s.handleUpdateCategory)
		r.Delete("/categories/{id}", s.handleRemoveCategory)
		r.Post("/exercises", s.handleAddExercise)
		r.Patch("/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/exercises/{id}", s.handleRemoveExercise)
		r.Put("/schedule/{day}", s.handleUpdateSchedule)
		r.Put("/settings", s.handleUpdateSettings)

		// Backup
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)

		// Shared catalog (admin writes behind API key)
		if s.catalog != nil {
			r.Get("/catalog", s.handleCatalogList)
			r.Post("/catalog/{id}/adopt", s.handleCatalogAdopt)
			r.Group(func(r chi.Router) {
				r.Use(APIKeyAuth(s.adminKey))
				r.Post("/catalog", s.handleCatalogInsert)
				r.Put("/catalog/{id}", s.handleCatalogUpdate)
				r.Delete("/catalog/{id}", s.handleCatalogDelete)
			})
		}
	})
}
