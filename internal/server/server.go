package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/safarx/places-backend/internal/models"
)

// PlaceService is the part of the place service the HTTP layer invokes
// after request decoding and validation.
type PlaceService interface {
	CreatePlaceForUser(ctx context.Context, draft models.PlaceDraft, creatorID string) (*models.Place, error)
	DeletePlace(ctx context.Context, placeID string) error
	UpdatePlace(ctx context.Context, placeID, title, description string) (*models.Place, error)
	GetPlaceByID(ctx context.Context, placeID string) (*models.Place, error)
	GetPlacesByUserID(ctx context.Context, userID string) ([]models.Place, error)
}

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the places API together with health and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        PlaceService
	db         Pinger
	log        *slog.Logger
}

// NewServer builds the router and wires the handlers. The prometheus
// registry backs the /metrics endpoint; allowedOrigins feeds the CORS
// middleware ("*" allows any origin).
func NewServer(
	port int,
	svc PlaceService,
	db Pinger,
	reg *prometheus.Registry,
	allowedOrigins []string,
	log *slog.Logger,
) *Server {
	srv := &Server{
		svc: svc,
		db:  db,
		log: log,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware(allowedOrigins))

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "place-sharing API up"})
	})
	router.Get("/healthz", srv.handleHealth)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Route("/api", func(api chi.Router) {
		api.Get("/places/{pid}", srv.handleGetPlace)
		api.Post("/places", srv.handleCreatePlace)
		api.Patch("/places/{pid}", srv.handleUpdatePlace)
		api.Delete("/places/{pid}", srv.handleDeletePlace)
		api.Get("/users/{uid}/places", srv.handleGetPlacesByUser)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Could not find this route.")
	})

	const (
		readTimeout  = 5 * time.Second
		writeTimeout = 30 * time.Second
	)
	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return srv
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("Starting API server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.ErrorContext(r.Context(), "Health check failed", "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "DB ping failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
