package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"showlog/internal/models"
	"showlog/internal/services"
)

// Server holds the HTTP server dependencies
type Server struct {
	users    *services.UserService
	lists    *services.ListService
	episodes *services.EpisodeService
	media    *services.MediaService
	profiles *services.ProfileService
	sessions SessionStore
	logger   *logrus.Logger
	router   chi.Router
}

// New creates the API server and wires routes.
func New(
	users *services.UserService,
	lists *services.ListService,
	episodes *services.EpisodeService,
	media *services.MediaService,
	profiles *services.ProfileService,
	sessions SessionStore,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		users:    users,
		lists:    lists,
		episodes: episodes,
		media:    media,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)

		r.Get("/media/search", s.handleSearchMedia)
		r.Get("/media/{mediaType}/{tmdbID}", s.handleMediaDetails)

		// Owner-scoped routes.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/lists", s.handleGetLists)
			r.Post("/lists", s.handleCreateList)
			r.Get("/lists/{listID}", s.handleGetList)
			r.Put("/lists/{listID}", s.handleUpdateList)
			r.Delete("/lists/{listID}", s.handleDeleteList)
			r.Post("/lists/{listID}/items", s.handleAddItem)
			r.Delete("/lists/{listID}/items/{mediaID}", s.handleRemoveItem)
			r.Post("/lists/{listID}/reorder", s.handleReorderItems)
			r.Post("/items/{itemID}/move", s.handleMoveItem)
			r.Put("/items/{itemID}/status", s.handleUpdateItemStatus)

			r.Post("/shows/{mediaID}/episodes/watch", s.handleMarkEpisode)
			r.Delete("/shows/{mediaID}/episodes/watch", s.handleUnmarkEpisode)
			r.Get("/shows/{mediaID}/episodes", s.handleWatchedEpisodes)
			r.Get("/shows/{mediaID}/progress", s.handleWatchProgress)

			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)
		})
	})

	// Nickname-addressed public page.
	s.router.Get("/u/{nickname}", s.handlePublicProfile)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondServiceError maps the domain error taxonomy onto status codes.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, models.ErrCrossOwnerViolation):
		respondError(w, http.StatusForbidden, "lists belong to different users")
	case errors.Is(err, models.ErrInvalidMedia):
		respondError(w, http.StatusUnprocessableEntity, "operation not valid for this media type")
	default:
		s.logger.WithError(err).Error("Request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
