// Package web provides the HTTP API server: routing, middleware, handlers,
// and the error envelope.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/config"
	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/generate"
)

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	log      *log.Logger
}

// NewServer wires the router, middleware, and handlers.
func NewServer(cfg *config.Config, database *db.DB, issuer *auth.TokenIssuer, spauth *auth.SpotifyAuthenticator, gen *generate.Service, logger *log.Logger) *Server {
	handlers := NewHandlers(database, issuer, spauth, gen, logger)
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: handlers,
		log:      logger,
	}

	s.setupMiddleware(cfg.Server.Origins())
	s.setupRoutes(issuer)

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation pipelines are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(corsMiddleware(origins))
}

func (s *Server) setupRoutes(issuer *auth.TokenIssuer) {
	// Public routes
	s.router.Post("/register", s.handlers.Register)
	s.router.Post("/login", s.handlers.Login)
	s.router.Get("/auth/login", s.handlers.AuthLogin)
	s.router.Post("/auth/callback", s.handlers.AuthCallback)

	// Authenticated routes
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth(issuer))

		r.Get("/me", s.handlers.Me)
		r.Get("/my-playlists", s.handlers.MyPlaylists)
		r.Get("/discover/swipe", s.handlers.SwipeDeck)
		r.Post("/discover", s.handlers.Discover)
		r.Post("/save-tracks", s.handlers.SaveTracks)
		r.Post("/library/save", s.handlers.SaveTracks)
		r.Post("/create-playlist", s.handlers.CreatePlaylist)
		r.Get("/daily-drive/shows", s.handlers.SavedShows)
		r.Post("/daily-drive/generate", s.handlers.GenerateDailyDrive)
		r.Post("/gym-playlist/generate", s.handlers.GenerateGymPlaylist)
		r.Get("/gym-playlist/settings", s.handlers.GymSettings)
		r.Post("/gym-playlist/settings", s.handlers.UpdateGymSettings)
		r.Get("/vibe-roast", s.handlers.VibeRoast)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
