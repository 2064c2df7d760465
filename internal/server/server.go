// Package server wires the storage, service and handler layers into one
// HTTP server and owns its lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tanvir/codecollab/internal/config"
	"github.com/tanvir/codecollab/internal/handler"
	"github.com/tanvir/codecollab/internal/integration"
	"github.com/tanvir/codecollab/internal/middleware"
	sqliteRepo "github.com/tanvir/codecollab/internal/repository/sqlite"
	"github.com/tanvir/codecollab/internal/service"
)

// Server owns the router and the database connection; the connection closes
// on shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	if len(s.config.CorsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	stub := &integration.Stub{CallDomain: s.config.CallDomain}

	snippetService := service.NewSnippetService(s.db, s.db, s.db, s.logger)
	callService := service.NewCallService(s.db, stub, s.logger)
	challengeService := service.NewChallengeService(s.db, s.db, s.db, stub, s.logger)
	projectService := service.NewProjectService(s.db, s.db, s.db, s.logger)
	accountService := service.NewAccountService(s.db, s.db, s.logger)
	supportService := service.NewSupportService(s.db, s.logger)

	healthHandler := handler.NewHealthHandler()
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)
	challengeHandler := handler.NewChallengeHandler(challengeService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	accountHandler := handler.NewAccountHandler(accountService, s.logger)
	supportHandler := handler.NewSupportHandler(supportService, s.logger)
	integrationHandler := handler.NewIntegrationHandler(stub, stub, stub, callService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		r.Post("/snippets", snippetHandler.HandleCreate)
		r.Get("/snippets/{shareToken}", snippetHandler.HandleGet)
		r.Patch("/snippets/{shareToken}", snippetHandler.HandleUpdate)
		r.Delete("/snippets/{shareToken}", snippetHandler.HandleDelete)
		r.Post("/snippets/{id}/messages", snippetHandler.HandleCreateMessage)
		r.Get("/snippets/{id}/messages", snippetHandler.HandleListMessages)
		r.Post("/snippets/{id}/collaborators", snippetHandler.HandleJoin)
		r.Get("/snippets/{id}/collaborators", snippetHandler.HandleListCollaborators)

		r.Post("/coding-challenges/generate", challengeHandler.HandleGenerate)
		r.Get("/coding-challenges", challengeHandler.HandleList)
		r.Get("/coding-challenges/{id}", challengeHandler.HandleGet)
		r.Post("/coding-challenges/{id}/submit", challengeHandler.HandleSubmit)
		r.Get("/leaderboard", challengeHandler.HandleLeaderboard)
		r.Get("/users/{id}/stats", challengeHandler.HandleUserStats)

		r.Post("/projects", projectHandler.HandleCreate)
		r.Get("/projects", projectHandler.HandleList)
		r.Get("/projects/{id}", projectHandler.HandleGet)
		r.Post("/projects/{id}/files", projectHandler.HandleCreateFile)
		r.Get("/projects/{id}/files", projectHandler.HandleListFiles)
		r.Post("/projects/{id}/secrets", projectHandler.HandleCreateSecret)
		r.Get("/projects/{id}/secrets", projectHandler.HandleListSecrets)

		r.Post("/profiles", accountHandler.HandleCreateProfile)
		r.Get("/profiles/{id}", accountHandler.HandleGetProfile)
		r.Post("/verification-tokens", accountHandler.HandleMintToken)
		r.Get("/verification-tokens/{token}", accountHandler.HandleGetToken)

		r.Post("/support-tickets", supportHandler.HandleCreateTicket)

		r.Post("/daily/room", integrationHandler.HandleCreateRoom)
		r.Post("/code/execute", integrationHandler.HandleExecute)
		r.Post("/code/format", integrationHandler.HandleFormat)
		r.Post("/code/assist", integrationHandler.HandleAssist)
	})
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
	}

	return nil
}
