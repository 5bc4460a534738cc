package app

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bee-edu/askbee/internal/api/handlers"
	"github.com/bee-edu/askbee/internal/api/middlewares"
	"github.com/bee-edu/askbee/internal/config"
	"github.com/bee-edu/askbee/internal/core"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds and wires all routes.
func NewRouter(cfg *config.Config, users handlers.CredentialStore, verifier middlewares.TokenVerifier, chats handlers.ChatLog, answerer core.Answerer, db core.DbClient) chi.Router {
	authHandler := handlers.NewAuthHandler(users)
	chatHandler := handlers.NewChatHandler(chats, answerer)
	systemHandler := handlers.NewSystemHandler(db, cfg.DatabaseURL != "")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// public endpoints
	r.Get("/health", systemHandler.Health)
	r.Get("/api/status", systemHandler.Status)
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)

	// answering is public; a valid token only enriches it with history
	r.With(middlewares.OptionalAuth(verifier)).Post("/chat", chatHandler.Ask)

	// protected endpoints
	r.Group(func(protected chi.Router) {
		protected.Use(middlewares.RequireAuth(verifier))
		protected.Get("/auth/me", authHandler.Me)
		protected.Post("/chats", chatHandler.SaveChat)
		protected.Get("/chats", chatHandler.ListChats)
	})

	// minimal UI
	index := filepath.Join(cfg.StaticDir, "index.html")
	serveIndex := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, index)
	}
	r.Get("/", serveIndex)
	r.Get("/ui", serveIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	return r
}

// NewServer wraps the router in an http.Server bound to the configured port.
func NewServer(cfg *config.Config, router chi.Router) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
