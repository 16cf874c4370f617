package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/db"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/internal/store/jsonfile"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and the store backend
// selected by the config: postgres (default) or file.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	var (
		userRepo  services.UserRepository
		stateRepo services.UserStateRepository
		dbConn    *sql.DB
	)

	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		userRepo = jsonfile.NewUserStore(cfg.StoreDir)
		stateRepo = jsonfile.NewUserStateStore(cfg.StoreDir)
	case config.StoreBackendPostgres:
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dbConn = conn
		userRepo = store.NewUserRepository(conn)
		stateRepo = store.NewUserStateRepository(conn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		if dbConn != nil {
			_ = dbConn.Close()
		}
		return nil, errors.New("JWT_SECRET is required")
	}

	userService := services.NewUserService(userRepo)
	stateService := services.NewUserStateService(stateRepo)

	router := NewRouter(userService, stateService, handlers.RequireAdmin(jwtSecret))

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// NewRouter assembles the API routes with standard middleware.
func NewRouter(
	userService *services.UserService,
	stateService *services.UserStateService,
	adminOnly func(http.Handler) http.Handler,
) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UsersRouter(r, userService, adminOnly)
	})
	router.Route("/user-data", func(r chi.Router) {
		handlers.UserStateRouter(r, stateService)
	})
	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
