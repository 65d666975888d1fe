package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rpupo63/genai-portfolio-backend/auth"
	"github.com/rpupo63/genai-portfolio-backend/config"
	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/resource"
	"github.com/rpupo63/genai-portfolio-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, database database.Database, notifier services.Notifier) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	issuer, err := newIssuer(c)
	if err != nil {
		return Server{}, err
	}

	startupTime := time.Now()
	router := newRouter(database,
		withConfig(c),
		withStartupTime(startupTime),
		withIssuer(issuer),
		withNotifier(notifier),
	)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

func newIssuer(c map[string]string) (*auth.Issuer, error) {
	ttl := time.Duration(config.GetInt(c, "JWT_TTL_HOURS", 24)) * time.Hour
	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		if !config.IsDevelopment(c) {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
		secret = uuid.NewString()
	}
	return auth.NewIssuer(secret, ttl), nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	issuer      *auth.Issuer
	notifier    services.Notifier
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withIssuer(issuer *auth.Issuer) func(*router) {
	return func(r *router) {
		r.issuer = issuer
	}
}

func withNotifier(notifier services.Notifier) func(*router) {
	return func(r *router) {
		r.notifier = notifier
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	router := router{
		issuer:   auth.NewIssuer(uuid.NewString(), auth.DefaultTokenTTL),
		notifier: services.Notifiers(nil),
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(config.IsDevelopment(router.config)))

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	requestTimeout := time.Duration(config.GetInt(router.config, "REQUEST_TIMEOUT_SECONDS", 30)) * time.Second
	chiRouter.Use(middleware.Timeout(requestTimeout))

	engines := resource.NewEngines(database)
	handlers := initializeHandlers(database, engines, router.issuer, router.notifier, router.startupTime)
	authMiddleware := newAuthMiddleware(router.issuer, engines.Users)

	chiRouter.Get("/healthz", handlers.statusHandler.healthz())
	chiRouter.Route("/api", func(r chi.Router) {
		setupRoutes(r, handlers, authMiddleware)
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
