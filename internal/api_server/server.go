package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/config"
	handlers "github.com/AakashShahi/workday/internal/handlers/v1alpha1"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/pkg/metrics"
	"github.com/AakashShahi/workday/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	jobs     *service.JobService
	reviews  *service.ReviewService
	metrics  *metrics.Middleware
}

// New returns a new instance of the workday api server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	jobs *service.JobService,
	reviews *service.ReviewService,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		jobs:     jobs,
		reviews:  reviews,
		metrics:  metrics.NewMiddleware("api_server"),
	}
}

// Router builds the full handler tree. It is split from Run so tests can
// serve it without a listener.
func (s *Server) Router(authenticator auth.Authenticator) http.Handler {
	router := chi.NewRouter()

	router.Use(
		s.metrics.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://localhost:*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Get("/health", handlers.Health)

	h := handlers.NewServiceHandler(s.jobs, s.reviews)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(
			authenticator.Authenticator,
			newUserProjection(s.store).Handler,
		)
		h.Routes(r)
	})

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	authenticator, err := auth.NewAuthenticator(s.cfg.Service.Auth)
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %w", err)
	}

	s.metrics.MustRegisterDefault()

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Router(authenticator)}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
