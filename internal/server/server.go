package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/camnote/internal/bootstrap"
	"github.com/yigit/camnote/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP listener, the database pool and the session hub.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
}

// NewServer loads configuration, migrates the database, wires every
// component and seeds the administrator account.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("build dependencies: %w", err)
	}

	bootstrap.SeedDefaults(context.Background(), cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps, dbPool, lgr),
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run serves until SIGINT or SIGTERM, or until the listener fails.
func (s *Server) Run() error {
	defer s.closePool()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.deps.Hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		stopRelay := s.deps.SessionRelay.Start()
		<-gctx.Done()
		stopRelay()
		return nil
	})

	g.Go(func() error {
		s.logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("Server stopped with errors")
	} else {
		s.logger.Info().Msg("Server stopped")
	}
	return err
}

func (s *Server) closePool() {
	if s.dbPool == nil {
		return
	}
	s.logger.Info().Msg("Closing database connection pool...")
	s.dbPool.Close()
	s.dbPool = nil
}
