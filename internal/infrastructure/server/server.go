package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/LuminOS/backend/internal/api/http"
	"github.com/GriffinCanCode/LuminOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/LuminOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

// compressMinSize is the smallest response body worth gzipping.
const compressMinSize = 1024

// Server wraps the HTTP server and dependencies
type Server struct {
	config  *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	desktop *desktop.Desktop
	router  *gin.Engine
	http    *http.Server
}

// NewServer creates a new server instance and boots its desktop.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing LuminOS server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("kv", cfg.KV.Driver),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("lumin-os", logger.Logger)

	records, err := storage.NewRecordStore(ctx, storage.Options{
		Driver:          cfg.Storage.Driver,
		DSN:             cfg.Storage.DSN,
		BreakerFailures: cfg.Storage.BreakerFailures,
		BreakerTimeout:  cfg.Storage.BreakerTimeout,
	}, logger.Named("storage"))
	if err != nil {
		tracer.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}

	kv, err := storage.NewKV(ctx, storage.Options{
		Driver:           cfg.KV.Driver,
		DSN:              cfg.KV.DSN,
		ConsulAddress:    cfg.KV.ConsulAddress,
		ConsulToken:      cfg.KV.ConsulToken,
		ConsulDatacenter: cfg.KV.ConsulDatacenter,
		ConsulPrefix:     cfg.KV.ConsulPrefix,
		BreakerFailures:  cfg.Storage.BreakerFailures,
		BreakerTimeout:   cfg.Storage.BreakerTimeout,
	}, logger.Named("kv"))
	if err != nil {
		_ = records.Close(ctx)
		tracer.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("failed to create kv store: %w", err)
	}

	winCfg := window.DefaultConfig()
	winCfg.DesktopWidth = cfg.Desktop.Width
	winCfg.DesktopHeight = cfg.Desktop.Height
	winCfg.OpenDelay = cfg.Desktop.OpenDelay
	winCfg.CloseDelay = cfg.Desktop.CloseDelay

	d := desktop.New(desktop.Config{Window: winCfg, AppsDir: cfg.Apps.Dir}, records, kv, metrics, logger.Named("desktop"))
	if err := d.Boot(ctx); err != nil {
		_ = d.Shutdown(ctx)
		tracer.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("failed to boot desktop: %w", err)
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		desktop: d,
	}
	s.router = s.newRouter()

	handler, err := s.wrap(s.router)
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully", zap.String("desktop_id", d.ID()))
	return s, nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}
	logCfg.File = cfg.File
	logCfg.Rotation = logging.Rotation{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   true,
	}
	return logging.New(logCfg)
}

func (s *Server) newRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.CORSFromOrigins(s.config.Server.AllowedOrigins)))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		rl.Burst = s.config.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := api.NewHandlers(s.desktop, s.metrics, s.logger.Named("http"))
	handlers.Register(router)

	stream := ws.NewHandler(s.desktop, s.config.Server.AllowedOrigins, s.metrics, s.logger.Named("ws"))
	router.GET("/stream", stream.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	return router
}

// wrap applies the net/http level middleware around the router.
func (s *Server) wrap(router http.Handler) (http.Handler, error) {
	if !s.config.Server.Compress {
		return router, nil
	}
	handler, err := middleware.Compress(router, compressMinSize)
	if err != nil {
		return nil, fmt.Errorf("failed to enable compression: %w", err)
	}
	return handler, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Desktop returns the desktop served by s.
func (s *Server) Desktop() *desktop.Desktop {
	return s.desktop
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits up to the configured timeout
// for in-flight ones and then releases every resource.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases the desktop, the tracer and the logger without touching
// the listener.
func (s *Server) Close(ctx context.Context) error {
	err := s.desktop.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Desktop shutdown failed", zap.Error(err))
	}
	s.tracer.Close()
	s.logger.Info("Server stopped")
	_ = s.logger.Close()
	return err
}
