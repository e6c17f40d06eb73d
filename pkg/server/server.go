package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default tracer name for raptor servers.
const defaultTracerName = "raptor"

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server renders tree documents on request.
type Server struct {
	config   Config
	logger   *zap.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry
	metrics  *metrics
	hub      *Hub
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	tracerName string
	metrics    MetricsConfig
}

// WithLogger sets the logger for requests and server events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracerName sets the name of the tracer taken from the global
// OpenTelemetry provider.
func WithTracerName(name string) Option {
	return func(o *options) {
		o.tracerName = name
	}
}

// WithMetrics configures the Prometheus collectors.
func WithMetrics(config MetricsConfig) Option {
	return func(o *options) {
		o.metrics = config
	}
}

// New creates a server. Zero fields of config take their defaults.
func New(config Config, opts ...Option) *Server {
	o := options{
		logger:     zap.NewNop(),
		tracerName: defaultTracerName,
		metrics:    defaultMetricsConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics.Registry == nil {
		o.metrics.Registry = prometheus.NewRegistry()
	}
	if o.metrics.Namespace == "" {
		o.metrics.Namespace = defaultMetricsConfig().Namespace
	}
	if o.metrics.Buckets == nil {
		o.metrics.Buckets = prometheus.DefBuckets
	}

	s := &Server{
		config:   config.withDefaults(),
		logger:   o.logger,
		tracer:   otel.Tracer(o.tracerName),
		registry: o.metrics.Registry,
		metrics:  newMetrics(o.metrics),
	}
	s.hub = newHub(s)
	return s
}

// Hub returns the WebSocket hub of the server.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/docs/{name}", s.handleDoc)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Method(http.MethodGet, s.config.MetricsPath,
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Run serves until ctx is done, then shuts down gracefully. It also watches
// the docs directory when watching is enabled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening",
			zap.String("addr", s.config.Addr),
			zap.String("docs", s.config.DocsDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if s.config.Watch {
		g.Go(func() error {
			return s.Watch(ctx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
