package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/utafrali/bookborrower/internal/config"
	"github.com/utafrali/bookborrower/internal/event"
	handler "github.com/utafrali/bookborrower/internal/handler/http"
	"github.com/utafrali/bookborrower/internal/repository"
	"github.com/utafrali/bookborrower/internal/repository/postgres"
	"github.com/utafrali/bookborrower/internal/repository/redis"
	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/migrations"
	"github.com/utafrali/bookborrower/pkg/database"
	"github.com/utafrali/bookborrower/pkg/health"
	pkgkafka "github.com/utafrali/bookborrower/pkg/kafka"
	"github.com/utafrali/bookborrower/pkg/middleware"
	"github.com/utafrali/bookborrower/pkg/tracing"
)

const (
	serviceName    = "bookborrower"
	serviceVersion = "0.1.0"
)

// App wires together all dependencies and runs the book borrower service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	rateLimiter    *middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown tracing.Shutdown
}

// NewApp creates a new application instance, initializing all dependencies.
// Redis and Kafka are optional; Postgres is required.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(registry, pool, serviceName); err != nil {
		a.closeAll()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		a.closeAll()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// Repositories, optionally fronted by the Redis cache.
	var (
		userRepo repository.UserRepository = postgres.NewUserRepository(pool)
		bookRepo repository.BookRepository = postgres.NewBookRepository(pool)
	)
	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache",
				slog.String("addr", cfg.Redis().Addr()),
				slog.String("error", err.Error()),
			)
		} else {
			a.redis = client
			userRepo = redis.NewCachedUserRepository(userRepo, client, cfg.CacheTTL, logger)
			bookRepo = redis.NewCachedBookRepository(bookRepo, client, cfg.CacheTTL, logger)
			healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			})
			logger.Info("redis cache enabled",
				slog.String("addr", cfg.Redis().Addr()),
				slog.Duration("ttl", cfg.CacheTTL),
			)
		}
	}

	// Initialize Kafka producer.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		kafkaMetrics, err := pkgkafka.NewProducerMetrics(registry)
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("register kafka metrics: %w", err)
		}
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), kafkaMetrics, logger)
		a.producer = producer
		publisher = producer
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Build the dependency graph.
	svcs := handler.Services{
		Users: service.NewUserService(userRepo, eventProducer, logger),
		Books: service.NewBookService(bookRepo, userRepo, eventProducer, logger),
		Reviews: service.NewReviewService(
			postgres.NewBookReviewRepository(pool),
			postgres.NewUserReviewRepository(pool),
			userRepo, bookRepo, eventProducer, logger,
		),
		Borrows: service.NewBorrowService(postgres.NewBorrowRepository(pool), userRepo, bookRepo, eventProducer, logger),
	}

	httpMetrics, err := middleware.NewHTTPMetrics(registry, serviceName)
	if err != nil {
		a.closeAll()
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit(), logger)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimitRPS),
			slog.Int("burst", cfg.RateLimitBurst),
		)
	}

	// HTTP router.
	router := handler.NewRouter(svcs, handler.RouterConfig{
		Health:      healthHandler,
		Metrics:     httpMetrics,
		Gatherer:    registry,
		RateLimiter: a.rateLimiter,
		CORS:        middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		Logger:      logger,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: the HTTP server drains
// in-flight requests, pending spans are flushed, then Kafka, Redis and the
// PostgreSQL pool are closed.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	errs = append(errs, a.closeAll()...)

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeAll releases every dependency opened so far. It is safe on a
// partially built App.
func (a *App) closeAll() []error {
	var errs []error

	if a.rateLimiter != nil {
		a.rateLimiter.Close()
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	return errs
}
