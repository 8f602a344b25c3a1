// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/truyenhub/backend/internal/admin"
	"github.com/truyenhub/backend/internal/auth"
	"github.com/truyenhub/backend/internal/category"
	"github.com/truyenhub/backend/internal/chapter"
	"github.com/truyenhub/backend/internal/comment"
	"github.com/truyenhub/backend/internal/config"
	"github.com/truyenhub/backend/internal/core"
	"github.com/truyenhub/backend/internal/health"
	"github.com/truyenhub/backend/internal/library"
	"github.com/truyenhub/backend/internal/mailer"
	"github.com/truyenhub/backend/internal/middleware"
	"github.com/truyenhub/backend/internal/server"
	"github.com/truyenhub/backend/internal/story"
	"github.com/truyenhub/backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var dispatcher mailer.Dispatcher
	if cfg.SMTP.Host != "" {
		dispatcher = mailer.NewSMTPDispatcher(cfg.SMTP)
		logger.Info("SMTP dispatcher initialized",
			"host", cfg.SMTP.Host,
			"port", cfg.SMTP.Port,
		)
	} else {
		dispatcher = &mailer.LogDispatcher{Logger: logger}
		logger.Warn("no SMTP relay configured, codes will be logged")
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	otpRepo := auth.NewRepository(db.DB)
	otpManager := auth.NewOTPManager(otpRepo, dispatcher, cfg.OTP.Expire)

	// Expired codes are rejected on redemption either way; the sweep
	// keeps the table from accumulating dead rows.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, purgeErr := otpManager.PurgeExpired(ctx)
				if purgeErr != nil {
					logger.Warn("otp purge failed", "error", purgeErr)
					continue
				}
				if n > 0 {
					logger.Info("purged expired otp codes", "count", n)
				}
			}
		}
	}()

	authSvc := auth.NewService(jwtManager, otpManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	storyRepo := story.NewRepository(db.DB)
	storySvc := story.NewService(storyRepo)
	storyHandler := story.NewHandler(storySvc)

	chapterRepo := chapter.NewRepository(db.DB)
	chapterSvc := chapter.NewService(chapterRepo)
	chapterHandler := chapter.NewHandler(chapterSvc)

	categoryRepo := category.NewRepository(db.DB)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	commentRepo := comment.NewRepository(db.DB)
	commentSvc := comment.NewService(commentRepo)
	commentHandler := comment.NewHandler(commentSvc)

	libraryRepo := library.NewRepository(db.DB)
	librarySvc := library.NewService(libraryRepo)
	libraryHandler := library.NewHandler(librarySvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DB:         db.DB,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	activeOnly := middleware.RequireActive(userSvc)
	adminOnly := middleware.RequireAdmin

	// Credential endpoints get a much tighter budget than the global
	// limiter: they send mail and verify argon2 hashes.
	authLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerHour(30, 10),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	})

	router.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Handler)
			authHandler.RegisterRoutes(r, authenticator, activeOnly)
			userHandler.RegisterRoutes(r, authenticator, activeOnly)
		})

		storyHandler.RegisterRoutes(r, authenticator, activeOnly)
		chapterHandler.RegisterRoutes(r, authenticator, activeOnly)
		categoryHandler.RegisterRoutes(r, authenticator, activeOnly)
		commentHandler.RegisterRoutes(r, authenticator, activeOnly)
		libraryHandler.RegisterRoutes(r, authenticator, activeOnly)
		adminHandler.RegisterRoutes(r, authenticator, activeOnly, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
