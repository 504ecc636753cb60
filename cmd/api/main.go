package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/api"
	"github.com/mustardworks/portfolio-api/internal/api/handler"
	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/core/service"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/mustardworks/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mustardworks/portfolio-api/internal/infrastructure/db/redis"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/http/handlers"
	objectstore "github.com/mustardworks/portfolio-api/internal/infrastructure/storage/minio"
	"github.com/mustardworks/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       MustardWorks API
// @version                     1.0.0
// @description                 Accounts, project intake and gallery showcase for the MustardWorks portfolio site.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	// A missing .env is fine: production reads the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portfolio-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; logins and protected routes will fail until it is configured")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	galleryRepo := mongodb.NewGalleryRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, projectRepo, galleryRepo); err != nil {
		return err
	}

	checks := map[string]handlers.Check{"mongodb": handlers.MongoCheck(client)}

	var limiterStore echomiddleware.RateLimiterStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = handlers.RedisCheck(rdb)
		limiterStore = redisdb.NewWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiting backed by redis")
	} else {
		limiterStore = middleware.NewMemoryWindowStore(cfg.RateLimit.Max, cfg.RateLimit.Window)
		log.Info().Msg("REDIS_ADDR not set; rate limiting in process memory")
	}

	var images ports.ImageStore
	if cfg.Minio.Endpoint != "" {
		store, err := objectstore.NewImageStore(ctx, objectstore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		})
		if err != nil {
			return err
		}
		images = store
		log.Info().Str("bucket", cfg.Minio.Bucket).Msg("gallery image uploads enabled")
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn.Duration())
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)

	e := api.NewRouter(api.Deps{
		Logger:   log,
		Tokens:   tokens,
		Users:    userRepo,
		Auth:     service.NewAuthService(userRepo, tokens, hasher, log),
		UserSvc:  service.NewUserService(userRepo),
		Projects: service.NewProjectService(projectRepo, log),
		Gallery:  service.NewGalleryService(galleryRepo, log),
		Stats:    service.NewStatsService(projectRepo, userRepo),
		Images:   images,
		Checks:   checks,
		Cookie: handler.CookieConfig{
			ExpiresDays:  cfg.Auth.CookieExpiresDays,
			RememberDays: cfg.Auth.CookieRememberDays,
			Secure:       cfg.IsProduction(),
		},
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		BodyLimit:         cfg.HTTP.BodyLimit,
		RateLimitStore:    limiterStore,
		MetricsRegisterer: prometheus.DefaultRegisterer,
		MetricsGatherer:   prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       cfg.HTTP.RequestTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
