package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/config"
	"github.com/taibui324/la-gougah/backend/handlers"
	"github.com/taibui324/la-gougah/backend/middleware"
	"github.com/taibui324/la-gougah/backend/service"
	"github.com/taibui324/la-gougah/backend/store"
	"github.com/taibui324/la-gougah/backend/store/memstore"
)

// storeBackend is the document store plus its health check.
type storeBackend interface {
	cms.Store
	handlers.Pinger
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	var backend storeBackend
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		backend = memstore.New()
	default:
		db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Disconnect(context.Background()); err != nil {
				logger.Warn("mongodb disconnect", "error", err)
			}
		}()
		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}
		backend = db
	}

	opts := cms.Options{
		Store:       backend,
		Logger:      logger,
		AllowSignup: cfg.AllowSignup,
	}
	if cfg.UseS3() {
		s3Service, err := service.NewS3Service(ctx, service.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Endpoint:        cfg.S3Endpoint,
			UploadTTL:       cfg.UploadURLTTL,
			DownloadTTL:     cfg.DownloadURLTTL,
		})
		if err != nil {
			return err
		}
		opts.Files = s3Service
	} else {
		logger.Warn("AWS_S3_BUCKET not set; uploads are disabled and storage ids resolve to nothing")
	}
	if cfg.UseRedis() {
		rc, err := cache.NewRedis(ctx, cache.RedisOptions{
			URL:            cfg.RedisURL,
			Prefix:         cfg.CachePrefix,
			TTL:            cfg.CacheTTL,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			// public reads fall back to the store
			logger.Warn("redis unavailable, public reads are uncached", "error", err)
		} else {
			defer rc.Close()
			opts.Cache = rc
		}
	}
	if cfg.UseSMTP() {
		opts.Mailer = service.NewMailer(service.SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}

	svc := cms.New(opts)
	if err := svc.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		CMS:            svc,
		Health:         backend,
		Logger:         logger,
		Metrics:        middleware.NewMetrics("lagougah"),
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		CORSOrigins:    cfg.CORSOrigins,
		LoginLimiter:   middleware.NewRateLimiter("login", cfg.LoginRatePerMinute, cfg.LoginRatePerMinute),
		ContactLimiter: middleware.NewRateLimiter("contact", cfg.ContactRatePerMinute, 2),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
