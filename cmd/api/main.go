package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const uploadsPath = "/uploads"

func main() {
	cfg := config.Load()
	log := logger.Must(cfg)
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if !timezone.SetDefault(cfg.Timezone) {
		log.Warn("unknown APP_TIMEZONE, keeping default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}
	httperr.Verbose = !cfg.IsProduction()

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := dbpkg.Migrate(db); err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := dbpkg.Seed(db, dbpkg.SeedConfig{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
	}, log); err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	// ======================================================
	// REDIS (login rate limit, optional)
	// ======================================================
	var loginLimit middleware.Counter
	redis := cache.NewRedis(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redis.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, login rate limit disabled", zap.Error(err))
	} else {
		loginLimit = redis
	}
	cancelPing()

	// ======================================================
	// UPLOADS
	// ======================================================
	store, err := newPhotoStore(cfg)
	if err != nil {
		log.Fatal("photo store", zap.Error(err))
	}
	photos := storage.NewPhotos(store, cfg.UploadMaxBytes)

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.UploadMaxBytes
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(),
		middleware.CORSMiddleware(),
		middleware.Metrics(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.StorageDriver != "s3" {
		r.Static(uploadsPath, cfg.UploadDir)
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Log:        log,
		Issuer:     auth.NewIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret),
		Audit:      dispatcher,
		Photos:     photos,
		LoginLimit: loginLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// ======================================================
	// SHUTDOWN
	// ======================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if err := redis.Close(); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	if err := dbpkg.Close(db); err != nil {
		log.Warn("database close", zap.Error(err))
	}
}

func newPhotoStore(cfg *config.Config) (storage.PhotoStore, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			Prefix:    "photos",
		}), nil
	}
	return storage.NewLocalStore(cfg.UploadDir, uploadsPath)
}
