package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/config"
	"github.com/investordaily/blogd/internal/database"
	"github.com/investordaily/blogd/internal/middleware"
	"github.com/investordaily/blogd/internal/modules/storage/upload"
	"github.com/investordaily/blogd/internal/pkg/cron"
	pkgredis "github.com/investordaily/blogd/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orphanRetention = 24 * time.Hour

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	rc       *pkgredis.Client
	cron     *cron.Scheduler
	stopJobs context.CancelFunc
	logger   *zap.Logger
}

// New wires the application together: database, redis, object store, router.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	objectStore, err := upload.NewS3Store(cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{cfg: cfg, router: router, db: db, rc: rc, logger: logger}
	app.startJobs()
	app.registerRoutes(rc, objectStore)

	return app, nil
}

// startJobs registers and starts the background schedule. Pending upload
// references older than the retention window are dropped hourly, so the
// orphan list only shows uploads the operator might still attach.
func (a *App) startJobs() {
	a.cron = cron.New()
	a.cron.Register(cron.Job{
		Name:        "orphan-cleanup",
		Description: "drop stale pending upload references",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := upload.CleanupOrphans(a.db.WithContext(ctx), time.Now().Add(-orphanRetention))
			if err != nil {
				return err
			}
			if deleted > 0 {
				a.logger.Info("orphan cleanup", zap.Int64("deleted", deleted))
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.stopJobs = cancel
	a.cron.Start(ctx)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and releases external connections.
func (a *App) Shutdown() {
	if a.stopJobs != nil {
		a.stopJobs()
	}
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warn("database close failed", zap.Error(err))
		}
	}
}

var processStart = time.Now()
