package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/middleware"
	"github.com/investordaily/blogd/internal/modules/content/background"
	"github.com/investordaily/blogd/internal/modules/content/blog"
	"github.com/investordaily/blogd/internal/modules/content/draft"
	"github.com/investordaily/blogd/internal/modules/content/editor"
	"github.com/investordaily/blogd/internal/modules/processing/render"
	"github.com/investordaily/blogd/internal/modules/storage/upload"
	pkgredis "github.com/investordaily/blogd/internal/pkg/redis"
	"github.com/investordaily/blogd/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client, objectStore *upload.S3Store) {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "blogd",
		"version": "1.0.0",
	}

	api := r.Group("/api/v1")

	// Duplicate publish/save/upload triggers collapse to one write.
	api.Use(middleware.Idempotence(rc.Raw()))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	// Shared services
	store := editor.NewStore(db)
	blogSvc := blog.NewService(db)
	coordinator := upload.NewCoordinator(objectStore, a.logger)

	// Content
	blog.NewHandler(blogSvc, store).RegisterRoutes(api)
	draft.NewHandler(draft.NewService(db), store).RegisterRoutes(api)
	background.NewHandler(background.NewService(db)).RegisterRoutes(api)

	// Object storage
	upload.NewHandler(db, coordinator).RegisterRoutes(api)

	// Read-only views
	render.NewHandler(blogSvc).RegisterRoutes(api)

	// Background jobs
	jobs := api.Group("/system/jobs")
	jobs.GET("", func(c *gin.Context) {
		response.OK(c, a.cron.List())
	})
	jobs.POST("/:name/run", func(c *gin.Context) {
		// detached: the job outlives the triggering request
		if err := a.cron.Run(context.Background(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"queued": c.Param("name")})
	})
}
