package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/tutorium-admin-api/api/swagger"
	"github.com/noah-isme/tutorium-admin-api/internal/handler"
	"github.com/noah-isme/tutorium-admin-api/internal/middleware"
	"github.com/noah-isme/tutorium-admin-api/internal/repository"
	"github.com/noah-isme/tutorium-admin-api/internal/service"
	"github.com/noah-isme/tutorium-admin-api/internal/upstream"
	"github.com/noah-isme/tutorium-admin-api/pkg/cache"
	"github.com/noah-isme/tutorium-admin-api/pkg/config"
	"github.com/noah-isme/tutorium-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutorium-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutorium-admin-api/pkg/middleware/requestid"
)

// @title KU Tutorium Admin API
// @version 0.1.0
// @description Admin dashboard aggregation service for the KU Tutorium marketplace
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.Location()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	upstreamClient := upstream.NewClient(cfg.Upstream, logr, metricsSvc)
	snapshotSvc := service.NewSnapshotService(upstreamClient, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	dashboardSvc := service.NewDashboardService(snapshotSvc, loc, service.DashboardServiceConfig{
		SeriesWindowDays: cfg.Dashboard.SeriesWindowDays,
	}, logr)
	filterSvc := service.NewFilterStateService(cacheSvc, loc, cfg.Payments.FilterSessionTTL, logr)
	paymentSvc := service.NewPaymentService(snapshotSvc, filterSvc, loc, cfg.Payments.PageSize, logr)
	exportSvc := service.NewExportService(paymentSvc, loc, logr)

	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, filterSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.Summary)
			dashboard.GET("/series", dashboardHandler.Series)
			dashboard.GET("/composition", dashboardHandler.Composition)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/filters", paymentHandler.GetFilters)
			payments.PUT("/filters", paymentHandler.StageFilters)
			payments.POST("/filters/apply", paymentHandler.ApplyFilters)
			payments.POST("/filters/reset", paymentHandler.ResetFilters)
			payments.GET("/export", paymentHandler.Export)
		}

		api.GET("/system/metrics", metricsHandler.System)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "timezone", loc.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
