package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkpad/inkpad/internal/config"
	"github.com/inkpad/inkpad/internal/document"
	"github.com/inkpad/inkpad/internal/document/handler"
	"github.com/inkpad/inkpad/pkg/logger"
	"github.com/inkpad/inkpad/pkg/metrics"
	"github.com/inkpad/inkpad/pkg/middleware"
)

const welcomeContent = "Welcome to the Advanced Text Editor!"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	mgr, err := document.NewManager(document.Config{
		BaseDir:    cfg.Storage.Dir,
		MaxBackups: cfg.Storage.MaxBackups,
	})
	if err != nil {
		logger.Fatalf("failed to initialize document storage: %v", err)
	}
	logger.Infof("document storage ready: dir=%s max_backups=%d", cfg.Storage.Dir, cfg.Storage.MaxBackups)

	// Seed a welcome document on a fresh store so the editor has something
	// to open.
	if len(mgr.List()) == 0 {
		if _, err := mgr.Create("Welcome Document", welcomeContent); err != nil {
			logger.Warnf("failed to seed welcome document: %v", err)
		}
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	handler.RegisterDocumentRoutes(r, mgr)
	handler.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting document service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
