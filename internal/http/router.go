package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/http/middleware"
	"github.com/nurpe/contracts-service/internal/metrics"
)

func NewRouter(handler *Handler, profileMiddleware gin.HandlerFunc, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(metrics.Middleware())
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))
	}
	if cfg.HTTP.RateLimitRPS > 0 {
		router.Use(middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst).Handler())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	handler.Register(router, profileMiddleware)
	return router
}
