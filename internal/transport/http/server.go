// Package http is the transport layer: routing, middleware chain, and
// the mapping from pipeline errors to HTTP responses.
package http

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mstepanov/contact-backend/internal/config"
	"github.com/mstepanov/contact-backend/internal/contact"
)

// NewServer builds the HTTP server with the full middleware chain:
// recovery, security headers, request logging, CORS, rate limiting.
// rdb may be nil; the rate limiter then passes everything through.
func NewServer(svc *contact.Service, cfg *config.Config, rdb *redis.Client, logger *zerolog.Logger) *stdhttp.Server {
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(SecurityHeaders())
	router.Use(RequestLogger(logger))
	router.Use(corsMiddleware(cfg.ClientOrigin))
	router.Use(RateLimit(RateLimitConfig{
		Enabled:  cfg.RateLimitEnabled,
		Capacity: cfg.RateCapacity,
		Window:   cfg.RateWindow,
	}, rdb, logger))

	h := NewHandlers(svc, cfg, logger)
	api := router.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/contact", h.SubmitContact)

	if cfg.StaticDir != "" && !cfg.Development() {
		router.NoRoute(staticFallback(cfg.StaticDir))
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
	}
	if origin != "" {
		corsCfg.AllowOrigins = []string{origin}
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return cors.New(corsCfg)
}
