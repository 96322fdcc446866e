package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mmdatafocus/blending_backend/config"
	"github.com/mmdatafocus/blending_backend/models"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	logger := config.GetLogger()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := models.NewStore()
	if config.SeedSampleData() {
		store.SeedSampleData(context.Background())
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.Use(cors.New(buildCorsConfig()))

	r.Use(correlationMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	registerCatalogRoutes(r, store)
	registerTransferRoutes(r, store)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	port := config.GetPort()
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	log.Println("Server started on port " + port)

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// buildCorsConfig requires an explicit allowlist in production. When none is
// configured, cross-origin requests are denied through AllowOriginFunc; an
// empty AllowOrigins slice would make cors.New panic at startup.
func buildCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if config.IsProduction() {
		origins := config.CorsAllowedOrigins()
		if len(origins) == 0 {
			corsConfig.AllowOriginFunc = func(origin string) bool { return false }
		} else {
			corsConfig.AllowOrigins = origins
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Idempotency-Key")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	return corsConfig
}

// correlationMiddleware makes sure every request carries a correlation id
// so failed operations can be matched to their log lines.
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Correlation-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("correlation_id", id)
		c.Writer.Header().Set("X-Correlation-Id", id)
		c.Next()
	}
}

// customErrorLogger logs only requests that collected errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.WithFields(logrus.Fields{
				"path":           c.Request.URL.Path,
				"correlation_id": c.GetString("correlation_id"),
			}).Error(c.Errors.String())
		}
	}
}
