package fakeapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bodyKey = "fakeapi.request"

// New wires the Gin engine with the /foods routes and the failure injection middleware.
func New(foods *Collection, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewFoodsHandler(foods, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(scriptedMiddleware(foods))

	r.GET("/foods", handler.List)
	r.POST("/foods", handler.Create)
	r.PUT("/foods/:id", handler.Update)
	r.DELETE("/foods/:id", handler.Delete)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// scriptedMiddleware records the request, waits on a held method and serves injected failures.
func scriptedMiddleware(foods *Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &Request{Method: c.Request.Method, Path: c.Request.URL.Path}
		c.Set(bodyKey, req)
		foods.record(req)

		if gate := foods.gate(req.Method); gate != nil {
			select {
			case <-gate:
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}

		if status, ok := foods.takeFailure(req.Method); ok {
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}

		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
