/*
NAME
  server.go

DESCRIPTION
  server.go wires the codec pipelines into a gin HTTP server: POST
  /encode, POST /decode, GET /health, and static file serving. Grounded
  on the "wire leaf packages together, one file per concern" shape of
  revid/pipeline.go, with the gin engine/router construction itself
  grounded on USA-RedDragon/DMRHub's http.Server (CORS middleware, a
  grouped static file route, a thin Start/router split) since the
  teacher has no HTTP layer of its own.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

// Package http exposes the codec over a small JSON/multipart HTTP API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kc5afs/aprsafsk/internal/config"
)

// NewRouter builds the gin engine serving cfg's routes, logging
// requests and errors through log.
func NewRouter(cfg config.Config, log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	r.Use(cors.New(corsConfig))

	r.MaxMultipartMemory = config.MaxUploadBytes

	r.GET("/health", handleHealth)
	r.POST("/encode", handleEncode(log))
	r.POST("/decode", handleDecode(log))

	r.StaticFile("/", cfg.StaticDir+"/index.html")
	r.Static("/static", cfg.StaticDir)

	return r
}

// requestLogger logs each request's method, path, and status at debug
// level once it completes.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}

func handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "Server is up and running")
}
