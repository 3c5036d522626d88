package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goassoc/domain/dataset"
	"goassoc/internal/registry"
)

// Server is the polling HTTP boundary: task submission, progress polling
// and report rendering. All analytical work happens off the request path.
type Server struct {
	router   *gin.Engine
	registry *registry.TaskRegistry
	run      RunFunc
}

// RunFunc starts the background pipeline for one task.
type RunFunc func(ctx context.Context, id string, ds *dataset.Dataset, selection []string)

// NewServer creates the API server.
func NewServer(reg *registry.TaskRegistry, run RunFunc) *Server {
	router := gin.Default()
	s := &Server{router: router, registry: reg, run: run}

	router.Use(corsMiddleware())
	router.POST("/process", s.handleProcess)
	router.GET("/progress/:task_id", s.handleProgress)
	router.GET("/report/:task_id", s.handleReport)

	return s
}

// Router exposes the underlying gin engine, mostly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until the listener fails.
func (s *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("[API] Listening on :%s", port)
	return srv.ListenAndServe()
}

// corsMiddleware allows cross-origin polling from any frontend host.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
