// Package rest exposes the sealed celestial-object database and its
// builder over HTTP, in the teacher's Gin router shape: one *gin.Engine,
// route groups under /api/v1, gin.H JSON responses, CORS and recovery
// middleware.
package rest

import (
	"net/http"
	"sync"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/bookmarks"
	"github.com/draco-astrodb/astrodb/internal/common/service"
	"github.com/draco-astrodb/astrodb/internal/eventbus"
	"github.com/gin-gonic/gin"
)

// Config holds HTTP server configuration.
type Config struct {
	Address string
	Debug   bool
}

// Server holds the HTTP router and the catalog state it serves: a
// sealed Database (nil until the first successful seal), the Builder
// currently accumulating sources (nil once sealed or before the first
// import), the bookmark store, and the event bus used to announce
// seals and visible-query results to WebSocket clients.
type Server struct {
	router *gin.Engine

	mu      sync.RWMutex
	db      *astrodb.Database
	builder *astrodb.Builder

	bus       eventbus.EventBus
	bookmarks bookmarks.Store
	svc       *service.BaseService
}

// NewServer creates an HTTP server with no catalog loaded yet. Callers
// import sources via POST /api/v1/catalog/import and seal via
// POST /api/v1/catalog/seal, or call SetDatabase directly with one
// built out-of-process (e.g. by cmd/astrodb-gen).
func NewServer(cfg Config, bus eventbus.EventBus, store bookmarks.Store) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.NewBaseService("astrodb")

	s := &Server{
		router:    gin.New(),
		bus:       bus,
		bookmarks: store,
		svc:       svc,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.setupRoutes()

	return s
}

// SetDatabase installs a sealed Database built elsewhere (e.g. loaded
// from a snapshot at startup), marking the service healthy.
func (s *Server) SetDatabase(db *astrodb.Database) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = db
	s.svc.SetHealthy("catalog loaded")
}

func (s *Server) database() *astrodb.Database {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")

	api.GET("/health", s.healthCheck)

	objects := api.Group("/objects")
	{
		objects.GET("/:number", s.getObjectByNumber)
		objects.GET("/by-name", s.getObjectByName)
		objects.GET("/complete", s.completion)
		objects.GET("/visible", s.findVisible)
		objects.GET("/close", s.findClose)
	}

	catalog := api.Group("/catalog")
	{
		catalog.POST("/import", s.importSource)
		catalog.POST("/seal", s.sealCatalog)
	}

	marks := api.Group("/bookmarks")
	{
		marks.GET("", s.listBookmarks)
		marks.GET("/:name", s.getBookmark)
		marks.PUT("/:name", s.setBookmark)
		marks.DELETE("/:name", s.deleteBookmark)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server directly via Gin.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	health := s.svc.Health()
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
