package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/api"
	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server hosts the JSON API and the embedded dashboard shell.
type Server struct {
	router *gin.Engine
	store  *store.MemoryStore
	api    *api.Handler
}

// NewServer wires the API handler onto a gin engine. configPath is where
// report-setting updates are persisted; pass "" to keep them in memory.
func NewServer(cfg *config.AppConfig, st *store.MemoryStore, configPath string) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		store:  st,
		api:    api.NewHandler(st, cfg, configPath),
	}

	s.setupRoutes(devMode)

	return s
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS for the dev front-end; the embedded shell is same-origin anyway
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// dev mode: hand non-API routes to the Vite dev server
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		sub, _ := fs.Sub(staticFiles, "dist")

		assetsSub, _ := fs.Sub(sub, "assets")
		s.router.StaticFS("/assets", http.FS(assetsSub))

		s.router.GET("/favicon.svg", func(c *gin.Context) {
			data, err := fs.ReadFile(sub, "favicon.svg")
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.Data(http.StatusOK, "image/svg+xml", data)
		})

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore returns the snapshot store.
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}
