package api

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

// Handler serves the dashboard JSON API over the in-memory snapshot.
type Handler struct {
	store      *store.MemoryStore
	downloads  *exportDownloadStore
	configMu   sync.RWMutex
	cfg        *config.AppConfig
	configPath string // empty disables persisting config updates
}

// NewHandler creates the API handler. configPath is where PUT /config
// persists report settings; pass "" to keep them in memory only.
func NewHandler(store *store.MemoryStore, cfg *config.AppConfig, configPath string) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Handler{
		store:      store,
		downloads:  newExportDownloadStore(),
		cfg:        cfg,
		configPath: configPath,
	}
}

// RegisterRoutes registers all API routes on the group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system state
	router.GET("/status", h.GetStatus)
	router.GET("/periods", h.ListPeriods)

	// derived data
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/categories", h.ListCategories)
	router.GET("/categories/:name", h.GetCategory)

	// report settings
	router.GET("/config", h.GetConfig)
	router.PUT("/config", h.UpdateConfig)

	// data import
	router.POST("/import", h.Import)

	// report export
	router.POST("/export", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}

// topCategories resolves the top-N count for a request: the query parameter
// when present, the configured default otherwise, clamped to 1..50.
func (h *Handler) topCategories(query string) int {
	h.configMu.RLock()
	n := h.cfg.Report.TopCategories
	h.configMu.RUnlock()

	if query != "" {
		if v, err := strconv.Atoi(query); err == nil {
			n = v
		}
	}
	if n < 1 {
		n = 1
	}
	if n > 50 {
		n = 50
	}
	return n
}

func parseIntWithDefault(v string, d int) int {
	if v == "" {
		return d
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return i
}
