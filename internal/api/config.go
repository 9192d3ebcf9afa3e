package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
)

// ConfigResponse is the adjustable report-settings surface.
type ConfigResponse struct {
	TopCategories int    `json:"topCategories"`
	FilePrefix    string `json:"filePrefix"`
}

// UpdateConfigRequest carries report-settings updates; nil fields are left
// untouched.
type UpdateConfigRequest struct {
	TopCategories *int    `json:"topCategories"`
	FilePrefix    *string `json:"filePrefix"`
}

// GetConfig returns the report settings.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	h.configMu.RLock()
	resp := ConfigResponse{
		TopCategories: h.cfg.Report.TopCategories,
		FilePrefix:    h.cfg.Report.FilePrefix,
	}
	h.configMu.RUnlock()

	c.JSON(http.StatusOK, resp)
}

// UpdateConfig updates report settings and persists them to config.toml.
// PUT /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.TopCategories != nil && (*req.TopCategories < 1 || *req.TopCategories > 50) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topCategories must be between 1 and 50"})
		return
	}

	h.configMu.Lock()
	if req.TopCategories != nil {
		h.cfg.Report.TopCategories = *req.TopCategories
	}
	if req.FilePrefix != nil {
		if prefix := strings.TrimSpace(*req.FilePrefix); prefix != "" {
			h.cfg.Report.FilePrefix = prefix
		}
	}
	resp := ConfigResponse{
		TopCategories: h.cfg.Report.TopCategories,
		FilePrefix:    h.cfg.Report.FilePrefix,
	}
	var saveErr error
	if h.configPath != "" {
		saveErr = config.SaveConfigTo(h.configPath, h.cfg)
	}
	h.configMu.Unlock()

	if saveErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist config: " + saveErr.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
