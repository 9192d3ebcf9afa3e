package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports whether a dataset is loaded and describes it.
type StatusResponse struct {
	Initialized   bool   `json:"initialized"`
	LoadFailed    bool   `json:"loadFailed"`
	LoadError     string `json:"loadError,omitempty"`
	DatasetID     string `json:"datasetId,omitempty"`
	SourceFile    string `json:"sourceFile,omitempty"`
	SheetName     string `json:"sheetName,omitempty"`
	PeriodCount   int    `json:"periodCount"`
	CategoryCount int    `json:"categoryCount"`
	LoadedAt      string `json:"loadedAt,omitempty"`
}

// GetStatus returns the system state.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ds := h.store.Dataset()
	if ds == nil {
		loadErr := h.store.LoadError()
		c.JSON(http.StatusOK, StatusResponse{
			Initialized: false,
			LoadFailed:  loadErr != "",
			LoadError:   loadErr,
		})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:   true,
		DatasetID:     ds.ID,
		SourceFile:    ds.SourceFile,
		SheetName:     ds.SheetName,
		PeriodCount:   len(ds.Periods),
		CategoryCount: len(ds.Categories),
		LoadedAt:      ds.LoadedAt.Format(time.RFC3339),
	})
}
