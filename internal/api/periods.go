package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type periodsResponse struct {
	DatasetID string   `json:"datasetId"`
	Periods   []string `json:"periods"`
}

// ListPeriods returns the period axis in sheet order.
// GET /api/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	ds := h.store.Dataset()
	if ds == nil {
		c.JSON(http.StatusOK, periodsResponse{Periods: []string{}})
		return
	}

	c.JSON(http.StatusOK, periodsResponse{
		DatasetID: ds.ID,
		Periods:   ds.Periods,
	})
}
