package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/analytics"
)

type listCategoriesResponse struct {
	Items    []summaryPayload `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// ListCategories returns paginated summary rows in original category order.
// GET /api/categories?page=&pageSize=
func (h *Handler) ListCategories(c *gin.Context) {
	page := parseIntWithDefault(c.Query("page"), 1)
	pageSize := parseIntWithDefault(c.Query("pageSize"), 20)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}

	ds := h.store.Dataset()
	if ds == nil {
		c.JSON(http.StatusOK, listCategoriesResponse{
			Items:    []summaryPayload{},
			Page:     page,
			PageSize: pageSize,
		})
		return
	}

	items := make([]summaryPayload, 0, len(ds.Categories))
	for _, cat := range ds.Categories {
		items = append(items, toSummaryPayload(analytics.Summarize(len(ds.Periods), cat)))
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, listCategoriesResponse{
		Items:    items[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

type categoryDetailResponse struct {
	Category string           `json:"category"`
	Series   analytics.Series `json:"series"`
	Growth   []growthCell     `json:"growth"`
	Summary  summaryPayload   `json:"summary"`
}

// GetCategory returns the full derived view of one category.
// GET /api/categories/:name
func (h *Handler) GetCategory(c *gin.Context) {
	ds := h.store.Dataset()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	name := c.Param("name")
	cat, ok := ds.Category(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + name})
		return
	}

	c.JSON(http.StatusOK, categoryDetailResponse{
		Category: cat.Name,
		Series:   analytics.BuildSeries(ds.Periods, cat),
		Growth:   growthCells(ds.Periods, cat.Values),
		Summary:  toSummaryPayload(analytics.Summarize(len(ds.Periods), cat)),
	})
}
