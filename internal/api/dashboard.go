package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/analytics"
)

// growthCell is a growth point with its display-rounded percentage.
type growthCell struct {
	Period  string  `json:"period"`
	Percent float64 `json:"percent"`
	Class   string  `json:"class"`
}

type seriesPayload struct {
	Category string                  `json:"category"`
	Points   []analytics.SeriesPoint `json:"points"`
	Total    float64                 `json:"total"`
	Growth   []growthCell            `json:"growth"`
}

type summaryPayload struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Average    float64 `json:"average"`
	TrendPct   float64 `json:"trendPct"`
	TrendClass string  `json:"trendClass"`
	First      float64 `json:"first"`
	Last       float64 `json:"last"`
}

type dashboardResponse struct {
	DatasetID string                   `json:"datasetId"`
	Periods   []string                 `json:"periods"`
	Series    []seriesPayload          `json:"series"`
	Top       []analytics.CategoryRank `json:"top"`
	Summary   []summaryPayload         `json:"summary"`
}

// GetDashboard returns the chart-ready payload: all series, the top-N
// ranking, and the summary table. Percentages are rounded for display;
// the snapshot itself keeps full precision.
// GET /api/dashboard?top=N
func (h *Handler) GetDashboard(c *gin.Context) {
	ds := h.store.Dataset()
	if ds == nil {
		c.JSON(http.StatusOK, dashboardResponse{
			Periods: []string{},
			Series:  []seriesPayload{},
			Top:     []analytics.CategoryRank{},
			Summary: []summaryPayload{},
		})
		return
	}

	topN := h.topCategories(c.Query("top"))

	series := make([]seriesPayload, 0, len(ds.Categories))
	for _, cat := range ds.Categories {
		s := analytics.BuildSeries(ds.Periods, cat)
		series = append(series, seriesPayload{
			Category: s.Category,
			Points:   s.Points,
			Total:    s.Total,
			Growth:   growthCells(ds.Periods, cat.Values),
		})
	}

	summary := make([]summaryPayload, 0, len(ds.Categories))
	for _, row := range analytics.SummaryTable(ds) {
		summary = append(summary, toSummaryPayload(row))
	}

	c.JSON(http.StatusOK, dashboardResponse{
		DatasetID: ds.ID,
		Periods:   ds.Periods,
		Series:    series,
		Top:       analytics.RankTop(ds.Categories, topN),
		Summary:   summary,
	})
}

func growthCells(periods []string, values []float64) []growthCell {
	points := analytics.GrowthRates(periods, values)
	cells := make([]growthCell, 0, len(points))
	for _, p := range points {
		cells = append(cells, growthCell{
			Period:  p.Period,
			Percent: analytics.Round1(p.Percent),
			Class:   string(p.Class),
		})
	}
	return cells
}

// toSummaryPayload rounds the trend for display and classifies it by its
// unrounded sign.
func toSummaryPayload(r analytics.SummaryRow) summaryPayload {
	return summaryPayload{
		Category:   r.Category,
		Total:      r.Total,
		Average:    r.Average,
		TrendPct:   analytics.Round1(r.TrendPct),
		TrendClass: string(analytics.ClassifyGrowth(r.TrendPct)),
		First:      r.First,
		Last:       r.Last,
	}
}
