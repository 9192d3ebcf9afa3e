package analytics

import (
	"sort"

	"github.com/ronniel12/food-sales-dashboard/internal/model"
)

// GrowthClass classifies a growth percentage for display coloring.
type GrowthClass string

const (
	GrowthPositive GrowthClass = "positive"
	GrowthNegative GrowthClass = "negative"
	GrowthNeutral  GrowthClass = "neutral"
)

// SeriesPoint is one period's value in a category series.
type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Series is one category's sales over the full period axis.
type Series struct {
	Category string        `json:"category"`
	Points   []SeriesPoint `json:"points"`
	Total    float64       `json:"total"`
}

// GrowthPoint is the period-over-period growth at one period.
// The first period of a series never has one.
type GrowthPoint struct {
	Period  string      `json:"period"`
	Percent float64     `json:"percent"`
	Class   GrowthClass `json:"class"`
}

// CategoryRank is one row of the top-N ranking.
type CategoryRank struct {
	Rank     int     `json:"rank"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SummaryRow aggregates one category across all periods.
type SummaryRow struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
	TrendPct float64 `json:"trendPct"`
	First    float64 `json:"first"`
	Last     float64 `json:"last"`
}

// BuildSeries pairs a category's values with the period axis.
// Point order is period order.
func BuildSeries(periods []string, c model.CategorySales) Series {
	points := make([]SeriesPoint, 0, len(c.Values))
	for i, v := range c.Values {
		period := ""
		if i < len(periods) {
			period = periods[i]
		}
		points = append(points, SeriesPoint{Period: period, Value: v})
	}
	return Series{Category: c.Name, Points: points, Total: c.Total()}
}

// BuildAllSeries builds one series per category, category order preserved.
func BuildAllSeries(ds *model.Dataset) []Series {
	if ds == nil {
		return []Series{}
	}
	series := make([]Series, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		series = append(series, BuildSeries(ds.Periods, c))
	}
	return series
}

// GrowthRates computes period-over-period growth points for i >= 1.
// A base value of 0 (or below) yields growth 0 instead of a division,
// so the function is total. Percentages keep full precision here;
// display rounding happens only at the API and report edges.
func GrowthRates(periods []string, values []float64) []GrowthPoint {
	points := make([]GrowthPoint, 0)
	for i := 1; i < len(values); i++ {
		pct := 0.0
		if values[i-1] > 0 {
			pct = (values[i] - values[i-1]) / values[i-1] * 100
		}
		period := ""
		if i < len(periods) {
			period = periods[i]
		}
		points = append(points, GrowthPoint{
			Period:  period,
			Percent: pct,
			Class:   ClassifyGrowth(pct),
		})
	}
	return points
}

// Summarize computes the summary row for one category. periodCount is the
// dataset's period axis length. A first value of 0 yields trend 0; that is
// policy, not an accident.
func Summarize(periodCount int, c model.CategorySales) SummaryRow {
	row := SummaryRow{Category: c.Name, Total: c.Total()}
	if periodCount > 0 {
		row.Average = row.Total / float64(periodCount)
	}
	if len(c.Values) == 0 {
		return row
	}
	row.First = c.Values[0]
	row.Last = c.Values[len(c.Values)-1]
	if row.First != 0 {
		row.TrendPct = (row.Last - row.First) / row.First * 100
	}
	return row
}

// SummaryTable summarizes every category, sorted by total descending,
// ties kept in original category order.
func SummaryTable(ds *model.Dataset) []SummaryRow {
	if ds == nil {
		return []SummaryRow{}
	}
	rows := make([]SummaryRow, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		rows = append(rows, Summarize(len(ds.Periods), c))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

// RankTop ranks categories by total descending, stable tie-break by input
// order, truncated to n. Empty input or n <= 0 yields an empty ranking,
// never an error.
func RankTop(categories []model.CategorySales, n int) []CategoryRank {
	ranks := make([]CategoryRank, 0, len(categories))
	for _, c := range categories {
		ranks = append(ranks, CategoryRank{Category: c.Name, Total: c.Total()})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Total > ranks[j].Total
	})
	if n < 0 {
		n = 0
	}
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// ClassifyGrowth buckets a growth percentage: positive above 0, negative
// below 0, neutral at exactly 0.
func ClassifyGrowth(pct float64) GrowthClass {
	switch {
	case pct > 0:
		return GrowthPositive
	case pct < 0:
		return GrowthNegative
	default:
		return GrowthNeutral
	}
}
