package exporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ronniel12/food-sales-dashboard/internal/analytics"
	"github.com/ronniel12/food-sales-dashboard/internal/model"
)

const (
	matrixSheet  = "All Categories"
	summarySheet = "Summary"

	headerFill = "#E2E8F0"
	greenFont  = "#16A34A"
	redFont    = "#DC2626"
)

// Exporter builds the styled sales report workbook.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Options control one report build.
type Options struct {
	TopN int // how many ranked categories get a detail sheet
}

// Export builds the three-part report from a snapshot: the full sales
// matrix, one detail sheet per top-ranked category, and the summary table.
// The workbook stays in memory; callers save it only on success, so a
// failed export never leaves a partial file behind.
func (e *Exporter) Export(ds *model.Dataset, opts Options, progress func(ProgressEvent)) (*excelize.File, error) {
	if ds == nil {
		return nil, errors.New("no dataset loaded")
	}

	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	upStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: greenFont},
	})
	if err != nil {
		return nil, fmt.Errorf("create trend style: %w", err)
	}
	downStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: redFont},
	})
	if err != nil {
		return nil, fmt.Errorf("create trend style: %w", err)
	}

	reportProgress(progress, 10, "writing sales matrix")
	e.writeMatrixSheet(f, ds, headerStyle)

	reportProgress(progress, 40, "writing top category sheets")
	e.writeTopCategorySheets(f, ds, opts.TopN, headerStyle, upStyle, downStyle)

	reportProgress(progress, 80, "writing summary")
	e.writeSummarySheet(f, ds, headerStyle, upStyle, downStyle)

	reportProgress(progress, 100, "report ready")
	return f, nil
}

// writeMatrixSheet writes all categories against all periods, numeric
// cells only. A reload of this sheet reproduces the dataset.
func (e *Exporter) writeMatrixSheet(f *excelize.File, ds *model.Dataset, headerStyle int) {
	f.SetSheetName("Sheet1", matrixSheet)

	headers := append([]string{"Category"}, ds.Periods...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(matrixSheet, cell, h)
	}
	f.SetRowStyle(matrixSheet, 1, 1, headerStyle)

	for i, c := range ds.Categories {
		row := i + 2
		f.SetCellValue(matrixSheet, fmt.Sprintf("A%d", row), c.Name)
		for j, v := range c.Values {
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			f.SetCellValue(matrixSheet, cell, v)
		}
	}

	f.SetColWidth(matrixSheet, "A", "A", 24)
	if len(ds.Periods) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(ds.Periods) + 1)
		f.SetColWidth(matrixSheet, "B", lastCol, 12)
	}
}

// writeTopCategorySheets writes one period/sales/growth sheet per ranked
// category. The first period row has no growth cell; growth cells are
// colored by class.
func (e *Exporter) writeTopCategorySheets(f *excelize.File, ds *model.Dataset, topN, headerStyle, upStyle, downStyle int) {
	used := map[string]bool{matrixSheet: true, summarySheet: true}

	for _, rank := range analytics.RankTop(ds.Categories, topN) {
		c, ok := ds.Category(rank.Category)
		if !ok {
			continue
		}
		sheet := sheetNameFor(c.Name, used)
		f.NewSheet(sheet)

		for i, h := range []string{"Period", "Sales", "Growth %"} {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		f.SetRowStyle(sheet, 1, 1, headerStyle)

		growth := analytics.GrowthRates(ds.Periods, c.Values)
		for i, p := range ds.Periods {
			row := i + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p)
			if i < len(c.Values) {
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Values[i])
			}
			if i == 0 || i-1 >= len(growth) {
				continue
			}
			g := growth[i-1]
			cell := fmt.Sprintf("C%d", row)
			f.SetCellValue(sheet, cell, fmt.Sprintf("%.1f%%", analytics.Round1(g.Percent)))
			switch g.Class {
			case analytics.GrowthPositive:
				f.SetCellStyle(sheet, cell, cell, upStyle)
			case analytics.GrowthNegative:
				f.SetCellStyle(sheet, cell, cell, downStyle)
			}
		}

		f.SetColWidth(sheet, "A", "C", 14)
	}
}

// writeSummarySheet writes the per-category totals sorted by total
// descending. Trend cells are green at or above zero, red below.
func (e *Exporter) writeSummarySheet(f *excelize.File, ds *model.Dataset, headerStyle, upStyle, downStyle int) {
	f.NewSheet(summarySheet)

	headers := []string{"Category", "Total", "Average", "Trend %", "First", "Last"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetRowStyle(summarySheet, 1, 1, headerStyle)

	for i, r := range analytics.SummaryTable(ds) {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r.Category)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r.Total)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), r.Average)
		trendCell := fmt.Sprintf("D%d", row)
		f.SetCellValue(summarySheet, trendCell, fmt.Sprintf("%.1f%%", analytics.Round1(r.TrendPct)))
		if r.TrendPct < 0 {
			f.SetCellStyle(summarySheet, trendCell, trendCell, downStyle)
		} else {
			f.SetCellStyle(summarySheet, trendCell, trendCell, upStyle)
		}
		f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), r.First)
		f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), r.Last)
	}

	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "F", 12)
}

var sheetNameCleaner = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ",
)

// sheetNameFor turns a category name into a legal, unused sheet name.
// Excel caps names at 31 chars and bans :\/?*[] characters; collisions
// get a numeric suffix.
func sheetNameFor(name string, used map[string]bool) string {
	clean := strings.TrimSpace(sheetNameCleaner.Replace(name))
	if clean == "" {
		clean = "Category"
	}
	clean = truncateRunes(clean, 31)

	base := clean
	for n := 2; used[clean]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		clean = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[clean] = true
	return clean
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
