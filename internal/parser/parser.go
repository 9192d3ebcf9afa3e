package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ronniel12/food-sales-dashboard/internal/model"
)

// Parser reads one dish-sales workbook.
type Parser struct {
	file    *excelize.File
	parseID string
}

// NewParser creates a parser with a fresh parse ID.
func NewParser() *Parser {
	return &Parser{
		parseID: uuid.New().String(),
	}
}

// LoadFile loads a workbook from a reader.
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// LoadPath loads a workbook from disk.
func (p *Parser) LoadPath(path string) error {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// ParseID identifies this parse in progress events.
func (p *Parser) ParseID() string {
	return p.parseID
}

// Workbook returns the loaded workbook (read-only use).
func (p *Parser) Workbook() *excelize.File {
	return p.file
}

// SheetInfo describes one sheet of the loaded workbook.
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// Sheets lists the workbook's sheets with their row counts.
func (p *Parser) Sheets() ([]SheetInfo, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		rows, err := p.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, SheetInfo{
			Name:     name,
			RowCount: len(rows),
		})
	}

	return result, nil
}

// ParseResult is the parsed sales matrix plus row-level findings.
type ParseResult struct {
	Periods    []string
	Categories []model.CategorySales
	Warnings   []string
}

// Parse reads the sales matrix from one sheet. The header row carries the
// period labels; their sheet order is the period order and is never sorted.
// Empty and unparsable numeric cells load as 0, so every category comes out
// with exactly one value per period.
func (p *Parser) Parse(sheet string) (*ParseResult, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	header := rows[0]
	result := &ParseResult{}

	// Period axis: header cells after the category column, first-appearance
	// order. Blank header cells carry no data; interior blanks get a warning,
	// trailing blanks are just the edge of the sheet.
	lastLabeled := 0
	for i := 1; i < len(header); i++ {
		if NormalizeHeader(header[i]) != "" {
			lastLabeled = i
		}
	}
	periodCols := make([]int, 0, len(header))
	for i := 1; i < len(header); i++ {
		label := NormalizeHeader(header[i])
		if label == "" {
			if i < lastLabeled {
				result.Warnings = append(result.Warnings, fmt.Sprintf("column %d: blank period header, column skipped", i+1))
			}
			continue
		}
		result.Periods = append(result.Periods, label)
		periodCols = append(periodCols, i)
	}

	index := make(map[string]int) // category name -> position in result.Categories

	for i, row := range rows[1:] {
		rowNum := i + 2
		name := NormalizeHeader(getCell(row, 0))
		if name == "" {
			if !rowEmpty(row) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty category name, row skipped", rowNum))
			}
			continue
		}

		values := make([]float64, len(periodCols))
		for j, col := range periodCols {
			values[j] = parseFloat(getCell(row, col))
		}

		if at, ok := index[name]; ok {
			// Duplicate category rows merge by summing, keeping one value
			// per period.
			for j := range values {
				result.Categories[at].Values[j] += values[j]
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate category %q merged", rowNum, name))
			continue
		}
		index[name] = len(result.Categories)
		result.Categories = append(result.Categories, model.CategorySales{Name: name, Values: values})
	}

	return result, nil
}

// Close closes the workbook.
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
