package parser

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// categoryHeaders are first-column labels that mark a sales matrix.
var categoryHeaders = []string{"category", "dish", "item", "name", "menu", "product"}

// sheetNameHints boost sheets whose name already says what they hold.
var sheetNameHints = []string{"sales", "sale", "monthly", "dish"}

// SheetRecognizer scores sheets on how much their header row looks like a
// category-by-period sales matrix.
type SheetRecognizer struct{}

// NewSheetRecognizer creates a recognizer.
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// SheetRecognitionResult is one sheet's score.
type SheetRecognitionResult struct {
	SheetName   string  `json:"sheetName"`
	Confidence  float64 `json:"confidence"`
	PeriodCount int     `json:"periodCount"`
}

// Recognize scores one sheet from its name and header row. Signals: a
// category-style first column, at least one period column, several period
// columns, mostly month-like period labels. Confidence is the matched
// share plus a sheet-name boost.
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	normalized := make([]string, len(columnNames))
	for i, col := range columnNames {
		normalized[i] = NormalizeHeader(col)
	}

	periodCount := 0
	monthLike := 0
	for i := 1; i < len(normalized); i++ {
		if normalized[i] == "" {
			continue
		}
		periodCount++
		if LooksLikeMonth(normalized[i]) {
			monthLike++
		}
	}

	matchCount := 0
	keySignals := 4
	if len(normalized) > 0 && ContainsAny(normalized[0], categoryHeaders) {
		matchCount++
	}
	if periodCount >= 1 {
		matchCount++
	}
	if periodCount >= 2 {
		matchCount++
	}
	if periodCount > 0 && monthLike*2 >= periodCount {
		matchCount++
	}

	confidence := float64(matchCount) / float64(keySignals)

	if ContainsAny(sheetName, sheetNameHints) {
		confidence += 0.2
	}

	return SheetRecognitionResult{
		SheetName:   sheetName,
		Confidence:  confidence,
		PeriodCount: periodCount,
	}
}

// PickSheet returns the best-scoring sheet of a workbook. Below the
// confidence threshold nothing is a sales sheet and the load fails.
func (r *SheetRecognizer) PickSheet(f *excelize.File) (string, error) {
	if f == nil {
		return "", errors.New("workbook is nil")
	}

	best := SheetRecognitionResult{Confidence: -1}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		result := r.Recognize(name, rows[0])
		if result.Confidence > best.Confidence {
			best = result
		}
	}

	if best.Confidence < 0.5 {
		return "", errors.New("no sales sheet recognized")
	}
	return best.SheetName, nil
}
