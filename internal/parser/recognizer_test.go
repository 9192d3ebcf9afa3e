package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRecognize_SalesMatrix(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("Sheet1", []string{"Category", "Jan", "Feb", "Mar"})
	if result.Confidence < 0.5 {
		t.Fatalf("confidence = %v, want >= 0.5", result.Confidence)
	}
	if result.PeriodCount != 3 {
		t.Errorf("period count = %d, want 3", result.PeriodCount)
	}
}

func TestRecognize_SheetNameBoost(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	plain := r.Recognize("Sheet1", []string{"Category", "Jan"})
	named := r.Recognize("Monthly Sales", []string{"Category", "Jan"})
	if named.Confidence <= plain.Confidence {
		t.Fatalf("name boost missing: plain=%v named=%v", plain.Confidence, named.Confidence)
	}
}

func TestRecognize_NonMatrixSheetScoresLow(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("Config", []string{"Setting", "Value"})
	if result.Confidence >= 0.5 {
		t.Fatalf("config sheet confidence = %v, want < 0.5", result.Confidence)
	}
}

// TestRecognize_OpaquePeriodLabels labels that are not month-like still
// pass when the matrix shape is there.
func TestRecognize_OpaquePeriodLabels(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("Sheet1", []string{"Dish", "P1", "P2", "P3"})
	if result.Confidence < 0.5 {
		t.Fatalf("confidence = %v, want >= 0.5", result.Confidence)
	}
}

func TestPickSheet_PrefersSalesMatrix(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Notes")
	f.SetCellValue("Notes", "A1", "remember to update")
	f.NewSheet("Dish Sales")
	f.SetCellValue("Dish Sales", "A1", "Category")
	f.SetCellValue("Dish Sales", "B1", "Jan")
	f.SetCellValue("Dish Sales", "C1", "Feb")

	r := NewSheetRecognizer()
	name, err := r.PickSheet(f)
	if err != nil {
		t.Fatalf("PickSheet: %v", err)
	}
	if name != "Dish Sales" {
		t.Fatalf("picked %q, want Dish Sales", name)
	}
}

func TestPickSheet_NoCandidate(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Notes")
	f.SetCellValue("Notes", "A1", "nothing tabular here")

	r := NewSheetRecognizer()
	if _, err := r.PickSheet(f); err == nil {
		t.Fatal("PickSheet should fail when no sheet qualifies")
	}
}
