package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

func writeSalesWorkbook(t *testing.T, cells map[string]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Dish Sales")
	for ref, v := range cells {
		if err := f.SetCellValue("Dish Sales", ref, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", ref, err)
		}
	}
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func drain(ch <-chan ProgressEvent) []ProgressEvent {
	events := make([]ProgressEvent, 0)
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func eventTypes(events []ProgressEvent) []string {
	types := make([]string, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func hasEvent(events []ProgressEvent, typ string) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// TestImport_Success a clean workbook ends in a done event and a live
// snapshot.
func TestImport_Success(t *testing.T) {
	t.Parallel()

	path := writeSalesWorkbook(t, map[string]interface{}{
		"A1": "Category", "B1": "Jan", "C1": "Feb",
		"A2": "Pizza", "B2": 100, "C2": 150,
		"A3": "Salad", "B3": 50, "C3": 40,
	})

	s := store.NewMemoryStore()
	events := drain(NewCoordinator(s).Import(ImportOptions{FilePath: path}))

	if len(events) == 0 || events[0].Type != "start" {
		t.Fatalf("event types = %v, want start first", eventTypes(events))
	}
	if events[len(events)-1].Type != "done" {
		t.Fatalf("event types = %v, want done last", eventTypes(events))
	}

	ds := s.Dataset()
	if ds == nil {
		t.Fatal("no snapshot after successful load")
	}
	if ds.ID == "" {
		t.Error("snapshot has no ID")
	}
	if ds.SheetName != "Dish Sales" {
		t.Errorf("sheet name = %q, want Dish Sales", ds.SheetName)
	}
	if len(ds.Periods) != 2 || len(ds.Categories) != 2 {
		t.Fatalf("snapshot shape = %d periods %d categories, want 2/2", len(ds.Periods), len(ds.Categories))
	}
	if ds.Categories[0].Values[1] != 150 {
		t.Errorf("Pizza Feb = %v, want 150", ds.Categories[0].Values[1])
	}
	if s.ImportInProgress() {
		t.Error("import flag still set after load finished")
	}

	report, ok := events[len(events)-1].Data.(ImportReport)
	if !ok {
		t.Fatalf("done event data = %T, want ImportReport", events[len(events)-1].Data)
	}
	if report.Categories != 2 || report.Periods != 2 {
		t.Errorf("report = %+v, want 2 categories 2 periods", report)
	}
}

// TestImport_MissingFile an unreadable file is a load failure: error event,
// empty store, recorded reason.
func TestImport_MissingFile(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	events := drain(NewCoordinator(s).Import(ImportOptions{
		FilePath: filepath.Join(t.TempDir(), "missing.xlsx"),
	}))

	if !hasEvent(events, "error") {
		t.Fatalf("event types = %v, want an error event", eventTypes(events))
	}
	if hasEvent(events, "done") {
		t.Error("failed load must not emit done")
	}
	if s.Initialized() {
		t.Error("store should stay empty after a failed first load")
	}
	if s.LoadError() == "" {
		t.Error("load failure should be recorded on status")
	}
}

// TestImport_FailedReloadKeepsSnapshot a bad upload leaves the serving
// snapshot alone.
func TestImport_FailedReloadKeepsSnapshot(t *testing.T) {
	t.Parallel()

	good := writeSalesWorkbook(t, map[string]interface{}{
		"A1": "Category", "B1": "Jan",
		"A2": "Pizza", "B2": 100,
	})

	s := store.NewMemoryStore()
	c := NewCoordinator(s)
	drain(c.Import(ImportOptions{FilePath: good}))
	firstID := s.Dataset().ID

	// second workbook has nothing recognizable
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "just a note")
	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(bad); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	events := drain(c.Import(ImportOptions{FilePath: bad}))
	if !hasEvent(events, "error") {
		t.Fatalf("event types = %v, want an error event", eventTypes(events))
	}

	ds := s.Dataset()
	if ds == nil || ds.ID != firstID {
		t.Fatal("failed reload clobbered the live snapshot")
	}
	if s.LoadError() != "" {
		t.Errorf("load error = %q, want empty while a snapshot serves", s.LoadError())
	}
}

// TestImport_ValidationFailure a duplicate period column is a blocking
// schema finding.
func TestImport_ValidationFailure(t *testing.T) {
	t.Parallel()

	path := writeSalesWorkbook(t, map[string]interface{}{
		"A1": "Category", "B1": "Jan", "C1": "Jan",
		"A2": "Pizza", "B2": 100, "C2": 150,
	})

	s := store.NewMemoryStore()
	events := drain(NewCoordinator(s).Import(ImportOptions{FilePath: path}))

	if !hasEvent(events, "error") {
		t.Fatalf("event types = %v, want an error event", eventTypes(events))
	}
	if s.Initialized() {
		t.Error("invalid workbook must not become a snapshot")
	}
}

// TestImport_WarningsPassThrough parse warnings surface as warning events
// without failing the load.
func TestImport_WarningsPassThrough(t *testing.T) {
	t.Parallel()

	path := writeSalesWorkbook(t, map[string]interface{}{
		"A1": "Category", "B1": "Jan",
		"A2": "Pizza", "B2": 100,
		"A3": "Pizza", "B3": 10, // duplicate row merges with a warning
	})

	s := store.NewMemoryStore()
	events := drain(NewCoordinator(s).Import(ImportOptions{FilePath: path}))

	foundWarning := false
	for _, ev := range events {
		if ev.Type == "warning" && strings.Contains(ev.Message, "duplicate") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("event types = %v, want a duplicate warning", eventTypes(events))
	}
	if !s.Initialized() {
		t.Fatal("warnings alone must not fail the load")
	}
	if got := s.Dataset().Categories[0].Values[0]; got != 110 {
		t.Errorf("merged Pizza Jan = %v, want 110", got)
	}
}

// TestImport_SheetOverride an explicit sheet name skips recognition.
func TestImport_SheetOverride(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Ignore Me")
	f.SetCellValue("Ignore Me", "A1", "Category")
	f.SetCellValue("Ignore Me", "B1", "Jan")
	f.SetCellValue("Ignore Me", "A2", "Pizza")
	f.SetCellValue("Ignore Me", "B2", 1)
	f.NewSheet("Alt")
	f.SetCellValue("Alt", "A1", "Category")
	f.SetCellValue("Alt", "B1", "Jan")
	f.SetCellValue("Alt", "A2", "Salad")
	f.SetCellValue("Alt", "B2", 2)
	path := filepath.Join(t.TempDir(), "multi.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	s := store.NewMemoryStore()
	drain(NewCoordinator(s).Import(ImportOptions{FilePath: path, SheetName: "Alt"}))

	ds := s.Dataset()
	if ds == nil || ds.SheetName != "Alt" {
		t.Fatalf("snapshot sheet = %+v, want Alt", ds)
	}
	if ds.Categories[0].Name != "Salad" {
		t.Errorf("category = %s, want Salad", ds.Categories[0].Name)
	}
}

// TestImport_RejectsConcurrentLoad the import slot is exclusive.
func TestImport_RejectsConcurrentLoad(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	if !s.BeginImport() {
		t.Fatal("BeginImport failed on fresh store")
	}
	defer s.EndImport()

	events := drain(NewCoordinator(s).Import(ImportOptions{FilePath: "whatever.xlsx"}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("event types = %v, want single error", eventTypes(events))
	}
	if !strings.Contains(events[0].Message, "already running") {
		t.Errorf("message = %q, want already-running rejection", events[0].Message)
	}
}
