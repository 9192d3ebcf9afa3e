package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ronniel12/food-sales-dashboard/internal/model"
	"github.com/ronniel12/food-sales-dashboard/internal/parser"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

// Coordinator drives a workbook load from file to live snapshot.
type Coordinator struct {
	store      *store.MemoryStore
	recognizer *parser.SheetRecognizer
}

// NewCoordinator creates a coordinator over the given store.
func NewCoordinator(store *store.MemoryStore) *Coordinator {
	return &Coordinator{
		store:      store,
		recognizer: parser.NewSheetRecognizer(),
	}
}

// ImportOptions selects what to load.
type ImportOptions struct {
	FilePath   string
	SourceName string // display name; defaults to the base of FilePath
	SheetName  string // empty means recognize automatically
}

func (o ImportOptions) sourceName() string {
	if o.SourceName != "" {
		return o.SourceName
	}
	return filepath.Base(o.FilePath)
}

// ProgressEvent is one step of a running load.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ImportReport summarizes a finished load, carried on the done event.
type ImportReport struct {
	DatasetID  string        `json:"datasetId"`
	SourceFile string        `json:"sourceFile"`
	SheetName  string        `json:"sheetName"`
	Periods    int           `json:"periods"`
	Categories int           `json:"categories"`
	Warnings   int           `json:"warnings"`
	Duration   time.Duration `json:"duration"`
}

// Import runs the load in the background and returns its progress channel.
// The channel closes when the load finishes, success or not.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	if !c.store.BeginImport() {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   "another load is already running",
			Timestamp: time.Now(),
		})
		return
	}
	defer c.store.EndImport()

	startTime := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "loading sales workbook",
		Data: map[string]string{
			"filename": opts.sourceName(),
		},
		Timestamp: time.Now(),
	})

	p := parser.NewParser()
	if err := p.LoadPath(opts.FilePath); err != nil {
		c.fail(progressChan, fmt.Errorf("open workbook: %w", err))
		return
	}
	defer p.Close()

	sheetName := opts.SheetName
	if sheetName == "" {
		picked, err := c.recognizer.PickSheet(p.Workbook())
		if err != nil {
			c.fail(progressChan, err)
			return
		}
		sheetName = picked
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("parsing sheet %q", sheetName),
		Data: map[string]string{
			"sheet_name": sheetName,
		},
		Timestamp: time.Now(),
	})

	result, err := p.Parse(sheetName)
	if err != nil {
		c.fail(progressChan, fmt.Errorf("parse sheet %q: %w", sheetName, err))
		return
	}

	for _, w := range result.Warnings {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   w,
			Timestamp: time.Now(),
		})
	}

	ds := &model.Dataset{
		ID:         uuid.New().String(),
		SourceFile: opts.sourceName(),
		SheetName:  sheetName,
		Periods:    result.Periods,
		Categories: result.Categories,
		LoadedAt:   time.Now(),
	}

	// Schema is checked once, here. Blocking findings fail the load.
	findings := ds.Validate()
	for _, f := range findings {
		if f.Severity != "error" {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("%s: %s", f.Field, f.Message),
				Timestamp: time.Now(),
			})
		}
	}
	if model.HasBlocking(findings) {
		c.fail(progressChan, fmt.Errorf("workbook failed validation: %s", firstBlocking(findings)))
		return
	}

	c.store.SetDataset(ds)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "done",
		Message: "load complete",
		Data: ImportReport{
			DatasetID:  ds.ID,
			SourceFile: ds.SourceFile,
			SheetName:  sheetName,
			Periods:    len(ds.Periods),
			Categories: len(ds.Categories),
			Warnings:   len(result.Warnings),
			Duration:   time.Since(startTime),
		},
		Timestamp: time.Now(),
	})
}

// fail reports a load failure. The store records it only when there is no
// live snapshot left serving.
func (c *Coordinator) fail(ch chan ProgressEvent, err error) {
	c.store.SetLoadFailure(err)
	c.sendProgress(ch, ProgressEvent{
		Type:      "error",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

func firstBlocking(findings []model.ValidationError) string {
	for _, f := range findings {
		if f.Severity == "error" {
			return f.Field + ": " + f.Message
		}
	}
	return "invalid schema"
}

// sendProgress drops the event when the channel is full rather than block
// the load.
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
