package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/exporter"
)

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream builds the report and streams progress as SSE; the done
// event carries a one-time download URL. The workbook is written to disk
// only after a successful build, so a failed export leaves no partial file.
// A second export while one runs is rejected with 409.
// POST /api/export?top=N
func (h *Handler) ExportStream(c *gin.Context) {
	ds := h.store.Dataset()
	if ds == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no dataset loaded"})
		return
	}

	if !h.store.BeginExport() {
		c.JSON(http.StatusConflict, gin.H{"error": "an export is already running"})
		return
	}
	defer h.store.EndExport()

	topN := h.topCategories(c.Query("top"))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:    "start",
		Message: "building report",
		Data: map[string]any{
			"datasetId": ds.ID,
			"top":       topN,
		},
		Timestamp: time.Now(),
	})

	exp := exporter.NewExporter()

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	file, err := exp.Export(ds, exporter.Options{TopN: topN}, progressFn)
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "export failed: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	prefix := h.filePrefix()
	tempPath := filepath.Join(h.exportDir(), fmt.Sprintf("%s_%d.xlsx", prefix, time.Now().UnixNano()))
	if err := file.SaveAs(tempPath); err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "write export file failed: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		_ = os.Remove(tempPath)
		return
	}

	downloadName := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	token := h.downloads.put(tempPath, downloadName, 10*time.Minute)

	send(exportProgressEvent{
		Type:    "done",
		Message: "export complete",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": "/api/export/download/" + token,
			"filename":    downloadName,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport serves a finished report exactly once; the token and the
// file are discarded afterwards.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file missing"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// exportDir is where finished reports wait for download.
func (h *Handler) exportDir() string {
	h.configMu.RLock()
	defer h.configMu.RUnlock()
	if h.cfg.Data.DataDir != "" {
		return filepath.Join(config.ResolveDataDir(h.cfg), "exports")
	}
	return os.TempDir()
}

func (h *Handler) filePrefix() string {
	h.configMu.RLock()
	defer h.configMu.RUnlock()
	if h.cfg.Report.FilePrefix != "" {
		return h.cfg.Report.FilePrefix
	}
	return "food_sales_report"
}
