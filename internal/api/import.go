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
	"github.com/ronniel12/food-sales-dashboard/internal/importer"
)

// Import accepts a sales workbook upload and streams load progress as SSE.
// The snapshot is only replaced on success; a failed upload leaves the
// previous dataset serving.
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	uploadedFile := files[0]

	tempFilePath := filepath.Join(h.uploadDir(),
		fmt.Sprintf("upload_%d_%s", time.Now().UnixNano(), filepath.Base(uploadedFile.Filename)))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempFilePath)

	sheet := c.PostForm("sheet")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	coordinator := importer.NewCoordinator(h.store)
	progressChan := coordinator.Import(importer.ImportOptions{
		FilePath:   tempFilePath,
		SourceName: uploadedFile.Filename,
		SheetName:  sheet,
	})

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE frame: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// uploadDir is where uploads land before parsing; files are removed after
// the load finishes.
func (h *Handler) uploadDir() string {
	h.configMu.RLock()
	defer h.configMu.RUnlock()
	if h.cfg.Data.DataDir != "" {
		return filepath.Join(config.ResolveDataDir(h.cfg), "uploads")
	}
	return os.TempDir()
}
