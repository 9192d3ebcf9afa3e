package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

func TestExportStream_DoneCarriesOneTimeDownload(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetDataset(seedDataset())
	r, _ := newTestRouter(t, st, uploadConfig(t), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/export?top=1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	events := sseEvents(t, w.Body.String())
	if events[0]["type"] != "start" {
		t.Errorf("first event = %v", events[0])
	}
	if _, ok := findEvent(events, "progress"); !ok {
		t.Error("no progress events")
	}
	done, ok := findEvent(events, "done")
	if !ok {
		t.Fatalf("no done event in %v", events)
	}
	data := done["data"].(map[string]any)
	downloadURL, _ := data["downloadUrl"].(string)
	if !strings.HasPrefix(downloadURL, "/api/export/download/") {
		t.Fatalf("downloadUrl = %q", downloadURL)
	}

	// first download succeeds and carries the workbook
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, downloadURL, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d body=%s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "food_sales_report") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := w.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Errorf("download body does not look like an xlsx (%d bytes)", len(body))
	}

	// the token is single-use
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, downloadURL, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second download status = %d, want 404", w.Code)
	}

	// flag released after the stream finishes
	if st.ExportInProgress() {
		t.Error("export flag still set")
	}
}

func TestExportStream_NoDataset(t *testing.T) {
	r, _ := newTestRouter(t, store.NewMemoryStore(), config.DefaultConfig(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/export", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// TestExportStream_RejectsConcurrent a second export while one is running
// answers 409 and does not disturb the in-flight flag.
func TestExportStream_RejectsConcurrent(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetDataset(seedDataset())
	r, _ := newTestRouter(t, st, uploadConfig(t), "")

	if !st.BeginExport() {
		t.Fatal("could not claim export flag")
	}
	defer st.EndExport()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/export", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if !st.ExportInProgress() {
		t.Error("rejected request cleared the running export's flag")
	}
}

func TestDownloadExport_UnknownToken(t *testing.T) {
	r, _ := newTestRouter(t, store.NewMemoryStore(), config.DefaultConfig(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export/download/no-such-token", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
