package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/model"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

func seedDataset() *model.Dataset {
	return &model.Dataset{
		ID:         "ds-1",
		SourceFile: "sales.xlsx",
		SheetName:  "Dish Sales",
		Periods:    []string{"Jan", "Feb"},
		Categories: []model.CategorySales{
			{Name: "Pizza", Values: []float64{100, 150}},
			{Name: "Salad", Values: []float64{50, 40}},
		},
		LoadedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(t *testing.T, st *store.MemoryStore, cfg *config.AppConfig, configPath string) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(st, cfg, configPath)
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, h
}

// sseEvents splits an SSE response body into its decoded event frames.
func sseEvents(t *testing.T, body string) []map[string]any {
	t.Helper()

	var events []map[string]any
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if !strings.HasPrefix(chunk, "data: ") {
			t.Fatalf("bad SSE frame: %q", chunk)
		}
		var ev map[string]any
		if err := json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &ev); err != nil {
			t.Fatalf("unmarshal SSE frame: %v (%q)", err, chunk)
		}
		events = append(events, ev)
	}
	return events
}

func findEvent(events []map[string]any, typ string) (map[string]any, bool) {
	for _, ev := range events {
		if ev["type"] == typ {
			return ev, true
		}
	}
	return nil, false
}
