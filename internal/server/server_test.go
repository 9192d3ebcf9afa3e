package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
)

func newTestServer(t *testing.T, devMode bool) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = devMode
	cfg.Data.DataDir = t.TempDir()
	return NewServer(cfg, store.NewMemoryStore(), "")
}

func TestServer_ServesEmbeddedShell(t *testing.T) {
	srv := newTestServer(t, false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Food Sales Dashboard") {
		t.Error("index.html not served")
	}

	// SPA fallback serves the shell for client-side routes
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/some/client/route", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Food Sales Dashboard") {
		t.Errorf("fallback status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	if w.Code != http.StatusOK {
		t.Errorf("assets status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favicon.svg", nil))
	if w.Code != http.StatusOK {
		t.Errorf("favicon status = %d", w.Code)
	}
}

func TestServer_MountsAPI(t *testing.T) {
	srv := newTestServer(t, false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"initialized":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestServer_DevModeRedirects(t *testing.T) {
	srv := newTestServer(t, true)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "http://localhost:5173/dashboard" {
		t.Errorf("Location = %q", loc)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/status", nil))

	if w.Code != 204 {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}
