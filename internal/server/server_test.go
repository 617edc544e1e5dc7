package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yokitheyo/logsweep/internal/config"
	"github.com/yokitheyo/logsweep/internal/logging"
)

func TestNewHandlerRoutes(t *testing.T) {
	h, err := NewHandler(config.Default(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without parameters, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/none/status", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestNewEngineRejectsBadPattern(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Pattern = "["
	if _, err := NewEngine(cfg, logging.Discard()); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
