package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/logging"
	"github.com/yokitheyo/logsweep/internal/service"
	"github.com/yokitheyo/logsweep/internal/taskmgr"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local)
}

func writeLog(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *taskmgr.TaskManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine, err := service.NewEngine(service.Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	tm := taskmgr.NewTaskManager(10)
	r := gin.New()
	r.Use(RequestLogger(logging.Discard()))
	RegisterHandlers(r, engine, tm)
	return r, tm
}

func do(t *testing.T, r http.Handler, method, path string, q url.Values) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path+"?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func scenario(t *testing.T) string {
	root := t.TempDir()
	writeLog(t, filepath.Join(root, "a.log"), "ERROR x\n", day(1))
	writeLog(t, filepath.Join(root, "b.log"), "ERROR x\nERROR y\n", day(5))
	return root
}

func TestSearchEndpoint(t *testing.T) {
	r, tm := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodGet, "/search", url.Values{"directories": {root}, "query": {"ERROR y"}})
	if code != http.StatusOK {
		t.Fatalf("status %d: %v", code, body)
	}
	results := body["results"].([]any)
	if len(results) != 1 {
		t.Errorf("results = %v", results)
	}
	if _, err := tm.GetTask(body["task_id"].(string)); err != nil {
		t.Errorf("task not recorded: %v", err)
	}
}

func TestSearchEndpointMissingQuery(t *testing.T) {
	r, _ := setupRouter(t)
	code, body := do(t, r, http.MethodGet, "/search", url.Values{"directories": {t.TempDir()}})
	if code != http.StatusBadRequest || body["kind"] != string(logerr.InvalidInput) {
		t.Errorf("status %d body %v", code, body)
	}
}

func TestCountEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodGet, "/count", url.Values{"directories": {root}})
	if code != http.StatusOK {
		t.Fatalf("status %d: %v", code, body)
	}
	counts := body["counts"].(map[string]any)
	if counts["ERROR x"] != float64(2) || counts["ERROR y"] != float64(1) {
		t.Errorf("counts = %v", counts)
	}

	code, body = do(t, r, http.MethodGet, "/count-duplicates", url.Values{"directories": {root}})
	if code != http.StatusOK {
		t.Fatalf("status %d: %v", code, body)
	}
	if body["message"] != "Duplicate Count is: Error: ERROR x, Count: 1\n" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestTotalLogsEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodGet, "/total-logs", url.Values{
		"directories": {root}, "fromDate": {"2024-01-01"}, "toDate": {"2024-01-05"},
	})
	if code != http.StatusOK || body["total"] != float64(2) {
		t.Errorf("status %d body %v", code, body)
	}

	code, _ = do(t, r, http.MethodGet, "/total-logs", url.Values{"directories": {root}, "fromDate": {"yesterday"}, "toDate": {"2024-01-05"}})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", code)
	}
}

func TestSearchBySizeEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodGet, "/search-by-size", url.Values{"directories": {root}, "minSizeKB": {"0"}, "maxSizeKB": {"1000000"}})
	if code != http.StatusOK || len(body["results"].([]any)) != 2 {
		t.Errorf("status %d body %v", code, body)
	}

	code, _ = do(t, r, http.MethodGet, "/search-by-size", url.Values{"directories": {root}, "minSizeKB": {"5"}, "maxSizeKB": {"1"}})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestDeleteLogsEndpoint(t *testing.T) {
	r, tm := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodDelete, "/delete-logs", url.Values{"directory": {root}, "fromDate": {"2024-01-01"}, "toDate": {"2024-01-01"}})
	if code != http.StatusOK || body["message"] != "Logs deleted successfully." {
		t.Fatalf("status %d body %v", code, body)
	}
	if _, err := os.Stat(filepath.Join(root, "a.log")); !os.IsNotExist(err) {
		t.Error("a.log should be gone")
	}

	code, body = do(t, r, http.MethodDelete, "/delete-logs", url.Values{"directory": {filepath.Join(root, "nope")}, "fromDate": {"2024-01-01"}, "toDate": {"2024-01-01"}})
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	task, err := tm.GetTask(body["task_id"].(string))
	if err != nil || task.Status != "error" {
		t.Errorf("task = %+v, err = %v", task, err)
	}
}

func TestArchiveEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	code, body := do(t, r, http.MethodPost, "/archive", url.Values{"directories": {root}, "fromDate": {"2024-01-01"}, "toDate": {"2024-01-05"}})
	if code != http.StatusOK {
		t.Fatalf("status %d body %v", code, body)
	}
	if body["message"] != "Logs archived to 01012024-05012024.zip successfully." {
		t.Errorf("message = %q", body["message"])
	}
	if _, err := os.Stat(filepath.Join(root, "01012024-05012024.zip")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestSearchByDirectoryEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	code, _ := do(t, r, http.MethodGet, "/search-by-directory", url.Values{"directory": {filepath.Join(root, "nope")}, "query": {"x"}})
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	code, body := do(t, r, http.MethodGet, "/search-by-directory", url.Values{"directory": {root}, "query": {"ERROR x"}})
	if code != http.StatusOK || len(body["results"].([]any)) != 2 {
		t.Errorf("status %d body %v", code, body)
	}
}

func TestTaskStatusEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	root := scenario(t)

	_, body := do(t, r, http.MethodGet, "/count", url.Values{"directories": {root, filepath.Join(root, "missing")}})
	id := body["task_id"].(string)

	code, task := do(t, r, http.MethodGet, "/tasks/"+id+"/status", nil)
	if code != http.StatusOK || task["status"] != "partial" || len(task["failures"].([]any)) != 1 {
		t.Errorf("status %d task %v", code, task)
	}

	code, _ = do(t, r, http.MethodGet, "/tasks/unknown/status", nil)
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[logerr.Kind]int{
		logerr.InvalidInput:       http.StatusBadRequest,
		logerr.DirectoryNotFound:  http.StatusNotFound,
		logerr.AccessDenied:       http.StatusForbidden,
		logerr.AggregationFailure: http.StatusInternalServerError,
		logerr.UnknownFailure:     http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := StatusFor(kind); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}
