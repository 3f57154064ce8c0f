package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/memory"
)

type unavailableStore struct {
	*memory.RecordStore
}

func (unavailableStore) Open(context.Context) error { return errors.New("no database") }

func setupRouter(t *testing.T, records storage.RecordStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := window.DefaultConfig()
	cfg.OpenDelay = time.Millisecond
	cfg.CloseDelay = time.Millisecond

	metrics := monitoring.NewMetrics()
	d := desktop.New(desktop.Config{Window: cfg}, records, memory.NewKV(), metrics, nil)
	require.NoError(t, d.Boot(context.Background()))
	t.Cleanup(func() { _ = d.Shutdown(context.Background()) })

	router := gin.New()
	NewHandlers(d, metrics, nil).Register(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestRootAndHealth(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, Version, body["version"])
	assert.NotEmpty(t, body["desktop_id"])

	w, body = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "metrics")
}

func TestAppsEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodGet, "/api/apps", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8.0, body["count"])

	w, body = do(t, router, http.MethodGet, "/api/apps/clock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clock", body["id"])

	w, _ = do(t, router, http.MethodGet, "/api/apps/solitaire", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(t, router, http.MethodPost, "/api/apps/clock/launch", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "window-clock-1", body["window_id"])

	w, _ = do(t, router, http.MethodPost, "/api/apps/solitaire/launch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWindowEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodPost, "/api/windows", map[string]interface{}{
		"app_id": "notes",
		"title":  "Notes",
	})
	require.Equal(t, http.StatusOK, w.Code)
	id, _ := body["id"].(string)
	assert.Equal(t, "window-notes-1", id)

	w, body = do(t, router, http.MethodPost, "/api/windows/"+id+"/resize", map[string]interface{}{
		"width": 500, "height": 300,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, body = do(t, router, http.MethodPost, "/api/windows/"+id+"/minimize", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, body = do(t, router, http.MethodGet, "/api/windows", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["windows"], 1)

	w, _ = do(t, router, http.MethodPost, "/api/windows", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/windows/"+id+"/drag", map[string]interface{}{"phase": "fling"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownWindowIsNoop(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	for _, tc := range []struct {
		method, target string
		body           interface{}
	}{
		{http.MethodGet, "/api/windows/window-ghost-1", nil},
		{http.MethodDelete, "/api/windows/window-ghost-1", nil},
		{http.MethodPost, "/api/windows/window-ghost-1/focus", nil},
		{http.MethodPost, "/api/windows/window-ghost-1/maximize", nil},
		{http.MethodPost, "/api/windows/window-ghost-1/drag", map[string]interface{}{"phase": "move", "x": 1, "y": 1}},
	} {
		w, body := do(t, router, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusOK, w.Code, tc.target)
		assert.Equal(t, false, body["success"], tc.target)
	}
}

func TestFileEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodPut, "/api/fs/file", map[string]interface{}{
		"path": "/documents/todo.txt", "content": "milk",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "todo.txt", body["name"])

	w, body = do(t, router, http.MethodGet, "/api/fs/file?path=/documents/todo.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "milk", body["content"])

	w, _ = do(t, router, http.MethodHead, "/api/fs/file?path=/documents/todo.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/fs/file?path=/documents/none.txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodHead, "/api/fs/file?path=/documents/none.txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPut, "/api/fs/file", map[string]interface{}{"path": "relative.txt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodPut, "/api/fs/file", map[string]interface{}{"path": "/documents"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, router, http.MethodGet, "/api/fs/search?pattern=/documents/*.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])

	w, body = do(t, router, http.MethodDelete, "/api/fs/file?path=/documents/todo.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["removed"])

	w, body = do(t, router, http.MethodDelete, "/api/fs/file?path=/documents/todo.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, body["removed"])
}

func TestFileManagerEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodPost, "/api/files/folder", map[string]interface{}{"name": "photos"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/documents/photos", body["path"])

	w, _ = do(t, router, http.MethodPost, "/api/files/file", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, router, http.MethodPost, "/api/files/cd", map[string]interface{}{"path": "/documents/photos"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/documents/photos", body["path"])
	assert.Equal(t, true, body["can_go_up"])

	w, body = do(t, router, http.MethodPost, "/api/files/up", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/documents", body["path"])
}

func TestStorageUnavailable(t *testing.T) {
	router := setupRouter(t, unavailableStore{memory.NewRecordStore()})

	w, body := do(t, router, http.MethodGet, "/api/fs/list?parent=/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, body["error"], "unavailable")

	w, _ = do(t, router, http.MethodPut, "/api/fs/file", map[string]interface{}{"path": "/a.txt"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, body = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestSheetEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, _ := do(t, router, http.MethodPut, "/api/sheet/cells/A1", map[string]interface{}{"raw": "20"})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := do(t, router, http.MethodPut, "/api/sheet/cells/B1", map[string]interface{}{"raw": "=A1*2+2"})
	require.Equal(t, http.StatusOK, w.Code)
	values, _ := body["values"].(map[string]interface{})
	assert.Equal(t, "42", values["B1"])

	w, body = do(t, router, http.MethodGet, "/api/sheet/cells/B1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "=A1*2+2", body["raw"])
	assert.Equal(t, "42", body["value"])

	w, _ = do(t, router, http.MethodGet, "/api/sheet/cells/Z99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodPut, "/api/sheet/cells/I1", map[string]interface{}{"raw": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/sheet/commit", map[string]interface{}{"raw": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "nothing selected")

	w, body = do(t, router, http.MethodPost, "/api/sheet/select", map[string]interface{}{"cell": "B1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "=A1*2+2", body["raw"])

	w, body = do(t, router, http.MethodPost, "/api/sheet/commit", map[string]interface{}{"raw": "=A1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "B1", body["selected"])

	w, body = do(t, router, http.MethodGet, "/api/sheet/columns/A/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])
	assert.Equal(t, 20.0, body["sum"])
}

func TestNotepadEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodPost, "/api/notepad/save", map[string]interface{}{
		"name": "plan.md", "content": "# Plan",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/documents/plan.md", body["path"])

	w, body = do(t, router, http.MethodGet, "/api/notepad/load?name=plan.md", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Plan", body["content"])

	w, _ = do(t, router, http.MethodGet, "/api/notepad/load?name=missing.md", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/notepad/save", map[string]interface{}{"name": "../x.md"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, router, http.MethodPost, "/api/notepad/preview", map[string]interface{}{
		"content": "# Hi\n<script>alert(1)</script>",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["html"], "<h1>Hi</h1>")
	assert.NotContains(t, body["html"], "<script>")

	w, _ = do(t, router, http.MethodPut, "/api/notepad/autosave", map[string]interface{}{"content": "draft"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = do(t, router, http.MethodGet, "/api/notepad/autosave", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft", body["content"])
	assert.Equal(t, true, body["exists"])

	w, _ = do(t, router, http.MethodDelete, "/api/notepad/autosave", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, body = do(t, router, http.MethodGet, "/api/notepad/autosave", nil)
	assert.Equal(t, false, body["exists"])
}

func TestStopwatchEndpoints(t *testing.T) {
	router := setupRouter(t, memory.NewRecordStore())

	w, body := do(t, router, http.MethodPost, "/api/clock/stopwatch/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["running"])

	w, body = do(t, router, http.MethodPost, "/api/clock/stopwatch/stop", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["running"])

	w, body = do(t, router, http.MethodPost, "/api/clock/stopwatch/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, body["elapsed_ms"])
	assert.Equal(t, "00:00:00", body["display"])
}
