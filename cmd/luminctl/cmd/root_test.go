package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/GriffinCanCode/LuminOS/backend/internal/api/http"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/memory"
)

func startDesktop(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	winCfg := window.DefaultConfig()
	winCfg.OpenDelay = time.Millisecond
	winCfg.CloseDelay = time.Millisecond

	d := desktop.New(desktop.Config{Window: winCfg}, memory.NewRecordStore(), memory.NewKV(), nil, nil)
	require.NoError(t, d.Boot(context.Background()))

	router := gin.New()
	api.NewHandlers(d, nil, nil).Register(router)
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = d.Shutdown(context.Background())
	})
	return server.URL
}

func run(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--server", url}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAppsAndWindows(t *testing.T) {
	url := startDesktop(t)

	out, err := run(t, url, "", "apps", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "spreadsheet")
	assert.Equal(t, 8, strings.Count(out, "\n"))

	out, err = run(t, url, "", "apps", "launch", "notepad")
	require.NoError(t, err)
	assert.Equal(t, "window-notepad-1\n", out)

	out, err = run(t, url, "", "windows", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "window-notepad-1")

	out, err = run(t, url, "", "windows", "minimize", "window-notepad-1")
	require.NoError(t, err)
	assert.Equal(t, "window-notepad-1 minimized\n", out)

	_, err = run(t, url, "", "windows", "focus", "window-ghost-1")
	assert.ErrorContains(t, err, "no change")

	_, err = run(t, url, "", "apps", "launch", "solitaire")
	assert.ErrorContains(t, err, "404")
}

func TestFileCommands(t *testing.T) {
	url := startDesktop(t)

	out, err := run(t, url, "buy milk", "fs", "write", "/documents/todo.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "/documents/todo.txt (8 bytes")

	out, err = run(t, url, "", "fs", "cat", "/documents/todo.txt")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", out)

	out, err = run(t, url, "", "fs", "ls", "/documents")
	require.NoError(t, err)
	assert.Contains(t, out, "todo.txt")

	out, err = run(t, url, "", "fs", "find", "/documents/*.txt")
	require.NoError(t, err)
	assert.Equal(t, "/documents/todo.txt\n", out)

	_, err = run(t, url, "", "fs", "rm", "-r", "/documents")
	require.NoError(t, err)

	out, err = run(t, url, "", "fs", "find", "/documents/**")
	require.NoError(t, err)
	assert.Equal(t, "No results found\n", out)
}

func TestSheetCommands(t *testing.T) {
	url := startDesktop(t)

	_, err := run(t, url, "", "sheet", "set", "a1", "20")
	require.NoError(t, err)

	out, err := run(t, url, "", "sheet", "set", "A2", "=A1+22")
	require.NoError(t, err)
	assert.Equal(t, "A2 = 42\n", out)

	out, err = run(t, url, "", "sheet", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two filled rows")

	out, err = run(t, url, "", "sheet", "summary", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "count=2 sum=62")
}
