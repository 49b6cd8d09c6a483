package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/about"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/terminal"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type harness struct {
	desktop *desktop.Desktop
	router  *gin.Engine
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	d, err := desktop.New(ctx, config.Default().Desktop, nil, monitoring.NewMetrics(nil))
	require.NoError(t, err)
	go d.Run(ctx)
	t.Cleanup(func() {
		d.Stop()
		cancel()
	})

	router := gin.New()
	NewHandlers(d, nil).Register(router)
	return &harness{desktop: d, router: router}
}

func (h *harness) request(t *testing.T, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (h *harness) open(t *testing.T, argument string) int {
	t.Helper()
	code, body := h.request(t, http.MethodPost, "/processes", OpenRequest{Argument: argument})
	require.Equal(t, http.StatusCreated, code, body)
	return int(body["pid"].(float64))
}

func (h *harness) windows(t *testing.T) []any {
	t.Helper()
	code, body := h.request(t, http.MethodGet, "/windows", nil)
	require.Equal(t, http.StatusOK, code)
	return body["windows"].([]any)
}

func (h *harness) processes(t *testing.T) []any {
	t.Helper()
	code, body := h.request(t, http.MethodGet, "/processes", nil)
	require.Equal(t, http.StatusOK, code)
	return body["processes"].([]any)
}

func windowID(w any) int {
	return int(w.(map[string]any)["id"].(float64))
}

func TestHealth(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())

	code, body := h.request(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 1, body["processes"])
	assert.EqualValues(t, 1, body["windows"])
	assert.Contains(t, body, "metrics")
}

func TestOpenProcess(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 0, h.open(t, terminal.Config.InstallPath()))
	assert.Equal(t, 1, h.open(t, paths.Documents+"/readme.txt"))
	assert.Equal(t, 0, h.open(t, terminal.Config.InstallPath()), "routed to the running instance")

	processes := h.processes(t)
	require.Len(t, processes, 2)
	first := processes[0].(map[string]any)
	assert.Equal(t, "Terminal", first["name"])
	assert.Equal(t, terminal.Config.InstallPath(), first["path"])
}

func TestOpenProcessErrors(t *testing.T) {
	h := setup(t)

	code, _ := h.request(t, http.MethodPost, "/processes", OpenRequest{Argument: "/missing"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.request(t, http.MethodPost, "/processes", OpenRequest{Argument: paths.Program("ls")})
	assert.Equal(t, http.StatusNotImplemented, code)

	code, _ = h.request(t, http.MethodPost, "/processes", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestKillProcess(t *testing.T) {
	h := setup(t)
	pid := h.open(t, terminal.Config.InstallPath())

	code, body := h.request(t, http.MethodDelete, "/processes/0", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["killed"])
	assert.Empty(t, h.processes(t))
	assert.Empty(t, h.windows(t))

	code, body = h.request(t, http.MethodDelete, "/processes/0", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["killed"], "pid %d is gone", pid)

	code, _ = h.request(t, http.MethodDelete, "/processes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTerminateProcess(t *testing.T) {
	h := setup(t)
	h.open(t, about.Config.InstallPath())

	code, _ := h.request(t, http.MethodPost, "/processes/0/terminate", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, h.processes(t))

	code, _ = h.request(t, http.MethodPost, "/processes/0/terminate", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReset(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())
	h.open(t, about.Config.InstallPath())

	code, _ := h.request(t, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, h.processes(t))
	assert.Equal(t, 0, h.open(t, about.Config.InstallPath()), "numbering restarts")
}

func TestMenuFollowsFocus(t *testing.T) {
	h := setup(t)

	code, body := h.request(t, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, -1, body["focused"])

	h.open(t, terminal.Config.InstallPath())
	code, body = h.request(t, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["focused"])
	entries := body["entries"].([]any)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Terminal", entries[0].(map[string]any)["name"])
}

func TestInvokeMenu(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())

	code, _ := h.request(t, http.MethodPost, "/menu/invoke", InvokeRequest{Menu: "Shell", Item: "New Window"})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, h.windows(t), 2)

	code, _ = h.request(t, http.MethodPost, "/menu/invoke", InvokeRequest{Menu: "Shell", Item: "Missing"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDock(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())

	code, body := h.request(t, http.MethodGet, "/dock", nil)
	require.Equal(t, http.StatusOK, code)
	entries := body["entries"].([]any)
	require.Len(t, entries, 3)
	term := entries[2].(map[string]any)
	assert.Equal(t, "Terminal", term["name"])
	assert.Equal(t, true, term["running"])
}

func TestWindowActions(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())
	h.open(t, about.Config.InstallPath())

	windows := h.windows(t)
	require.Len(t, windows, 2)
	first := windowID(windows[0])

	code, body := h.request(t, http.MethodPost, "/windows/"+itoa(first)+"/focus", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["window"].(map[string]any)["focused"])

	code, body = h.request(t, http.MethodPost, "/windows/"+itoa(first)+"/minimize", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["window"].(map[string]any)["minimized"])

	code, body = h.request(t, http.MethodPost, "/windows/"+itoa(first)+"/maximize", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["window"].(map[string]any)["maximized"])

	code, _ = h.request(t, http.MethodDelete, "/windows/"+itoa(first), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, h.windows(t), 1)
	assert.Len(t, h.processes(t), 1, "closing the last window quits the owner")

	code, _ = h.request(t, http.MethodPost, "/windows/999/focus", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWindowEvents(t *testing.T) {
	h := setup(t)
	h.open(t, terminal.Config.InstallPath())
	id := itoa(windowID(h.windows(t)[0]))

	code, _ := h.request(t, http.MethodPost, "/windows/"+id+"/events", types.WindowEventRequest{
		Kind: "terminal-command-event",
		Line: "open " + about.Config.InstallPath(),
	})
	require.Equal(t, http.StatusAccepted, code)
	assert.Len(t, h.processes(t), 2)

	code, _ = h.request(t, http.MethodPost, "/windows/"+id+"/events", types.WindowEventRequest{Kind: "application-kill"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = h.request(t, http.MethodPost, "/windows/999/events", types.WindowEventRequest{Kind: "about-open-contact-event"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWindowEventDecoding(t *testing.T) {
	_, err := types.WindowEventRequest{Kind: "finder-open-file-event"}.Event()
	assert.ErrorIs(t, err, types.ErrUnsupportedEvent)

	event, err := types.WindowEventRequest{Kind: "finder-open-file-event", Path: paths.Home}.Event()
	require.NoError(t, err)
	assert.EqualValues(t, "finder-open-file-event", event.Kind())
}

func TestGetFile(t *testing.T) {
	h := setup(t)

	code, body := h.request(t, http.MethodGet, "/files?path="+paths.Documents, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "directory", body["kind"])
	names := []string{}
	for _, child := range body["children"].([]any) {
		names = append(names, child.(map[string]any)["name"].(string))
	}
	assert.Contains(t, names, "readme.txt")

	code, body = h.request(t, http.MethodGet, "/files?path="+paths.Desktop+"/hello.txt", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello, world!", body["content"])

	code, _ = h.request(t, http.MethodGet, "/files?path=/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.request(t, http.MethodGet, "/files?path=relative", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStreamLogs(t *testing.T) {
	h := setup(t)

	code, body := h.request(t, http.MethodPost, "/logs", UILogStreamRequest{
		Source: "ui",
		Entries: []UILogEntry{
			{ID: "1", Level: "error", Message: "boom", Context: map[string]any{"view": "terminal"}},
			{ID: "2", Level: "verbose", Message: "tick"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["entries_received"])

	code, _ = h.request(t, http.MethodPost, "/logs", UILogStreamRequest{Source: "backend", Entries: []UILogEntry{{}}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = h.request(t, http.MethodPost, "/logs", UILogStreamRequest{Source: "ui"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStoppedLoopIsUnavailable(t *testing.T) {
	h := setup(t)
	h.desktop.Stop()
	<-h.desktop.Loop.Done()

	code, _ := h.request(t, http.MethodGet, "/processes", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestTimedOutOpenIsNotApplied(t *testing.T) {
	h := setup(t)
	handlers := NewHandlers(h.desktop, nil)
	handlers.timeout = 20 * time.Millisecond
	router := gin.New()
	handlers.Register(router)

	started := make(chan struct{})
	release := make(chan struct{})
	busy := make(chan error, 1)
	go func() {
		busy <- h.desktop.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	data, err := json.Marshal(OpenRequest{Argument: about.Config.InstallPath()})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/processes", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(release)
	require.NoError(t, <-busy)

	code, body := h.request(t, http.MethodGet, "/processes", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["processes"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
