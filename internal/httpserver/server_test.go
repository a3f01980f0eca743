package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/fitness-coach/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{
			Host:             "127.0.0.1",
			Port:             8000,
			AIMode:           config.AIModeMock,
			AIHistoryLimit:   10,
			DefaultStepsGoal: 10000,
		}
	}
	return New(cfg, zerolog.Nop())
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	w := serve(t, srv.Handler(), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "ok", resp["status"])
	require.Equal(t, true, resp["ai_available"])
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	w := serve(t, srv.mux, http.MethodPost, "/healthz", "")

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthRoutesShareStore(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	w := serve(t, h, http.MethodPut, "/health/steps?steps=5000", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, float64(5000), resp["steps"])
	require.Equal(t, float64(10000), resp["stepsGoal"])
}

func TestAskRouteWithMockProvider(t *testing.T) {
	srv := newTestServer(t, nil)

	w := serve(t, srv.Handler(), http.MethodPost, "/ask", `{"question":"Is 8000 steps enough?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp["answer"], "Is 8000 steps enough?")
}

func TestAskRouteWithoutKey(t *testing.T) {
	srv := newTestServer(t, &config.Config{
		Host:             "127.0.0.1",
		Port:             8000,
		AIMode:           config.AIModeOpenRouter,
		DefaultStepsGoal: 10000,
	})

	w := serve(t, srv.Handler(), http.MethodPost, "/ask", `{"question":"hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(t, srv.Handler(), http.MethodPost, "/ask", `{"question":"  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	serve(t, h, http.MethodPut, "/health/heart-rate?bpm=70", "")
	w := serve(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `fitness_coach_health_updates_total{field="heartRate"}`)
	require.Contains(t, body, "fitness_coach_ask_upstream_duration_seconds")
}

func TestRequestIDHeader(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Host: "127.0.0.1", AIMode: config.AIModeMock, DefaultStepsGoal: 10000}
	srv := New(cfg, zerolog.New(&buf))

	w := serve(t, srv.Handler(), http.MethodGet, "/health", "")
	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	require.Equal(t, id, entry["request_id"])
	require.Equal(t, "/health", entry["path"])
	require.Equal(t, float64(200), entry["status"])

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
}

func TestServeAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)
}
