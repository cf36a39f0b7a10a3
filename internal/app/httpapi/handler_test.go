package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/internal/app/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(gateway.NewSimulator(memory.NewSeeded(), nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandler_SuccessEnvelope(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/v1/horses/1")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, "Thunder", gjson.Get(body, "data.name").String())
}

func TestHandler_NotFoundDetail(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/v1/horses/999")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Horse not found", gjson.Get(body, "detail").String())
}

func TestHandler_UnmatchedRoute(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/v1/reports/annual")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", gjson.Get(body, "detail").String())
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", gjson.Get(body, "data.status").String())
}

func TestHandler_BadRequestDetail(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/horses", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// A live gateway client pointed at this server must produce the same
// envelopes as the in-process simulated path.
func TestHandler_LiveClientParity(t *testing.T) {
	backend := gateway.NewSimulator(memory.NewSeeded(), nil)
	srv := httptest.NewServer(NewHandler(backend, nil))
	t.Cleanup(srv.Close)

	live := gateway.New(gateway.Config{Mode: gateway.ModeLive, BaseURL: srv.URL}, nil, nil)
	sim := gateway.New(gateway.Config{Mode: gateway.ModeSimulated}, backend, nil)

	ctx := context.Background()
	for _, path := range []string{"/api/v1/horses/1", "/api/v1/horses/999", "/api/v1/supplies/dashboard"} {
		liveEnv := live.Do(ctx, "GET", path, nil, nil)
		simEnv := sim.Do(ctx, "GET", path, nil, nil)
		assert.Equal(t, simEnv.Success, liveEnv.Success, path)
		assert.Equal(t, simEnv.Error, liveEnv.Error, path)
		if len(simEnv.Data) > 0 {
			assert.JSONEq(t, string(simEnv.Data), string(liveEnv.Data), path)
		}
	}
}
