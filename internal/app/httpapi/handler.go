// Package httpapi serves the simulated backend over real HTTP so the live
// transport can be pointed at it during development and both execution paths
// exercised end to end.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/internal/app/metrics"
	"github.com/EquiStack/barn_client/pkg/logger"
)

const maxBodyBytes = 16 << 20

// handler bridges HTTP requests into the simulator.
type handler struct {
	sim *gateway.Simulator
	log *logger.Logger
}

// NewHandler returns a router exposing the simulated REST API, the chat
// endpoint, the health probe, and Prometheus metrics.
func NewHandler(sim *gateway.Simulator, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{sim: sim, log: log}

	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler())
	r.HandleFunc("/health", h.dispatch)
	r.HandleFunc("/ai/chat", h.dispatch)
	r.PathPrefix("/api/v1/").HandlerFunc(h.dispatch)
	return r
}

func (h *handler) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}

	env, matched := h.sim.Handle(r.Context(), &gateway.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
	})
	if !matched {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}

	// Failures are reported REST-style so a live client pointed here sees
	// the same status-plus-detail shape the real backend produces.
	if !env.Success {
		status := http.StatusBadRequest
		if strings.HasSuffix(strings.ToLower(env.Error), "not found") {
			status = http.StatusNotFound
		}
		writeDetail(w, status, env.Error)
		return
	}

	writeJSON(w, http.StatusOK, env)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
