package api

import (
	"context"
	"net/http"
	"time"

	"github.com/campushub/slot-booking/internal/store"
)

type HealthHandler struct {
	store   store.Store
	env     string
	version string
}

func NewHealthHandler(st store.Store, env, version string) *HealthHandler {
	return &HealthHandler{store: st, env: env, version: version}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness probes the configured store. Local backends (memory, file) have
// no external medium and always report ok.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	status := "ok"

	if pinger, ok := h.store.(store.Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			deps["store"] = "unavailable: " + err.Error()
			status = "degraded"
		} else {
			deps["store"] = "ok"
		}
	} else {
		deps["store"] = "ok"
	}

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
