package http

import (
	"context"
	"net/http"
	"time"

	"github.com/uptrace/bun"
)

type HealthHandler struct {
	db      *bun.DB
	version string
}

func NewHealthHandler(db *bun.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{Status: "ok", Version: h.version})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		deps["postgres"] = "down"
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = "ok"
	}

	writeJSON(w, httpStatus, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Dependencies: deps,
	})
}
