package handler

import (
	"net/http"
	"time"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	nowF func() time.Time
}

func NewHealthHandler() *HealthHandler { return &HealthHandler{nowF: time.Now} }

func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": h.nowF().UTC(),
	})
}
