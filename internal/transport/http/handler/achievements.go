package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
)

func (h *DriverHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Achievements []domain.Achievement `json:"achievements"`
	}{h.svc.Achievements(r.Context(), middleware.UserIDFromContext(r.Context()))})
}

func (h *DriverHandler) Streaks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Streaks(r.Context(), middleware.UserIDFromContext(r.Context())))
}
