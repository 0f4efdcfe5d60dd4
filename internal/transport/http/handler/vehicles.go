package handler

import (
	"net/http"

	"github.com/driversense-api/internal/application/fleet"
	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// FleetHandler handles vehicle and trip endpoints.
type FleetHandler struct {
	svc fleet.Service
}

func NewFleetHandler(svc fleet.Service) *FleetHandler { return &FleetHandler{svc: svc} }

func (h *FleetHandler) AssignedVehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := h.svc.AssignedVehicles(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Vehicles []domain.Vehicle `json:"vehicles"`
	}{vs})
}

func (h *FleetHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Vehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
