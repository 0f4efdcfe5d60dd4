package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *FleetHandler) ActiveTrip(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.ActiveTrip(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *FleetHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	var req domain.StartTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.StartTrip(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *FleetHandler) StopTrip(w http.ResponseWriter, r *http.Request) {
	var req domain.StopTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.StopTrip(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *FleetHandler) Trips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.Trips(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Trips []domain.Trip `json:"trips"`
	}{trips})
}

func (h *FleetHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Statistics(r.Context(), middleware.UserIDFromContext(r.Context())))
}
