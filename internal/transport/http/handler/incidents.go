package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
)

func (h *DriverHandler) IncidentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Types []domain.IncidentType `json:"types"`
	}{h.svc.IncidentTypes(r.Context())})
}

func (h *DriverHandler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportIncidentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inc, err := h.svc.ReportIncident(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inc)
}

func (h *DriverHandler) PrivacyZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Zones []domain.PrivacyZone `json:"zones"`
	}{h.svc.PrivacyZones(r.Context(), middleware.UserIDFromContext(r.Context()))})
}

func (h *DriverHandler) CreatePrivacyZone(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePrivacyZoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	z, err := h.svc.CreatePrivacyZone(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, z)
}
