package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
)

func (h *DriverHandler) NotificationSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.NotificationSettings(r.Context(), middleware.UserIDFromContext(r.Context())))
}

func (h *DriverHandler) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterPushTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.RegisterPushToken(r.Context(), middleware.UserIDFromContext(r.Context()), req); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
