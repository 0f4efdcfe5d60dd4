package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
)

func (h *DriverHandler) Panic(w http.ResponseWriter, r *http.Request) {
	var req domain.PanicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Panic(r.Context(), middleware.UserIDFromContext(r.Context()), req))
}
