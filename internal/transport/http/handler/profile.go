package handler

import (
	"net/http"

	"github.com/driversense-api/internal/application/user"
	"github.com/driversense-api/internal/transport/http/middleware"
)

// ProfileHandler serves the signed-in driver's own profile.
type ProfileHandler struct {
	svc user.Service
}

func NewProfileHandler(svc user.Service) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.Update(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
