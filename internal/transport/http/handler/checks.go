package handler

import (
	"net/http"

	"github.com/driversense-api/internal/application/driver"
	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
)

// DriverHandler handles the checks, incidents, privacy zones, chat,
// achievements, emergency and notification endpoints.
type DriverHandler struct {
	svc driver.Service
}

func NewDriverHandler(svc driver.Service) *DriverHandler { return &DriverHandler{svc: svc} }

func (h *DriverHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Questions []domain.CheckQuestion `json:"questions"`
	}{h.svc.Questions(r.Context(), r.URL.Query().Get("type"))})
}

func (h *DriverHandler) StartCheck(w http.ResponseWriter, r *http.Request) {
	h.submitCheck(w, r, domain.CheckStart)
}

func (h *DriverHandler) EndCheck(w http.ResponseWriter, r *http.Request) {
	h.submitCheck(w, r, domain.CheckEnd)
}

func (h *DriverHandler) submitCheck(w http.ResponseWriter, r *http.Request, kind string) {
	writeJSON(w, http.StatusOK, h.svc.SubmitCheck(r.Context(), middleware.UserIDFromContext(r.Context()), kind))
}
