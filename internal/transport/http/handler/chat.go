package handler

import (
	"net/http"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *DriverHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Conversations []domain.Conversation `json:"conversations"`
	}{h.svc.Conversations(r.Context(), middleware.UserIDFromContext(r.Context()))})
}

func (h *DriverHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs := h.svc.Messages(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, struct {
		Messages []domain.ChatMessage `json:"messages"`
	}{msgs})
}

func (h *DriverHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.svc.SendMessage(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
