package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/driversense-api/internal/domain"
)

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// AuthEnvelope wraps login and 2FA responses. Fields are omitted per status.
type AuthEnvelope struct {
	Status       string `json:"status"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionToken string `json:"sessionToken,omitempty"`
	Message      string `json:"message,omitempty"`
	User         any    `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: kind, Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		return true
	}
	// An empty body decodes to the zero request and is validated downstream.
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return false
	}
	return true
}

var errorKinds = []struct {
	target error
	status int
	kind   string
}{
	{domain.ErrValidation, http.StatusBadRequest, "ValidationError"},
	{domain.ErrAuthentication, http.StatusUnauthorized, "AuthenticationError"},
	{domain.ErrInvalidSession, http.StatusUnauthorized, "InvalidSession"},
	{domain.ErrInvalidCode, http.StatusBadRequest, "InvalidCode"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "InvalidToken"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{domain.ErrConsentRequired, http.StatusForbidden, "ConsentRequired"},
	{domain.ErrNotFound, http.StatusNotFound, "NotFound"},
	{domain.ErrConflict, http.StatusConflict, "Conflict"},
}

// httpError maps a service error to its status and error kind. The message is
// the text the service wrapped around the sentinel.
func httpError(w http.ResponseWriter, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			writeError(w, k.status, k.kind, publicMessage(err, k.target))
			return
		}
	}
	slog.Error("unhandled error", "error", err)
	writeError(w, http.StatusInternalServerError, "InternalError", "internal server error")
}

func publicMessage(err, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" {
		msg = sentinel.Error()
	}
	return msg
}
