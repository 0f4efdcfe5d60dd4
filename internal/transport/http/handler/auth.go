package handler

import (
	"net/http"

	"github.com/driversense-api/internal/application/auth"
	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/pkg/validate"
	"github.com/driversense-api/internal/transport/http/middleware"
)

// AuthHandler handles login, 2FA, token refresh, logout, consent and
// password reset.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthEnvelope(res))
}

func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyTwoFactorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.VerifyTwoFactor(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthEnvelope(res))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context(), middleware.UserIDFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) AcceptConsent(w http.ResponseWriter, r *http.Request) {
	var req auth.ConsentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}
	if err := h.svc.AcceptConsent(r.Context(), middleware.UserIDFromContext(r.Context()), req.ConsentVersion); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: h.svc.ForgotPassword(r.Context(), req.Email)})
}

// toAuthEnvelope picks the profile shape per status: the reduced summary while
// consent is pending, the full profile otherwise.
func toAuthEnvelope(res *auth.LoginResult) AuthEnvelope {
	env := AuthEnvelope{
		Status:       res.Status,
		SessionToken: res.SessionToken,
		Message:      res.Message,
	}
	if res.Tokens != nil {
		env.AccessToken = res.Tokens.AccessToken
		env.RefreshToken = res.Tokens.RefreshToken
	}
	if res.User != nil {
		if res.Status == domain.StatusRequiresConsent {
			env.User = res.User.Summary()
		} else {
			env.User = res.User.Profile()
		}
	}
	return env
}
