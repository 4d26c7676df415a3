package handler

import (
	"net/http"

	"github.com/kapee-shop/api/internal/application/otp"
	"github.com/kapee-shop/api/internal/domain"
)

// OTPHandler handles email verification code endpoints.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler { return &OTPHandler{svc: svc} }

func (h *OTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	issued, err := h.svc.Create(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, OTPEnvelope{
		Message:   "verification code sent",
		Email:     issued.Email,
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	u, err := h.svc.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *OTPHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	issued, err := h.svc.Resend(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, OTPEnvelope{
		Message:   "verification code sent",
		Email:     issued.Email,
		ExpiresAt: issued.ExpiresAt,
	})
}
