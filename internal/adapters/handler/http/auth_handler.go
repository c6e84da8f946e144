package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}

	if err := h.service.Register(r.Context(), input); err != nil {
		if errors.Is(err, domain.ErrNotificationFailed) {
			writeDetail(w, http.StatusInternalServerError, "failed to send OTP")
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "OTP sent to your email")
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.VerifyPhone(r.Context(), req.Phone, req.Otp); err != nil {
		if errors.Is(err, domain.ErrInvalidOtp) {
			writeDetail(w, http.StatusBadRequest, "invalid OTP")
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "phone number verified")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uid, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeDetail(w, http.StatusUnauthorized, "incorrect password")
			return
		}
		if errors.Is(err, domain.ErrNotVerified) {
			writeDetail(w, http.StatusForbidden, "phone number not verified")
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeDetail(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}

		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Message: "login successful", UID: uid})
}
