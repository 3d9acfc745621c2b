package handler

import (
	"aptiprep/internal/model"
	"aptiprep/internal/service"
	"aptiprep/internal/transport/rest/middleware"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
	log     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, log: log}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.authSvc.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "user registered", resp)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", resp)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, "user fetched", user)
}
