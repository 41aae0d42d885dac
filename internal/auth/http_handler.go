package auth

import (
	"net/http"

	"bookreview/internal/httpx"
	"bookreview/internal/session"
	"bookreview/internal/user"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Signup handles POST /api/auth/signup
// @Summary Register a new user
// @Description Create an account and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body user.CreateInput true "Signup request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/signup [post]
func (h *HTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req user.CreateInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	res, err := h.service.Signup(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, res)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with email and password and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, res, nil)
}

// Logout handles POST /api/auth/logout
// @Summary User logout
// @Description Revoke the current session token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 204 "No Content"
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if err := h.service.Logout(r.Context(), sess); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
