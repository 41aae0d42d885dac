package user

import (
	"errors"
	"net/http"

	"bookreview/internal/apperr"
	"bookreview/internal/httpx"
	"bookreview/internal/session"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Me handles GET /api/auth/me
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/auth/me [get]
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := session.UserIDFrom(r.Context())
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", nil)
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", nil)
			return
		}
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, u.Public(), nil)
}
