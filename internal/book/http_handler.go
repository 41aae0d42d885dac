package book

import (
	"net/http"
	"strconv"
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Invalid input", apperr.FieldError{
			Field:   "page",
			Message: "page must be a positive integer",
		})
	}
	return page, nil
}

// List handles GET /api/books
// @Summary List books
// @Description Paginated catalog with optional title/author search, genre filter and sort
// @Tags books
// @Produce json
// @Param search query string false "Substring of title or author"
// @Param genre query string false "Exact genre"
// @Param sortBy query string false "year or rating"
// @Param page query int false "1-based page number"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := parsePage(query.Get("page"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	result, err := h.service.List(r.Context(), ListInput{
		Search: query.Get("search"),
		Genre:  query.Get("genre"),
		SortBy: query.Get("sortBy"),
		Page:   page,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, result, map[string]any{
		"page_size": h.service.PageSize(),
	})
}

// Get handles GET /api/books/{id}
// @Summary Get book detail
// @Description Book with its reviews, newest first
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, detail, nil)
}

// Create handles POST /api/books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateInput true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), httpx.UserIDFrom(r), req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// Update handles PUT /api/books/{id}
// @Summary Update a book
// @Description Partial update; only the user who added the book may edit it
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Param request body UpdateInput true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"), req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /api/books/{id}
// @Summary Delete a book
// @Description Removes the book and all of its reviews
// @Tags books
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httpx.UserIDFrom(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
