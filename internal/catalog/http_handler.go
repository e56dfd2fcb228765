package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookmirror/internal/httpx"
)

type HTTPHandler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHTTPHandler(svc *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logger}
}

// List handles GET /v1/books
// @Summary List mirrored books
// @Tags books
// @Produce json
// @Param language query string false "Filter by language name"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	books, total, err := h.svc.List(r.Context(), ListQuery{
		Language: query.Get("language"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		h.logger.Error("list books", "error", err, "request_id", httpx.RequestIDFrom(r))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, r, books, map[string]interface{}{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Get handles GET /v1/books/{id}
// @Summary Get a mirrored book
// @Tags books
// @Produce json
// @Param id path string true "Master book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, book, nil)
}

// Pages handles GET /v1/books/{id}/pages
// @Summary List the pages of a mirrored book
// @Tags books
// @Produce json
// @Param id path string true "Master book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id}/pages [get]
func (h *HTTPHandler) Pages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.Pages(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, pages, map[string]interface{}{"total": len(pages)})
}

func (h *HTTPHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	h.logger.Error("lookup book", "error", err, "request_id", httpx.RequestIDFrom(r))
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
