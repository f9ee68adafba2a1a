package adaptor

import (
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewBookHandler(service usecase.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		log:     log.With(zap.String("handler", "book")),
	}
}

// GetBooks handles GET /api/books
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBooks(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get books")
		return
	}

	utils.ResponseSuccess(w, "Books retrieved successfully", books)
}

// GetBookByID handles GET /api/books/{id}
func (h *BookHandler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetBookByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get book")
		return
	}

	utils.ResponseSuccess(w, "Book retrieved successfully", book)
}

// CreateBook handles POST /api/books (protected)
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req request.BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.service.CreateBook(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create book")
		return
	}

	utils.ResponseCreated(w, "Book created successfully", book)
}

// UpdateBook handles PUT /api/books/{id} (protected)
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req request.BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.service.UpdateBook(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update book")
		return
	}

	utils.ResponseSuccess(w, "Book updated successfully", book)
}

// DeleteBook handles DELETE /api/books/{id} (protected)
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.DeleteBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete book")
		return
	}

	utils.ResponseSuccess(w, "Book deleted successfully", book)
}
