package wire

import (
	"net/http"

	"book-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBook(
	r chi.Router,
	bookHandler *adaptor.BookHandler,
	authenticate func(http.Handler) http.Handler,
) {
	r.Route("/api/books", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", bookHandler.GetBooks)
		r.Get("/{id}", bookHandler.GetBookByID)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", bookHandler.CreateBook)
			r.Put("/{id}", bookHandler.UpdateBook)
			r.Delete("/{id}", bookHandler.DeleteBook)
		})
	})
}
