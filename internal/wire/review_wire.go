package wire

import (
	"net/http"

	"book-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	authenticate func(http.Handler) http.Handler,
) {
	r.Route("/api/reviews", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// GET /api/reviews/book/{bookId} - Reviews of a book, newest first
		r.Get("/book/{bookId}", reviewHandler.GetBookReviews)

		// GET /api/reviews/book/{bookId}/stats - Average rating and count
		r.Get("/book/{bookId}/stats", reviewHandler.GetBookReviewStats)

		r.Get("/{id}", reviewHandler.GetReviewByID)

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", reviewHandler.CreateReview)

			// GET /api/reviews/me - The caller's own reviews
			r.Get("/me", reviewHandler.GetUserReviews)

			// PUT and DELETE are owner only
			r.Put("/{id}", reviewHandler.UpdateReview)
			r.Delete("/{id}", reviewHandler.DeleteReview)
		})
	})
}
