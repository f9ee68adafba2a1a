package response

import (
	"time"

	"book-review/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"_id"`
	BookID     string    `json:"bookId"`
	BookTitle  string    `json:"bookTitle,omitempty"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type BookReviewStats struct {
	BookID        string  `json:"bookId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, userName, bookTitle string) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		BookID:     review.BookID.String(),
		BookTitle:  bookTitle,
		UserID:     review.UserID.String(),
		UserName:   userName,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}
