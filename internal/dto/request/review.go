package request

import "strings"

type CreateReviewRequest struct {
	BookID     string `json:"bookId" validate:"required,uuid"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required,max=2000,nonul"`
}

func (r *CreateReviewRequest) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}

type UpdateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required,max=2000,nonul"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}
