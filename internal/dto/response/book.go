package response

import (
	"time"

	"book-review/internal/data/entity"
)

type BookResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func BookToResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:          book.ID.String(),
		Title:       book.Title,
		Author:      book.Author,
		Genre:       book.Genre,
		Description: book.Description,
		Image:       book.Image,
		Price:       book.Price,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

func BooksToResponse(books []*entity.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, book := range books {
		resp[i] = BookToResponse(book)
	}
	return resp
}
