package request

import "strings"

// BookRequest is the payload for both create and update; update replaces
// every field with what is sent.
type BookRequest struct {
	Title       string   `json:"title" validate:"required,max=255,nonul"`
	Author      string   `json:"author" validate:"required,max=255,nonul"`
	Genre       string   `json:"genre" validate:"required,max=100,nonul"`
	Description string   `json:"description" validate:"max=5000,nonul"`
	Image       string   `json:"image" validate:"max=2048,nonul"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Genre = strings.TrimSpace(r.Genre)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
}
