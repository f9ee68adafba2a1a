package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	BookID     uuid.UUID `db:"book_id"`
	UserID     uuid.UUID `db:"user_id"`
	Rating     int       `db:"rating"` // 1-5
	ReviewText string    `db:"review_text"`
}
