package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps shared by every table.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// timestamp matches the microsecond precision of TIMESTAMPTZ.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewBase stamps a fresh id with equal created and updated times.
func NewBase() Base {
	now := timestamp()
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the record as modified now.
func (b *Base) Touch() {
	b.UpdatedAt = timestamp()
}
