package dto

import (
	"time"

	"github.com/google/uuid"
)

// Content is a pointer so that a missing field can be told apart from an
// empty string.
type CreateNote struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

type UpdateNote struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
