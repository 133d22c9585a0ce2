package models

import (
	"time"

	"github.com/google/uuid"
)

// Freet is a short root post. It can be commented on and liked but never points anywhere itself.
type Freet struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"authorId"`
	Content      string    `json:"content"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
}
