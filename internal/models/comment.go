package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is attached to a freet or to another comment.
type Comment struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"authorId"`
	Reference     Reference `json:"reference"`
	Content       string    `json:"content"`
	DateCommented time.Time `json:"dateCommented"`
}
