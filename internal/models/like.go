package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is an author's endorsement of a freet or a comment. At most one per (author, reference).
type Like struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"authorId"`
	Reference Reference `json:"reference"`
	DateLiked time.Time `json:"dateLiked"`
}
