package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptResponse is an author's single answer to the standing prompt.
type PromptResponse struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"authorId"`
	Content       string    `json:"content"`
	DateResponded time.Time `json:"dateResponded"`
	DateModified  time.Time `json:"dateModified"`
}
