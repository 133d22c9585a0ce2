package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ReferenceKind names the collection a Reference points into.
type ReferenceKind string

const (
	FreetReference   ReferenceKind = "freet"
	CommentReference ReferenceKind = "comment"
)

// Reference is the target of a comment or a like: either a freet or another comment.
// Likes are never valid targets.
type Reference struct {
	Kind ReferenceKind
	ID   uuid.UUID
}

func FreetRef(id uuid.UUID) Reference {
	return Reference{Kind: FreetReference, ID: id}
}

func CommentRef(id uuid.UUID) Reference {
	return Reference{Kind: CommentReference, ID: id}
}

// ReferenceFromFlag rebuilds a Reference from its persisted (referenceId, isComment) pair.
func ReferenceFromFlag(id uuid.UUID, isComment bool) Reference {
	if isComment {
		return CommentRef(id)
	}
	return FreetRef(id)
}

// IsComment reports the value persisted as the isComment flag.
func (r Reference) IsComment() bool {
	return r.Kind == CommentReference
}

// Other returns the same id tagged with the opposite kind.
func (r Reference) Other() Reference {
	if r.IsComment() {
		return FreetRef(r.ID)
	}
	return CommentRef(r.ID)
}

func (r Reference) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}
