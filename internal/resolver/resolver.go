// Package resolver turns stored references into nested client views.
package resolver

import (
	"context"
	"log/slog"

	"fritter/internal/api"
	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
)

const (
	DefaultMaxDepth = 32
	UnknownUser     = "[unknown]"
)

// Store is the read side the resolver needs.
type Store interface {
	GetFreet(ctx context.Context, id uuid.UUID) (*models.Freet, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Resolver builds views for freets, comments, likes and prompt responses,
// following comment references down to the freet they hang off.
type Resolver struct {
	store    Store
	maxDepth int
}

func New(store Store, maxDepth int) *Resolver {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{store: store, maxDepth: maxDepth}
}

func (rv *Resolver) MaxDepth() int {
	return rv.maxDepth
}

// Resolve looks up the target of ref. A target that no longer exists yields
// the missing marker rather than an error; store failures are returned.
func (rv *Resolver) Resolve(ctx context.Context, ref models.Reference) (api.ReferenceView, error) {
	return rv.resolve(ctx, ref, 1)
}

func (rv *Resolver) resolve(ctx context.Context, ref models.Reference, depth int) (api.ReferenceView, error) {
	missing := api.ReferenceView{ReferenceMissing: true}
	if depth > rv.maxDepth {
		slog.Warn("reference chain exceeds max depth", "reference", ref.String(), "max_depth", rv.maxDepth)
		return missing, nil
	}

	view, err := rv.lookup(ctx, ref, depth)
	if err == nil {
		return view, nil
	}
	if !utils.IsNotFound(err) {
		return api.ReferenceView{}, err
	}

	// The stored isComment flag may be stale; check the other collection.
	view, err = rv.lookup(ctx, ref.Other(), depth)
	if err == nil {
		slog.Warn("reference kind flag does not match stored target",
			"reference_id", ref.ID, "declared", ref.Kind, "actual", ref.Other().Kind)
		return view, nil
	}
	if !utils.IsNotFound(err) {
		return api.ReferenceView{}, err
	}
	return missing, nil
}

func (rv *Resolver) lookup(ctx context.Context, ref models.Reference, depth int) (api.ReferenceView, error) {
	switch ref.Kind {
	case models.CommentReference:
		comment, err := rv.store.GetComment(ctx, ref.ID)
		if err != nil {
			return api.ReferenceView{}, err
		}
		view, err := rv.commentView(ctx, comment, depth+1)
		if err != nil {
			return api.ReferenceView{}, err
		}
		return api.ReferenceView{ReferenceComment: view}, nil
	default:
		freet, err := rv.store.GetFreet(ctx, ref.ID)
		if err != nil {
			return api.ReferenceView{}, err
		}
		view, err := rv.FreetView(ctx, freet)
		if err != nil {
			return api.ReferenceView{}, err
		}
		return api.ReferenceView{ReferenceFreet: view}, nil
	}
}

// DetectKind reports which collection holds id. Only freets and comments can
// be referenced, so anything else (including like ids) is not found.
func (rv *Resolver) DetectKind(ctx context.Context, id uuid.UUID) (models.Reference, error) {
	if _, err := rv.store.GetComment(ctx, id); err == nil {
		return models.CommentRef(id), nil
	} else if !utils.IsNotFound(err) {
		return models.Reference{}, err
	}

	if _, err := rv.store.GetFreet(ctx, id); err == nil {
		return models.FreetRef(id), nil
	} else if !utils.IsNotFound(err) {
		return models.Reference{}, err
	}

	return models.Reference{}, utils.NewNotFoundError("referenceNotFound", "Reference with ID "+id.String()+" does not exist.")
}

// Username returns the author's username, or UnknownUser when the account is gone.
func (rv *Resolver) Username(ctx context.Context, id uuid.UUID) (string, error) {
	user, err := rv.store.GetUser(ctx, id)
	if utils.IsNotFound(err) {
		return UnknownUser, nil
	}
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func (rv *Resolver) FreetView(ctx context.Context, freet *models.Freet) (*api.FreetView, error) {
	author, err := rv.Username(ctx, freet.AuthorID)
	if err != nil {
		return nil, err
	}
	return &api.FreetView{
		ID:           freet.ID.String(),
		Author:       author,
		Content:      freet.Content,
		DateCreated:  api.FormatDate(freet.DateCreated),
		DateModified: api.FormatDate(freet.DateModified),
	}, nil
}

func (rv *Resolver) CommentView(ctx context.Context, comment *models.Comment) (*api.CommentView, error) {
	return rv.commentView(ctx, comment, 1)
}

func (rv *Resolver) commentView(ctx context.Context, comment *models.Comment, depth int) (*api.CommentView, error) {
	user, err := rv.Username(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}
	ref, err := rv.resolve(ctx, comment.Reference, depth)
	if err != nil {
		return nil, err
	}
	return &api.CommentView{
		ID:            comment.ID.String(),
		User:          user,
		Content:       comment.Content,
		DateCommented: api.FormatDate(comment.DateCommented),
		ReferenceID:   comment.Reference.ID.String(),
		IsComment:     comment.Reference.IsComment(),
		ReferenceView: ref,
	}, nil
}

func (rv *Resolver) LikeView(ctx context.Context, like *models.Like) (*api.LikeView, error) {
	user, err := rv.Username(ctx, like.AuthorID)
	if err != nil {
		return nil, err
	}
	ref, err := rv.Resolve(ctx, like.Reference)
	if err != nil {
		return nil, err
	}
	return &api.LikeView{
		ID:            like.ID.String(),
		User:          user,
		DateLiked:     api.FormatDate(like.DateLiked),
		ReferenceID:   like.Reference.ID.String(),
		IsComment:     like.Reference.IsComment(),
		ReferenceView: ref,
	}, nil
}

func (rv *Resolver) PromptResponseView(ctx context.Context, response *models.PromptResponse) (*api.PromptResponseView, error) {
	user, err := rv.Username(ctx, response.AuthorID)
	if err != nil {
		return nil, err
	}
	return &api.PromptResponseView{
		ID:            response.ID.String(),
		User:          user,
		Content:       response.Content,
		DateResponded: api.FormatDate(response.DateResponded),
		DateModified:  api.FormatDate(response.DateModified),
	}, nil
}

func (rv *Resolver) UserView(user *models.User) *api.UserView {
	return &api.UserView{
		ID:         user.ID.String(),
		Username:   user.Username,
		DateJoined: api.FormatDate(user.CreatedAt),
	}
}
