package actors

import (
	stdctx "context"
	"log/slog"
	"time"

	"fritter/internal/models"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for CommentActor
type (
	// CreateCommentMsg attaches a comment to ReferenceID, which may name a
	// freet or another comment; the kind is detected from storage.
	CreateCommentMsg struct {
		AuthorID    uuid.UUID
		ReferenceID uuid.UUID
		Content     string
	}

	GetCommentMsg struct {
		CommentID uuid.UUID
	}

	// GetCommentsMsg lists every comment, or only those on ReferenceID when set.
	GetCommentsMsg struct {
		ReferenceID *uuid.UUID
	}

	CountCommentsMsg struct {
		ReferenceID uuid.UUID
	}

	DeleteCommentMsg struct {
		CommentID uuid.UUID
	}
)

// CommentActor manages comment operations
type CommentActor struct {
	Deps
}

func NewCommentActor(deps Deps) actor.Actor {
	return &CommentActor{Deps: deps}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Debug("CommentActor started", "pid", context.Self().String())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *GetCommentMsg:
		a.handleGetComment(context, msg)

	case *GetCommentsMsg:
		a.handleGetComments(context, msg)

	case *CountCommentsMsg:
		ctx, cancel := storeContext()
		defer cancel()
		count, err := a.DB.CountCommentsByReference(ctx, msg.ReferenceID)
		if err != nil {
			respondError(context, "count comments", err)
			return
		}
		context.Respond(count)

	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)

	case *GetCountsMsg:
		ctx, cancel := storeContext()
		defer cancel()
		comments, err := a.DB.GetAllComments(ctx)
		if err != nil {
			respondError(context, "count comments", err)
			return
		}
		context.Respond(len(comments))
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	defer a.observe("create_comment", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	ref, err := a.Resolver.DetectKind(ctx, msg.ReferenceID)
	if err != nil {
		respondError(context, "create comment", err)
		return
	}

	comment := &models.Comment{
		ID:            uuid.New(),
		AuthorID:      msg.AuthorID,
		Reference:     ref,
		Content:       msg.Content,
		DateCommented: time.Now(),
	}
	if err := a.DB.CreateComment(ctx, comment); err != nil {
		respondError(context, "create comment", err)
		return
	}

	view, err := a.Resolver.CommentView(ctx, comment)
	if err != nil {
		respondError(context, "create comment", err)
		return
	}

	a.Hub.Publish("comment.created", view)
	if owner, ok := a.targetAuthor(ctx, ref); ok && owner != msg.AuthorID {
		a.Hub.Notify(owner, "comment.received", view)
	}
	context.Respond(view)
}

// targetAuthor returns who wrote the freet or comment ref points at.
func (a *CommentActor) targetAuthor(ctx stdctx.Context, ref models.Reference) (uuid.UUID, bool) {
	if ref.IsComment() {
		parent, err := a.DB.GetComment(ctx, ref.ID)
		if err != nil {
			return uuid.Nil, false
		}
		return parent.AuthorID, true
	}
	freet, err := a.DB.GetFreet(ctx, ref.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return freet.AuthorID, true
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	ctx, cancel := storeContext()
	defer cancel()

	comment, err := a.DB.GetComment(ctx, msg.CommentID)
	if err != nil {
		respondError(context, "get comment", err)
		return
	}
	view, err := a.Resolver.CommentView(ctx, comment)
	if err != nil {
		respondError(context, "get comment", err)
		return
	}
	context.Respond(view)
}

func (a *CommentActor) handleGetComments(context actor.Context, msg *GetCommentsMsg) {
	defer a.observe("list_comments", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	var (
		comments []*models.Comment
		err      error
	)
	if msg.ReferenceID != nil {
		comments, err = a.DB.GetCommentsByReference(ctx, *msg.ReferenceID)
	} else {
		comments, err = a.DB.GetAllComments(ctx)
	}
	if err != nil {
		respondError(context, "list comments", err)
		return
	}

	out, err := views(ctx, comments, a.Resolver.CommentView)
	if err != nil {
		respondError(context, "list comments", err)
		return
	}
	context.Respond(out)
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	defer a.observe("delete_comment", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	if err := a.DB.DeleteComment(ctx, msg.CommentID); err != nil {
		respondError(context, "delete comment", err)
		return
	}
	context.Respond(&Deleted{ID: msg.CommentID})
}
