package actors

import (
	"log/slog"
	"time"

	"fritter/internal/api"
	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Message types for LikeActor
type (
	CreateLikeMsg struct {
		AuthorID    uuid.UUID
		ReferenceID uuid.UUID
	}

	// ListLikesMsg filters by author or by reference; with neither set it lists all likes.
	ListLikesMsg struct {
		AuthorID    *uuid.UUID
		ReferenceID *uuid.UUID
	}

	CountLikesMsg struct {
		ReferenceID uuid.UUID
	}

	// GetLikersMsg returns the users who liked ReferenceID.
	GetLikersMsg struct {
		ReferenceID uuid.UUID
	}

	// DeleteLikeMsg removes AuthorID's like on ReferenceID.
	DeleteLikeMsg struct {
		AuthorID    uuid.UUID
		ReferenceID uuid.UUID
	}
)

type LikeActor struct {
	Deps
}

func NewLikeActor(deps Deps) actor.Actor {
	return &LikeActor{Deps: deps}
}

func (a *LikeActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Debug("LikeActor started", "pid", context.Self().String())

	case *CreateLikeMsg:
		a.handleCreateLike(context, msg)

	case *ListLikesMsg:
		a.handleListLikes(context, msg)

	case *CountLikesMsg:
		ctx, cancel := storeContext()
		defer cancel()
		count, err := a.DB.CountLikesByReference(ctx, msg.ReferenceID)
		if err != nil {
			respondError(context, "count likes", err)
			return
		}
		context.Respond(count)

	case *GetLikersMsg:
		a.handleGetLikers(context, msg)

	case *DeleteLikeMsg:
		a.handleDeleteLike(context, msg)
	}
}

func (a *LikeActor) handleCreateLike(context actor.Context, msg *CreateLikeMsg) {
	defer a.observe("create_like", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	ref, err := a.Resolver.DetectKind(ctx, msg.ReferenceID)
	if err != nil {
		respondError(context, "create like", err)
		return
	}

	like := &models.Like{
		ID:        uuid.New(),
		AuthorID:  msg.AuthorID,
		Reference: ref,
		DateLiked: time.Now(),
	}
	if err := a.DB.CreateLike(ctx, like); err != nil {
		respondError(context, "create like", err)
		return
	}

	view, err := a.Resolver.LikeView(ctx, like)
	if err != nil {
		respondError(context, "create like", err)
		return
	}
	a.Hub.Publish("like.created", view)
	context.Respond(view)
}

func (a *LikeActor) handleListLikes(context actor.Context, msg *ListLikesMsg) {
	defer a.observe("list_likes", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	var (
		likes []*models.Like
		err   error
	)
	switch {
	case msg.AuthorID != nil:
		likes, err = a.DB.GetLikesByAuthor(ctx, *msg.AuthorID)
	case msg.ReferenceID != nil:
		likes, err = a.DB.GetLikesByReference(ctx, *msg.ReferenceID)
	default:
		likes, err = a.DB.GetAllLikes(ctx)
	}
	if err != nil {
		respondError(context, "list likes", err)
		return
	}

	out, err := views(ctx, likes, a.Resolver.LikeView)
	if err != nil {
		respondError(context, "list likes", err)
		return
	}
	context.Respond(out)
}

func (a *LikeActor) handleGetLikers(context actor.Context, msg *GetLikersMsg) {
	ctx, cancel := storeContext()
	defer cancel()

	likes, err := a.DB.GetLikesByReference(ctx, msg.ReferenceID)
	if err != nil {
		respondError(context, "list likers", err)
		return
	}

	users := make([]*api.UserView, 0, len(likes))
	for _, authorID := range lo.Uniq(lo.Map(likes, func(l *models.Like, _ int) uuid.UUID { return l.AuthorID })) {
		user, err := a.DB.GetUser(ctx, authorID)
		if utils.IsNotFound(err) {
			continue
		}
		if err != nil {
			respondError(context, "list likers", err)
			return
		}
		users = append(users, a.Resolver.UserView(user))
	}
	context.Respond(users)
}

func (a *LikeActor) handleDeleteLike(context actor.Context, msg *DeleteLikeMsg) {
	defer a.observe("delete_like", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	like, err := a.DB.GetLikeByAuthorAndReference(ctx, msg.AuthorID, msg.ReferenceID)
	if err != nil {
		respondError(context, "delete like", err)
		return
	}
	if err := a.DB.DeleteLike(ctx, like.ID); err != nil {
		respondError(context, "delete like", err)
		return
	}
	context.Respond(&Deleted{ID: like.ID})
}
