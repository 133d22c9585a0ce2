package actors

import (
	"log/slog"
	"time"

	"fritter/internal/models"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for FreetActor
type (
	CreateFreetMsg struct {
		AuthorID uuid.UUID
		Content  string
	}

	GetFreetMsg struct {
		FreetID uuid.UUID
	}

	// ListFreetsMsg lists every freet, or only AuthorID's when set.
	ListFreetsMsg struct {
		AuthorID *uuid.UUID
	}

	UpdateFreetMsg struct {
		FreetID uuid.UUID
		Content string
	}

	DeleteFreetMsg struct {
		FreetID uuid.UUID
	}
)

// FreetActor owns freet writes and builds freet views.
type FreetActor struct {
	Deps
}

func NewFreetActor(deps Deps) actor.Actor {
	return &FreetActor{Deps: deps}
}

func (a *FreetActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Debug("FreetActor started", "pid", context.Self().String())

	case *CreateFreetMsg:
		a.handleCreate(context, msg)

	case *GetFreetMsg:
		a.handleGet(context, msg)

	case *ListFreetsMsg:
		a.handleList(context, msg)

	case *UpdateFreetMsg:
		a.handleUpdate(context, msg)

	case *DeleteFreetMsg:
		a.handleDelete(context, msg)

	case *GetCountsMsg:
		ctx, cancel := storeContext()
		defer cancel()
		freets, err := a.DB.GetAllFreets(ctx)
		if err != nil {
			respondError(context, "count freets", err)
			return
		}
		context.Respond(len(freets))
	}
}

func (a *FreetActor) handleCreate(context actor.Context, msg *CreateFreetMsg) {
	defer a.observe("create_freet", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	now := time.Now()
	freet := &models.Freet{
		ID:           uuid.New(),
		AuthorID:     msg.AuthorID,
		Content:      msg.Content,
		DateCreated:  now,
		DateModified: now,
	}
	if err := a.DB.CreateFreet(ctx, freet); err != nil {
		respondError(context, "create freet", err)
		return
	}

	view, err := a.Resolver.FreetView(ctx, freet)
	if err != nil {
		respondError(context, "create freet", err)
		return
	}
	a.Hub.Publish("freet.created", view)
	context.Respond(view)
}

func (a *FreetActor) handleGet(context actor.Context, msg *GetFreetMsg) {
	ctx, cancel := storeContext()
	defer cancel()

	freet, err := a.DB.GetFreet(ctx, msg.FreetID)
	if err != nil {
		respondError(context, "get freet", err)
		return
	}
	view, err := a.Resolver.FreetView(ctx, freet)
	if err != nil {
		respondError(context, "get freet", err)
		return
	}
	context.Respond(view)
}

func (a *FreetActor) handleList(context actor.Context, msg *ListFreetsMsg) {
	defer a.observe("list_freets", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	var (
		freets []*models.Freet
		err    error
	)
	if msg.AuthorID != nil {
		freets, err = a.DB.GetFreetsByAuthor(ctx, *msg.AuthorID)
	} else {
		freets, err = a.DB.GetAllFreets(ctx)
	}
	if err != nil {
		respondError(context, "list freets", err)
		return
	}

	out, err := views(ctx, freets, a.Resolver.FreetView)
	if err != nil {
		respondError(context, "list freets", err)
		return
	}
	context.Respond(out)
}

func (a *FreetActor) handleUpdate(context actor.Context, msg *UpdateFreetMsg) {
	defer a.observe("update_freet", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	freet, err := a.DB.UpdateFreet(ctx, msg.FreetID, msg.Content)
	if err != nil {
		respondError(context, "update freet", err)
		return
	}
	view, err := a.Resolver.FreetView(ctx, freet)
	if err != nil {
		respondError(context, "update freet", err)
		return
	}
	context.Respond(view)
}

func (a *FreetActor) handleDelete(context actor.Context, msg *DeleteFreetMsg) {
	defer a.observe("delete_freet", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	if err := a.DB.DeleteFreet(ctx, msg.FreetID); err != nil {
		respondError(context, "delete freet", err)
		return
	}
	context.Respond(&Deleted{ID: msg.FreetID})
}
