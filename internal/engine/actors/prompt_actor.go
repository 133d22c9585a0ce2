package actors

import (
	"log/slog"
	"time"

	"fritter/internal/models"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for PromptActor
type (
	CreatePromptResponseMsg struct {
		AuthorID uuid.UUID
		Content  string
	}

	ListPromptResponsesMsg struct {
		AuthorID *uuid.UUID
	}

	UpdatePromptResponseMsg struct {
		ResponseID uuid.UUID
		Content    string
	}

	DeletePromptResponseMsg struct {
		ResponseID uuid.UUID
	}
)

// PromptActor handles answers to the standing prompt. Each author holds at most
// one response; the store rejects a second one even under concurrent creation.
type PromptActor struct {
	Deps
}

func NewPromptActor(deps Deps) actor.Actor {
	return &PromptActor{Deps: deps}
}

func (a *PromptActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Debug("PromptActor started", "pid", context.Self().String())
	case *CreatePromptResponseMsg:
		a.handleCreate(context, msg)
	case *ListPromptResponsesMsg:
		a.handleList(context, msg)
	case *UpdatePromptResponseMsg:
		a.handleUpdate(context, msg)
	case *DeletePromptResponseMsg:
		a.handleDelete(context, msg)
	}
}

func (a *PromptActor) handleCreate(context actor.Context, msg *CreatePromptResponseMsg) {
	defer a.observe("create_prompt_response", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	now := time.Now()
	response := &models.PromptResponse{
		ID:            uuid.New(),
		AuthorID:      msg.AuthorID,
		Content:       msg.Content,
		DateResponded: now,
		DateModified:  now,
	}
	if err := a.DB.CreatePromptResponse(ctx, response); err != nil {
		respondError(context, "create prompt response", err)
		return
	}

	view, err := a.Resolver.PromptResponseView(ctx, response)
	if err != nil {
		respondError(context, "create prompt response", err)
		return
	}
	a.Hub.Publish("prompt.created", view)
	context.Respond(view)
}

func (a *PromptActor) handleList(context actor.Context, msg *ListPromptResponsesMsg) {
	ctx, cancel := storeContext()
	defer cancel()

	var (
		responses []*models.PromptResponse
		err       error
	)
	if msg.AuthorID != nil {
		responses, err = a.DB.GetPromptResponsesByAuthor(ctx, *msg.AuthorID)
	} else {
		responses, err = a.DB.GetAllPromptResponses(ctx)
	}
	if err != nil {
		respondError(context, "list prompt responses", err)
		return
	}

	out, err := views(ctx, responses, a.Resolver.PromptResponseView)
	if err != nil {
		respondError(context, "list prompt responses", err)
		return
	}
	context.Respond(out)
}

func (a *PromptActor) handleUpdate(context actor.Context, msg *UpdatePromptResponseMsg) {
	defer a.observe("update_prompt_response", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	response, err := a.DB.UpdatePromptResponse(ctx, msg.ResponseID, msg.Content)
	if err != nil {
		respondError(context, "update prompt response", err)
		return
	}
	view, err := a.Resolver.PromptResponseView(ctx, response)
	if err != nil {
		respondError(context, "update prompt response", err)
		return
	}
	context.Respond(view)
}

func (a *PromptActor) handleDelete(context actor.Context, msg *DeletePromptResponseMsg) {
	defer a.observe("delete_prompt_response", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	if err := a.DB.DeletePromptResponse(ctx, msg.ResponseID); err != nil {
		respondError(context, "delete prompt response", err)
		return
	}
	context.Respond(&Deleted{ID: msg.ResponseID})
}
