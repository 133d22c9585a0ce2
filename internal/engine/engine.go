package engine

import (
	"fritter/internal/engine/actors"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	freetActor   *actor.PID
	commentActor *actor.PID
	likeActor    *actor.PID
	promptActor  *actor.PID
	userActor    *actor.PID
}

// NewEngine spawns one actor per entity on system's root context.
func NewEngine(system *actor.ActorSystem, deps actors.Deps, tokens actors.TokenIssuer) *Engine {
	context := system.Root
	spawn := func(producer func() actor.Actor) *actor.PID {
		return context.Spawn(actor.PropsFromProducer(producer))
	}

	return &Engine{
		freetActor:   spawn(func() actor.Actor { return actors.NewFreetActor(deps) }),
		commentActor: spawn(func() actor.Actor { return actors.NewCommentActor(deps) }),
		likeActor:    spawn(func() actor.Actor { return actors.NewLikeActor(deps) }),
		promptActor:  spawn(func() actor.Actor { return actors.NewPromptActor(deps) }),
		userActor:    spawn(func() actor.Actor { return actors.NewUserActor(deps, tokens) }),
	}
}

// GetFreetActor returns the PID of the freet actor
func (e *Engine) GetFreetActor() *actor.PID {
	return e.freetActor
}

func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

func (e *Engine) GetLikeActor() *actor.PID {
	return e.likeActor
}

func (e *Engine) GetPromptActor() *actor.PID {
	return e.promptActor
}

func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}
