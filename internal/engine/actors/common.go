package actors

import (
	stdctx "context"
	"log/slog"
	"time"

	"fritter/internal/database"
	"fritter/internal/resolver"
	"fritter/internal/utils"
	"fritter/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// storeTimeout bounds each database round trip made while handling a message.
const storeTimeout = 5 * time.Second

// Deps are the collaborators every domain actor needs.
type Deps struct {
	DB       database.DBAdapter
	Resolver *resolver.Resolver
	Hub      *websocket.Hub
	Metrics  *utils.MetricsCollector
}

// Deleted is the reply to a successful delete.
type Deleted struct {
	ID uuid.UUID
}

// GetCountsMsg asks an actor for the size of its collection.
type GetCountsMsg struct{}

func storeContext() (stdctx.Context, stdctx.CancelFunc) {
	return stdctx.WithTimeout(stdctx.Background(), storeTimeout)
}

// respondError replies with err as an *utils.AppError so callers only ever see
// application errors from the engine.
func respondError(context actor.Context, op string, err error) {
	if appErr, ok := utils.AsAppError(err); ok {
		context.Respond(appErr)
		return
	}
	slog.Error("engine operation failed", "operation", op, "error", err)
	context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to "+op, err))
}

func (d Deps) observe(op string, start time.Time) {
	if d.Metrics != nil {
		d.Metrics.AddOperationLatency(op, time.Since(start))
	}
}

// views converts a slice of models with build, stopping at the first error.
func views[M any, V any](ctx stdctx.Context, items []*M, build func(stdctx.Context, *M) (*V, error)) ([]*V, error) {
	out := make([]*V, 0, len(items))
	for _, item := range items {
		v, err := build(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

