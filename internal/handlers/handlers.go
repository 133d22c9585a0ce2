package handlers

import (
	"time"

	"fritter/internal/database"
	"fritter/internal/engine"
	"fritter/internal/middleware"
	"fritter/internal/resolver"
	"fritter/internal/utils"
	"fritter/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine.
// Validation checks read DB directly; every write goes through an engine actor.
type Server struct {
	Context        *actor.RootContext
	Engine         *engine.Engine
	DB             database.DBAdapter
	Resolver       *resolver.Resolver
	Metrics        *utils.MetricsCollector
	Hub            *websocket.Hub
	Tokens         *middleware.TokenManager
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	engine *engine.Engine,
	db database.DBAdapter,
	resolver *resolver.Resolver,
	metrics *utils.MetricsCollector,
	hub *websocket.Hub,
	tokens *middleware.TokenManager,
) *Server {
	return &Server{
		Context:        system.Root,
		Engine:         engine,
		DB:             db,
		Resolver:       resolver,
		Metrics:        metrics,
		Hub:            hub,
		Tokens:         tokens,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
		AllowedOrigins: []string{"*"},
	}
}
