package handlers

import (
	"log/slog"
	"net/http"

	"fritter/internal/api"
	"fritter/internal/utils"
	"fritter/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/samber/lo"
)

func (s *Server) upgrader() *ws.Upgrader {
	return &ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(s.AllowedOrigins, "*") || lo.Contains(s.AllowedOrigins, origin)
		},
	}
}

// HandleWebSocket subscribes an authenticated client to the activity stream.
// Browsers cannot set headers on websocket requests, so the token comes from ?token.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			api.WriteError(w, utils.NewUnauthorizedError("missing authentication token"))
			return
		}

		claims, err := s.Tokens.ValidateToken(tokenString)
		if err != nil || claims.UserID == uuid.Nil {
			api.WriteError(w, utils.NewAppError(utils.ErrInvalidToken, "Invalid or expired token", err))
			return
		}

		conn, err := s.upgrader().Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written an HTTP error.
			slog.Warn("websocket upgrade failed", "user_id", claims.UserID, "error", err)
			return
		}

		client := &websocket.Client{
			Hub:    s.Hub,
			UserID: claims.UserID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		if !s.Hub.Attach(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
