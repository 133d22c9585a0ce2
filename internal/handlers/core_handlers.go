package handlers

import (
	"net/http"
	"time"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
)

// HandleHealth reports liveness along with collection sizes from the actors.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freetCount, err := askAs[int](s, s.Engine.GetFreetActor(), &actors.GetCountsMsg{})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		commentCount, err := askAs[int](s, s.Engine.GetCommentActor(), &actors.GetCountsMsg{})
		if err != nil {
			api.WriteError(w, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":        "healthy",
			"freet_count":   freetCount,
			"comment_count": commentCount,
			"uptime":        s.Metrics.Uptime().Round(time.Second).String(),
			"server_time":   time.Now(),
		})
	}
}
