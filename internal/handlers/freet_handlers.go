package handlers

import (
	"net/http"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
)

// HandleGetFreets lists all freets, or one author's when ?author is set.
func (s *Server) HandleGetFreets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := &actors.ListFreetsMsg{}
		if username := r.URL.Query().Get("author"); username != "" {
			user, err := s.DB.GetUserByUsername(r.Context(), username)
			if err != nil {
				api.WriteError(w, err)
				return
			}
			msg.AuthorID = &user.ID
		}

		freets, err := askAs[[]*api.FreetView](s, s.Engine.GetFreetActor(), msg)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, freets)
	}
}

func (s *Server) HandleGetFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freet, err := askAs[*api.FreetView](s, s.Engine.GetFreetActor(), &actors.GetFreetMsg{
			FreetID: pathParam("freetId").id(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, freet)
	}
}

func (s *Server) HandleCreateFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readContent(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		freet, err := askAs[*api.FreetView](s, s.Engine.GetFreetActor(), &actors.CreateFreetMsg{
			AuthorID: caller(r),
			Content:  content,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your freet was created successfully.",
			"freet":   freet,
		})
	}
}

func (s *Server) HandleUpdateFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readContent(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		freet, err := askAs[*api.FreetView](s, s.Engine.GetFreetActor(), &actors.UpdateFreetMsg{
			FreetID: pathParam("freetId").id(r),
			Content: content,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Your freet was updated successfully.",
			"freet":   freet,
		})
	}
}

func (s *Server) HandleDeleteFreet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := askAs[*actors.Deleted](s, s.Engine.GetFreetActor(), &actors.DeleteFreetMsg{
			FreetID: pathParam("freetId").id(r),
		}); err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Your freet was deleted successfully.",
		})
	}
}
