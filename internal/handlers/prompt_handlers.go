package handlers

import (
	"net/http"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
)

func (s *Server) HandleGetPromptResponses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := &actors.ListPromptResponsesMsg{}
		if username := r.URL.Query().Get("user"); username != "" {
			user, err := s.DB.GetUserByUsername(r.Context(), username)
			if err != nil {
				api.WriteError(w, err)
				return
			}
			msg.AuthorID = &user.ID
		}

		responses, err := askAs[[]*api.PromptResponseView](s, s.Engine.GetPromptActor(), msg)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, responses)
	}
}

func (s *Server) HandleCreatePromptResponse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readContent(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		response, err := askAs[*api.PromptResponseView](s, s.Engine.GetPromptActor(), &actors.CreatePromptResponseMsg{
			AuthorID: caller(r),
			Content:  content,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Your response was created successfully.",
			"response": response,
		})
	}
}

func (s *Server) HandleUpdatePromptResponse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readContent(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		response, err := askAs[*api.PromptResponseView](s, s.Engine.GetPromptActor(), &actors.UpdatePromptResponseMsg{
			ResponseID: pathParam("responseId").id(r),
			Content:    content,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Your response was updated successfully.",
			"response": response,
		})
	}
}

func (s *Server) HandleDeletePromptResponse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := askAs[*actors.Deleted](s, s.Engine.GetPromptActor(), &actors.DeletePromptResponseMsg{
			ResponseID: pathParam("responseId").id(r),
		}); err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Your response was deleted successfully.",
		})
	}
}
