package handlers

import (
	"net/http"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
)

// HandleGetComments lists all comments, or the comments on ?referenceId.
func (s *Server) HandleGetComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := &actors.GetCommentsMsg{}
		if r.URL.Query().Get("referenceId") != "" {
			id := queryParam("referenceId").id(r)
			msg.ReferenceID = &id
		}

		comments, err := askAs[[]*api.CommentView](s, s.Engine.GetCommentActor(), msg)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, comments)
	}
}

func (s *Server) HandleCountComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := askAs[int64](s, s.Engine.GetCommentActor(), &actors.CountCommentsMsg{
			ReferenceID: queryParam("referenceId").id(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, api.CountResponse{Count: count})
	}
}

// HandleCreateComment attaches a comment to the freet or comment in the path.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readContent(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		comment, err := askAs[*api.CommentView](s, s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			AuthorID:    caller(r),
			ReferenceID: pathParam("referenceId").id(r),
			Content:     content,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your comment was created successfully.",
			"comment": comment,
		})
	}
}

func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID := pathParam("commentId").id(r)
		if _, err := askAs[*actors.Deleted](s, s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{CommentID: commentID}); err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Your comment was deleted successfully.",
		})
	}
}

