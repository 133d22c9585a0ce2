package handlers

import (
	"net/http"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
)


// HandleGetLikes lists likes, filtered by ?user or ?referenceId when given.
func (s *Server) HandleGetLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := &actors.ListLikesMsg{}
		query := r.URL.Query()
		switch {
		case query.Get("user") != "":
			user, err := s.DB.GetUserByUsername(r.Context(), query.Get("user"))
			if err != nil {
				api.WriteError(w, err)
				return
			}
			msg.AuthorID = &user.ID
		case query.Get("referenceId") != "":
			id := queryParam("referenceId").id(r)
			msg.ReferenceID = &id
		}

		likes, err := askAs[[]*api.LikeView](s, s.Engine.GetLikeActor(), msg)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, likes)
	}
}

func (s *Server) HandleCountLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := askAs[int64](s, s.Engine.GetLikeActor(), &actors.CountLikesMsg{
			ReferenceID: queryParam("referenceId").id(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, api.CountResponse{Count: count})
	}
}

// HandleGetLikers returns the users who liked ?referenceId.
func (s *Server) HandleGetLikers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := askAs[[]*api.UserView](s, s.Engine.GetLikeActor(), &actors.GetLikersMsg{
			ReferenceID: queryParam("referenceId").id(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, users)
	}
}

func (s *Server) HandleCreateLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		like, err := askAs[*api.LikeView](s, s.Engine.GetLikeActor(), &actors.CreateLikeMsg{
			AuthorID:    caller(r),
			ReferenceID: bodyField("referenceId").id(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "You liked this successfully.",
			"like":    like,
		})
	}
}

// HandleDeleteLike removes the caller's like on the item in the path.
func (s *Server) HandleDeleteLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := askAs[*actors.Deleted](s, s.Engine.GetLikeActor(), &actors.DeleteLikeMsg{
			AuthorID:    caller(r),
			ReferenceID: pathParam("referenceId").id(r),
		}); err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Your like was removed successfully.",
		})
	}
}
