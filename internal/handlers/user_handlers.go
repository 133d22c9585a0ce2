package handlers

import (
	"net/http"

	"fritter/internal/api"
	"fritter/internal/engine/actors"
	"fritter/internal/utils"
)

// CredentialsRequest is the body of registration and login requests
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := peekJSON(r, &req); err != nil {
			api.WriteError(w, err)
			return
		}

		user, err := askAs[*api.UserView](s, s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Your account was created successfully.",
			"user":    user,
		})
	}
}

// HandleUserLogin exchanges credentials for a session token
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := peekJSON(r, &req); err != nil {
			api.WriteError(w, err)
			return
		}

		login, err := askAs[*api.LoginResponse](s, s.Engine.GetUserActor(), &actors.LoginMsg{
			Username: req.Username,
			Password: req.Password,
		})
		if utils.IsErrorCode(err, utils.ErrInvalidCredentials) {
			api.WriteJSON(w, http.StatusUnauthorized, &api.LoginResponse{
				Success: false,
				Error:   "Invalid username or password",
			})
			return
		}
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, login)
	}
}

func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := askAs[*api.UserView](s, s.Engine.GetUserActor(), &actors.GetUserByNameMsg{
			Username: pathParam("username")(r),
		})
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, user)
	}
}
