package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"fritter/internal/middleware"
	"fritter/internal/utils"

	"github.com/google/uuid"
)

const maxContentLength = 140

// isUserLoggedIn rejects anonymous requests.
func (s *Server) isUserLoggedIn() middleware.Check {
	return func(r *http.Request) error {
		if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
			return utils.NewForbiddenError("You must be logged in.")
		}
		return nil
	}
}

// isValidContent checks the body's content field; noun names the entity in messages.
func (s *Server) isValidContent(noun string) middleware.Check {
	return func(r *http.Request) error {
		content, err := readContent(r)
		if err != nil {
			return err
		}
		if strings.TrimSpace(content) == "" {
			return utils.NewInvalidInputError(fmt.Sprintf("%s content must be at least one character long.", noun))
		}
		if utf8.RuneCountInString(content) > maxContentLength {
			return utils.NewAppError(utils.ErrPayloadTooLarge,
				fmt.Sprintf("%s content must be no more than %d characters.", noun, maxContentLength), nil)
		}
		return nil
	}
}

func requireQuery(name string) middleware.Check {
	return func(r *http.Request) error {
		if r.URL.Query().Get(name) == "" {
			return utils.NewInvalidInputError(fmt.Sprintf("Query parameter %s is required.", name))
		}
		return nil
	}
}

func referenceNotFound(raw string) error {
	return utils.NewNotFoundError("referenceNotFound", fmt.Sprintf("Freet or comment with ID %s does not exist.", raw))
}

// isReferenceExists accepts ids of existing freets and comments only.
func (s *Server) isReferenceExists(src source) middleware.Check {
	return func(r *http.Request) error {
		raw := src(r)
		id, err := uuid.Parse(raw)
		if err != nil {
			return referenceNotFound(raw)
		}
		if _, err := s.Resolver.DetectKind(r.Context(), id); err != nil {
			if utils.IsNotFound(err) {
				return referenceNotFound(raw)
			}
			return err
		}
		return nil
	}
}

// isUserExists checks that the username in src names an account.
func (s *Server) isUserExists(src source) middleware.Check {
	return func(r *http.Request) error {
		username := src(r)
		if _, err := s.DB.GetUserByUsername(r.Context(), username); err != nil {
			if utils.IsNotFound(err) {
				return utils.NewNotFoundError("", fmt.Sprintf("User with username %s does not exist.", username))
			}
			return err
		}
		return nil
	}
}

func (s *Server) isFreetExists(src source) middleware.Check {
	return func(r *http.Request) error {
		raw := src(r)
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.NewNotFoundError("freetNotFound", fmt.Sprintf("Freet with freet ID %s does not exist.", raw))
		}
		_, err = s.DB.GetFreet(r.Context(), id)
		return err
	}
}

func (s *Server) isFreetModifier(src source) middleware.Check {
	return func(r *http.Request) error {
		freet, err := s.DB.GetFreet(r.Context(), src.id(r))
		if err != nil {
			return err
		}
		if freet.AuthorID != caller(r) {
			return utils.NewForbiddenError("Cannot modify other users' freets.")
		}
		return nil
	}
}

func (s *Server) isCommentExists(src source) middleware.Check {
	return func(r *http.Request) error {
		raw := src(r)
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.NewNotFoundError("commentNotFound", fmt.Sprintf("Comment with comment ID %s does not exist.", raw))
		}
		_, err = s.DB.GetComment(r.Context(), id)
		return err
	}
}

func (s *Server) isCommentModifier(src source) middleware.Check {
	return func(r *http.Request) error {
		comment, err := s.DB.GetComment(r.Context(), src.id(r))
		if err != nil {
			return err
		}
		if comment.AuthorID != caller(r) {
			return utils.NewForbiddenError("Cannot modify other users' comments.")
		}
		return nil
	}
}

// isLikeExists requires at least one like on the referenced item.
func (s *Server) isLikeExists(src source) middleware.Check {
	return func(r *http.Request) error {
		id := src.id(r)
		count, err := s.DB.CountLikesByReference(r.Context(), id)
		if err != nil {
			return err
		}
		if count == 0 {
			return utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Freet with freet ID %s has not been liked, yet.", id))
		}
		return nil
	}
}

// isLikeModifier requires the caller to hold a like on the referenced item.
func (s *Server) isLikeModifier(src source) middleware.Check {
	return func(r *http.Request) error {
		_, err := s.DB.GetLikeByAuthorAndReference(r.Context(), caller(r), src.id(r))
		if utils.IsNotFound(err) {
			return utils.NewForbiddenError("Cannot modify other users' likes.")
		}
		return err
	}
}

func (s *Server) isNotLikedAlready(src source) middleware.Check {
	return func(r *http.Request) error {
		id := src.id(r)
		_, err := s.DB.GetLikeByAuthorAndReference(r.Context(), caller(r), id)
		if err == nil {
			return utils.NewForbiddenError(fmt.Sprintf("Freet with freet ID %s has already been liked", id)).WithKey("likeFound")
		}
		if utils.IsNotFound(err) {
			return nil
		}
		return err
	}
}

func (s *Server) isResponseExists(src source) middleware.Check {
	return func(r *http.Request) error {
		raw := src(r)
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.NewNotFoundError("responseNotFound", fmt.Sprintf("Response with response ID %s does not exist.", raw))
		}
		_, err = s.DB.GetPromptResponse(r.Context(), id)
		return err
	}
}

func (s *Server) isResponseModifier(src source) middleware.Check {
	return func(r *http.Request) error {
		response, err := s.DB.GetPromptResponse(r.Context(), src.id(r))
		if err != nil {
			return err
		}
		if response.AuthorID != caller(r) {
			return utils.NewForbiddenError("Cannot modify other users' responses.")
		}
		return nil
	}
}

func (s *Server) isNotAnsweredAlready() middleware.Check {
	return func(r *http.Request) error {
		responses, err := s.DB.GetPromptResponsesByAuthor(r.Context(), caller(r))
		if err != nil {
			return err
		}
		if len(responses) > 0 {
			return utils.NewForbiddenError("You have already answered this prompt. You can update your response or delete it.").WithKey("responseFound")
		}
		return nil
	}
}
