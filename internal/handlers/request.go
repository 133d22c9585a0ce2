package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"fritter/internal/middleware"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// ask sends msg to pid and waits for the reply. Replies that are errors are
// returned as errors; a missed deadline becomes an ACTOR_TIMEOUT.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	result, err := s.Context.RequestFuture(pid, msg, s.RequestTimeout).Result()
	if errors.Is(err, actor.ErrTimeout) {
		return nil, utils.NewActorTimeoutError(fmt.Sprintf("%T", msg))
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrMessageRejected, "actor request failed", err)
	}
	if replyErr, ok := result.(error); ok {
		return nil, replyErr
	}
	return result, nil
}

// askAs is ask with the reply asserted to T.
func askAs[T any](s *Server, pid *actor.PID, msg interface{}) (T, error) {
	var zero T
	result, err := s.ask(pid, msg)
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, utils.NewUnexpectedResponseError(result)
	}
	return typed, nil
}

// peekJSON decodes the request body into dst and puts the bytes back so later
// checks and the handler can read it again.
func peekJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return utils.NewInvalidInputError("Failed to read request body")
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return utils.NewInvalidInputError("Invalid request body")
	}
	return nil
}

// source extracts a raw value (an id or a name) from a request.
type source func(r *http.Request) string

func pathParam(name string) source {
	return func(r *http.Request) string { return chi.URLParam(r, name) }
}

func queryParam(name string) source {
	return func(r *http.Request) string { return r.URL.Query().Get(name) }
}

func bodyField(name string) source {
	return func(r *http.Request) string {
		var body map[string]interface{}
		if err := peekJSON(r, &body); err != nil {
			return ""
		}
		value, _ := body[name].(string)
		return value
	}
}

// id parses the value src yields; checks have already rejected bad ids.
func (src source) id(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(src(r))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func caller(r *http.Request) uuid.UUID {
	identity, _ := middleware.IdentityFromContext(r.Context())
	return identity.UserID
}

type contentRequest struct {
	Content string `json:"content"`
}

func readContent(r *http.Request) (string, error) {
	var req contentRequest
	if err := peekJSON(r, &req); err != nil {
		return "", err
	}
	return req.Content, nil
}
