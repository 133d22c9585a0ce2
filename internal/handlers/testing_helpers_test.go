package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fritter/internal/database"
	"fritter/internal/engine"
	"fritter/internal/engine/actors"
	"fritter/internal/middleware"
	"fritter/internal/resolver"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t      *testing.T
	db     *database.MemoryDB
	server *Server
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := database.NewMemoryDB()
	rv := resolver.New(db, resolver.DefaultMaxDepth)
	metrics := utils.NewMetricsCollector()
	tokens := middleware.NewTokenManager("test-secret", time.Hour)
	system := actor.NewActorSystem()
	t.Cleanup(system.Shutdown)

	eng := engine.NewEngine(system, actors.Deps{DB: db, Resolver: rv, Metrics: metrics}, tokens)
	server := NewServer(system, eng, db, rv, metrics, nil, tokens)

	return &testEnv{
		t:      t,
		db:     db,
		server: server,
		router: server.NewRouter(RouterOptions{MetricsEnabled: true}),
	}
}

// do sends a JSON request and returns the recorder.
func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// signUp registers username and returns a session token.
func (e *testEnv) signUp(username string) string {
	e.t.Helper()
	creds := map[string]string{"username": username, "password": "password123"}
	rec := e.do(http.MethodPost, "/users", "", creds)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/users/session", "", creds)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[map[string]interface{}](e.t, rec)
	return login["token"].(string)
}

func (e *testEnv) createFreet(token, content string) string {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/freets", token, map[string]string{"content": content})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return field(e.t, rec, "freet")["_id"].(string)
}

func (e *testEnv) createComment(token, referenceID, content string) map[string]interface{} {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/comments/"+referenceID, token, map[string]string{"content": content})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return field(e.t, rec, "comment")
}

// field returns a nested object from a {"message": ..., name: {...}} response.
func field(t *testing.T, rec *httptest.ResponseRecorder, name string) map[string]interface{} {
	t.Helper()
	body := decode[map[string]interface{}](t, rec)
	obj, ok := body[name].(map[string]interface{})
	require.True(t, ok, "missing %q in %s", name, rec.Body.String())
	return obj
}

// errorBody returns the "error" field of an error response.
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) interface{} {
	t.Helper()
	return decode[map[string]interface{}](t, rec)["error"]
}
