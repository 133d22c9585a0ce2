package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "alice", "password": "password123"}

	rec := env.do(http.MethodPost, "/users", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "alice", field(t, rec, "user")["username"])

	rec = env.do(http.MethodPost, "/users", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/users", "", map[string]string{"username": " ", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/users/session", "", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode[map[string]interface{}](t, rec)["success"])

	rec = env.do(http.MethodPost, "/users/session", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, login["success"])
	assert.NotEmpty(t, login["token"])

	rec = env.do(http.MethodGet, "/users/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[map[string]interface{}](t, rec)["username"])

	rec = env.do(http.MethodGet, "/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp("alice")
	env.createFreet(token, "one")

	rec := env.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, float64(1), health["freet_count"])

	rec = env.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fritter_http_requests_total")
	assert.Contains(t, rec.Body.String(), `fritter_operation_duration_seconds_count{operation="create_freet"} 1`)
}

func TestWebSocketRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/ws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/ws?token=bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
