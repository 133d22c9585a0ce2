package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp("alice")
	bob := env.signUp("bob")

	f1 := env.createFreet(alice, "hello world")

	rec := env.do(http.MethodGet, "/freets/"+f1, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	freet := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "alice", freet["author"])
	assert.Equal(t, "hello world", freet["content"])

	rec = env.do(http.MethodPut, "/freets/"+f1, bob, map[string]string{"content": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/freets/"+f1, alice, map[string]string{"content": strings.Repeat("é", 140)})
	assert.Equal(t, http.StatusOK, rec.Code, "140 runes is within the limit")

	rec = env.do(http.MethodGet, "/freets?author=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)

	rec = env.do(http.MethodGet, "/freets?author=bob", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]interface{}](t, rec))

	rec = env.do(http.MethodDelete, "/freets/"+f1, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, "/freets/"+f1, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/freets/"+f1, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorBody(t, rec), "freetNotFound")
}

func TestFreetRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/freets", "", map[string]string{"content": "anon"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/freets", "not-a-jwt", map[string]string{"content": "anon"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/freets/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
