package handlers

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentPromptResponses(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp("alice")

	const attempts = 2
	var wg sync.WaitGroup
	codes := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.do(http.MethodPost, "/prompts", token, map[string]string{"content": "my answer"})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusForbidden, http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)

	rec := env.do(http.MethodGet, "/prompts?user=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)
}

func TestPromptResponseLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp("alice")
	bob := env.signUp("bob")

	rec := env.do(http.MethodPost, "/prompts", alice, map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	responseID := field(t, rec, "response")["_id"].(string)

	rec = env.do(http.MethodPost, "/prompts", alice, map[string]string{"content": "second"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, errorBody(t, rec), "responseFound")

	rec = env.do(http.MethodPut, "/prompts/"+responseID, bob, map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/prompts/"+responseID, alice, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/prompts/"+responseID, alice, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", field(t, rec, "response")["content"])

	rec = env.do(http.MethodDelete, "/prompts/"+responseID, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/prompts/"+responseID, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorBody(t, rec), "responseNotFound")
}
