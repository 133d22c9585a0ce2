package simulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fritter/internal/database"
	"fritter/internal/engine"
	"fritter/internal/engine/actors"
	"fritter/internal/handlers"
	"fritter/internal/middleware"
	"fritter/internal/resolver"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngineServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := database.NewMemoryDB()
	metrics := utils.NewMetricsCollector()
	rv := resolver.New(db, resolver.DefaultMaxDepth)
	tokens := middleware.NewTokenManager("simulator-test-secret", time.Hour)

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, actors.Deps{DB: db, Resolver: rv, Metrics: metrics}, tokens)
	server := handlers.NewServer(system, eng, db, rv, metrics, nil, tokens)

	ts := httptest.NewServer(server.NewRouter(handlers.RouterOptions{}))
	t.Cleanup(func() {
		ts.Close()
		system.Shutdown()
	})
	return ts
}

func TestClientAgainstEngine(t *testing.T) {
	ts := newEngineServer(t)
	client := NewClient(ts.URL, 5*time.Second)
	defer client.Close()
	ctx := context.Background()

	user, err := client.Register(ctx, "sim_alice", simPassword)
	require.NoError(t, err)
	assert.Equal(t, "sim_alice", user.Username)

	login, err := client.Login(ctx, "sim_alice", simPassword)
	require.NoError(t, err)
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)

	freet, err := client.CreateFreet(ctx, login.Token, "hello swamp")
	require.NoError(t, err)
	assert.Equal(t, "sim_alice", freet.Author)

	comment, err := client.CreateComment(ctx, login.Token, freet.ID, "first")
	require.NoError(t, err)
	assert.False(t, comment.IsComment)

	reply, err := client.CreateComment(ctx, login.Token, comment.ID, "reply")
	require.NoError(t, err)
	assert.True(t, reply.IsComment)
	require.NotNil(t, reply.ReferenceComment)
	assert.Equal(t, comment.ID, reply.ReferenceComment.ID)

	_, err = client.Like(ctx, login.Token, freet.ID)
	require.NoError(t, err)

	_, err = client.Like(ctx, login.Token, freet.ID)
	assert.True(t, hasStatus(err, http.StatusForbidden))

	count, err := client.CountLikes(ctx, freet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, client.Unlike(ctx, login.Token, freet.ID))

	_, err = client.RespondToPrompt(ctx, login.Token, "my answer")
	require.NoError(t, err)
	_, err = client.RespondToPrompt(ctx, login.Token, "again")
	assert.True(t, hasStatus(err, http.StatusForbidden))
}

func TestClientRejectsBadLogin(t *testing.T) {
	ts := newEngineServer(t)
	client := NewClient(ts.URL, 5*time.Second)
	defer client.Close()

	_, err := client.Login(context.Background(), "nobody", "wrong")
	assert.True(t, hasStatus(err, http.StatusUnauthorized))
}

func TestSimulatorRunRecordsOperations(t *testing.T) {
	ts := newEngineServer(t)

	config := DefaultSimConfig()
	config.EngineURL = ts.URL
	config.NumUsers = 3
	config.TickInterval = 20 * time.Millisecond
	config.FreetFrequency = 1e6
	config.CommentFrequency = 1e6
	config.LikeFrequency = 1e6
	config.PromptRate = 1
	config.DisconnectRate = 0

	sim := NewSimulator(config, nil)
	defer sim.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sim.Run(ctx))

	metrics := sim.GetMetrics()
	assert.Equal(t, 3, metrics.TotalUsers)
	assert.Equal(t, int64(3), metrics.Operations[OpRegister].Success)
	assert.Equal(t, int64(3), metrics.Operations[OpLogin].Success)
	assert.Positive(t, metrics.Operations[OpFreet].Success)
	assert.Positive(t, metrics.Operations[OpComment].Success)
	assert.LessOrEqual(t, metrics.Operations[OpPrompt].Success, int64(3))
}

func TestGetZipfNumberStaysInRange(t *testing.T) {
	sim := NewSimulator(DefaultSimConfig(), nil)
	defer sim.Close()

	for i := 0; i < 200; i++ {
		n := sim.getZipfNumber(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
	assert.Equal(t, 0, sim.getZipfNumber(1))
}
