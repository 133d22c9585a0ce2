package actors

import (
	"context"
	"testing"
	"time"

	"fritter/internal/api"
	"fritter/internal/database"
	"fritter/internal/resolver"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct{}

func (staticTokens) GenerateToken(userID uuid.UUID, username string) (string, error) {
	return "token-" + username, nil
}

type harness struct {
	system *actor.ActorSystem
	db     *database.MemoryDB
	deps   Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := database.NewMemoryDB()
	return &harness{
		system: actor.NewActorSystem(),
		db:     db,
		deps: Deps{
			DB:       db,
			Resolver: resolver.New(db, resolver.DefaultMaxDepth),
			Metrics:  utils.NewMetricsCollector(),
		},
	}
}

func (h *harness) spawn(producer func() actor.Actor) *actor.PID {
	return h.system.Root.Spawn(actor.PropsFromProducer(producer))
}

func (h *harness) ask(t *testing.T, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	result, err := h.system.Root.RequestFuture(pid, msg, 5*time.Second).Result()
	require.NoError(t, err)
	return result
}

func (h *harness) register(t *testing.T, username string) *api.UserView {
	t.Helper()
	pid := h.spawn(func() actor.Actor { return NewUserActor(h.deps, staticTokens{}) })
	result := h.ask(t, pid, &RegisterUserMsg{Username: username, Password: "hunter2"})
	user, ok := result.(*api.UserView)
	require.True(t, ok, "unexpected result %T", result)
	return user
}

func TestUserActorRegisterAndLogin(t *testing.T) {
	h := newHarness(t)
	pid := h.spawn(func() actor.Actor { return NewUserActor(h.deps, staticTokens{}) })

	result := h.ask(t, pid, &RegisterUserMsg{Username: "alice", Password: "hunter2"})
	user := result.(*api.UserView)
	assert.Equal(t, "alice", user.Username)

	result = h.ask(t, pid, &RegisterUserMsg{Username: "alice", Password: "other"})
	assert.True(t, utils.IsErrorCode(result.(error), utils.ErrDuplicate))

	result = h.ask(t, pid, &LoginMsg{Username: "alice", Password: "hunter2"})
	login := result.(*api.LoginResponse)
	assert.True(t, login.Success)
	assert.Equal(t, "token-alice", login.Token)
	assert.Equal(t, user.ID, login.UserID)

	result = h.ask(t, pid, &LoginMsg{Username: "alice", Password: "wrong"})
	assert.True(t, utils.IsErrorCode(result.(error), utils.ErrInvalidCredentials))

	result = h.ask(t, pid, &LoginMsg{Username: "nobody", Password: "hunter2"})
	assert.True(t, utils.IsErrorCode(result.(error), utils.ErrInvalidCredentials))
}

func TestFreetActorLifecycle(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "alice")
	authorID := uuid.MustParse(user.ID)
	pid := h.spawn(func() actor.Actor { return NewFreetActor(h.deps) })

	freet := h.ask(t, pid, &CreateFreetMsg{AuthorID: authorID, Content: "first"}).(*api.FreetView)
	assert.Equal(t, "alice", freet.Author)
	freetID := uuid.MustParse(freet.ID)

	updated := h.ask(t, pid, &UpdateFreetMsg{FreetID: freetID, Content: "edited"}).(*api.FreetView)
	assert.Equal(t, "edited", updated.Content)

	list := h.ask(t, pid, &ListFreetsMsg{AuthorID: &authorID}).([]*api.FreetView)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Content)

	assert.Equal(t, 1, h.ask(t, pid, &GetCountsMsg{}))

	deleted := h.ask(t, pid, &DeleteFreetMsg{FreetID: freetID}).(*Deleted)
	assert.Equal(t, freetID, deleted.ID)

	result := h.ask(t, pid, &GetFreetMsg{FreetID: freetID})
	assert.True(t, utils.IsNotFound(result.(error)))
}

func TestCommentActorDetectsReferenceKind(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "alice")
	authorID := uuid.MustParse(user.ID)
	freets := h.spawn(func() actor.Actor { return NewFreetActor(h.deps) })
	comments := h.spawn(func() actor.Actor { return NewCommentActor(h.deps) })

	freet := h.ask(t, freets, &CreateFreetMsg{AuthorID: authorID, Content: "root"}).(*api.FreetView)
	freetID := uuid.MustParse(freet.ID)

	onFreet := h.ask(t, comments, &CreateCommentMsg{AuthorID: authorID, ReferenceID: freetID, Content: "c1"}).(*api.CommentView)
	assert.False(t, onFreet.IsComment)
	require.NotNil(t, onFreet.ReferenceFreet)

	onComment := h.ask(t, comments, &CreateCommentMsg{
		AuthorID: authorID, ReferenceID: uuid.MustParse(onFreet.ID), Content: "c2",
	}).(*api.CommentView)
	assert.True(t, onComment.IsComment)
	require.NotNil(t, onComment.ReferenceComment)
	assert.Equal(t, freet.ID, onComment.ReferenceComment.ReferenceFreet.ID)

	result := h.ask(t, comments, &CreateCommentMsg{AuthorID: authorID, ReferenceID: uuid.New(), Content: "c3"})
	assert.True(t, utils.IsNotFound(result.(error)))

	count := h.ask(t, comments, &CountCommentsMsg{ReferenceID: freetID}).(int64)
	assert.Equal(t, int64(1), count)

	all := h.ask(t, comments, &GetCommentsMsg{}).([]*api.CommentView)
	assert.Len(t, all, 2)
}

func TestLikeActorUniquenessAndDelete(t *testing.T) {
	h := newHarness(t)
	alice := uuid.MustParse(h.register(t, "alice").ID)
	bob := uuid.MustParse(h.register(t, "bob").ID)
	freets := h.spawn(func() actor.Actor { return NewFreetActor(h.deps) })
	likes := h.spawn(func() actor.Actor { return NewLikeActor(h.deps) })

	freetID := uuid.MustParse(h.ask(t, freets, &CreateFreetMsg{AuthorID: alice, Content: "likeable"}).(*api.FreetView).ID)

	like := h.ask(t, likes, &CreateLikeMsg{AuthorID: bob, ReferenceID: freetID}).(*api.LikeView)
	assert.Equal(t, "bob", like.User)

	result := h.ask(t, likes, &CreateLikeMsg{AuthorID: bob, ReferenceID: freetID})
	assert.True(t, utils.IsErrorCode(result.(error), utils.ErrDuplicate))

	result = h.ask(t, likes, &CreateLikeMsg{AuthorID: alice, ReferenceID: uuid.MustParse(like.ID)})
	assert.True(t, utils.IsNotFound(result.(error)), "likes cannot be liked")

	likers := h.ask(t, likes, &GetLikersMsg{ReferenceID: freetID}).([]*api.UserView)
	require.Len(t, likers, 1)
	assert.Equal(t, "bob", likers[0].Username)

	result = h.ask(t, likes, &DeleteLikeMsg{AuthorID: alice, ReferenceID: freetID})
	assert.True(t, utils.IsNotFound(result.(error)))

	h.ask(t, likes, &DeleteLikeMsg{AuthorID: bob, ReferenceID: freetID})
	assert.Equal(t, int64(0), h.ask(t, likes, &CountLikesMsg{ReferenceID: freetID}))
}

func TestPromptActorOneResponsePerAuthor(t *testing.T) {
	h := newHarness(t)
	alice := uuid.MustParse(h.register(t, "alice").ID)
	pid := h.spawn(func() actor.Actor { return NewPromptActor(h.deps) })

	response := h.ask(t, pid, &CreatePromptResponseMsg{AuthorID: alice, Content: "my answer"}).(*api.PromptResponseView)
	assert.Equal(t, "alice", response.User)

	result := h.ask(t, pid, &CreatePromptResponseMsg{AuthorID: alice, Content: "again"})
	assert.True(t, utils.IsErrorCode(result.(error), utils.ErrDuplicate))

	responseID := uuid.MustParse(response.ID)
	updated := h.ask(t, pid, &UpdatePromptResponseMsg{ResponseID: responseID, Content: "better"}).(*api.PromptResponseView)
	assert.Equal(t, "better", updated.Content)

	h.ask(t, pid, &DeletePromptResponseMsg{ResponseID: responseID})
	remaining, err := h.db.GetPromptResponsesByAuthor(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
