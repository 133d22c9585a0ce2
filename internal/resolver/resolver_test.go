package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"fritter/internal/database"
	"fritter/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db   *database.MemoryDB
	rv   *Resolver
	user *models.User
}

func newFixture(t *testing.T, maxDepth int) *fixture {
	t.Helper()
	db := database.NewMemoryDB()
	user := &models.User{ID: uuid.New(), Username: "alice", CreatedAt: time.Now()}
	require.NoError(t, db.SaveUser(context.Background(), user))
	return &fixture{db: db, rv: New(db, maxDepth), user: user}
}

func (f *fixture) freet(t *testing.T, content string) *models.Freet {
	t.Helper()
	now := time.Now()
	freet := &models.Freet{ID: uuid.New(), AuthorID: f.user.ID, Content: content, DateCreated: now, DateModified: now}
	require.NoError(t, f.db.CreateFreet(context.Background(), freet))
	return freet
}

func (f *fixture) comment(t *testing.T, ref models.Reference, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{ID: uuid.New(), AuthorID: f.user.ID, Reference: ref, Content: content, DateCommented: time.Now()}
	require.NoError(t, f.db.CreateComment(context.Background(), comment))
	return comment
}

func TestResolveCommentOnFreet(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	freet := f.freet(t, "hello")
	comment := f.comment(t, models.FreetRef(freet.ID), "hi")

	view, err := f.rv.CommentView(context.Background(), comment)
	require.NoError(t, err)

	assert.Equal(t, "alice", view.User)
	assert.False(t, view.IsComment)
	assert.Nil(t, view.ReferenceComment)
	require.NotNil(t, view.ReferenceFreet)
	assert.Equal(t, freet.ID.String(), view.ReferenceFreet.ID)
	assert.Equal(t, "hello", view.ReferenceFreet.Content)
	assert.False(t, view.ReferenceMissing)
}

func TestResolveNestedComments(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	freet := f.freet(t, "root")
	c2 := f.comment(t, models.FreetRef(freet.ID), "first reply")
	c1 := f.comment(t, models.CommentRef(c2.ID), "reply to reply")

	view, err := f.rv.CommentView(context.Background(), c1)
	require.NoError(t, err)

	assert.Nil(t, view.ReferenceFreet)
	require.NotNil(t, view.ReferenceComment)
	assert.Equal(t, c2.ID.String(), view.ReferenceComment.ID)
	require.NotNil(t, view.ReferenceComment.ReferenceFreet)
	assert.Equal(t, freet.ID.String(), view.ReferenceComment.ReferenceFreet.ID)
}

func TestResolveDeletedTargetIsMissing(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	freet := f.freet(t, "soon gone")
	comment := f.comment(t, models.FreetRef(freet.ID), "orphan")
	require.NoError(t, f.db.DeleteFreet(context.Background(), freet.ID))

	view, err := f.rv.CommentView(context.Background(), comment)
	require.NoError(t, err)
	assert.True(t, view.ReferenceMissing)
	assert.Nil(t, view.ReferenceFreet)
	assert.Nil(t, view.ReferenceComment)
}

func TestResolveStopsAtMaxDepth(t *testing.T) {
	f := newFixture(t, 3)
	id := uuid.New()
	loop := &models.Comment{ID: id, AuthorID: f.user.ID, Reference: models.CommentRef(id), Content: "loop", DateCommented: time.Now()}
	require.NoError(t, f.db.CreateComment(context.Background(), loop))

	view, err := f.rv.CommentView(context.Background(), loop)
	require.NoError(t, err)

	levels := 0
	for cur := view; cur.ReferenceComment != nil; cur = cur.ReferenceComment {
		levels++
		require.LessOrEqual(t, levels, 3)
	}
	assert.Equal(t, 3, levels)
}

func TestResolveStaleKindFlag(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	freet := f.freet(t, "actually a freet")

	view, err := f.rv.Resolve(context.Background(), models.CommentRef(freet.ID))
	require.NoError(t, err)
	assert.False(t, view.ReferenceMissing)
	assert.Nil(t, view.ReferenceComment)
	require.NotNil(t, view.ReferenceFreet)
	assert.Equal(t, freet.ID.String(), view.ReferenceFreet.ID)
}

func TestDetectKind(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	ctx := context.Background()
	freet := f.freet(t, "f")
	comment := f.comment(t, models.FreetRef(freet.ID), "c")
	like := &models.Like{ID: uuid.New(), AuthorID: f.user.ID, Reference: models.FreetRef(freet.ID), DateLiked: time.Now()}
	require.NoError(t, f.db.CreateLike(ctx, like))

	ref, err := f.rv.DetectKind(ctx, freet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FreetRef(freet.ID), ref)

	ref, err = f.rv.DetectKind(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommentRef(comment.ID), ref)

	_, err = f.rv.DetectKind(ctx, like.ID)
	assert.Error(t, err)
}

func TestUnknownAuthor(t *testing.T) {
	f := newFixture(t, DefaultMaxDepth)
	now := time.Now()
	freet := &models.Freet{ID: uuid.New(), AuthorID: uuid.New(), Content: "ghost", DateCreated: now, DateModified: now}

	view, err := f.rv.FreetView(context.Background(), freet)
	require.NoError(t, err)
	assert.Equal(t, UnknownUser, view.Author)
}

type failingStore struct {
	*database.MemoryDB
}

var errStore = errors.New("store unavailable")

func (failingStore) GetFreet(ctx context.Context, id uuid.UUID) (*models.Freet, error) {
	return nil, errStore
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	rv := New(failingStore{database.NewMemoryDB()}, DefaultMaxDepth)

	_, err := rv.Resolve(context.Background(), models.FreetRef(uuid.New()))
	assert.ErrorIs(t, err, errStore)
}
