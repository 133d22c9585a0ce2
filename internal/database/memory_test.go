package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDBLikeUniqueness(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()
	author := uuid.New()
	freetID := uuid.New()

	first := &models.Like{ID: uuid.New(), AuthorID: author, Reference: models.FreetRef(freetID), DateLiked: time.Now()}
	require.NoError(t, db.CreateLike(ctx, first))

	second := &models.Like{ID: uuid.New(), AuthorID: author, Reference: models.FreetRef(freetID), DateLiked: time.Now()}
	err := db.CreateLike(ctx, second)
	assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))

	count, err := db.CountLikesByReference(ctx, freetID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryDBConcurrentPromptResponses(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()
	author := uuid.New()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			now := time.Now()
			errs[i] = db.CreatePromptResponse(ctx, &models.PromptResponse{
				ID: uuid.New(), AuthorID: author, Content: "answer", DateResponded: now, DateModified: now,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))
	}
	assert.Equal(t, 1, succeeded)

	responses, err := db.GetPromptResponsesByAuthor(ctx, author)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}

func TestMemoryDBNewestFirst(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()
	parent := uuid.New()
	now := time.Now()

	older := &models.Comment{ID: uuid.New(), Reference: models.FreetRef(parent), Content: "old", DateCommented: now.Add(-time.Minute)}
	newer := &models.Comment{ID: uuid.New(), Reference: models.FreetRef(parent), Content: "new", DateCommented: now}
	tie := &models.Comment{ID: uuid.New(), Reference: models.FreetRef(parent), Content: "tie", DateCommented: now}
	require.NoError(t, db.CreateComment(ctx, older))
	require.NoError(t, db.CreateComment(ctx, newer))
	require.NoError(t, db.CreateComment(ctx, tie))

	comments, err := db.GetCommentsByReference(ctx, parent)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "tie", comments[0].Content)
	assert.Equal(t, "new", comments[1].Content)
	assert.Equal(t, "old", comments[2].Content)
}

func TestMemoryDBNotFound(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()

	_, err := db.GetFreet(ctx, uuid.New())
	assert.True(t, utils.IsNotFound(err))

	_, err = db.GetComment(ctx, uuid.New())
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "commentNotFound", appErr.Key)

	assert.True(t, utils.IsNotFound(db.DeleteLike(ctx, uuid.New())))
	_, err = db.UpdatePromptResponse(ctx, uuid.New(), "x")
	assert.True(t, utils.IsNotFound(err))
}

func TestMemoryDBUpdateFreetReturnsCopy(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()
	created := time.Now().Add(-time.Hour)
	freet := &models.Freet{ID: uuid.New(), AuthorID: uuid.New(), Content: "before", DateCreated: created, DateModified: created}
	require.NoError(t, db.CreateFreet(ctx, freet))

	updated, err := db.UpdateFreet(ctx, freet.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)
	assert.True(t, updated.DateModified.After(created))

	updated.Content = "mutated"
	stored, err := db.GetFreet(ctx, freet.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Content)
}

func TestMemoryDBDuplicateUsername(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()
	require.NoError(t, db.SaveUser(ctx, &models.User{ID: uuid.New(), Username: "alice"}))
	err := db.SaveUser(ctx, &models.User{ID: uuid.New(), Username: "alice"})
	assert.Equal(t, utils.ErrDuplicate, err.(*utils.AppError).Code)

	u, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}
