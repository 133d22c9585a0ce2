package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MemoryDB is an in-process DBAdapter. It enforces the same unique constraints
// as the Mongo indexes, under one lock, so it is safe for concurrent handlers.
type MemoryDB struct {
	mu  sync.RWMutex
	seq uint64

	users     map[uuid.UUID]entry[models.User]
	freets    map[uuid.UUID]entry[models.Freet]
	comments  map[uuid.UUID]entry[models.Comment]
	likes     map[uuid.UUID]entry[models.Like]
	responses map[uuid.UUID]entry[models.PromptResponse]
}

// entry keeps the insertion order so equal timestamps still sort newest first.
type entry[T any] struct {
	seq   uint64
	value T
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:     make(map[uuid.UUID]entry[models.User]),
		freets:    make(map[uuid.UUID]entry[models.Freet]),
		comments:  make(map[uuid.UUID]entry[models.Comment]),
		likes:     make(map[uuid.UUID]entry[models.Like]),
		responses: make(map[uuid.UUID]entry[models.PromptResponse]),
	}
}

func (m *MemoryDB) EnsureIndexes(ctx context.Context) error { return nil }

func (m *MemoryDB) Close(ctx context.Context) error { return nil }

func (m *MemoryDB) next() uint64 {
	m.seq++
	return m.seq
}

// collect filters a table and returns copies sorted by date descending.
func collect[T any](table map[uuid.UUID]entry[T], keep func(*T) bool, date func(*T) time.Time) []*T {
	entries := lo.Filter(lo.Values(table), func(e entry[T], _ int) bool {
		return keep(&e.value)
	})
	sort.Slice(entries, func(i, j int) bool {
		di, dj := date(&entries[i].value), date(&entries[j].value)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return entries[i].seq > entries[j].seq
	})
	return lo.Map(entries, func(e entry[T], _ int) *T {
		v := e.value
		return &v
	})
}

func all[T any](*T) bool { return true }

// Users

func (m *MemoryDB) SaveUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.value.Username == user.Username {
			return utils.NewDuplicateError("Username already taken", nil)
		}
	}
	m.users[user.ID] = entry[models.User]{seq: m.next(), value: *user}
	return nil
}

func (m *MemoryDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.users[id]
	if !ok {
		return nil, userNotFound()
	}
	u := e.value
	return &u, nil
}

func (m *MemoryDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.users {
		if e.value.Username == username {
			u := e.value
			return &u, nil
		}
	}
	return nil, userNotFound()
}

// Freets

func (m *MemoryDB) CreateFreet(ctx context.Context, freet *models.Freet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.freets[freet.ID]; ok {
		return utils.NewDuplicateError("Freet already exists", nil)
	}
	m.freets[freet.ID] = entry[models.Freet]{seq: m.next(), value: *freet}
	return nil
}

func (m *MemoryDB) GetFreet(ctx context.Context, id uuid.UUID) (*models.Freet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.freets[id]
	if !ok {
		return nil, freetNotFound(id)
	}
	f := e.value
	return &f, nil
}

func freetModified(f *models.Freet) time.Time { return f.DateModified }

func (m *MemoryDB) GetAllFreets(ctx context.Context) ([]*models.Freet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.freets, all[models.Freet], freetModified), nil
}

func (m *MemoryDB) GetFreetsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Freet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.freets, func(f *models.Freet) bool { return f.AuthorID == authorID }, freetModified), nil
}

func (m *MemoryDB) UpdateFreet(ctx context.Context, id uuid.UUID, content string) (*models.Freet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.freets[id]
	if !ok {
		return nil, freetNotFound(id)
	}
	e.value.Content = content
	e.value.DateModified = time.Now()
	m.freets[id] = e
	f := e.value
	return &f, nil
}

func (m *MemoryDB) DeleteFreet(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.freets[id]; !ok {
		return freetNotFound(id)
	}
	delete(m.freets, id)
	return nil
}

// Comments

func (m *MemoryDB) CreateComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[comment.ID]; ok {
		return utils.NewDuplicateError("Comment already exists", nil)
	}
	m.comments[comment.ID] = entry[models.Comment]{seq: m.next(), value: *comment}
	return nil
}

func (m *MemoryDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.comments[id]
	if !ok {
		return nil, commentNotFound(id)
	}
	c := e.value
	return &c, nil
}

func commentDate(c *models.Comment) time.Time { return c.DateCommented }

func (m *MemoryDB) GetAllComments(ctx context.Context) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.comments, all[models.Comment], commentDate), nil
}

func (m *MemoryDB) GetCommentsByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.comments, func(c *models.Comment) bool { return c.Reference.ID == referenceID }, commentDate), nil
}

func (m *MemoryDB) GetCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.comments, func(c *models.Comment) bool { return c.AuthorID == authorID }, commentDate), nil
}

func (m *MemoryDB) CountCommentsByReference(ctx context.Context, referenceID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(lo.CountBy(lo.Values(m.comments), func(e entry[models.Comment]) bool {
		return e.value.Reference.ID == referenceID
	})), nil
}

func (m *MemoryDB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return commentNotFound(id)
	}
	delete(m.comments, id)
	return nil
}

// Likes

func (m *MemoryDB) CreateLike(ctx context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.likes {
		if e.value.AuthorID == like.AuthorID && e.value.Reference.ID == like.Reference.ID {
			return utils.NewDuplicateError(
				fmt.Sprintf("Freet with freet ID %s has already been liked", like.Reference.ID), nil)
		}
	}
	m.likes[like.ID] = entry[models.Like]{seq: m.next(), value: *like}
	return nil
}

func (m *MemoryDB) GetLike(ctx context.Context, id uuid.UUID) (*models.Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.likes[id]
	if !ok {
		return nil, utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Like with ID %s does not exist.", id))
	}
	l := e.value
	return &l, nil
}

func likeDate(l *models.Like) time.Time { return l.DateLiked }

func (m *MemoryDB) GetAllLikes(ctx context.Context) ([]*models.Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.likes, all[models.Like], likeDate), nil
}

func (m *MemoryDB) GetLikesByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.likes, func(l *models.Like) bool { return l.Reference.ID == referenceID }, likeDate), nil
}

func (m *MemoryDB) GetLikesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.likes, func(l *models.Like) bool { return l.AuthorID == authorID }, likeDate), nil
}

func (m *MemoryDB) GetLikeByAuthorAndReference(ctx context.Context, authorID, referenceID uuid.UUID) (*models.Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.likes {
		if e.value.AuthorID == authorID && e.value.Reference.ID == referenceID {
			l := e.value
			return &l, nil
		}
	}
	return nil, likeNotFound(referenceID)
}

func (m *MemoryDB) CountLikesByReference(ctx context.Context, referenceID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(lo.CountBy(lo.Values(m.likes), func(e entry[models.Like]) bool {
		return e.value.Reference.ID == referenceID
	})), nil
}

func (m *MemoryDB) DeleteLike(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.likes[id]; !ok {
		return utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Like with ID %s does not exist.", id))
	}
	delete(m.likes, id)
	return nil
}

// Prompt responses

func (m *MemoryDB) CreatePromptResponse(ctx context.Context, response *models.PromptResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.responses {
		if e.value.AuthorID == response.AuthorID {
			return utils.NewDuplicateError(
				"You have already answered this prompt. You can update your response or delete it.", nil)
		}
	}
	m.responses[response.ID] = entry[models.PromptResponse]{seq: m.next(), value: *response}
	return nil
}

func (m *MemoryDB) GetPromptResponse(ctx context.Context, id uuid.UUID) (*models.PromptResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.responses[id]
	if !ok {
		return nil, promptResponseNotFound(id)
	}
	r := e.value
	return &r, nil
}

func responseModified(r *models.PromptResponse) time.Time { return r.DateModified }

func (m *MemoryDB) GetAllPromptResponses(ctx context.Context) ([]*models.PromptResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.responses, all[models.PromptResponse], responseModified), nil
}

func (m *MemoryDB) GetPromptResponsesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.PromptResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collect(m.responses, func(r *models.PromptResponse) bool { return r.AuthorID == authorID }, responseModified), nil
}

func (m *MemoryDB) UpdatePromptResponse(ctx context.Context, id uuid.UUID, content string) (*models.PromptResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.responses[id]
	if !ok {
		return nil, promptResponseNotFound(id)
	}
	e.value.Content = content
	e.value.DateModified = time.Now()
	m.responses[id] = e
	r := e.value
	return &r, nil
}

func (m *MemoryDB) DeletePromptResponse(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.responses[id]; !ok {
		return promptResponseNotFound(id)
	}
	delete(m.responses, id)
	return nil
}
