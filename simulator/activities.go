package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

var sampleWords = []string{
	"gator", "swamp", "coffee", "exam", "lecture", "campus", "rain", "sunset",
	"library", "deadline", "pizza", "football", "midterm", "lab", "bike", "concert",
}

// SimulateActivities runs one round of activity per tick until ctx is done.
// A round waits for all of its requests so a user is never driven by two
// workers at once.
func (s *Simulator) SimulateActivities(ctx context.Context) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runRound(ctx)
		}
	}
}

func (s *Simulator) runRound(ctx context.Context) {
	s.mu.RLock()
	active := lo.Filter(s.users, func(u *SimulatedUser, _ int) bool { return u.IsConnected })
	s.mu.RUnlock()

	jobs := make(chan *SimulatedUser)
	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				s.act(ctx, user)
			}
		}()
	}

	for _, user := range active {
		select {
		case jobs <- user:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()
}

// act rolls each activity independently for one user.
func (s *Simulator) act(ctx context.Context, user *SimulatedUser) {
	perTick := s.config.TickInterval.Hours()

	if rand.Float64() < s.config.FreetFrequency*perTick {
		s.postFreet(ctx, user)
	}
	if rand.Float64() < s.config.CommentFrequency*perTick {
		s.postComment(ctx, user)
	}
	if rand.Float64() < s.config.LikeFrequency*perTick {
		s.toggleLike(ctx, user)
	}
	if !user.Answered && rand.Float64() < s.config.PromptRate {
		s.answerPrompt(ctx, user)
	}
}

func (s *Simulator) postFreet(ctx context.Context, user *SimulatedUser) {
	start := time.Now()
	freet, err := s.client.CreateFreet(ctx, user.Token, randomContent(user.Username))
	s.recordRequest(OpFreet, start, err)
	if err != nil {
		s.logger.Debug("failed to create freet", "user", user.Username, "error", err)
		return
	}

	s.mu.Lock()
	s.freets = append(s.freets, freet.ID)
	s.mu.Unlock()
}

func (s *Simulator) postComment(ctx context.Context, user *SimulatedUser) {
	s.mu.RLock()
	targets := s.freets
	if len(s.comments) > 0 && rand.Float64() < s.config.NestedCommentPct {
		targets = s.comments
	}
	target, ok := s.pick(targets)
	s.mu.RUnlock()
	if !ok {
		return
	}

	start := time.Now()
	comment, err := s.client.CreateComment(ctx, user.Token, target, randomContent(user.Username))
	s.recordRequest(OpComment, start, err)
	if err != nil {
		s.logger.Debug("failed to create comment", "user", user.Username, "reference", target, "error", err)
		return
	}

	s.mu.Lock()
	s.comments = append(s.comments, comment.ID)
	s.mu.Unlock()
}

// toggleLike likes a popular item, or takes the like back if it was
// already given.
func (s *Simulator) toggleLike(ctx context.Context, user *SimulatedUser) {
	s.mu.RLock()
	targets := s.freets
	if len(s.comments) > 0 && rand.Intn(2) == 0 {
		targets = s.comments
	}
	target, ok := s.pick(targets)
	s.mu.RUnlock()
	if !ok {
		return
	}

	start := time.Now()
	if user.Liked[target] {
		err := s.client.Unlike(ctx, user.Token, target)
		s.recordRequest(OpUnlike, start, err)
		if err == nil {
			delete(user.Liked, target)
		}
		return
	}

	_, err := s.client.Like(ctx, user.Token, target)
	s.recordRequest(OpLike, start, err)
	if err == nil || hasStatus(err, http.StatusForbidden) {
		user.Liked[target] = true
	}
}

func (s *Simulator) answerPrompt(ctx context.Context, user *SimulatedUser) {
	start := time.Now()
	_, err := s.client.RespondToPrompt(ctx, user.Token, randomContent(user.Username))
	s.recordRequest(OpPrompt, start, err)
	if err == nil || hasStatus(err, http.StatusForbidden) {
		user.Answered = true
	}
}

// pick favors the oldest entries following a Zipf distribution.
// Callers hold s.mu.
func (s *Simulator) pick(ids []string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}
	return ids[s.getZipfNumber(len(ids))], true
}

// getZipfNumber returns an index in [0, n).
func (s *Simulator) getZipfNumber(n int) int {
	if n <= 1 {
		return 0
	}
	zipf := rand.NewZipf(rand.New(rand.NewSource(time.Now().UnixNano())), s.config.ZipfS, 1, uint64(n-1))
	if zipf == nil {
		return rand.Intn(n)
	}
	return int(zipf.Uint64())
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func randomContent(author string) string {
	words := lo.Samples(sampleWords, 1+rand.Intn(4))
	return fmt.Sprintf("%s says: %s", author, strings.Join(words, " "))
}
