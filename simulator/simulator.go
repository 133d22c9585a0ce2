package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Operation names used as keys in the per-operation counters.
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpFreet    = "freet"
	OpComment  = "comment"
	OpLike     = "like"
	OpUnlike   = "unlike"
	OpPrompt   = "prompt"
)

const simPassword = "testpass123"

type SimConfig struct {
	NumUsers         int
	SimulationTime   time.Duration
	TickInterval     time.Duration
	FreetFrequency   float64 // freets per user per hour
	CommentFrequency float64 // comments per user per hour
	LikeFrequency    float64 // likes per user per hour
	PromptRate       float64 // chance per tick that a user answers the prompt
	NestedCommentPct float64 // share of comments that reply to a comment
	DisconnectRate   float64
	ReconnectRate    float64
	ZipfS            float64
	Workers          int
	EngineURL        string
	RequestTimeout   time.Duration
}

// DefaultSimConfig returns a small, fast-moving simulation.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		NumUsers:         10,
		SimulationTime:   2 * time.Minute,
		TickInterval:     500 * time.Millisecond,
		FreetFrequency:   120.0,
		CommentFrequency: 90.0,
		LikeFrequency:    150.0,
		PromptRate:       0.05,
		NestedCommentPct: 0.3,
		DisconnectRate:   0.01,
		ReconnectRate:    0.05,
		ZipfS:            1.07,
		Workers:          5,
		EngineURL:        "http://localhost:8080",
		RequestTimeout:   5 * time.Second,
	}
}

// OpStats counts the outcome of one kind of request.
type OpStats struct {
	Success int64
	Failure int64
}

type SimulationStats struct {
	mu             sync.RWMutex
	StartTime      time.Time
	TotalRequests  int64
	AverageLatency time.Duration
	Operations     map[string]*OpStats
}

// SimulatedUser tracks what one simulated account has done.
type SimulatedUser struct {
	ID          string
	Username    string
	Token       string
	IsConnected bool
	Answered    bool
	Liked       map[string]bool
}

type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	client *Client
	logger *slog.Logger

	mu       sync.RWMutex
	users    []*SimulatedUser
	freets   []string
	comments []string
}

func NewSimulator(config SimConfig, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.TickInterval <= 0 {
		config.TickInterval = 500 * time.Millisecond
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 5 * time.Second
	}

	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:  time.Now(),
			Operations: make(map[string]*OpStats),
		},
		client: NewClient(config.EngineURL, config.RequestTimeout),
		logger: logger,
	}
}

func (s *Simulator) Close() error {
	return s.client.Close()
}

// Run registers the user base and then drives activity until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	s.logger.Info("starting simulation", "users", s.config.NumUsers, "engine", s.config.EngineURL)

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SimulateActivities(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateConnectivity(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	s.logger.Info("creating users", "count", s.config.NumUsers)
	if err := s.createInitialUsers(ctx); err != nil {
		return err
	}
	if len(s.users) == 0 {
		return errors.New("no users could be registered")
	}
	s.logger.Info("initialization completed", "users", len(s.users))
	return nil
}

func (s *Simulator) createInitialUsers(ctx context.Context) error {
	userJobs := make(chan int, s.config.Workers)
	results := make(chan *SimulatedUser, s.config.Workers)
	runID := time.Now().UnixNano() % 1_000_000

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for userNum := range userJobs {
				user := &SimulatedUser{
					Username:    fmt.Sprintf("user_%d_%d", runID, userNum),
					IsConnected: true,
					Liked:       make(map[string]bool),
				}

				var err error
				for retries := 0; retries < 3; retries++ {
					if err = s.registerUser(ctx, user); err == nil {
						results <- user
						break
					}
					if ctx.Err() != nil {
						return
					}
					backoff := time.Duration(math.Pow(2, float64(retries))) * 100 * time.Millisecond
					s.logger.Debug("retrying registration", "worker", workerID, "user", user.Username, "backoff", backoff, "error", err)
					time.Sleep(backoff)
				}
				if err != nil {
					s.logger.Warn("failed to register user", "worker", workerID, "user", user.Username, "error", err)
				}
			}
		}(i)
	}

	go func() {
		defer close(userJobs)
		for i := 0; i < s.config.NumUsers; i++ {
			select {
			case userJobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]*SimulatedUser, 0, s.config.NumUsers)
	for user := range results {
		s.users = append(s.users, user)
	}
	return ctx.Err()
}

func (s *Simulator) registerUser(ctx context.Context, user *SimulatedUser) error {
	start := time.Now()
	registered, err := s.client.Register(ctx, user.Username, simPassword)
	s.recordRequest(OpRegister, start, err)
	if err != nil {
		return err
	}
	user.ID = registered.ID

	start = time.Now()
	login, err := s.client.Login(ctx, user.Username, simPassword)
	s.recordRequest(OpLogin, start, err)
	if err != nil {
		return err
	}
	user.Token = login.Token
	return nil
}

func (s *Simulator) simulateConnectivity(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			for _, user := range s.users {
				if user.IsConnected {
					user.IsConnected = rand.Float64() >= s.config.DisconnectRate
				} else {
					user.IsConnected = rand.Float64() < s.config.ReconnectRate
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Simulator) recordRequest(op string, start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++

	counts, ok := s.stats.Operations[op]
	if !ok {
		counts = &OpStats{}
		s.stats.Operations[op] = counts
	}
	if err != nil {
		counts.Failure++
	} else {
		counts.Success++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := s.GetMetrics()
			s.logger.Info("simulation metrics",
				"elapsed", time.Since(s.stats.StartTime).Round(time.Second),
				"requests_per_second", fmt.Sprintf("%.2f", m.RequestsPerSecond),
				"average_latency", m.AverageLatency,
				"active_users", m.ActiveUsers,
				"freets", m.Operations[OpFreet].Success,
				"comments", m.Operations[OpComment].Success,
				"likes", m.Operations[OpLike].Success,
				"errors", m.ErrorCount,
			)
		}
	}
}

// SimulationMetrics is a snapshot of the simulation counters.
type SimulationMetrics struct {
	TotalUsers        int
	ActiveUsers       int
	Operations        map[string]OpStats
	AverageLatency    time.Duration
	ErrorCount        int64
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics.
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.mu.RLock()
	totalUsers := len(s.users)
	activeUsers := lo.CountBy(s.users, func(u *SimulatedUser) bool { return u.IsConnected })
	s.mu.RUnlock()

	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	ops := make(map[string]OpStats, len(s.stats.Operations))
	var failures int64
	for name, counts := range s.stats.Operations {
		ops[name] = *counts
		failures += counts.Failure
	}

	return SimulationMetrics{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		Operations:        ops,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        failures,
		RequestsPerSecond: float64(s.stats.TotalRequests) / time.Since(s.stats.StartTime).Seconds(),
	}
}
