package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/workerpool"
)

// Store is the arena of live sessions, keyed by project id. It is the
// only session registry in the process; callers hold a *Store obtained
// from the constructor, never a package global.
type Store struct {
	chain       ChainGateway
	compute     ComputeGateway
	fallback    SampleGenerator
	reconcilers func() (Reconciler, error)
	events      EventSource
	metrics     Metrics
	cfg         Config
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore builds a Store with its dependencies. The reconciler factory
// produces one reconciler per session so event-applied completions
// never leak across sessions.
func NewStore(
	chainGW ChainGateway,
	computeGW ComputeGateway,
	fallback SampleGenerator,
	reconcilers func() (Reconciler, error),
	eventSource EventSource,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Store, error) {
	if chainGW == nil {
		return nil, errors.New("chain gateway is required")
	}
	if computeGW == nil {
		return nil, errors.New("compute gateway is required")
	}
	if fallback == nil {
		return nil, errors.New("fallback sample generator is required")
	}
	if reconcilers == nil {
		return nil, errors.New("reconciler factory is required")
	}
	if metrics == nil {
		return nil, errors.New("session metrics is required")
	}
	return &Store{
		chain:       chainGW,
		compute:     computeGW,
		fallback:    fallback,
		reconcilers: reconcilers,
		events:      eventSource,
		metrics:     metrics,
		cfg:         cfg.withDefaults(),
		logger:      logger,
		sessions:    make(map[string]*Session),
	}, nil
}

// Create opens a session for the project and starts its background
// loops. The project configuration is read fresh from the chain; local
// state carries nothing across sessions, so resuming after a restart
// re-derives everything from the contract. A second live session for
// the same project is rejected.
func (st *Store) Create(ctx context.Context, projectID string) (*Session, error) {
	st.mu.Lock()
	if _, ok := st.sessions[projectID]; ok {
		st.mu.Unlock()
		return nil, ErrSessionExists
	}
	// Reserve the slot before the chain reads so concurrent creates
	// cannot both pass the duplicate check.
	st.sessions[projectID] = nil
	st.mu.Unlock()

	release := func() {
		st.mu.Lock()
		delete(st.sessions, projectID)
		st.mu.Unlock()
	}

	project, err := st.chain.Project(ctx, projectID)
	if err != nil {
		release()
		return nil, fmt.Errorf("read project config: %w", err)
	}
	reconciler, err := st.reconcilers()
	if err != nil {
		release()
		return nil, fmt.Errorf("build reconciler: %w", err)
	}

	sess := newSession(project, st.chain, st.compute, st.fallback, reconciler,
		st.events, st.metrics, st.cfg, st.logger)
	sess.Start(context.WithoutCancel(ctx))

	st.mu.Lock()
	st.sessions[projectID] = sess
	st.mu.Unlock()

	st.logger.Info("session created",
		zap.String("project", projectID),
		zap.Uint64("round", project.CurrentRound),
		zap.Uint64("max_rounds", project.MaxRounds))
	return sess, nil
}

// Get returns the live session for the project.
func (st *Store) Get(projectID string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[projectID]
	if !ok || sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// End terminates and removes the project's session.
func (st *Store) End(projectID string) (model.SessionState, error) {
	st.mu.Lock()
	sess, ok := st.sessions[projectID]
	if !ok || sess == nil {
		st.mu.Unlock()
		return model.SessionState{}, ErrSessionNotFound
	}
	delete(st.sessions, projectID)
	st.mu.Unlock()

	state := sess.End()
	st.logger.Info("session ended", zap.String("project", projectID))
	return state, nil
}

// Close tears down every live session.
func (st *Store) Close() {
	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for id, sess := range st.sessions {
		if sess != nil {
			sessions = append(sessions, sess)
		}
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	// Each Close waits for the session's loops to drain, so shutting
	// down many sessions runs concurrently.
	_ = workerpool.Process(context.Background(), closeWorkers, sessions,
		func(_ context.Context, sess *Session) error {
			sess.Close()
			return nil
		}, nil)
}

const closeWorkers = 4
