package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/shrdlite/internal/logging"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/planner"
	"github.com/aretw0/shrdlite/pkg/ports"
)

// lockTTL bounds how long a replica may hold a world's distributed lock.
const lockTTL = 30 * time.Second

// gate serializes access to one world. The channel carries a single
// token: whoever drains it owns the world. waiters counts holders plus
// queued acquirers so idle gates can be garbage collected.
type gate struct {
	token   chan struct{}
	waiters int
}

// Manager serializes command execution per world: the single-arm model
// admits no concurrency within one world, so everything that reads,
// plans against, or rewrites a stored world goes through its gate.
type Manager struct {
	store ports.WorldStore

	mu    sync.Mutex
	gates map[string]*gate

	locker ports.DistributedLocker // Optional, for multi-replica setups
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new world session manager with the given store.
func NewManager(store ports.WorldStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		gates:  make(map[string]*gate),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying world store, for reads that need no
// serialization (listing, inspection).
func (m *Manager) Store() ports.WorldStore {
	return m.store
}

// lockWorld takes the world's token, creating the gate on first use.
// Unlike a plain mutex, waiting respects context cancellation, so a
// slow command cannot wedge every queued caller forever. The returned
// release function must be called exactly once.
func (m *Manager) lockWorld(ctx context.Context, worldID string) (func(), error) {
	m.mu.Lock()
	g, ok := m.gates[worldID]
	if !ok {
		g = &gate{token: make(chan struct{}, 1)}
		g.token <- struct{}{}
		m.gates[worldID] = g
	}
	g.waiters++
	m.mu.Unlock()

	leave := func() {
		m.mu.Lock()
		g.waiters--
		if g.waiters == 0 {
			delete(m.gates, worldID)
		}
		m.mu.Unlock()
	}

	select {
	case <-g.token:
	case <-ctx.Done():
		leave()
		return nil, ctx.Err()
	}

	return func() {
		g.token <- struct{}{}
		leave()
	}, nil
}

// WithLock executes fn while holding the world's gate, and the
// distributed lock when one is configured.
func (m *Manager) WithLock(ctx context.Context, worldID string, fn func(context.Context) error) error {
	release, err := m.lockWorld(ctx, worldID)
	if err != nil {
		return err
	}
	defer release()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, worldID, lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"world_id", worldID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// LoadOrCreate tries to load a world. If not found, it validates, stores,
// and returns the provided initial state instead.
func (m *Manager) LoadOrCreate(ctx context.Context, worldID string, initial *domain.WorldState) (*domain.WorldState, error) {
	var w *domain.WorldState
	err := m.WithLock(ctx, worldID, func(ctx context.Context) error {
		var err error
		w, err = m.store.Load(ctx, worldID)
		if err == nil {
			return nil
		}

		if err != domain.ErrWorldNotFound {
			return fmt.Errorf("failed to check world existence: %w", err)
		}

		if initial == nil {
			return domain.ErrWorldNotFound
		}
		if err := initial.Validate(); err != nil {
			return fmt.Errorf("invalid initial world: %w", err)
		}

		w = initial.Clone()

		// Persist immediately to reserve the ID
		if err := m.store.Save(ctx, worldID, w); err != nil {
			return fmt.Errorf("failed to initialize world: %w", err)
		}
		return nil
	})
	return w, err
}

// CommandFunc runs the pipeline (interpret + plan) against a loaded
// world and returns the per-interpretation results.
type CommandFunc func(ctx context.Context, w *domain.WorldState) ([]planner.Result, error)

// Execute runs one command against a stored world as a unit: load the
// world under its gate, run the pipeline, and — when apply is set —
// replay the first plan through the state graph and persist the result.
// It returns the pipeline results and the world the command ended on
// (the replayed state when applied, the loaded state otherwise).
func (m *Manager) Execute(ctx context.Context, worldID string, apply bool, run CommandFunc) ([]planner.Result, *domain.WorldState, error) {
	var results []planner.Result
	var final *domain.WorldState

	err := m.WithLock(ctx, worldID, func(ctx context.Context) error {
		w, err := m.store.Load(ctx, worldID)
		if err != nil {
			return err
		}

		results, err = run(ctx, w)
		if err != nil {
			return err
		}
		final = w

		if apply && len(results) > 0 {
			replayed, err := planner.Replay(w, results[0].Plan)
			if err != nil {
				return fmt.Errorf("failed to apply plan: %w", err)
			}
			if err := m.store.Save(ctx, worldID, replayed); err != nil {
				return fmt.Errorf("failed to persist world: %w", err)
			}
			m.logger.Debug("world advanced", "world_id", worldID, "state", replayed.ID())
			final = replayed
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return results, final, nil
}
