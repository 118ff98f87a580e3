package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"log/slog"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates park/resume access to instances of one Machine,
// ensuring safe concurrent operations per instance ID. It uses reference
// counting to garbage collect unused locks.
type Manager struct {
	machine *espalier.Machine
	store   ports.TokenStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	instOpts []espalier.InstanceOption // Applied to every instance the manager builds
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithInstanceOptions sets options applied to every instance the manager
// constructs, e.g. a tracer or a logger.
func WithInstanceOptions(opts ...espalier.InstanceOption) Option {
	return func(m *Manager) {
		m.instOpts = opts
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager for the given machine backed by the given
// token store.
func NewManager(machine *espalier.Machine, store ports.TokenStore, opts ...Option) *Manager {
	m := &Manager{
		machine: machine,
		store:   store,
		locks:   make(map[string]*lockEntry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(instanceID)
// after unlocking.
func (m *Manager) acquire(instanceID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[instanceID]
	if !exists {
		entry = &lockEntry{}
		m.locks[instanceID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it
// reaches zero.
func (m *Manager) release(instanceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[instanceID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, instanceID)
	}
}

// Resume rebuilds the instance parked under the given ID. When the ID is
// unknown it returns a fresh instance at the initial state instead, so
// the first Resume of an ID and every later one go through the same call.
func (m *Manager) Resume(ctx context.Context, instanceID string) (*espalier.Instance, error) {
	var inst *espalier.Instance
	err := m.WithLock(ctx, instanceID, func(ctx context.Context) error {
		token, err := m.store.Load(ctx, instanceID)
		if err != nil {
			if !errors.Is(err, domain.ErrInstanceNotFound) {
				return fmt.Errorf("failed to check instance existence: %w", err)
			}
			m.logger.Debug("starting new instance", "instance_id", instanceID)
			inst, err = m.machine.NewInstance(m.instOpts...)
			return err
		}

		m.logger.Debug("resuming instance", "instance_id", instanceID, "token", token)
		opts := make([]espalier.InstanceOption, 0, len(m.instOpts)+1)
		opts = append(opts, m.instOpts...)
		opts = append(opts, espalier.WithToken(token))
		inst, err = m.machine.NewInstance(opts...)
		return err
	})
	return inst, err
}

// Park exports the instance's current state and persists its token under
// the given ID, overwriting any previous token.
func (m *Manager) Park(ctx context.Context, instanceID string, inst *espalier.Instance) error {
	return m.WithLock(ctx, instanceID, func(ctx context.Context) error {
		token, err := inst.Export()
		if err != nil {
			return fmt.Errorf("failed to export instance state: %w", err)
		}
		return m.store.Save(ctx, instanceID, token)
	})
}

// End removes the parked token for the given ID. Ending an unknown ID is
// not an error.
func (m *Manager) End(ctx context.Context, instanceID string) error {
	return m.WithLock(ctx, instanceID, func(ctx context.Context) error {
		return m.store.Delete(ctx, instanceID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying token store.
func (m *Manager) Store() ports.TokenStore {
	return m.store
}

// WithLock executes a function while holding the lock for the instance ID.
func (m *Manager) WithLock(ctx context.Context, instanceID string, fn func(context.Context) error) error {
	entry := m.acquire(instanceID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(instanceID)
	}()

	return fn(ctx)
}
