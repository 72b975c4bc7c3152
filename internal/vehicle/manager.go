package vehicle

import (
	"log"
	"sync"

	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
)

// Manager owns one State per tenant and builds the consumer chain a tenant
// route dispatches to. The name registry is shared across tenants so a
// vehicle keeps its name when an account is reconfigured.
type Manager struct {
	logger   *log.Logger
	registry *Registry
	extra    routing.Consumer // optional, e.g. the snapshot archiver

	mu     sync.Mutex
	states map[string]*State
}

// NewManager constructs a manager. extra may be nil.
func NewManager(registry *Registry, extra routing.Consumer, logger *log.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		logger:   logger,
		registry: registry,
		extra:    extra,
		states:   make(map[string]*State),
	}
}

// ConsumerFor returns the consumer chain for a tenant, creating its state
// holder on first use.
func (m *Manager) ConsumerFor(tenantID string) (routing.Consumer, error) {
	state, err := m.ensureState(tenantID)
	if err != nil {
		return nil, err
	}
	if m.extra == nil {
		return state, nil
	}
	return NewMultiConsumer(state, m.extra), nil
}

// State returns the state holder for a tenant.
func (m *Manager) State(tenantID string) (*State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[tenantID]
	return state, ok
}

// Snapshots returns the latest session per vehicle across all tenants,
// keyed by tenant id.
func (m *Manager) Snapshots() map[string]map[string]*session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]map[string]*session.Session, len(m.states))
	for tenantID, state := range m.states {
		out[tenantID] = state.Snapshots()
	}
	return out
}

// Forget drops a vehicle from every tenant's state.
func (m *Manager) Forget(vehicleID string) {
	m.mu.Lock()
	states := make([]*State, 0, len(m.states))
	for _, state := range m.states {
		states = append(states, state)
	}
	m.mu.Unlock()
	for _, state := range states {
		state.Forget(vehicleID)
	}
}

// Remove drops a tenant's state holder.
func (m *Manager) Remove(tenantID string) {
	m.mu.Lock()
	delete(m.states, tenantID)
	m.mu.Unlock()
}

func (m *Manager) ensureState(tenantID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[tenantID]; ok {
		return state, nil
	}
	state, err := NewState(m.registry, m.logger)
	if err != nil {
		return nil, err
	}
	m.states[tenantID] = state
	return state, nil
}
