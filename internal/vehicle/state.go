package vehicle

import (
	"context"
	"errors"
	"log"
	"sync"

	"torque-lite-pro/internal/session"
)

// State holds the latest normalized session per vehicle for one tenant.
// Downstream presentation reads from it; the ingest endpoint writes to it
// through the Consumer interface.
type State struct {
	logger   *log.Logger
	registry *Registry

	mu       sync.RWMutex
	vehicles map[string]*session.Session
}

// NewState constructs a vehicle state holder backed by a name registry.
func NewState(registry *Registry, logger *log.Logger) (*State, error) {
	if registry == nil {
		return nil, errors.New("vehicle state: nil registry")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &State{
		logger:   logger,
		registry: registry,
		vehicles: make(map[string]*session.Session),
	}, nil
}

// Notify stores a session as the vehicle's latest snapshot. Non-finite
// values are scrubbed once more on the way in, and the profile name is
// settled against the registry so a good name is never downgraded. The
// incoming session is shared with the cache, so the settled snapshot is a
// copy and the original is never touched.
func (s *State) Notify(ctx context.Context, sess *session.Session) error {
	_ = ctx
	if sess == nil {
		return errors.New("vehicle state: nil session")
	}

	vehicleID := sess.VehicleID()
	if vehicleID == "" {
		return errors.New("vehicle state: session has no vehicle identity")
	}

	stored := *sess
	stored.Values = make(map[string]any, len(sess.Values))
	for key, value := range sess.Values {
		if session.NonFinite(value) {
			stored.Values[key] = nil
			continue
		}
		stored.Values[key] = value
	}

	effective := s.registry.EnsureName(vehicleID, sess.Profile.Name, sess.Profile.AppVersion)
	if effective != sess.Profile.Name {
		s.logger.Printf("vehicle state: kept registered name %q for %s", effective, vehicleID)
		stored.Profile.Name = effective
	}

	s.mu.Lock()
	s.vehicles[vehicleID] = &stored
	s.mu.Unlock()
	return nil
}

// Snapshot returns the latest session for a vehicle.
func (s *State) Snapshot(vehicleID string) (*session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.vehicles[vehicleID]
	return sess, ok
}

// Value returns one measurement of a vehicle, filtering non-finite values.
func (s *State) Value(vehicleID, key string) any {
	sess, ok := s.Snapshot(vehicleID)
	if !ok {
		return nil
	}
	value := sess.Values[key]
	if session.NonFinite(value) {
		return nil
	}
	return value
}

// Snapshots returns the latest session per vehicle keyed by vehicle id.
func (s *State) Snapshots() map[string]*session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*session.Session, len(s.vehicles))
	for id, sess := range s.vehicles {
		out[id] = sess
	}
	return out
}

// Forget drops a vehicle's snapshot and registry entry.
func (s *State) Forget(vehicleID string) {
	s.mu.Lock()
	delete(s.vehicles, vehicleID)
	s.mu.Unlock()
	s.registry.Forget(vehicleID)
	s.logger.Printf("vehicle state: forgot vehicle %s", vehicleID)
}
