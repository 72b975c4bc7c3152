package vehicle

import (
	"strings"
	"sync"
)

// registryEntry is the remembered identity of one vehicle.
type registryEntry struct {
	Name       string
	AppVersion string
}

// Registry remembers the last good display name per vehicle id. It is only
// consulted for display-name fallback; ingestion decisions never depend on it.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// EnsureName settles the display name for a vehicle. A poor uploaded name
// (empty, 'vehicle', or equal to the id) keeps the existing registered name
// when one exists, else falls back to a synthetic 'Vehicle xxxxxx'.
func (r *Registry) EnsureName(vehicleID, rawName, appVersion string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.entries[vehicleID]
	effective := strings.TrimSpace(rawName)
	if poorRegistryName(effective, vehicleID) {
		if existing.Name != "" {
			effective = existing.Name
		} else {
			short := vehicleID
			if len(short) > 6 {
				short = short[:6]
			}
			effective = "Vehicle " + short
		}
	}

	entry := registryEntry{Name: effective, AppVersion: existing.AppVersion}
	if appVersion != "" {
		entry.AppVersion = appVersion
	}
	r.entries[vehicleID] = entry
	return effective
}

// AppVersion returns the last seen app version for a vehicle.
func (r *Registry) AppVersion(vehicleID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[vehicleID].AppVersion
}

// Forget drops a vehicle from the registry.
func (r *Registry) Forget(vehicleID string) {
	r.mu.Lock()
	delete(r.entries, vehicleID)
	r.mu.Unlock()
}

func poorRegistryName(name, vehicleID string) bool {
	if name == "" || name == vehicleID {
		return true
	}
	switch strings.ToLower(name) {
	case "vehicle", "véhicule":
		return true
	}
	return false
}
