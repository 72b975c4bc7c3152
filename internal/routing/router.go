package routing

import (
	"context"
	"strings"
	"sync"

	"torque-lite-pro/internal/obd"
	"torque-lite-pro/internal/session"
)

// Consumer receives normalized sessions for a tenant. Implementations must
// tolerate concurrent calls for different vehicles.
type Consumer interface {
	Notify(ctx context.Context, sess *session.Session) error
}

// Route is one logical tenant sharing the physical upload endpoint.
type Route struct {
	TenantID string
	Email    string // lowercased filter; empty means match-by-default only
	Imperial bool
	Language string
	Consumer Consumer
}

// Router maps sender emails to tenant routes. The endpoint is active while
// at least one route is registered.
type Router struct {
	mu            sync.RWMutex
	routes        map[string]Route
	emailToTenant map[string]string
	active        bool
}

// NewRouter constructs an empty, inactive router.
func NewRouter() *Router {
	return &Router{
		routes:        make(map[string]Route),
		emailToTenant: make(map[string]string),
	}
}

// UpsertRoute registers or refreshes the route for a tenant. A previously
// owned email is released first; a non-empty email silently supersedes any
// other tenant that owned it. Marks the endpoint active.
func (r *Router) UpsertRoute(tenantID, email string, consumer Consumer, imperial bool, lang string) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.routes[tenantID]; ok && prev.Email != "" {
		if r.emailToTenant[prev.Email] == tenantID {
			delete(r.emailToTenant, prev.Email)
		}
	}

	r.routes[tenantID] = Route{
		TenantID: tenantID,
		Email:    normalized,
		Imperial: imperial,
		Language: obd.NormalizeLanguage(lang),
		Consumer: consumer,
	}
	if normalized != "" {
		r.emailToTenant[normalized] = tenantID
	}
	r.active = true
}

// RemoveRoute unregisters a tenant and releases its email. The endpoint goes
// inactive when no routes remain.
func (r *Router) RemoveRoute(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.routes[tenantID]; ok && prev.Email != "" {
		if r.emailToTenant[prev.Email] == tenantID {
			delete(r.emailToTenant, prev.Email)
		}
	}
	delete(r.routes, tenantID)
	if len(r.routes) == 0 {
		r.active = false
	}
}

// Resolve picks a route for a sender email. A known email wins; an empty
// email resolves only when exactly one route exists. Anything else is an
// expected miss, not an error.
func (r *Router) Resolve(email string) (Route, bool) {
	key := strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if key != "" {
		if tenantID, ok := r.emailToTenant[key]; ok {
			route, ok := r.routes[tenantID]
			return route, ok
		}
		return Route{}, false
	}
	if len(r.routes) == 1 {
		for _, route := range r.routes {
			return route, true
		}
	}
	return Route{}, false
}

// Active reports whether at least one route is registered.
func (r *Router) Active() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Routes lists the registered routes.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	routes := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	return routes
}
