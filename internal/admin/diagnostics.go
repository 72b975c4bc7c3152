package admin

import (
	"torque-lite-pro/internal/obd"
	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
)

const (
	redactedPlaceholder = "**REDACTED**"

	maxDiagnosticValues  = 120
	maxDiagnosticMeta    = 200
	maxDiagnosticUnknown = 80
)

// redactedValueKeys are measurement keys whose values identify the vehicle or
// its position and never leave the service through diagnostics.
var redactedValueKeys = map[string]struct{}{
	obd.ShortGPSLat:      {},
	obd.ShortGPSLon:      {},
	obd.ShortGPSAltitude: {},
	obd.ShortGPSAccuracy: {},
	"vin":                {},
}

// Diagnostics is a redacted dump of runtime state, safe to attach to a
// support request.
type Diagnostics struct {
	Active      bool                `json:"active"`
	TTLSeconds  int                 `json:"session_ttl_seconds"`
	MaxSessions int                 `json:"max_sessions"`
	Routes      []RouteDiagnostics  `json:"routes"`
	CachedCount int                 `json:"cached_sessions"`
	LastSession *SessionDiagnostics `json:"last_session,omitempty"`
}

// RouteDiagnostics describes one tenant route without its email.
type RouteDiagnostics struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Language string `json:"language"`
	Imperial bool   `json:"imperial"`
}

// SessionDiagnostics is a session with identifying fields redacted and large
// maps truncated.
type SessionDiagnostics struct {
	ID         string            `json:"id"`
	Name       string            `json:"profile_name"`
	AppVersion string            `json:"app_version,omitempty"`
	Language   string            `json:"language"`
	Unit       string            `json:"unit_preference"`
	Values     map[string]any    `json:"values"`
	Meta       map[string]string `json:"meta"`
	Unknown    map[string]string `json:"unknown,omitempty"`
}

// BuildDiagnostics assembles the redacted runtime dump.
func BuildDiagnostics(router *routing.Router, cache *session.Cache, last *session.Session) Diagnostics {
	diag := Diagnostics{Routes: []RouteDiagnostics{}}
	if router != nil {
		diag.Active = router.Active()
		for _, route := range router.Routes() {
			email := ""
			if route.Email != "" {
				email = redactedPlaceholder
			}
			diag.Routes = append(diag.Routes, RouteDiagnostics{
				TenantID: route.TenantID,
				Email:    email,
				Language: route.Language,
				Imperial: route.Imperial,
			})
		}
	}
	if cache != nil {
		ttl, max := cache.Bounds()
		diag.TTLSeconds = int(ttl.Seconds())
		diag.MaxSessions = max
		diag.CachedCount = cache.Len()
	}
	if last != nil {
		diag.LastSession = redactSession(last)
	}
	return diag
}

func redactSession(sess *session.Session) *SessionDiagnostics {
	out := &SessionDiagnostics{
		ID:         redactedPlaceholder,
		Name:       sess.Profile.Name,
		AppVersion: sess.Profile.AppVersion,
		Language:   sess.Language,
		Unit:       string(sess.UnitPreference),
		Values:     make(map[string]any, len(sess.Values)),
		Meta:       make(map[string]string, len(sess.Meta)),
	}
	for key, value := range sess.Values {
		if len(out.Values) >= maxDiagnosticValues {
			break
		}
		if _, hidden := redactedValueKeys[key]; hidden {
			out.Values[key] = redactedPlaceholder
			continue
		}
		out.Values[key] = value
	}
	for key, meta := range sess.Meta {
		if len(out.Meta) >= maxDiagnosticMeta {
			break
		}
		out.Meta[key] = meta.Name + " [" + meta.Unit + "]"
	}
	if len(sess.Unknown) > 0 {
		out.Unknown = make(map[string]string, len(sess.Unknown))
		for key, value := range sess.Unknown {
			if len(out.Unknown) >= maxDiagnosticUnknown {
				break
			}
			out.Unknown[key] = value
		}
	}
	return out
}
