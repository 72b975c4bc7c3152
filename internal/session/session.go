package session

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// UnitPreference annotates the display unit system a tenant prefers. It is
// metadata only; values stay in their native metric units.
type UnitPreference string

const (
	UnitMetric   UnitPreference = "metric"
	UnitImperial UnitPreference = "imperial"
)

// Profile identifies the uploading vehicle profile.
type Profile struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Email      string `json:"email"`
	AppVersion string `json:"app_version,omitempty"`
}

// Meta describes one measurement key of a session.
type Meta struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	FullEN string `json:"full_en"`
	Code   string `json:"code"`
}

// Session is one normalized snapshot of a vehicle upload. Values hold
// float64 for parsed numerics, string for raw pass-through, or nil for
// absent; non-finite numbers never survive normalization.
type Session struct {
	ID             string            `json:"id"`
	LastSeen       time.Time         `json:"last_seen"`
	Profile        Profile           `json:"profile"`
	Values         map[string]any    `json:"values"`
	Meta           map[string]Meta   `json:"meta"`
	Unknown        map[string]string `json:"unknown,omitempty"`
	Language       string            `json:"language"`
	UnitPreference UnitPreference    `json:"unit_preference"`
}

// VehicleID returns the stable per-vehicle key: the uploaded vehicle id when
// present, else the slugified profile name.
func (s *Session) VehicleID() string {
	if s == nil {
		return ""
	}
	if s.Profile.ID != "" {
		return s.Profile.ID
	}
	return Slugify(s.Profile.Name)
}

// Slugify lowercases and reduces a display name to a stable identifier.
func Slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// finiteNumber reports whether v is a finite numeric value.
func finiteNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NonFinite reports whether a value is numerically non-finite, or a string
// spelling of one ("inf", "nan", ...).
func NonFinite(v any) bool {
	switch value := v.(type) {
	case float64:
		return math.IsNaN(value) || math.IsInf(value, 0)
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "inf", "+inf", "-inf", "infinity", "nan":
			return true
		}
	}
	return false
}
