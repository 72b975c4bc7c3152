package session

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"torque-lite-pro/internal/obd"
)

// unknownFieldCap bounds how many unrecognized sensor codes a single payload
// may record; excess fields are dropped silently.
const unknownFieldCap = 80

// Parser turns one upload's flat key/value fields into a normalized session.
// It owns the process-wide last-good-name memory used when the app uploads a
// frame without a usable profile name.
type Parser struct {
	logger *log.Logger
	now    func() time.Time

	mu              sync.Mutex
	lastNameByEmail map[string]string
	lastNameByID    map[string]string
}

// NewParser constructs a parser.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
		lastNameByEmail: make(map[string]string),
		lastNameByID:    make(map[string]string),
	}
}

// Parse builds a normalized session from request fields. It returns nil when
// the payload carries no session identifier; malformed individual fields
// degrade to absent values and never fail the whole payload.
func (p *Parser) Parse(fields map[string]string, lang string, imperial bool) *Session {
	sessionID := strings.TrimSpace(fields["session"])
	if sessionID == "" {
		p.logger.Printf("parser: missing 'session' in payload")
		return nil
	}

	lang = obd.NormalizeLanguage(lang)
	email := strings.TrimSpace(firstField(fields, "eml", "email"))
	vehicleID := strings.TrimSpace(fields["id"])

	values := make(map[string]any)
	meta := make(map[string]Meta)
	unknown := make(map[string]string)

	for key, raw := range fields {
		if key == "" || (key[0] != 'k' && key[0] != 'K') {
			continue
		}
		code := strings.ToLower(key[1:])
		entry, ok := obd.Lookup(code)
		if !ok {
			if len(unknown) < unknownFieldCap {
				unknown[code] = raw
			}
			continue
		}
		if parsed, ok := ParseNumber(raw); ok {
			values[entry.ShortName] = parsed
		} else {
			values[entry.ShortName] = raw
		}
		meta[entry.ShortName] = Meta{
			Name:   obd.Label(lang, entry.FullName),
			Unit:   entry.Unit,
			FullEN: entry.FullName,
			Code:   code,
		}
	}

	p.applyDirectGPS(fields, values, meta, lang)

	profileName := p.resolveProfileName(fields, vehicleID, email, sessionID)

	profile := Profile{
		Name:       profileName,
		ID:         vehicleID,
		Email:      email,
		AppVersion: extractAppVersion(fields),
	}
	if profile.ID == "" {
		profile.ID = Slugify(profileName)
	}

	normalizeTripTimes(values, meta)
	synthesizeEconomy(values, meta, lang)
	scrubNonFinite(values)

	preference := UnitMetric
	if imperial {
		preference = UnitImperial
	}

	session := &Session{
		ID:             sessionID,
		LastSeen:       p.now(),
		Profile:        profile,
		Values:         values,
		Meta:           meta,
		Unknown:        unknown,
		Language:       lang,
		UnitPreference: preference,
	}

	p.rememberName(profileName, profile.ID, email)
	return session
}

// applyDirectGPS parses the bare lat/lon/alt/acc fields some app variants
// send alongside the coded PIDs. Out-of-range coordinates become absent, and
// decoded PID values are never overwritten.
func (p *Parser) applyDirectGPS(fields map[string]string, values map[string]any, meta map[string]Meta, lang string) {
	set := func(short string, value float64, fullEN, unit, code string) {
		if _, exists := values[short]; exists {
			return
		}
		values[short] = value
		if _, exists := meta[short]; !exists {
			meta[short] = Meta{Name: obd.Label(lang, fullEN), Unit: unit, FullEN: fullEN, Code: code}
		}
	}

	if lat, ok := ParseNumber(fields["lat"]); ok && lat >= -90 && lat <= 90 {
		set(obd.ShortGPSLat, lat, "GPS Latitude", "°", "ff1006")
	}
	if lon, ok := ParseNumber(fields["lon"]); ok && lon >= -180 && lon <= 180 {
		set(obd.ShortGPSLon, lon, "GPS Longitude", "°", "ff1005")
	}
	if alt, ok := ParseNumber(firstField(fields, "alt", "altitude")); ok {
		set(obd.ShortGPSAltitude, alt, "GPS Altitude", "m", "ff1010")
	}
	if acc, ok := ParseNumber(firstField(fields, "acc", "accuracy")); ok {
		set(obd.ShortGPSAccuracy, acc, "GPS Accuracy", "m", "ff1239")
	}
}

// resolveProfileName tries, in order: explicit name fields, the remembered
// last-good name for the vehicle id or email, and finally a synthetic name
// from the session id. The result is never empty.
func (p *Parser) resolveProfileName(fields map[string]string, vehicleID, email, sessionID string) string {
	name := explicitProfileName(fields)
	if name == "" || poorName(name) {
		if remembered := p.rememberedName(vehicleID, email); remembered != "" && !poorName(remembered) {
			name = remembered
		}
	}
	if name == "" {
		short := sessionID
		if len(short) > 6 {
			short = short[:6]
		}
		name = "Vehicle " + short
	}
	return name
}

func (p *Parser) rememberedName(vehicleID, email string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if vehicleID != "" {
		if name := p.lastNameByID[vehicleID]; name != "" {
			return name
		}
	}
	if email != "" {
		return p.lastNameByEmail[email]
	}
	return ""
}

func (p *Parser) rememberName(name, vehicleID, email string) {
	if poorName(name) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if email != "" {
		p.lastNameByEmail[email] = name
	}
	if vehicleID != "" {
		p.lastNameByID[vehicleID] = name
	}
}

// profileNameKeys are the key spellings Torque variants use for the profile
// name, compared with case/dot/dash/underscore-insensitive matching.
var profileNameKeys = map[string]struct{}{
	"profilename": {},
	"profile":     {},
	"vehiclename": {},
	"vehicle":     {},
	"carname":     {},
	"car":         {},
	"name":        {},
}

func explicitProfileName(fields map[string]string) string {
	for key, value := range fields {
		if _, ok := profileNameKeys[normalizeKey(key)]; !ok {
			continue
		}
		if name := strings.TrimSpace(value); name != "" {
			return name
		}
	}
	return ""
}

func normalizeKey(key string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(key)))
}

var poorNameRe = regexp.MustCompile(`^\s*vehicle\s*\d+\s*$`)

// poorName reports fallback-looking names: empty, 'vehicle'/'véhicule', or
// the synthetic 'Vehicle 123456' form.
func poorName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return true
	}
	low := strings.ToLower(trimmed)
	if low == "vehicle" || low == "véhicule" {
		return true
	}
	return poorNameRe.MatchString(low)
}

// extractAppVersion prefers explicit app-version keys; the bare protocol
// version fields 'ver'/'v' only count when they look like a version string.
func extractAppVersion(fields map[string]string) string {
	for _, key := range []string{"appVersion", "app_version", "apkVersion", "versionName", "version"} {
		if value := strings.TrimSpace(fields[key]); value != "" {
			return value
		}
	}
	for _, key := range []string{"ver", "v"} {
		value := strings.TrimSpace(fields[key])
		if value != "" && strings.ContainsAny(value, ".-") {
			return value
		}
	}
	return ""
}

// ParseNumber parses a float tolerantly: comma decimal separators are
// accepted, empty strings and non-finite spellings or results are rejected.
func ParseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	switch strings.ToLower(trimmed) {
	case "inf", "+inf", "-inf", "infinity", "nan":
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func firstField(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := fields[key]; strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
