package session

import (
	"io"
	"log"
	"testing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestParse_MissingSessionID(t *testing.T) {
	parser := NewParser(testLogger())
	if sess := parser.Parse(map[string]string{"k04": "42"}, "en", false); sess != nil {
		t.Fatalf("expected nil session without 'session' field, got %+v", sess)
	}
}

func TestParse_DecodesKnownCode(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"k04":     "55.5",
	}, "en", false)
	if sess == nil {
		t.Fatal("expected session")
	}
	if got := sess.Values["engine_load"]; got != 55.5 {
		t.Fatalf("engine_load = %v, want 55.5", got)
	}
	meta := sess.Meta["engine_load"]
	if meta.Unit != "%" || meta.Code != "04" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestParse_CommaDecimalSeparator(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"K04":     "55,5",
	}, "en", false)
	if got := sess.Values["engine_load"]; got != 55.5 {
		t.Fatalf("engine_load = %v, want 55.5", got)
	}
}

func TestParse_NonFiniteBecomesAbsent(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"k04":     "NaN",
		"k05":     "inf",
	}, "en", false)
	if got := sess.Values["engine_load"]; got != nil {
		t.Fatalf("engine_load = %v, want nil", got)
	}
	if got := sess.Values["coolant_temp"]; got != nil {
		t.Fatalf("coolant_temp = %v, want nil", got)
	}
}

func TestParse_UnknownCodeRecorded(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"kdead":   "1",
	}, "en", false)
	if _, ok := sess.Values["dead"]; ok {
		t.Fatal("unknown code must not appear in values")
	}
	if sess.Unknown["dead"] != "1" {
		t.Fatalf("unknown map = %v", sess.Unknown)
	}
}

func TestParse_DirectGPSRangeChecks(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"lat":     "95",
		"lon":     "2.35",
	}, "en", false)
	if _, ok := sess.Values["gpslat"]; ok {
		t.Fatal("out-of-range latitude must be absent")
	}
	if got := sess.Values["gpslon"]; got != 2.35 {
		t.Fatalf("gpslon = %v, want 2.35", got)
	}
}

func TestParse_DirectGPSDoesNotOverwriteCoded(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{
		"session": "abc123",
		"kff1006": "48.85",
		"lat":     "10",
	}, "en", false)
	if got := sess.Values["gpslat"]; got != 48.85 {
		t.Fatalf("gpslat = %v, want coded 48.85", got)
	}
}

func TestParse_SyntheticNameFromSessionID(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{"session": "abcdef123456"}, "en", false)
	if sess.Profile.Name != "Vehicle abcdef" {
		t.Fatalf("name = %q, want synthetic fallback", sess.Profile.Name)
	}
}

func TestParse_RemembersLastGoodName(t *testing.T) {
	parser := NewParser(testLogger())
	first := parser.Parse(map[string]string{
		"session":     "s1",
		"id":          "veh-1",
		"profileName": "Family Wagon",
	}, "en", false)
	if first.Profile.Name != "Family Wagon" {
		t.Fatalf("first name = %q", first.Profile.Name)
	}

	second := parser.Parse(map[string]string{
		"session":     "s2",
		"id":          "veh-1",
		"profileName": "vehicle 2",
	}, "en", false)
	if second.Profile.Name != "Family Wagon" {
		t.Fatalf("second name = %q, want remembered name", second.Profile.Name)
	}
}

func TestParse_RemembersNameByEmail(t *testing.T) {
	parser := NewParser(testLogger())
	parser.Parse(map[string]string{
		"session":     "s1",
		"eml":         "driver@example.com",
		"profileName": "Family Wagon",
	}, "en", false)

	sess := parser.Parse(map[string]string{
		"session": "s2",
		"eml":     "driver@example.com",
	}, "en", false)
	if sess.Profile.Name != "Family Wagon" {
		t.Fatalf("name = %q, want remembered by email", sess.Profile.Name)
	}
}

func TestParse_UnitPreference(t *testing.T) {
	parser := NewParser(testLogger())
	sess := parser.Parse(map[string]string{"session": "s1"}, "en", true)
	if sess.UnitPreference != UnitImperial {
		t.Fatalf("unit preference = %q", sess.UnitPreference)
	}
}

func TestExtractAppVersion(t *testing.T) {
	cases := []struct {
		fields map[string]string
		want   string
	}{
		{map[string]string{"appVersion": "1.12.46"}, "1.12.46"},
		{map[string]string{"version": "1.8"}, "1.8"},
		{map[string]string{"ver": "1.2-beta"}, "1.2-beta"},
		{map[string]string{"ver": "9"}, ""},
		{map[string]string{"v": "9"}, ""},
		{map[string]string{}, ""},
	}
	for _, tc := range cases {
		if got := extractAppVersion(tc.fields); got != tc.want {
			t.Fatalf("extractAppVersion(%v) = %q, want %q", tc.fields, got, tc.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if v, ok := ParseNumber("12,5"); !ok || v != 12.5 {
		t.Fatalf("ParseNumber comma = %v %v", v, ok)
	}
	for _, raw := range []string{"", "abc", "inf", "+inf", "-Inf", "Infinity", "nan"} {
		if _, ok := ParseNumber(raw); ok {
			t.Fatalf("ParseNumber(%q) accepted", raw)
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("My Car 2!"); got != "my_car_2" {
		t.Fatalf("Slugify = %q", got)
	}
}
