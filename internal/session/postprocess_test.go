package session

import (
	"math"
	"testing"
)

func TestNormalizeTripTimes(t *testing.T) {
	values := map[string]any{"trip_time_since_start": 120.0}
	meta := map[string]Meta{"trip_time_since_start": {Name: "Trip Time", Unit: "s"}}

	normalizeTripTimes(values, meta)
	if values["trip_time_since_start"] != 2.0 {
		t.Fatalf("trip time = %v, want 2 minutes", values["trip_time_since_start"])
	}
	if meta["trip_time_since_start"].Unit != "min" {
		t.Fatalf("unit = %q, want min", meta["trip_time_since_start"].Unit)
	}

	// Keyed on the unit, so a second pass must not halve again.
	normalizeTripTimes(values, meta)
	if values["trip_time_since_start"] != 2.0 {
		t.Fatalf("second pass changed value to %v", values["trip_time_since_start"])
	}
}

func TestSynthesizeEconomy_FromKPL(t *testing.T) {
	values := map[string]any{"kpl_instant": 10.0}
	meta := map[string]Meta{}

	synthesizeEconomy(values, meta, "en")
	if values["l_per_100_instant"] != 10.0 {
		t.Fatalf("l_per_100_instant = %v, want 10", values["l_per_100_instant"])
	}
	if meta["l_per_100_instant"].Unit != "L/100km" {
		t.Fatalf("unit = %q", meta["l_per_100_instant"].Unit)
	}
}

func TestSynthesizeEconomy_FromLPer100(t *testing.T) {
	values := map[string]any{"l_per_100_trip_avg": 5.0}
	meta := map[string]Meta{}

	synthesizeEconomy(values, meta, "en")
	if values["kpl_trip_avg"] != 20.0 {
		t.Fatalf("kpl_trip_avg = %v, want 20", values["kpl_trip_avg"])
	}
}

func TestSynthesizeEconomy_FromMPG(t *testing.T) {
	values := map[string]any{"mpg_long_term_avg": 47.043}
	meta := map[string]Meta{}

	synthesizeEconomy(values, meta, "en")
	got, ok := values["l_per_100_long_term_avg"].(float64)
	if !ok || math.Abs(got-5.0) > 0.001 {
		t.Fatalf("l_per_100_long_term_avg = %v, want ~5", values["l_per_100_long_term_avg"])
	}
}

func TestSynthesizeEconomy_NeverOverwrites(t *testing.T) {
	values := map[string]any{"kpl_instant": 10.0, "l_per_100_instant": 7.7}
	meta := map[string]Meta{}

	synthesizeEconomy(values, meta, "en")
	if values["l_per_100_instant"] != 7.7 {
		t.Fatalf("existing value overwritten: %v", values["l_per_100_instant"])
	}
}

func TestSynthesizeEconomy_IgnoresNonPositive(t *testing.T) {
	values := map[string]any{"kpl_instant": 0.0}
	meta := map[string]Meta{}

	synthesizeEconomy(values, meta, "en")
	if _, ok := values["l_per_100_instant"]; ok {
		t.Fatal("zero source must not synthesize")
	}
}

func TestScrubNonFinite(t *testing.T) {
	values := map[string]any{
		"a": math.NaN(),
		"b": math.Inf(1),
		"c": "nan",
		"d": 1.5,
		"e": "raw",
	}
	scrubNonFinite(values)
	for _, key := range []string{"a", "b", "c"} {
		if values[key] != nil {
			t.Fatalf("values[%q] = %v, want nil", key, values[key])
		}
	}
	if values["d"] != 1.5 || values["e"] != "raw" {
		t.Fatal("finite values must survive scrubbing")
	}
}
