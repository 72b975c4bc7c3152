package session

import "torque-lite-pro/internal/obd"

// mpgToLPer100 converts a miles-per-gallon figure into litres per 100 km:
// 100 * litres_per_gallon / km_per_mile.
const mpgToLPer100 = 235.215

// tripTimeShortNames are uploaded in seconds and displayed in minutes.
var tripTimeShortNames = map[string]struct{}{
	"trip_time_since_start": {},
	"trip_time_stationary":  {},
	"trip_time_moving":      {},
}

// normalizeTripTimes converts the trip-duration measurements from seconds to
// minutes. Keyed on the current unit, so applying it twice is a no-op.
func normalizeTripTimes(values map[string]any, meta map[string]Meta) {
	for short, m := range meta {
		if _, ok := tripTimeShortNames[short]; !ok || m.Unit != "s" {
			continue
		}
		if v, ok := finiteNumber(values[short]); ok {
			values[short] = v / 60.0
			m.Unit = "min"
			meta[short] = m
		}
	}
}

// economyContext binds the three shortNames of one fuel-economy context.
type economyContext struct {
	kpl, lPer100, mpg    string
	lPer100Full, kplFull string
}

var economyContexts = []economyContext{
	{
		kpl: "kpl_long_term_avg", lPer100: "l_per_100_long_term_avg", mpg: "mpg_long_term_avg",
		lPer100Full: "Litres Per 100 Kilometer(Long Term Average)",
		kplFull:     "Kilometers Per Litre(Long Term Average)",
	},
	{
		kpl: "kpl_trip_avg", lPer100: "l_per_100_trip_avg", mpg: "mpg_trip_avg",
		lPer100Full: "Trip average Litres/100 KM",
		kplFull:     "Trip average KPL",
	},
	{
		kpl: "kpl_instant", lPer100: "l_per_100_instant", mpg: "mpg_instant",
		lPer100Full: "Litres Per 100 Kilometer(Instant)",
		kplFull:     "Kilometers Per Litre(Instant)",
	},
}

// synthesizeEconomy derives L/100km from kpl or mpg (and kpl from L/100km)
// per context when exactly one side is present. Existing finite values are
// never overwritten; only positive sources are usable.
func synthesizeEconomy(values map[string]any, meta map[string]Meta, lang string) {
	add := func(short string, value float64, unit, fullEN string) {
		if _, ok := finiteNumber(values[short]); ok {
			return
		}
		values[short] = value
		if _, ok := meta[short]; !ok {
			meta[short] = Meta{Name: obd.Label(lang, fullEN), Unit: unit, FullEN: fullEN, Code: ""}
		}
	}

	for _, ctx := range economyContexts {
		kpl, hasKPL := finiteNumber(values[ctx.kpl])
		lPer100, hasL100 := finiteNumber(values[ctx.lPer100])
		mpg, hasMPG := finiteNumber(values[ctx.mpg])

		switch {
		case hasKPL && !hasL100 && kpl > 0:
			add(ctx.lPer100, 100.0/kpl, "L/100km", ctx.lPer100Full)
		case hasL100 && !hasKPL && lPer100 > 0:
			add(ctx.kpl, 100.0/lPer100, "kpl", ctx.kplFull)
		case hasMPG && !hasL100 && mpg > 0:
			add(ctx.lPer100, mpgToLPer100/mpg, "L/100km", ctx.lPer100Full)
		}
	}
}

// scrubNonFinite collapses any remaining non-finite numeric to absent.
func scrubNonFinite(values map[string]any) {
	for key, value := range values {
		if NonFinite(value) {
			values[key] = nil
		}
	}
}
