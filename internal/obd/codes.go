package obd

import "strings"

// Well-known shortNames for GPS fields, shared with the parser and the
// vehicle state holder.
const (
	ShortGPSLat      = "gpslat"
	ShortGPSLon      = "gpslon"
	ShortGPSAltitude = "gps_height"
	ShortGPSAccuracy = "gps_acc"
)

// Entry describes one Torque PID code.
type Entry struct {
	ShortName string
	FullName  string
	Unit      string
}

// Lookup resolves a wire code (case-insensitive) to its entry.
func Lookup(code string) (Entry, bool) {
	entry, ok := codes[strings.ToLower(strings.TrimSpace(code))]
	return entry, ok
}

// codes maps Torque PID codes to semantic descriptors. Units are the native
// metric units the app uploads in; no conversion happens at ingestion.
var codes = map[string]Entry{
	"04": {ShortName: "engine_load", FullName: "Engine Load", Unit: "%"},
	"05": {ShortName: "coolant_temp", FullName: "Engine Coolant Temperature", Unit: "°C"},
	"06": {ShortName: "fuel_trim_b1_short", FullName: "Fuel Trim Bank 1 Short Term", Unit: "%"},
	"07": {ShortName: "fuel_trim_b1_long", FullName: "Fuel Trim Bank 1 Long Term", Unit: "%"},
	"08": {ShortName: "fuel_trim_b2_short", FullName: "Fuel Trim Bank 2 Short Term", Unit: "%"},
	"09": {ShortName: "fuel_trim_b2_long", FullName: "Fuel Trim Bank 2 Long Term", Unit: "%"},
	"0a": {ShortName: "fuel_pressure", FullName: "Fuel pressure", Unit: "kPa"},
	"0b": {ShortName: "intake_manifold_pressure", FullName: "Intake Manifold Pressure", Unit: "kPa"},
	"0c": {ShortName: "engine_rpm", FullName: "Engine RPM", Unit: "rpm"},
	"0d": {ShortName: "speed_obd", FullName: "Speed (OBD)", Unit: "km/h"},
	"0e": {ShortName: "timing_advance", FullName: "Timing Advance", Unit: "°"},
	"0f": {ShortName: "intake_air_temp", FullName: "Intake Air Temperature", Unit: "°C"},
	"10": {ShortName: "mass_air_flow_rate", FullName: "Mass Air Flow Rate", Unit: "g/s"},
	"11": {ShortName: "throttle_position_manifold", FullName: "Throttle Position (Manifold)", Unit: "%"},
	"1f": {ShortName: "run_time_since_start", FullName: "Run time since engine start", Unit: "s"},
	"21": {ShortName: "dist_mil_on", FullName: "Distance travelled with MIL/CEL lit", Unit: "km"},

	"ff1001": {ShortName: "gps_spd", FullName: "Vehicle Speed (GPS)", Unit: "km/h"},
	"ff1005": {ShortName: ShortGPSLon, FullName: "GPS Longitude", Unit: "°"},
	"ff1006": {ShortName: ShortGPSLat, FullName: "GPS Latitude", Unit: "°"},
	"ff1010": {ShortName: ShortGPSAltitude, FullName: "GPS Altitude", Unit: "m"},
	"ff1239": {ShortName: ShortGPSAccuracy, FullName: "GPS Accuracy", Unit: "m"},

	"ff1201": {ShortName: "mpg_instant", FullName: "Miles Per Gallon(Instant)", Unit: "mpg"},
	"ff1202": {ShortName: "turbo_boost_vacuum_gauge", FullName: "Turbo Boost & Vacuum Gauge", Unit: "psi"},
	"ff1203": {ShortName: "kpl_instant", FullName: "Kilometers Per Litre(Instant)", Unit: "kpl"},
	"ff1204": {ShortName: "trip_distance", FullName: "Trip Distance", Unit: "km"},
	"ff1205": {ShortName: "mpg_trip_avg", FullName: "Trip average MPG", Unit: "mpg"},
	"ff1206": {ShortName: "kpl_trip_avg", FullName: "Trip average KPL", Unit: "kpl"},
	"ff1207": {ShortName: "l_per_100_instant", FullName: "Litres Per 100 Kilometer(Instant)", Unit: "L/100km"},
	"ff1208": {ShortName: "l_per_100_trip_avg", FullName: "Trip average Litres/100 KM", Unit: "L/100km"},
	"ff120c": {ShortName: "trip_distance_stored", FullName: "Trip distance (stored in vehicle profile)", Unit: "km"},
	"ff1214": {ShortName: "o2_b1s1_voltage", FullName: "O2 {O2L:1} Voltage", Unit: "V"},
	"ff1215": {ShortName: "o2_b1s2_voltage", FullName: "O2 {O2L:2} Voltage", Unit: "V"},
	"ff1216": {ShortName: "o2_b1s3_voltage", FullName: "O2 {O2L:3} Voltage", Unit: "V"},
	"ff1217": {ShortName: "o2_b1s4_voltage", FullName: "O2 {O2L:4} Voltage", Unit: "V"},
	"ff1218": {ShortName: "o2_b2s1_voltage", FullName: "O2 {O2L:5} Voltage", Unit: "V"},
	"ff1219": {ShortName: "o2_b2s2_voltage", FullName: "O2 {O2L:6} Voltage", Unit: "V"},
	"ff121a": {ShortName: "o2_b2s3_voltage", FullName: "O2 {O2L:7} Voltage", Unit: "V"},
	"ff121b": {ShortName: "o2_b2s4_voltage", FullName: "O2 {O2L:8} Voltage", Unit: "V"},
	"ff1220": {ShortName: "accel_x", FullName: "Acceleration Sensor(X axis)", Unit: "g"},
	"ff1221": {ShortName: "accel_y", FullName: "Acceleration Sensor(Y axis)", Unit: "g"},
	"ff1222": {ShortName: "accel_z", FullName: "Acceleration Sensor(Z axis)", Unit: "g"},
	"ff1223": {ShortName: "accel_total", FullName: "Acceleration Sensor(Total)", Unit: "g"},
	"ff1225": {ShortName: "torque", FullName: "Torque", Unit: "ft-lb"},
	"ff1226": {ShortName: "horsepower_wheels", FullName: "Horsepower (At the wheels)", Unit: "hp"},
	"ff122d": {ShortName: "time_0_60mph", FullName: "0-60mph Time", Unit: "s"},
	"ff122e": {ShortName: "time_0_100kph", FullName: "0-100kph Time", Unit: "s"},
	"ff122f": {ShortName: "time_quarter_mile", FullName: "1/4 mile time", Unit: "s"},
	"ff1230": {ShortName: "time_eighth_mile", FullName: "1/8 mile time", Unit: "s"},
	"ff1237": {ShortName: "spd_diff_gps_obd", FullName: "GPS vs OBD Speed difference", Unit: "km/h"},
	"ff1238": {ShortName: "voltage_obd_adapter", FullName: "Voltage (OBD Adapter)", Unit: "V"},
	"ff123a": {ShortName: "gps_satellites", FullName: "GPS Satellites"},
	"ff123b": {ShortName: "gps_bearing", FullName: "GPS Bearing", Unit: "°"},
	"ff1240": {ShortName: "o2_o2l1_wide_eq_ratio", FullName: "O2 {O2L:1} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1241": {ShortName: "o2_o2l2_wide_eq_ratio", FullName: "O2 {O2L:2} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1242": {ShortName: "o2_o2l3_wide_eq_ratio", FullName: "O2 {O2L:3} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1243": {ShortName: "o2_o2l4_wide_eq_ratio", FullName: "O2 {O2L:4} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1244": {ShortName: "o2_o2l5_wide_eq_ratio", FullName: "O2 {O2L:5} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1245": {ShortName: "o2_o2l6_wide_eq_ratio", FullName: "O2 {O2L:6} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1246": {ShortName: "o2_o2l7_wide_eq_ratio", FullName: "O2 {O2L:7} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1247": {ShortName: "o2_o2l8_wide_eq_ratio", FullName: "O2 {O2L:8} Wide Range Equivalence Ratio", Unit: "λ"},
	"ff1249": {ShortName: "air_fuel_ratio_measured", FullName: "Air Fuel Ratio(Measured)", Unit: ":1"},
	"ff124d": {ShortName: "air_fuel_ratio_commanded", FullName: "Air Fuel Ratio(Commanded)", Unit: ":1"},
	"ff124f": {ShortName: "time_0_200kph", FullName: "0-200kph Time", Unit: "s"},
	"ff1257": {ShortName: "co2_gkm_instant", FullName: "CO₂ in g/km (Instantaneous)", Unit: "g/km"},
	"ff1258": {ShortName: "co2_gkm_avg", FullName: "CO₂ in g/km (Average)", Unit: "g/km"},
	"ff125a": {ShortName: "fuel_flow_rate_min", FullName: "Fuel flow rate/minute", Unit: "cc/min"},
	"ff125c": {ShortName: "fuel_cost_trip", FullName: "Fuel cost (trip)", Unit: "cost"},
	"ff125d": {ShortName: "fuel_flow_rate_hr", FullName: "Fuel flow rate/hour", Unit: "L/hr"},
	"ff125e": {ShortName: "time_60_120mph", FullName: "60-120mph Time", Unit: "s"},
	"ff125f": {ShortName: "time_60_80mph", FullName: "60-80mph Time", Unit: "s"},
	"ff1260": {ShortName: "time_40_60mph", FullName: "40-60mph Time", Unit: "s"},
	"ff1261": {ShortName: "time_80_100mph", FullName: "80-100mph Time", Unit: "s"},
	"ff1263": {ShortName: "avg_trip_speed_moving", FullName: "Average trip speed(whilst moving only)", Unit: "km/h"},
	"ff1264": {ShortName: "time_100_0kph", FullName: "100-0kph Time", Unit: "s"},
	"ff1265": {ShortName: "time_60_0mph", FullName: "60-0mph Time", Unit: "s"},
	"ff1266": {ShortName: "trip_time_since_start", FullName: "Trip Time(Since journey start)", Unit: "s"},
	"ff1267": {ShortName: "trip_time_stationary", FullName: "Trip time(whilst stationary)", Unit: "s"},
	"ff1268": {ShortName: "trip_time_moving", FullName: "Trip time(whilst moving)", Unit: "s"},
	"ff1269": {ShortName: "volumetric_efficiency_calc", FullName: "Volumetric Efficiency (Calculated)", Unit: "%"},
	"ff126a": {ShortName: "distance_to_empty_est", FullName: "Distance to empty (Estimated)", Unit: "km"},
	"ff126b": {ShortName: "fuel_remaining_calc", FullName: "Fuel Remaining (Calculated from vehicle profile)", Unit: "%"},
	"ff126d": {ShortName: "cost_per_km_instant", FullName: "Cost per mile/km (Instant)", Unit: "€/km"},
	"ff126e": {ShortName: "cost_per_km_trip", FullName: "Cost per mile/km (Trip)", Unit: "€/km"},
	"ff1270": {ShortName: "barometer_android", FullName: "Barometer (on Android device)", Unit: "mb"},
	"ff1271": {ShortName: "fuel_used_trip", FullName: "Fuel used (trip)", Unit: "L"},
	"ff1272": {ShortName: "avg_trip_speed_overall", FullName: "Average trip speed(whilst stopped or moving)", Unit: "km/h"},
	"ff1273": {ShortName: "engine_kw_wheels", FullName: "Engine kW (At the wheels)", Unit: "kW"},
	"ff1275": {ShortName: "time_80_120kph", FullName: "80-120kph Time", Unit: "s"},
	"ff1276": {ShortName: "time_60_130mph", FullName: "60-130mph Time", Unit: "s"},
	"ff1277": {ShortName: "time_0_30mph", FullName: "0-30mph Time", Unit: "s"},
	"ff1278": {ShortName: "time_0_100mph", FullName: "0-100mph Time", Unit: "s"},
	"ff1280": {ShortName: "time_100_200kph", FullName: "100-200kph Time", Unit: "s"},
	"ff1282": {ShortName: "egt_b1_s2", FullName: "Exhaust gas temp Bank 1 Sensor 2", Unit: "°C"},
	"ff1283": {ShortName: "egt_b1_s3", FullName: "Exhaust gas temp Bank 1 Sensor 3", Unit: "°C"},
	"ff1284": {ShortName: "egt_b1_s4", FullName: "Exhaust gas temp Bank 1 Sensor 4", Unit: "°C"},
	"ff1286": {ShortName: "egt_b2_s2", FullName: "Exhaust gas temp Bank 2 Sensor 2", Unit: "°C"},
	"ff1287": {ShortName: "egt_b2_s3", FullName: "Exhaust gas temp Bank 2 Sensor 3", Unit: "°C"},
	"ff1288": {ShortName: "egt_b2_s4", FullName: "Exhaust gas temp Bank 2 Sensor 4", Unit: "°C"},
	"ff128a": {ShortName: "nox_post_scr", FullName: "NOx Post SCR", Unit: "ppm"},
	"ff1296": {ShortName: "pct_city_driving", FullName: "Percentage of City driving", Unit: "%"},
	"ff1297": {ShortName: "pct_highway_driving", FullName: "Percentage of Highway driving", Unit: "%"},
	"ff1298": {ShortName: "pct_idle_driving", FullName: "Percentage of Idle driving", Unit: "%"},
	"ff129a": {ShortName: "android_battery_level", FullName: "Android device Battery Level", Unit: "%"},
	"ff129b": {ShortName: "dpf_b1_outlet_temp", FullName: "DPF Bank 1 Outlet Temperature", Unit: "°C"},
	"ff129c": {ShortName: "dpf_b2_inlet_temp", FullName: "DPF Bank 2 Inlet Temperature", Unit: "°C"},
	"ff129d": {ShortName: "dpf_b2_outlet_temp", FullName: "DPF Bank 2 Outlet Temperature", Unit: "°C"},
	"ff129e": {ShortName: "maf_sensor_b", FullName: "Mass air flow sensor B", Unit: "g/s"},

	"ff12a1": {ShortName: "intake_manifold_abs_pressure_b", FullName: "Intake Manifold Abs Pressure B", Unit: "kPa"},
	"ff12a4": {ShortName: "boost_pressure_commanded_b", FullName: "Boost Pressure Commanded B", Unit: "kPa"},
	"ff12a5": {ShortName: "boost_pressure_sensor_a", FullName: "Boost Pressure Sensor A", Unit: "kPa"},
	"ff12a6": {ShortName: "boost_pressure_sensor_b", FullName: "Boost Pressure Sensor B", Unit: "kPa"},
	"ff12ab": {ShortName: "exhaust_pressure_b2", FullName: "Exhaust Pressure Bank 2", Unit: "kPa"},

	"ff12b0": {ShortName: "dpf_b1_inlet_pressure", FullName: "DPF Bank 1 Inlet Pressure", Unit: "kPa"},
	"ff12b1": {ShortName: "dpf_b1_outlet_pressure", FullName: "DPF Bank 1 Outlet Pressure", Unit: "kPa"},
	"ff12b2": {ShortName: "dpf_b2_inlet_pressure", FullName: "DPF Bank 2 Inlet Pressure", Unit: "kPa"},
	"ff12b3": {ShortName: "dpf_b2_outlet_pressure", FullName: "DPF Bank 2 Outlet Pressure", Unit: "kPa"},
	"ff12b4": {ShortName: "hybrid_ev_batt_current", FullName: "Hybrid/EV System Battery Current", Unit: "A"},
	"ff12b5": {ShortName: "hybrid_ev_batt_power", FullName: "Hybrid/EV System Battery Power", Unit: "W"},
	"ff12b6": {ShortName: "positive_kinetic_energy_pke", FullName: "Positive Kinetic Energy (PKE)", Unit: "km/hr^2"},

	"ff5201": {ShortName: "mpg_long_term_avg", FullName: "Miles Per Gallon(Long Term Average)", Unit: "mpg"},
	"ff5202": {ShortName: "kpl_long_term_avg", FullName: "Kilometers Per Litre(Long Term Average)", Unit: "kpl"},
	"ff5203": {ShortName: "l_per_100_long_term_avg", FullName: "Litres Per 100 Kilometer(Long Term Average)", Unit: "L/100km"},
}
