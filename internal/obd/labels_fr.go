package obd

// frByShortName carries the french labels keyed by shortName. Entries missing
// here fall back to the english full name at lookup time.
var frByShortName = map[string]string{
	"engine_load":                "Charge moteur",
	"coolant_temp":               "Température du liquide de refroidissement",
	"fuel_trim_b1_short":         "Correction carburant banc 1 (court terme)",
	"fuel_trim_b1_long":          "Correction carburant banc 1 (long terme)",
	"fuel_trim_b2_short":         "Correction carburant banc 2 (court terme)",
	"fuel_trim_b2_long":          "Correction carburant banc 2 (long terme)",
	"fuel_pressure":              "Pression de carburant",
	"intake_manifold_pressure":   "Pression du collecteur d'admission",
	"engine_rpm":                 "Régime moteur",
	"speed_obd":                  "Vitesse (OBD)",
	"timing_advance":             "Avance à l'allumage",
	"intake_air_temp":            "Température de l'air d'admission",
	"mass_air_flow_rate":         "Débit massique d'air",
	"throttle_position_manifold": "Position du papillon (collecteur)",
	"run_time_since_start":       "Temps depuis le démarrage moteur",
	"dist_mil_on":                "Distance parcourue voyant MIL allumé",

	"gps_spd":    "Vitesse du véhicule (GPS)",
	"gpslon":     "Longitude GPS",
	"gpslat":     "Latitude GPS",
	"gps_height": "Altitude GPS",
	"gps_acc":    "Précision GPS",

	"mpg_instant":              "Miles par gallon (instantané)",
	"turbo_boost_vacuum_gauge": "Pression turbo & dépression",
	"kpl_instant":              "Kilomètres par litre (instantané)",
	"trip_distance":            "Distance du trajet",
	"mpg_trip_avg":             "MPG moyen du trajet",
	"kpl_trip_avg":             "KPL moyen du trajet",
	"l_per_100_instant":        "Litres aux 100 km (instantané)",
	"l_per_100_trip_avg":       "Litres aux 100 km (moyenne trajet)",
	"trip_distance_stored":     "Distance du trajet (profil véhicule)",
	"accel_x":                  "Accéléromètre (axe X)",
	"accel_y":                  "Accéléromètre (axe Y)",
	"accel_z":                  "Accéléromètre (axe Z)",
	"accel_total":              "Accéléromètre (total)",
	"torque":                   "Couple",
	"horsepower_wheels":        "Puissance (aux roues)",
	"time_0_60mph":             "Temps 0-60 mph",
	"time_0_100kph":            "Temps 0-100 km/h",
	"time_quarter_mile":        "Temps au quart de mile",
	"time_eighth_mile":         "Temps au huitième de mile",
	"spd_diff_gps_obd":         "Écart de vitesse GPS/OBD",
	"voltage_obd_adapter":      "Tension (adaptateur OBD)",
	"gps_satellites":           "Satellites GPS",
	"gps_bearing":              "Cap GPS",
	"time_0_200kph":            "Temps 0-200 km/h",
	"co2_gkm_instant":          "CO₂ en g/km (instantané)",
	"co2_gkm_avg":              "CO₂ en g/km (moyenne)",
	"fuel_flow_rate_min":       "Débit de carburant/minute",
	"fuel_cost_trip":           "Coût carburant (trajet)",
	"fuel_flow_rate_hr":        "Débit de carburant/heure",
	"avg_trip_speed_moving":    "Vitesse moyenne (en mouvement)",
	"trip_time_since_start":    "Durée du trajet (depuis le départ)",
	"trip_time_stationary":     "Durée du trajet (à l'arrêt)",
	"trip_time_moving":         "Durée du trajet (en mouvement)",
	"distance_to_empty_est":    "Autonomie restante (estimée)",
	"fuel_remaining_calc":      "Carburant restant (calculé)",
	"cost_per_km_instant":      "Coût par km (instantané)",
	"cost_per_km_trip":         "Coût par km (trajet)",
	"barometer_android":        "Baromètre (appareil Android)",
	"fuel_used_trip":           "Carburant consommé (trajet)",
	"avg_trip_speed_overall":   "Vitesse moyenne (arrêts inclus)",
	"engine_kw_wheels":         "Puissance moteur en kW (aux roues)",
	"android_battery_level":    "Niveau de batterie de l'appareil Android",
	"mpg_long_term_avg":        "Miles par gallon (moyenne long terme)",
	"kpl_long_term_avg":        "Kilomètres par litre (moyenne long terme)",
	"l_per_100_long_term_avg":  "Litres aux 100 km (moyenne long terme)",
}
