package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Locations Refresher config
const LOCATIONS_REFRESHER_SCHEDULE_MINUTES = 60

// Mapbox geocoding API
const MAPBOX_ENDPOINT_BASE = "https://api.mapbox.com"
const MAPBOX_ACCESS_TOKEN_ENV = "MAPBOX_ACCESS_TOKEN"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const LOCATIONS_KML_RESOURCE = "life_time_locations.kml"
const LOCATIONS_CSV_RESOURCE = "Locations.csv"
const GEOCODE_RESPONSE_RESOURCE = "geocode_response.json"
const MAP_PAGE_RESOURCE = "map.html"

// CITY_KML_FILES maps the city query value to its demographic polygon KML.
var CITY_KML_FILES = map[string]string{
	"minneapolis": "minneapolis_income.kml",
	"austin":      "austin_income.kml",
	"charlotte":   "charlotte_income.kml",
}

// URL parameter defaults substituted whenever a parameter fails validation.
const DEFAULT_LOCATIONS_PARAM = "1000"
const DEFAULT_FILTER_250K_PARAM = "1111110"
const DEFAULT_FILTER_500K_PARAM = "1111110"
const DEFAULT_BUCKETS_PARAM = "1500A1250B1000C750D500E0F"

// COLOR_TRANSPARENT is the fill returned when no filter rule matches.
const COLOR_TRANSPARENT = "transparent"

// Bucket fill palettes, highest bucket first to match bucket order.
var TIER_500K_COLORS = [6]string{
	"#b30000", "#e34a33", "#fc8d59", "#fdbb84", "#fdd49e", "#fef0d9",
}
var TIER_250K_COLORS = [6]string{
	"#08519c", "#3182bd", "#6baed6", "#9ecae1", "#c6dbef", "#eff3ff",
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}

// GetMapboxAccessToken reads the geocoding token from the environment.
func GetMapboxAccessToken() string {
	return os.Getenv(MAPBOX_ACCESS_TOKEN_ENV)
}

// GetCityKMLPath resolves a city key to its KML resource path, reporting
// whether the city is configured.
func GetCityKMLPath(city string) (string, bool) {
	file, ok := CITY_KML_FILES[city]
	if !ok {
		return "", false
	}
	return GetResourcePath(file), true
}
