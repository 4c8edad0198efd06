package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"fm-server/codec"
	"fm-server/config"
	redisdao "fm-server/dao/redis"
	"fm-server/models"
	services "fm-server/service"
	"fm-server/util"
)

const (
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
)

// CANONICAL_QUERY_HEADER carries the corrected query string so the page
// can rewrite the address bar without a reload.
const CANONICAL_QUERY_HEADER = "X-Canonical-Query"

// MapStateResponse pairs the decoded state with the canonical query the
// page should push via history.replaceState.
type MapStateResponse struct {
	State          models.MapState `json:"state"`
	CanonicalQuery string          `json:"canonical_query"`
}

// VisibleLocation is a location record plus its resolved label flag.
type VisibleLocation struct {
	models.LocationRecord
	ShowLabel bool `json:"show_label"`
}

// MapHandler serves the URL-state, feature, and location endpoints.
type MapHandler struct {
	session   *services.MapSession
	evaluator *services.FilterEvaluator
	mapDao    *redisdao.RedisMapDAO
}

func NewMapHandler(session *services.MapSession, evaluator *services.FilterEvaluator, mapDao *redisdao.RedisMapDAO) *MapHandler {
	return &MapHandler{session: session, evaluator: evaluator, mapDao: mapDao}
}

// GetMapPage serves the static map page.
func (h *MapHandler) GetMapPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, config.GetResourcePath(config.MAP_PAGE_RESOURCE))
}

// GetMapState decodes the query string into the full map state,
// substituting defaults for invalid parameters.
func (h *MapHandler) GetMapState(w http.ResponseWriter, r *http.Request) {
	state, canonical := codec.DecodeQuery(r.URL.Query())
	writeJSON(w, MapStateResponse{
		State:          state,
		CanonicalQuery: canonical.Encode(),
	})
}

// GetFeatures returns the styled GeoJSON feature collection for the
// requested state. An absent city yields an empty collection; an
// unknown city is a 404.
func (h *MapHandler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	state, canonical := codec.DecodeQuery(r.URL.Query())
	w.Header().Set(CANONICAL_QUERY_HEADER, canonical.Encode())

	if state.City == "" {
		writeGeoJSON(w, nil, nil)
		return
	}

	if err := h.session.SelectCity(state.City); err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			log.Printf("[MapHandler] %v", err)
			http.Error(w, "Unknown city", http.StatusNotFound)
			return
		}
		log.Println("[MapHandler] Error loading city features:", err)
		http.Error(w, "City data unavailable", http.StatusServiceUnavailable)
		return
	}

	_, features := h.session.Features()
	fills := h.evaluator.ColorAll(features, state.Filters, state.Buckets)
	writeGeoJSON(w, features, fills)
}

// GetLocations returns the markers visible under the locations toggles,
// with each record's resolved label flag.
func (h *MapHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	state, _ := codec.DecodeQuery(r.URL.Query())

	records, err := h.mapDao.ListLocationRecords()
	if err != nil {
		log.Println("[MapHandler] Error listing locations:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	visible := make([]VisibleLocation, 0, len(records))
	for _, rec := range records {
		if !state.Locations.GroupVisible(rec.Group) {
			continue
		}
		visible = append(visible, VisibleLocation{
			LocationRecord: rec,
			ShowLabel:      state.Locations.LabelsVisible(rec.Group),
		})
	}
	writeJSON(w, visible)
}

// GetLocationsNearby returns markers within radius kilometers of a point.
// Expects ?lat={float}&lon={float}&radius={float}.
func (h *MapHandler) GetLocationsNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := h.parseNearbyArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	records, err := h.mapDao.GetNearbyLocations(lat, lon, radius)
	if err != nil {
		log.Println("[MapHandler] Error loading nearby locations:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

// GetPreview renders the debug chart of the current feature slot.
func (h *MapHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	city, features := h.session.Features()
	records, err := h.mapDao.ListLocationRecords()
	if err != nil {
		log.Println("[MapHandler] Error listing locations for preview:", err)
		records = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotCityPreview(w, city, features, records); err != nil {
		log.Println("[MapHandler] Error rendering preview:", err)
	}
}

// Ping handles GET /ping
func (h *MapHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func (h *MapHandler) parseNearbyArgs(vals url.Values, w http.ResponseWriter) (lat, lon, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeGeoJSON(w http.ResponseWriter, features []models.Feature, fills []string) {
	data, err := models.EncodeFeatureCollection(features, fills)
	if err != nil {
		log.Println("[MapHandler] Error encoding feature collection:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Println("Error writing response:", err)
	}
}
