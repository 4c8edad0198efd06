package models

// GeocodeResponse is the Mapbox forward-geocoding payload, reduced to
// the fields the importer consumes.
type GeocodeResponse struct {
	Features []GeocodeFeature `json:"features"`
}

// GeocodeFeature is a single geocoding candidate.
type GeocodeFeature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
}

// Coordinates returns the best candidate's lon/lat, reporting whether
// the response contained any usable candidate.
func (r *GeocodeResponse) Coordinates() (lon, lat float64, ok bool) {
	if len(r.Features) == 0 || len(r.Features[0].Center) < 2 {
		return 0, 0, false
	}
	return r.Features[0].Center[0], r.Features[0].Center[1], true
}
