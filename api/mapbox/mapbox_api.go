package mapbox

import (
	"fm-server/models"
)

// MapboxAPI defines the interface for the Mapbox geocoding API
type MapboxAPI interface {
	GeocodeAddress(address string) (*models.GeocodeResponse, error)
	SetAccessToken(token string)
}
