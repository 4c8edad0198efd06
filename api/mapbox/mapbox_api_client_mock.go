package mapbox

import (
	"fmt"

	"fm-server/config"
	"fm-server/models"
	"fm-server/util"
)

// MapboxApiClientMock embeds mocked logic for the mapbox api client
type MapboxApiClientMock struct {
}

// NewMapboxApiClientMock creates a new instance of MapboxApiClientMock
func NewMapboxApiClientMock() *MapboxApiClientMock {
	return &MapboxApiClientMock{}
}

// GeocodeAddress returns the fixture geocode response for any address.
func (c *MapboxApiClientMock) GeocodeAddress(address string) (*models.GeocodeResponse, error) {
	response, err := util.ReadGeocodeResponseFromJSON(config.GetResourcePath(config.GEOCODE_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read geocode response from json")
		return nil, err
	}
	return response, nil
}

// SetAccessToken is a no-op for the mock.
func (c *MapboxApiClientMock) SetAccessToken(token string) {
}
