package mapbox

import (
	"fmt"
	"net/url"

	"fm-server/api"
	"fm-server/models"
)

// MapboxApiClient embeds the common HTTPClient
type MapboxApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	accessToken     string
}

// NewMapboxApiClient creates a new instance of MapboxApiClient
func NewMapboxApiClient(httpClient *api.HTTPClient) *MapboxApiClient {
	return &MapboxApiClient{
		HTTPClient: httpClient,
	}
}

// SetAccessToken sets the geocoding access token sent with each request.
func (c *MapboxApiClient) SetAccessToken(token string) {
	c.accessToken = token
}

// GeocodeAddress forward-geocodes a free-form address and decodes the
// response into the GeocodeResponse struct
func (c *MapboxApiClient) GeocodeAddress(address string) (*models.GeocodeResponse, error) {
	endpoint := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		url.PathEscape(address), url.QueryEscape(c.accessToken))

	var response models.GeocodeResponse
	err := c.Request("GET", endpoint, nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
