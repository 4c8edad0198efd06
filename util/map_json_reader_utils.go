package util

import (
	"encoding/json"
	"fmt"
	"os"

	"fm-server/models"
)

// ReadGeocodeResponseFromJSON loads a GeocodeResponse from JSON on disk.
func ReadGeocodeResponseFromJSON(filePath string) (*models.GeocodeResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.GeocodeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GeocodeResponse: %w", err)
	}
	return &resp, nil
}
