package services

import (
	"log"
	"sync"

	"fm-server/models"
)

// featureLoader is the slice of CityService the session depends on.
type featureLoader interface {
	LoadCityFeatures(city string) ([]models.Feature, error)
}

// MapSession owns the single shared feature-data slot. The slot is
// always replaced wholesale on a completed city load, never patched.
// Loads are tagged with the city they target; a load finishing after a
// newer selection is discarded so a stale city's data can never
// overwrite the current one.
type MapSession struct {
	mu       sync.RWMutex
	loader   featureLoader
	selected string
	city     string
	features []models.Feature
}

// NewMapSession constructs a session around a feature loader.
func NewMapSession(loader featureLoader) *MapSession {
	return &MapSession{loader: loader}
}

// SelectCity records the new selection, loads its features, and swaps
// the shared slot if the selection is still current when the load
// completes. A load failure leaves the previous slot untouched.
func (s *MapSession) SelectCity(city string) error {
	s.mu.Lock()
	s.selected = city
	if city == "" {
		// Absent city: no feature layer.
		s.city = ""
		s.features = nil
		s.mu.Unlock()
		return nil
	}
	if s.city == city {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	features, err := s.loader.LoadCityFeatures(city)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != city {
		log.Printf("[MapSession] Discarding stale load for city %s (current selection: %s)", city, s.selected)
		return nil
	}
	s.city = city
	s.features = features
	return nil
}

// Features returns the loaded city and a snapshot of the feature slot.
func (s *MapSession) Features() (string, []models.Feature) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.city, s.features
}
