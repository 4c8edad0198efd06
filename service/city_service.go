package services

import (
	"log"

	"fm-server/config"
	redisdao "fm-server/dao/redis"
	"fm-server/models"
	"fm-server/util"
)

// CityService loads demographic features and location markers, with a
// redis cache-aside in front of the KML parse.
type CityService struct {
	mapDao *redisdao.RedisMapDAO
}

// NewCityService constructs a CityService with its DAO dependency.
func NewCityService(mapDao *redisdao.RedisMapDAO) *CityService {
	return &CityService{mapDao: mapDao}
}

// LoadCityFeatures resolves a city to its feature collection. Unknown
// cities return NotFoundError; parse/fetch failures return
// SourceUnavailable and leave any cached state alone.
func (s *CityService) LoadCityFeatures(city string) ([]models.Feature, error) {
	path, ok := config.GetCityKMLPath(city)
	if !ok {
		return nil, &models.NotFoundError{City: city}
	}

	if features, hit, err := s.mapDao.GetCityFeatures(city); err == nil && hit {
		log.Printf("[CityService] Cache hit for city %s (%d features)", city, len(features))
		return features, nil
	} else if err != nil {
		log.Printf("[CityService] Ignoring unreadable cache for city %s: %v", city, err)
	}

	features, err := util.ReadFeaturesFromKML(path)
	if err != nil {
		return nil, err
	}

	if err := s.mapDao.SetCityFeatures(city, features); err != nil {
		// Cache write failure is not a load failure.
		log.Printf("[CityService] Failed to cache features for city %s: %v", city, err)
	}
	return features, nil
}

// LoadLocationRecords parses the shared locations KML.
func (s *CityService) LoadLocationRecords() ([]models.LocationRecord, error) {
	return util.ReadLocationsFromKML(config.GetResourcePath(config.LOCATIONS_KML_RESOURCE))
}
