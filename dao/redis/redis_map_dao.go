package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"fm-server/db"
	"fm-server/models"
)

const LOCATIONS_GEO_KEY_V1 = "locations_geo_v1"
const LOCATIONS_GEO_MEMBER_FORMAT_V1 = "locations_geo_place_v1:%s"

// CITY_FEATURES_KEY_FORMAT_V1 caches the parsed feature collection per city.
const CITY_FEATURES_KEY_FORMAT_V1 = "city_features_v1:%s"

// RedisMapDAO handles location markers and cached city features in Redis.
type RedisMapDAO struct {
	client db.RedisClient
}

// NewRedisMapDAO initializes a RedisMapDAO with the Redis client.
func NewRedisMapDAO(client db.RedisClient) *RedisMapDAO {
	return &RedisMapDAO{client: client}
}

// UpsertLocation stores a location marker in the geo index together with
// its JSON record.
func (dao *RedisMapDAO) UpsertLocation(rec models.LocationRecord) error {
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(LOCATIONS_GEO_MEMBER_FORMAT_V1, slug(rec.Name))
	return dao.client.AddLocationWithJSON(ctx, LOCATIONS_GEO_KEY_V1, memberKey, rec.Latitude, rec.Longitude, rec)
}

// GetNearbyLocations retrieves markers within radius kilometers.
func (dao *RedisMapDAO) GetNearbyLocations(lat, lon, radius float64) ([]models.LocationRecord, error) {
	recordsJSON, err := dao.client.GetLocationsWithinRadius(LOCATIONS_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisMapDAO] failed to get locations: %v", err)
	}

	records := make([]models.LocationRecord, len(recordsJSON))
	for i, recJSON := range recordsJSON {
		if err := json.Unmarshal([]byte(recJSON), &records[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location JSON: %v", err)
		}
	}
	return records, nil
}

// ListLocationRecords returns every stored location marker.
func (dao *RedisMapDAO) ListLocationRecords() ([]models.LocationRecord, error) {
	pattern := fmt.Sprintf(LOCATIONS_GEO_MEMBER_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list location keys: %w", err)
	}

	records := make([]models.LocationRecord, 0, len(keys))
	for _, key := range keys {
		data, err := dao.client.Get(key)
		if err != nil {
			log.Printf("[RedisMapDAO] Skipping location %s: %v", key, err)
			continue
		}
		var rec models.LocationRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location JSON: %v", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SetCityFeatures caches a city's parsed feature collection.
func (dao *RedisMapDAO) SetCityFeatures(city string, features []models.Feature) error {
	data, err := models.EncodeFeatureCollection(features, nil)
	if err != nil {
		return fmt.Errorf("failed to encode features for city %s: %w", city, err)
	}
	key := fmt.Sprintf(CITY_FEATURES_KEY_FORMAT_V1, city)
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set city features in redis: %w", err)
	}
	return nil
}

// GetCityFeatures retrieves a city's cached feature collection. The
// second return value reports a cache hit; a miss is not an error.
func (dao *RedisMapDAO) GetCityFeatures(city string) ([]models.Feature, bool, error) {
	key := fmt.Sprintf(CITY_FEATURES_KEY_FORMAT_V1, city)
	data, err := dao.client.Get(key)
	if err != nil {
		// Cache miss (redis.Nil or mock key-not-found).
		return nil, false, nil
	}
	features, err := models.DecodeFeatureCollection([]byte(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode cached features for city %s: %w", city, err)
	}
	return features, true, nil
}

// DeleteCityFeatures drops a city's cached feature collection.
func (dao *RedisMapDAO) DeleteCityFeatures(city string) error {
	key := fmt.Sprintf(CITY_FEATURES_KEY_FORMAT_V1, city)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete city features key %s: %w", key, err)
	}
	log.Printf("[RedisMapDAO] Deleted cached features for %s", city)
	return nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
