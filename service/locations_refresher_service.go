package services

import (
	"log"
	"time"

	"fm-server/config"
	redisdao "fm-server/dao/redis"
	"fm-server/util"
)

// LocationsRefresherService periodically re-parses the locations KML
// into the redis geo index so marker edits on disk show up without a
// restart.
type LocationsRefresherService struct {
	mapDao *redisdao.RedisMapDAO
}

// NewLocationsRefresherService constructs a new Refresher with dependencies.
func NewLocationsRefresherService(mapDao *redisdao.RedisMapDAO) *LocationsRefresherService {
	return &LocationsRefresherService{mapDao: mapDao}
}

// StartPeriodicJob launches the background loop at the given interval.
func (lr *LocationsRefresherService) StartPeriodicJob(interval time.Duration) {
	go lr.startPeriodicJob(interval)
}

func (lr *LocationsRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[LocationsRefresherService] Running periodic locations refresher job.")
		if err := lr.RefreshLocationsData(); err != nil {
			log.Printf("[LocationsRefresherService] RefreshLocationsData returned error: %v", err)
		} else {
			log.Println("[LocationsRefresherService] RefreshLocationsData completed successfully.")
		}
	}
}

// RefreshLocationsData re-parses the locations KML and upserts every
// marker into the geo index. A parse failure leaves the index untouched.
func (lr *LocationsRefresherService) RefreshLocationsData() error {
	path := config.GetResourcePath(config.LOCATIONS_KML_RESOURCE)
	records, err := util.ReadLocationsFromKML(path)
	if err != nil {
		return err
	}

	log.Printf("[LocationsRefresherService] Upserting %d location records", len(records))
	for _, rec := range records {
		if err := lr.mapDao.UpsertLocation(rec); err != nil {
			log.Printf("[LocationsRefresherService] Failed to upsert location %q: %v", rec.Name, err)
		}
	}
	return nil
}
