package services

import (
	"fmt"
	"log"

	"fm-server/api/mapbox"
	redisdao "fm-server/dao/redis"
	"fm-server/models"
	"fm-server/util"
)

// LocationsImportService rebuilds the locations KML from the source CSV
// sheet: rows with unchanged rank reuse the coordinates already in the
// KML, everything else is geocoded.
type LocationsImportService struct {
	geocoder mapbox.MapboxAPI
	mapDao   *redisdao.RedisMapDAO
}

// NewLocationsImportService constructs the importer with its dependencies.
func NewLocationsImportService(geocoder mapbox.MapboxAPI, mapDao *redisdao.RedisMapDAO) *LocationsImportService {
	return &LocationsImportService{geocoder: geocoder, mapDao: mapDao}
}

// ImportFromCSV merges the CSV sheet with the existing KML, geocodes
// what it must, rewrites the KML, and upserts every record into the geo
// index. Rows without an address are skipped.
func (li *LocationsImportService) ImportFromCSV(csvPath, kmlPath string) error {
	rows, err := util.ReadLocationsCSV(csvPath)
	if err != nil {
		return err
	}
	log.Printf("[LocationsImportService] Found %d locations to process", len(rows))

	existing := make(map[string]models.LocationRecord)
	if prior, err := util.ReadLocationsFromKML(kmlPath); err == nil {
		for _, rec := range prior {
			existing[rec.Name] = rec
		}
	} else {
		log.Printf("[LocationsImportService] No reusable KML at %s: %v", kmlPath, err)
	}

	var records []models.LocationRecord
	for i, row := range rows {
		if row.Address == "" {
			log.Printf("[LocationsImportService] [%d/%d] Skipping %s - no address", i+1, len(rows), row.Organization)
			continue
		}

		rec, ok := li.resolveRow(row, existing[row.Organization])
		if !ok {
			log.Printf("[LocationsImportService] [%d/%d] Failed to geocode: %s", i+1, len(rows), row.Organization)
			continue
		}
		log.Printf("[LocationsImportService] [%d/%d] Processed as %s: %s", i+1, len(rows), rec.Group, rec.Name)
		records = append(records, rec)
	}

	if err := util.WriteLocationsKML(kmlPath, records); err != nil {
		return err
	}
	for _, rec := range records {
		if err := li.mapDao.UpsertLocation(rec); err != nil {
			log.Printf("[LocationsImportService] Failed to upsert %q: %v", rec.Name, err)
		}
	}
	log.Printf("[LocationsImportService] KML file written with %d placemarks", len(records))
	return nil
}

// resolveRow produces the record for one CSV row. Coordinates are reused
// from the existing KML when the rank group is unchanged; otherwise the
// address is geocoded, falling back to the existing coordinates when
// geocoding fails.
func (li *LocationsImportService) resolveRow(row util.LocationCSVRow, prior models.LocationRecord) (models.LocationRecord, bool) {
	group := models.GROUP_OTHER
	if row.Preferred() {
		group = models.GROUP_PREFERRED
	}

	rec := models.LocationRecord{
		Name:        row.Organization,
		Description: buildDescription(row),
		Group:       group,
	}

	hasPrior := prior.Name != ""
	if hasPrior && prior.Group == group {
		rec.Longitude = prior.Longitude
		rec.Latitude = prior.Latitude
		return rec, true
	}

	resp, err := li.geocoder.GeocodeAddress(row.Address)
	if err == nil {
		if lon, lat, ok := resp.Coordinates(); ok {
			rec.Longitude = lon
			rec.Latitude = lat
			return rec, true
		}
	} else {
		log.Printf("[LocationsImportService] Geocode error for %q: %v", row.Address, err)
	}

	if hasPrior {
		rec.Longitude = prior.Longitude
		rec.Latitude = prior.Latitude
		return rec, true
	}
	return models.LocationRecord{}, false
}

// buildDescription renders the marker popup markup from the CSV fields.
func buildDescription(row util.LocationCSVRow) string {
	desc := fmt.Sprintf("\n        <h3>%s</h3>\n        <p><strong>Address:</strong> %s</p>\n        <p><strong>Region:</strong> %s</p>\n",
		row.Organization, row.Address, row.Region)
	if row.Phone != "" {
		desc += fmt.Sprintf("        <p><strong>Phone:</strong> %s</p>\n", row.Phone)
	}
	if row.Website != "" {
		desc += fmt.Sprintf("        <p><strong>Website:</strong> <a href=\"%s\" target=\"_blank\">Visit Website</a></p>\n", row.Website)
	}
	desc += fmt.Sprintf("        <p><strong>Type:</strong> %s</p>\n      ", row.LocationRank)
	return desc
}
