package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	redisdao "fm-server/dao/redis"
	"fm-server/db"
	"fm-server/models"
	"fm-server/util"
)

type stubGeocoder struct {
	coords map[string][2]float64 // address -> [lon, lat]
	err    error
	calls  []string
}

func (g *stubGeocoder) GeocodeAddress(address string) (*models.GeocodeResponse, error) {
	g.calls = append(g.calls, address)
	if g.err != nil {
		return nil, g.err
	}
	c, ok := g.coords[address]
	if !ok {
		return &models.GeocodeResponse{}, nil
	}
	return &models.GeocodeResponse{
		Features: []models.GeocodeFeature{{Center: []float64{c[0], c[1]}}},
	}, nil
}

func (g *stubGeocoder) SetAccessToken(token string) {}

func writeTempCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.csv")
	content := "Organization,Address,Region,Phone,Website,Location Rank\n"
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				content += ","
			}
			content += field
		}
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestImportFromCSV_GeocodesNewRows(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][2]float64{
		"600 Hennepin Ave": {-93.276, 44.979},
		"1200 Main St":     {-93.100, 44.950},
	}}
	dao := redisdao.NewRedisMapDAO(db.NewMockRedisClient(context.Background()))
	importer := NewLocationsImportService(geocoder, dao)

	csvPath := writeTempCSV(t, [][]string{
		{"Life Time Target Center", "600 Hennepin Ave", "Twin Cities", "", "", "Preferred Partner"},
		{"Community Rec Center", "1200 Main St", "Twin Cities", "555-0100", "", "Standard"},
	})
	kmlPath := filepath.Join(t.TempDir(), "locations.kml")

	if err := importer.ImportFromCSV(csvPath, kmlPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Len(t, geocoder.calls, 2)

	records, err := util.ReadLocationsFromKML(kmlPath)
	if err != nil {
		t.Fatalf("expected readable KML, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 placemarks, got %d", len(records))
	}
	assert.Equal(t, models.GROUP_PREFERRED, records[0].Group)
	assert.InDelta(t, -93.276, records[0].Longitude, 1e-5)
	assert.Equal(t, models.GROUP_OTHER, records[1].Group)

	stored, err := dao.ListLocationRecords()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Len(t, stored, 2)
}

func TestImportFromCSV_ReusesCoordinatesWhenGroupUnchanged(t *testing.T) {
	kmlPath := filepath.Join(t.TempDir(), "locations.kml")
	prior := []models.LocationRecord{{
		Name:      "Life Time Target Center",
		Longitude: -93.276,
		Latitude:  44.979,
		Group:     models.GROUP_PREFERRED,
	}}
	if err := util.WriteLocationsKML(kmlPath, prior); err != nil {
		t.Fatalf("failed to seed KML: %v", err)
	}

	geocoder := &stubGeocoder{}
	dao := redisdao.NewRedisMapDAO(db.NewMockRedisClient(context.Background()))
	importer := NewLocationsImportService(geocoder, dao)

	csvPath := writeTempCSV(t, [][]string{
		{"Life Time Target Center", "600 Hennepin Ave", "Twin Cities", "", "", "Preferred Partner"},
	})

	if err := importer.ImportFromCSV(csvPath, kmlPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Same name and same rank group: the geocoder is never consulted.
	assert.Empty(t, geocoder.calls)

	records, err := util.ReadLocationsFromKML(kmlPath)
	if err != nil {
		t.Fatalf("expected readable KML, got %v", err)
	}
	assert.InDelta(t, -93.276, records[0].Longitude, 1e-5)
	assert.InDelta(t, 44.979, records[0].Latitude, 1e-5)
}

func TestImportFromCSV_GroupChangeFallsBackToPriorCoordinates(t *testing.T) {
	kmlPath := filepath.Join(t.TempDir(), "locations.kml")
	prior := []models.LocationRecord{{
		Name:      "Life Time Target Center",
		Longitude: -93.276,
		Latitude:  44.979,
		Group:     models.GROUP_OTHER,
	}}
	if err := util.WriteLocationsKML(kmlPath, prior); err != nil {
		t.Fatalf("failed to seed KML: %v", err)
	}

	// Rank flipped to preferred and geocoding is down: coordinates come
	// from the prior record, the group from the sheet.
	geocoder := &stubGeocoder{err: fmt.Errorf("geocoding unavailable")}
	dao := redisdao.NewRedisMapDAO(db.NewMockRedisClient(context.Background()))
	importer := NewLocationsImportService(geocoder, dao)

	csvPath := writeTempCSV(t, [][]string{
		{"Life Time Target Center", "600 Hennepin Ave", "Twin Cities", "", "", "Preferred Partner"},
	})

	if err := importer.ImportFromCSV(csvPath, kmlPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Len(t, geocoder.calls, 1)

	records, err := util.ReadLocationsFromKML(kmlPath)
	if err != nil {
		t.Fatalf("expected readable KML, got %v", err)
	}
	assert.Equal(t, models.GROUP_PREFERRED, records[0].Group)
	assert.InDelta(t, -93.276, records[0].Longitude, 1e-5)
}

func TestImportFromCSV_DropsUnresolvableRows(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][2]float64{
		"600 Hennepin Ave": {-93.276, 44.979},
	}}
	dao := redisdao.NewRedisMapDAO(db.NewMockRedisClient(context.Background()))
	importer := NewLocationsImportService(geocoder, dao)

	csvPath := writeTempCSV(t, [][]string{
		{"Life Time Target Center", "600 Hennepin Ave", "Twin Cities", "", "", "Preferred Partner"},
		{"No Address Gym", "", "Twin Cities", "", "", "Standard"},
		{"Unknown Place", "1 Nowhere Ln", "Twin Cities", "", "", "Standard"},
	})
	kmlPath := filepath.Join(t.TempDir(), "locations.kml")

	if err := importer.ImportFromCSV(csvPath, kmlPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Rows without an address are skipped before geocoding; rows the
	// geocoder cannot place and no prior KML covers are dropped.
	records, err := util.ReadLocationsFromKML(kmlPath)
	if err != nil {
		t.Fatalf("expected readable KML, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 placemark, got %d", len(records))
	}
	assert.Equal(t, "Life Time Target Center", records[0].Name)
}
