package util

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LocationCSVRow is one row of the Locations.csv source sheet.
type LocationCSVRow struct {
	Organization string
	Address      string
	Region       string
	Phone        string
	Website      string
	LocationRank string
}

// Preferred reports whether the row's rank marks it as a preferred
// location ("Preferred", "preferred partner", ...).
func (r LocationCSVRow) Preferred() bool {
	return strings.Contains(strings.ToLower(r.LocationRank), "preferred")
}

// ReadLocationsCSV loads the locations sheet. The header row names the
// columns; unknown columns are ignored.
func ReadLocationsCSV(path string) ([]LocationCSVRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]LocationCSVRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, LocationCSVRow{
			Organization: field(record, "Organization"),
			Address:      field(record, "Address"),
			Region:       field(record, "Region"),
			Phone:        field(record, "Phone"),
			Website:      field(record, "Website"),
			LocationRank: field(record, "Location Rank"),
		})
	}
	return rows, nil
}
