package util

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"

	"fm-server/models"
)

// kidsCountPattern recovers a count from free-text descriptions such as
// "500+ Kids" or ">1200 Kids".
var kidsCountPattern = regexp.MustCompile(`(?i)[<>]?\s*(\d+)\s*\+?\s*Kids`)

// namedCountPatterns recover counts from explicit named fields embedded
// in descriptions, e.g. "kids_250k: 450".
var namedCountPatterns = map[string]*regexp.Regexp{
	"kids_250k": regexp.MustCompile(`(?i)kids_250k\D{0,3}(\d+)`),
	"kids_500k": regexp.MustCompile(`(?i)kids_500k\D{0,3}(\d+)`),
}

// kmlPlacemark is the intermediate form of one parsed Placemark.
type kmlPlacemark struct {
	name     string
	desc     string
	styleURL string
	point    *geom.Coord
	polygons [][][]geom.Coord
	fields   map[string]int
}

// ReadLocationsFromKML parses the point placemarks of a KML file into
// location records. Fetch failures surface as SourceUnavailable.
func ReadLocationsFromKML(path string) ([]models.LocationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.SourceUnavailable{Path: path, Err: err}
	}
	defer f.Close()

	placemarks, err := parsePlacemarks(f)
	if err != nil {
		return nil, &models.SourceUnavailable{Path: path, Err: err}
	}

	var records []models.LocationRecord
	for _, pm := range placemarks {
		if pm.point == nil {
			continue
		}
		records = append(records, models.LocationRecord{
			Longitude:   (*pm.point)[0],
			Latitude:    (*pm.point)[1],
			Name:        pm.name,
			Description: pm.desc,
			Group:       styleGroup(pm.styleURL),
		})
	}
	return records, nil
}

// ReadFeaturesFromKML parses the polygon placemarks of a KML file into
// demographic features. Counts default to 0 when unrecoverable.
func ReadFeaturesFromKML(path string) ([]models.Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.SourceUnavailable{Path: path, Err: err}
	}
	defer f.Close()

	placemarks, err := parsePlacemarks(f)
	if err != nil {
		return nil, &models.SourceUnavailable{Path: path, Err: err}
	}

	var features []models.Feature
	for _, pm := range placemarks {
		if len(pm.polygons) == 0 {
			continue
		}
		geometry, err := buildGeometry(pm.polygons)
		if err != nil {
			log.Printf("[KMLReader] Skipping placemark %q: %v", pm.name, err)
			continue
		}
		features = append(features, models.Feature{
			Name:     pm.name,
			Geometry: geometry,
			Kids250k: pm.kidsCount("kids_250k"),
			Kids500k: pm.kidsCount("kids_500k"),
		})
	}
	return features, nil
}

// parsePlacemarks is a streaming SAX-style pass over the KML document.
func parsePlacemarks(r io.Reader) ([]kmlPlacemark, error) {
	dec := xml.NewDecoder(r)

	var (
		inPlacemark bool
		inPolygon   bool
		current     kmlPlacemark
		placemarks  []kmlPlacemark
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML decode: %v", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Placemark":
				inPlacemark = true
				current = kmlPlacemark{fields: make(map[string]int)}
			case "name":
				if inPlacemark {
					_ = dec.DecodeElement(&current.name, &el)
				}
			case "description":
				if inPlacemark {
					_ = dec.DecodeElement(&current.desc, &el)
				}
			case "styleUrl":
				if inPlacemark {
					_ = dec.DecodeElement(&current.styleURL, &el)
				}
			case "Polygon":
				if inPlacemark {
					inPolygon = true
					current.polygons = append(current.polygons, nil)
				}
			case "coordinates":
				if !inPlacemark {
					continue
				}
				var raw string
				_ = dec.DecodeElement(&raw, &el)
				coords := parseCoordinates(raw)
				if inPolygon {
					if len(coords) >= 3 {
						idx := len(current.polygons) - 1
						current.polygons[idx] = append(current.polygons[idx], closeRing(coords))
					}
				} else if len(coords) > 0 {
					point := coords[0]
					current.point = &point
				}
			case "Data":
				if inPlacemark {
					var data struct {
						Name  string `xml:"name,attr"`
						Value string `xml:"value"`
					}
					if err := dec.DecodeElement(&data, &el); err == nil {
						current.setField(data.Name, data.Value)
					}
				}
			case "SimpleData":
				if inPlacemark {
					var data struct {
						Name  string `xml:"name,attr"`
						Value string `xml:",chardata"`
					}
					if err := dec.DecodeElement(&data, &el); err == nil {
						current.setField(data.Name, data.Value)
					}
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "Polygon":
				inPolygon = false
			case "Placemark":
				if inPlacemark {
					inPlacemark = false
					placemarks = append(placemarks, current)
				}
			}
		}
	}
	return placemarks, nil
}

// kidsCount resolves a tier's count: explicit named field first, then
// the named pattern in the description, then (for the 250k tier only)
// the free-text "N Kids" form. Unrecoverable counts are 0.
func (pm kmlPlacemark) kidsCount(field string) int {
	if n, ok := pm.fields[field]; ok {
		return n
	}
	if m := namedCountPatterns[field].FindStringSubmatch(pm.desc); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if field == "kids_250k" {
		if m := kidsCountPattern.FindStringSubmatch(pm.desc); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

func (pm kmlPlacemark) setField(name, value string) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return
	}
	pm.fields[strings.ToLower(strings.TrimSpace(name))] = n
}

// parseCoordinates splits a KML coordinates blob ("lon,lat[,alt] ...")
// into XY coords. Malformed tuples are dropped.
func parseCoordinates(raw string) []geom.Coord {
	var coords []geom.Coord
	for _, tuple := range strings.Fields(strings.TrimSpace(raw)) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, errLon := strconv.ParseFloat(parts[0], 64)
		lat, errLat := strconv.ParseFloat(parts[1], 64)
		if errLon != nil || errLat != nil {
			continue
		}
		coords = append(coords, geom.Coord{lon, lat})
	}
	return coords
}

// closeRing appends the first point when the ring is not explicitly
// closed.
func closeRing(ring []geom.Coord) []geom.Coord {
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		ring = append(ring, first)
	}
	return ring
}

// buildGeometry assembles a Polygon or MultiPolygon from parsed rings.
func buildGeometry(polygons [][][]geom.Coord) (geom.T, error) {
	valid := make([][][]geom.Coord, 0, len(polygons))
	for _, rings := range polygons {
		if len(rings) > 0 {
			valid = append(valid, rings)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid rings")
	}
	if len(valid) == 1 {
		return geom.NewPolygon(geom.XY).SetCoords(valid[0])
	}
	return geom.NewMultiPolygon(geom.XY).SetCoords(valid)
}

func styleGroup(styleURL string) string {
	if strings.Contains(strings.ToLower(styleURL), models.GROUP_PREFERRED) {
		return models.GROUP_PREFERRED
	}
	return models.GROUP_OTHER
}
