package util

import (
	"fmt"
	"os"
	"strings"

	"fm-server/models"
)

// KML document skeleton with the two marker styles the map client knows.
const KML_HEADER = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Style id="preferred">
      <IconStyle>
        <Icon>
          <href>http://maps.google.com/mapfiles/ms/icons/red-dot.png</href>
        </Icon>
      </IconStyle>
    </Style>
    <Style id="other">
      <IconStyle>
        <Icon>
          <href>http://maps.google.com/mapfiles/ms/icons/blue-dot.png</href>
        </Icon>
      </IconStyle>
    </Style>`

const KML_FOOTER = "\n  </Document>\n</kml>"

// BuildLocationsKML renders location records as a KML document string.
func BuildLocationsKML(records []models.LocationRecord) string {
	var sb strings.Builder
	sb.WriteString(KML_HEADER)
	for _, rec := range records {
		sb.WriteString(buildPlacemark(rec))
	}
	sb.WriteString(KML_FOOTER)
	return sb.String()
}

// WriteLocationsKML writes the rendered document to disk.
func WriteLocationsKML(path string, records []models.LocationRecord) error {
	if err := os.WriteFile(path, []byte(BuildLocationsKML(records)), 0o644); err != nil {
		return fmt.Errorf("failed to write KML file %q: %w", path, err)
	}
	return nil
}

func buildPlacemark(rec models.LocationRecord) string {
	return fmt.Sprintf(`
    <Placemark>
      <name>%s</name>
      <styleUrl>#%s</styleUrl>
      <description><![CDATA[%s]]></description>
      <Point>
        <coordinates>%f,%f</coordinates>
      </Point>
    </Placemark>`,
		xmlEscape(rec.Name), rec.Group, rec.Description, rec.Longitude, rec.Latitude)
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
