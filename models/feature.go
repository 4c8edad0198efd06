package models

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Feature is one demographic polygon with its two raw child counts.
// Features are immutable once loaded and replaced wholesale on city
// change. Geometry is a *geom.Polygon or *geom.MultiPolygon.
type Feature struct {
	Name     string
	Geometry geom.T
	Kids250k int
	Kids500k int
}

// GeometryType returns "Polygon" or "MultiPolygon".
func (f Feature) GeometryType() string {
	switch f.Geometry.(type) {
	case *geom.MultiPolygon:
		return "MultiPolygon"
	default:
		return "Polygon"
	}
}

// EncodeFeatureCollection renders features as a GeoJSON FeatureCollection.
// When fills is non-nil it must be parallel to features and each value is
// written as the feature's "fill" property for the map client.
func EncodeFeatureCollection(features []Feature, fills []string) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(features))}
	for i, f := range features {
		props := map[string]interface{}{
			"name":      f.Name,
			"kids_250k": f.Kids250k,
			"kids_500k": f.Kids500k,
		}
		if fills != nil {
			props["fill"] = fills[i]
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: props,
		})
	}
	return json.Marshal(&fc)
}

// DecodeFeatureCollection parses a GeoJSON FeatureCollection produced by
// EncodeFeatureCollection back into features. Unknown properties are
// ignored; missing counts default to 0.
func DecodeFeatureCollection(data []byte) ([]Feature, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature collection: %w", err)
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, gf := range fc.Features {
		f := Feature{Geometry: gf.Geometry}
		if name, ok := gf.Properties["name"].(string); ok {
			f.Name = name
		}
		f.Kids250k = propertyCount(gf.Properties, "kids_250k")
		f.Kids500k = propertyCount(gf.Properties, "kids_500k")
		features = append(features, f)
	}
	return features, nil
}

// propertyCount reads a non-negative integer property, tolerating the
// float64 form json.Unmarshal produces for numbers.
func propertyCount(props map[string]interface{}, key string) int {
	switch v := props[key].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case int:
		if v < 0 {
			return 0
		}
		return v
	default:
		return 0
	}
}
