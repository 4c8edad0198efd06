package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"fm-server/models"
)

// PlotCityPreview renders a debug scatter chart of a city's feature
// centroids and location markers into w as a standalone HTML page.
func PlotCityPreview(w io.Writer, city string, features []models.Feature, locations []models.LocationRecord) error {
	var featurePoints []opts.GeoData
	for _, f := range features {
		bounds := f.Geometry.Bounds()
		featurePoints = append(featurePoints, opts.GeoData{
			Name:  f.Name,
			Value: []float64{(bounds.Min(0) + bounds.Max(0)) / 2, (bounds.Min(1) + bounds.Max(1)) / 2},
		})
	}

	var locationPoints []opts.GeoData
	for _, rec := range locations {
		locationPoints = append(locationPoints, opts.GeoData{
			Name:  rec.Name,
			Value: []float64{rec.Longitude, rec.Latitude},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "City Preview: " + city,
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Features", types.ChartScatter, featurePoints,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	geo.AddSeries("Locations", types.ChartScatter, locationPoints,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	return geo.Render(w)
}
