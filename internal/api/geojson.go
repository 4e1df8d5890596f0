package api

import (
	"github.com/crisisdesk/disaster-response-api/internal/dashboard"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(features []dashboard.MapFeature) FeatureCollection {
	out := make([]Feature, 0, len(features))

	for _, mf := range features {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{mf.Lon, mf.Lat},
			},
			Properties: map[string]any{
				"name":    mf.Name,
				"type":    mf.Type,
				"status":  mf.Status,
				"country": mf.Country,
			},
		}
		out = append(out, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: out,
	}
}
