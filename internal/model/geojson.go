package model

import "encoding/json"

// Feature is a GeoJSON Feature. Geometry is the raw decoded geometry object
// and marshals as JSON null when absent.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties any             `json:"properties"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeature builds a Feature with the GeoJSON type tag set.
func NewFeature(geometry json.RawMessage, properties any) Feature {
	return Feature{Type: "Feature", Geometry: geometry, Properties: properties}
}

// NewFeatureCollection wraps features in a FeatureCollection. A nil slice
// becomes an empty array so clients always receive "features": [].
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// OccupationProperties are the per-feature properties for occupation and
// school-of-study spatial responses.
type OccupationProperties struct {
	GEOID          string   `json:"geoid"`
	Category       string   `json:"category"`
	OpeningsZScore *float64 `json:"openings_2024_zscore"`
	JobsZScore     *float64 `json:"jobs_2024_zscore"`
	OpeningsColor  *string  `json:"openings_2024_zscore_color"`
}

// WageProperties are the per-tract properties for the all-tracts wage
// response, one entry per wage tier.
type WageProperties struct {
	GEOID            string   `json:"geoid"`
	AllJobsZScore    *float64 `json:"all_jobs_zscore"`
	AllJobsCat       *string  `json:"all_jobs_zscore_cat"`
	LivingWageZScore *float64 `json:"living_wage_zscore"`
	LivingWageCat    *string  `json:"living_wage_zscore_cat"`
	NotLivingZScore  *float64 `json:"not_living_wage_zscore"`
	NotLivingCat     *string  `json:"not_living_wage_zscore_cat"`
}

// IsochroneProperties are the per-band properties for isochrone responses.
type IsochroneProperties struct {
	GEOID        string `json:"geoid"`
	TimeCategory string `json:"time_category"`
	Color        string `json:"color"`
}
