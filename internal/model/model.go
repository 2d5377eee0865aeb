// Package model holds the row and response shapes shared by the stores,
// services, and API layer.
package model

import "encoding/json"

// CategoryRow is a category code with its optional display name as stored
// in the code lookup tables. Name is nil when the lookup has no entry or
// the stored name is NULL.
type CategoryRow struct {
	Code string
	Name *string
}

// Category is a shaped code/name pair ready for client responses.
type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// OccupationRow is one occupation_lvl_data (or school_lvl_data) row with
// its geometry already decoded to GeoJSON. Geometry is nil when the column
// was NULL.
type OccupationRow struct {
	GEOID          string
	Category       string
	OpeningsZScore *float64
	JobsZScore     *float64
	OpeningsColor  *string
	Geometry       json.RawMessage
}

// WageRow is one tti_clone row carrying all three wage-tier metrics.
type WageRow struct {
	GEOID            string
	AllJobsZScore    *float64
	AllJobsCat       *string
	LivingWageZScore *float64
	LivingWageCat    *string
	NotLivingZScore  *float64
	NotLivingCat     *string
	Geometry         json.RawMessage
}

// IsochroneRow is one isochrone_table row for a travel-time band.
type IsochroneRow struct {
	GEOID        string
	TimeCategory string
	Geometry     json.RawMessage
}
