package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureCollection_NilBecomesEmptyArray(t *testing.T) {
	fc := NewFeatureCollection(nil)

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestNewFeature_NullGeometry(t *testing.T) {
	f := NewFeature(nil, IsochroneProperties{GEOID: "48113020100", TimeCategory: "< 5", Color: "#1a9850"})

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "Feature",
		"geometry": null,
		"properties": {"geoid": "48113020100", "time_category": "< 5", "color": "#1a9850"}
	}`, string(data))
}

func TestFeature_GeometryEmbeddedVerbatim(t *testing.T) {
	geometry := json.RawMessage(`{"type":"Point","coordinates":[-96.8,32.78]}`)
	f := NewFeature(geometry, OccupationProperties{GEOID: "48113020100", Category: "11-1021"})

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var parsed struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "Point", parsed.Geometry.Type)
	assert.Equal(t, []float64{-96.8, 32.78}, parsed.Geometry.Coordinates)
}

func TestOccupationProperties_NullableFieldsMarshalAsNull(t *testing.T) {
	data, err := json.Marshal(OccupationProperties{GEOID: "48113020100", Category: "11-1021"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"geoid": "48113020100",
		"category": "11-1021",
		"openings_2024_zscore": null,
		"jobs_2024_zscore": null,
		"openings_2024_zscore_color": null
	}`, string(data))
}

func TestWageProperties_FieldNames(t *testing.T) {
	z := 1.5
	cat := "High"
	data, err := json.Marshal(WageProperties{
		GEOID:         "48113020100",
		AllJobsZScore: &z,
		AllJobsCat:    &cat,
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{
		"geoid", "all_jobs_zscore", "all_jobs_zscore_cat",
		"living_wage_zscore", "living_wage_zscore_cat",
		"not_living_wage_zscore", "not_living_wage_zscore_cat",
	} {
		_, ok := m[k]
		assert.True(t, ok, "missing key %q", k)
	}
	assert.Equal(t, 1.5, m["all_jobs_zscore"])
	assert.Equal(t, "High", m["all_jobs_zscore_cat"])
}
