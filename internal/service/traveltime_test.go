package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

func TestTravelTime_WageFeatures_NormalizesGeoid(t *testing.T) {
	st := &stubStore{
		wageData: func(context.Context) ([]model.WageRow, error) {
			return []model.WageRow{
				{GEOID: "48113020100.0", AllJobsZScore: f64Ptr(0.7)},
				{GEOID: "48113020200"},
			}, nil
		},
	}
	svc := NewTravelTime(st)

	features, err := svc.WageFeatures(context.Background())
	require.NoError(t, err)
	require.Len(t, features, 2)

	first := features[0].Properties.(model.WageProperties)
	second := features[1].Properties.(model.WageProperties)
	assert.Equal(t, "48113020100", first.GEOID)
	assert.Equal(t, "48113020200", second.GEOID)
	assert.Equal(t, 0.7, *first.AllJobsZScore)
}

func TestTravelTime_IsochroneFeatures_Colors(t *testing.T) {
	st := &stubStore{
		isochrones: func(_ context.Context, geoid string) ([]model.IsochroneRow, error) {
			return []model.IsochroneRow{
				{GEOID: geoid, TimeCategory: "< 5"},
				{GEOID: geoid, TimeCategory: "5~10"},
				{GEOID: geoid, TimeCategory: "45~60"}, // outside the canonical set
			}, nil
		},
	}
	svc := NewTravelTime(st)

	features, err := svc.IsochroneFeatures(context.Background(), "48113020100")
	require.NoError(t, err)
	require.Len(t, features, 3)

	colors := make([]string, len(features))
	for i, f := range features {
		colors[i] = f.Properties.(model.IsochroneProperties).Color
	}
	assert.Equal(t, []string{"#1a9850", "#66bd63", model.DefaultTimeCategoryColor}, colors)
}

func TestTravelTime_IsochroneFeatures_PreservesStoreOrder(t *testing.T) {
	st := &stubStore{
		isochrones: func(_ context.Context, geoid string) ([]model.IsochroneRow, error) {
			return []model.IsochroneRow{
				{GEOID: geoid, TimeCategory: "< 5"},
				{GEOID: geoid, TimeCategory: "20~25"},
				{GEOID: geoid, TimeCategory: "> 45"},
			}, nil
		},
	}
	svc := NewTravelTime(st)

	features, err := svc.IsochroneFeatures(context.Background(), "48113020100")
	require.NoError(t, err)
	cats := make([]string, len(features))
	for i, f := range features {
		cats[i] = f.Properties.(model.IsochroneProperties).TimeCategory
	}
	assert.Equal(t, []string{"< 5", "20~25", "> 45"}, cats)
}

func TestNormalizeGeoid(t *testing.T) {
	cases := map[string]string{
		"48113020100.0":  "48113020100",
		"48113020100":    "48113020100",
		"48113020100.00": "48113020100",
		"not-a-number.x": "not-a-number.x",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeGeoid(in), "input %q", in)
	}
}
