package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/store"
)

// TravelTime serves the all-tracts wage response and per-tract isochrones.
type TravelTime struct {
	store store.Store
}

// NewTravelTime creates the travel-time service.
func NewTravelTime(st store.Store) *TravelTime {
	return &TravelTime{store: st}
}

// WageFeatures returns one feature per tract carrying all three wage-tier
// metrics.
func (s *TravelTime) WageFeatures(ctx context.Context) ([]model.Feature, error) {
	rows, err := s.store.WageData(ctx)
	if err != nil {
		return nil, err
	}

	features := make([]model.Feature, len(rows))
	for i, r := range rows {
		features[i] = model.NewFeature(r.Geometry, model.WageProperties{
			GEOID:            normalizeGeoid(r.GEOID),
			AllJobsZScore:    r.AllJobsZScore,
			AllJobsCat:       r.AllJobsCat,
			LivingWageZScore: r.LivingWageZScore,
			LivingWageCat:    r.LivingWageCat,
			NotLivingZScore:  r.NotLivingZScore,
			NotLivingCat:     r.NotLivingCat,
		})
	}
	return features, nil
}

// IsochroneFeatures returns the travel-time bands for a tract in canonical
// order, each colored by its band label. Color resolution is total: an
// unrecognized label degrades to the default gray rather than failing.
func (s *TravelTime) IsochroneFeatures(ctx context.Context, geoid string) ([]model.Feature, error) {
	rows, err := s.store.Isochrones(ctx, geoid)
	if err != nil {
		return nil, err
	}

	features := make([]model.Feature, len(rows))
	for i, r := range rows {
		features[i] = model.NewFeature(r.Geometry, model.IsochroneProperties{
			GEOID:        r.GEOID,
			TimeCategory: r.TimeCategory,
			Color:        model.TimeCategoryColor(r.TimeCategory),
		})
	}
	return features, nil
}

// normalizeGeoid strips a stray float suffix from geoids stored as numeric
// text ("48113020100.0" becomes "48113020100"). Non-numeric values pass
// through untouched.
func normalizeGeoid(geoid string) string {
	if !strings.Contains(geoid, ".") {
		return geoid
	}
	f, err := strconv.ParseFloat(geoid, 64)
	if err != nil {
		return geoid
	}
	return strconv.FormatInt(int64(f), 10)
}
