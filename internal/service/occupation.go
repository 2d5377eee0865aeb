// Package service composes the store with caching and response shaping.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/cache"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/store"
)

// Occupation serves occupation category and spatial lookups. The
// code-to-name lookup rarely changes, so it runs through the TTL cache;
// a nil cache disables caching entirely and every call reads the store.
type Occupation struct {
	store store.Store
	cache *cache.Cache
	ttl   time.Duration
}

// NewOccupation creates the occupation service. Pass a nil cache to bypass
// caching (the testing configuration).
func NewOccupation(st store.Store, c *cache.Cache, ttl time.Duration) *Occupation {
	return &Occupation{store: st, cache: c, ttl: ttl}
}

// IDs returns all occupation category codes, ordered by code.
func (s *Occupation) IDs(ctx context.Context) ([]string, error) {
	cats, err := s.WithNames(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.Code
	}
	return ids, nil
}

// WithNames returns code/name pairs ordered by code. A NULL, empty, or
// whitespace-only stored name falls back to the code itself. Results are
// cached with the configured TTL; the cache key is derived from the
// operation name alone since the call takes no arguments.
func (s *Occupation) WithNames(ctx context.Context) ([]model.Category, error) {
	key := cache.Key("occupation_categories")
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			zap.L().Debug("service: occupation name cache hit", zap.String("key", key))
			return v.([]model.Category), nil
		}
	}

	rows, err := s.store.OccupationCategories(ctx)
	if err != nil {
		return nil, err
	}

	cats := make([]model.Category, len(rows))
	for i, r := range rows {
		cats[i] = model.Category{Code: r.Code, Name: displayName(r.Code, r.Name)}
	}

	if s.cache != nil {
		s.cache.Set(key, cats, s.ttl)
	}
	return cats, nil
}

// SpatialData returns the GeoJSON features for one occupation category.
// An empty result is returned as-is; the API layer decides whether that
// means 404.
func (s *Occupation) SpatialData(ctx context.Context, category string) ([]model.Feature, error) {
	rows, err := s.store.OccupationSpatialData(ctx, category)
	if err != nil {
		return nil, err
	}
	return occupationFeatures(rows), nil
}

// occupationFeatures maps occupation/school rows to GeoJSON features.
func occupationFeatures(rows []model.OccupationRow) []model.Feature {
	features := make([]model.Feature, len(rows))
	for i, r := range rows {
		features[i] = model.NewFeature(r.Geometry, model.OccupationProperties{
			GEOID:          r.GEOID,
			Category:       r.Category,
			OpeningsZScore: r.OpeningsZScore,
			JobsZScore:     r.JobsZScore,
			OpeningsColor:  r.OpeningsColor,
		})
	}
	return features
}

// displayName applies the fallback rule: a missing or blank name is
// replaced by the code.
func displayName(code string, name *string) string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return code
	}
	return *name
}
