package service

import (
	"context"
	"errors"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

// stubStore implements store.Store with overridable functions so each test
// controls exactly the calls it cares about.
type stubStore struct {
	occupationCategories   func(ctx context.Context) ([]model.CategoryRow, error)
	occupationSpatialData  func(ctx context.Context, category string) ([]model.OccupationRow, error)
	occupationCategoryHits func(ctx context.Context, category string) (bool, error)
	schoolCategories       func(ctx context.Context) ([]model.CategoryRow, error)
	schoolSpatialData      func(ctx context.Context, category string) ([]model.OccupationRow, error)
	schoolCategoryHits     func(ctx context.Context, category string) (bool, error)
	wageData               func(ctx context.Context) ([]model.WageRow, error)
	isochrones             func(ctx context.Context, geoid string) ([]model.IsochroneRow, error)
	isochroneHits          func(ctx context.Context, geoid string) (bool, error)
}

var errNotStubbed = errors.New("not stubbed")

func (s *stubStore) OccupationCategories(ctx context.Context) ([]model.CategoryRow, error) {
	if s.occupationCategories == nil {
		return nil, errNotStubbed
	}
	return s.occupationCategories(ctx)
}

func (s *stubStore) OccupationSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	if s.occupationSpatialData == nil {
		return nil, errNotStubbed
	}
	return s.occupationSpatialData(ctx, category)
}

func (s *stubStore) OccupationCategoryExists(ctx context.Context, category string) (bool, error) {
	if s.occupationCategoryHits == nil {
		return false, errNotStubbed
	}
	return s.occupationCategoryHits(ctx, category)
}

func (s *stubStore) SchoolCategories(ctx context.Context) ([]model.CategoryRow, error) {
	if s.schoolCategories == nil {
		return nil, errNotStubbed
	}
	return s.schoolCategories(ctx)
}

func (s *stubStore) SchoolSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	if s.schoolSpatialData == nil {
		return nil, errNotStubbed
	}
	return s.schoolSpatialData(ctx, category)
}

func (s *stubStore) SchoolCategoryExists(ctx context.Context, category string) (bool, error) {
	if s.schoolCategoryHits == nil {
		return false, errNotStubbed
	}
	return s.schoolCategoryHits(ctx, category)
}

func (s *stubStore) WageData(ctx context.Context) ([]model.WageRow, error) {
	if s.wageData == nil {
		return nil, errNotStubbed
	}
	return s.wageData(ctx)
}

func (s *stubStore) Isochrones(ctx context.Context, geoid string) ([]model.IsochroneRow, error) {
	if s.isochrones == nil {
		return nil, errNotStubbed
	}
	return s.isochrones(ctx, geoid)
}

func (s *stubStore) IsochroneExists(ctx context.Context, geoid string) (bool, error) {
	if s.isochroneHits == nil {
		return false, errNotStubbed
	}
	return s.isochroneHits(ctx, geoid)
}

func (s *stubStore) Migrate(context.Context) error { return nil }
func (s *stubStore) Close() error                  { return nil }

func strPtr(v string) *string   { return &v }
func f64Ptr(v float64) *float64 { return &v }
