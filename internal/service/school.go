package service

import (
	"context"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/store"
)

// schoolNames maps the eight school-of-study codes to their full program
// names. The mapping is maintained here, not in the database.
var schoolNames = map[string]string{
	"BHGT": "Business, Hospitality, Governance & Tourism",
	"CAED": "Creative Arts, Entertainment & Design",
	"CE":   "Construction & Engineering",
	"EDU":  "Education",
	"ETMS": "Energy, Technology, Manufacturing & Science",
	"HS":   "Health Services",
	"LPS":  "Legal & Public Services",
	"MIT":  "Management & Information Technology",
}

// SchoolOfStudy serves school-of-study category and spatial lookups.
type SchoolOfStudy struct {
	store store.Store
}

// NewSchoolOfStudy creates the school-of-study service.
func NewSchoolOfStudy(st store.Store) *SchoolOfStudy {
	return &SchoolOfStudy{store: st}
}

// IDs returns the distinct school category codes present in the data,
// ordered by code.
func (s *SchoolOfStudy) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.store.SchoolCategories(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Code
	}
	return ids, nil
}

// Categories returns code/name pairs for the school categories present in
// the data, with the same blank-name fallback as occupations.
func (s *SchoolOfStudy) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.store.SchoolCategories(ctx)
	if err != nil {
		return nil, err
	}
	cats := make([]model.Category, len(rows))
	for i, r := range rows {
		cats[i] = model.Category{Code: r.Code, Name: displayName(r.Code, r.Name)}
	}
	return cats, nil
}

// NameMappings returns the full static code-to-name table.
func (s *SchoolOfStudy) NameMappings() map[string]string {
	out := make(map[string]string, len(schoolNames))
	for k, v := range schoolNames {
		out[k] = v
	}
	return out
}

// SpatialData returns the GeoJSON features for one school category.
func (s *SchoolOfStudy) SpatialData(ctx context.Context, category string) ([]model.Feature, error) {
	rows, err := s.store.SchoolSpatialData(ctx, category)
	if err != nil {
		return nil, err
	}
	return occupationFeatures(rows), nil
}
