// Package store provides read access to the jsi_data labor-market tables.
//
// Two implementations share one interface: PostgresStore speaks to
// PostGIS via pgx, SQLiteStore is a lightweight schema-less backend for
// tests that stores GeoJSON text in its geometry columns. Which one runs
// is decided once at startup from store.driver.
package store

import (
	"context"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

// Store defines the read operations the services depend on. Every query
// failure propagates; classification into client-visible status codes
// happens at the API boundary, never here.
type Store interface {
	// OccupationCategories returns all occupation codes with their optional
	// names, ordered by code.
	OccupationCategories(ctx context.Context) ([]model.CategoryRow, error)

	// OccupationSpatialData returns all occupation rows for a category with
	// decoded geometry.
	OccupationSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error)

	// OccupationCategoryExists reports whether any row exists for the category.
	OccupationCategoryExists(ctx context.Context, category string) (bool, error)

	// SchoolCategories returns distinct school-of-study codes with their
	// joined names, ordered by code.
	SchoolCategories(ctx context.Context) ([]model.CategoryRow, error)

	// SchoolSpatialData returns all school-of-study rows for a category.
	SchoolSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error)

	// SchoolCategoryExists reports whether any row exists for the category.
	SchoolCategoryExists(ctx context.Context, category string) (bool, error)

	// WageData returns all three wage-tier metrics for every tract in one pass.
	WageData(ctx context.Context) ([]model.WageRow, error)

	// Isochrones returns the travel-time bands for a tract in canonical
	// band order. The ordering is part of the query, not an application sort.
	Isochrones(ctx context.Context, geoid string) ([]model.IsochroneRow, error)

	// IsochroneExists reports whether any band exists for the geoid.
	IsochroneExists(ctx context.Context, geoid string) (bool, error)

	// Migrate creates the schema and tables if they do not exist.
	Migrate(ctx context.Context) error

	Close() error
}
