package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/geocodec"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock, codec: geocodec.PostGIS{}}
	return s, mock
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

const testPolygon = `{"type":"Polygon","coordinates":[[[-97.0,32.0],[-97.0,33.0],[-96.0,33.0],[-96.0,32.0],[-97.0,32.0]]]}`

func TestPostgresStore_OccupationCategories(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT occupation_code, occupation_name\s+FROM jsi_data.occupation_codes\s+ORDER BY occupation_code`).
		WillReturnRows(pgxmock.NewRows([]string{"occupation_code", "occupation_name"}).
			AddRow("11-1021", strPtr("General and Operations Managers")).
			AddRow("15-1251", nil))

	cats, err := s.OccupationCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "11-1021", cats[0].Code)
	require.NotNil(t, cats[0].Name)
	assert.Equal(t, "General and Operations Managers", *cats[0].Name)
	assert.Equal(t, "15-1251", cats[1].Code)
	assert.Nil(t, cats[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_OccupationCategories_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM jsi_data.occupation_codes`).
		WillReturnError(errors.New("connection refused"))

	_, err := s.OccupationCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query occupation categories")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_OccupationSpatialData(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`ST_AsGeoJSON\(geom\)\s+FROM jsi_data.occupation_lvl_data\s+WHERE category = \$1`).
		WithArgs("11-1021").
		WillReturnRows(pgxmock.NewRows([]string{
			"geoid", "openings_2024_zscore", "jobs_2024_zscore", "openings_2024_zscore_color", "st_asgeojson",
		}).
			AddRow("48113020100", f64Ptr(1.5), f64Ptr(-0.3), strPtr("#ff0000"), strPtr(testPolygon)).
			AddRow("48113020200", nil, nil, nil, nil))

	rows, err := s.OccupationSpatialData(context.Background(), "11-1021")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "48113020100", rows[0].GEOID)
	assert.Equal(t, "11-1021", rows[0].Category)
	require.NotNil(t, rows[0].OpeningsZScore)
	assert.Equal(t, 1.5, *rows[0].OpeningsZScore)
	assert.Equal(t, json.RawMessage(testPolygon), rows[0].Geometry)

	// NULL metric columns and NULL geometry survive as nils.
	assert.Nil(t, rows[1].OpeningsZScore)
	assert.Nil(t, rows[1].JobsZScore)
	assert.Nil(t, rows[1].OpeningsColor)
	assert.Nil(t, rows[1].Geometry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_OccupationSpatialData_CorruptGeometry(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM jsi_data.occupation_lvl_data`).
		WithArgs("11-1021").
		WillReturnRows(pgxmock.NewRows([]string{
			"geoid", "openings_2024_zscore", "jobs_2024_zscore", "openings_2024_zscore_color", "st_asgeojson",
		}).AddRow("48113020100", nil, nil, nil, strPtr("{{{not geojson")))

	_, err := s.OccupationSpatialData(context.Background(), "11-1021")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode geometry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_OccupationCategoryExists(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM jsi_data.occupation_lvl_data WHERE category = \$1\)`).
		WithArgs("11-1021").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.OccupationCategoryExists(context.Background(), "11-1021")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SchoolCategories_JoinsNames(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT DISTINCT s.category, sc.school_name\s+FROM jsi_data.school_lvl_data s\s+LEFT JOIN jsi_data.school_codes sc`).
		WillReturnRows(pgxmock.NewRows([]string{"category", "school_name"}).
			AddRow("BHGT", strPtr("Business, Hospitality, Governance & Tourism")).
			AddRow("ZZ", nil))

	cats, err := s.SchoolCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "BHGT", cats[0].Code)
	assert.Nil(t, cats[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WageData(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`ST_AsGeoJSON\(geom\)\s+FROM jsi_data.tti_clone`).
		WillReturnRows(pgxmock.NewRows([]string{
			"geoid", "all_jobs_zscore", "all_jobs_zscore_cat",
			"living_wage_zscore", "living_wage_zscore_cat",
			"not_living_wage_zscore", "not_living_wage_zscore_cat", "st_asgeojson",
		}).AddRow("48113020100.0", f64Ptr(0.7), strPtr("High"), f64Ptr(0.2), strPtr("Medium"), f64Ptr(-1.1), strPtr("Low"), strPtr(testPolygon)))

	rows, err := s.WageData(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "48113020100.0", rows[0].GEOID)
	assert.Equal(t, 0.7, *rows[0].AllJobsZScore)
	assert.Equal(t, "Medium", *rows[0].LivingWageCat)
	assert.Equal(t, json.RawMessage(testPolygon), rows[0].Geometry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Isochrones_OrderedInSQL(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	// The canonical band order is imposed by the CASE expression in the
	// query itself.
	mock.ExpectQuery(`FROM jsi_data.isochrone_table\s+WHERE geoid = \$1\s+ORDER BY\s+CASE traveltime_category`).
		WithArgs("48113020100").
		WillReturnRows(pgxmock.NewRows([]string{"geoid", "traveltime_category", "st_asgeojson"}).
			AddRow("48113020100", "< 5", strPtr(testPolygon)).
			AddRow("48113020100", "5~10", nil))

	rows, err := s.Isochrones(context.Background(), "48113020100")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "< 5", rows[0].TimeCategory)
	assert.Equal(t, "5~10", rows[1].TimeCategory)
	assert.Nil(t, rows[1].Geometry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_IsochroneExists_False(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM jsi_data.isochrone_table WHERE geoid = \$1\)`).
		WithArgs("99999999999").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := s.IsochroneExists(context.Background(), "99999999999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS jsi_data`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
