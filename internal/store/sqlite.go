package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/geocodec"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It has no PostGIS,
// so geometry columns hold GeoJSON text and the literal codec validates them
// on the way out. The tables are unqualified; there is no jsi_data schema.
type SQLiteStore struct {
	db    *sql.DB
	codec geocodec.Codec
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, codec: geocodec.Literal{}}, nil
}

// DB returns the underlying handle for test seeding.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS occupation_lvl_data (
	geoid                      TEXT NOT NULL,
	category                   TEXT NOT NULL,
	openings_2024_zscore       REAL,
	jobs_2024_zscore           REAL,
	openings_2024_zscore_color TEXT,
	geom                       TEXT,
	PRIMARY KEY (geoid, category)
);

CREATE TABLE IF NOT EXISTS occupation_codes (
	occupation_code TEXT PRIMARY KEY,
	occupation_name TEXT
);

CREATE TABLE IF NOT EXISTS school_lvl_data (
	geoid                      TEXT NOT NULL,
	category                   TEXT NOT NULL,
	openings_2024_zscore       REAL,
	jobs_2024_zscore           REAL,
	openings_2024_zscore_color TEXT,
	geom                       TEXT,
	PRIMARY KEY (geoid, category)
);

CREATE TABLE IF NOT EXISTS school_codes (
	school_code TEXT PRIMARY KEY,
	school_name TEXT
);

CREATE TABLE IF NOT EXISTS tti_clone (
	geoid                      TEXT PRIMARY KEY,
	all_jobs_zscore            REAL,
	all_jobs_zscore_cat        TEXT,
	living_wage_zscore         REAL,
	living_wage_zscore_cat     TEXT,
	not_living_wage_zscore     REAL,
	not_living_wage_zscore_cat TEXT,
	geom                       TEXT
);

CREATE TABLE IF NOT EXISTS isochrone_table (
	geoid               TEXT NOT NULL,
	traveltime_category TEXT NOT NULL,
	geom                TEXT,
	PRIMARY KEY (geoid, traveltime_category)
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) OccupationCategories(ctx context.Context) ([]model.CategoryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occupation_code, occupation_name
		FROM occupation_codes
		ORDER BY occupation_code`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query occupation categories")
	}
	defer rows.Close()

	var cats []model.CategoryRow
	for rows.Next() {
		var c model.CategoryRow
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan occupation category row")
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate occupation category rows")
	}
	return cats, nil
}

func (s *SQLiteStore) OccupationSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	return s.spatialData(ctx, category, `
		SELECT geoid, openings_2024_zscore, jobs_2024_zscore,
		       openings_2024_zscore_color, geom
		FROM occupation_lvl_data
		WHERE category = ?`)
}

func (s *SQLiteStore) OccupationCategoryExists(ctx context.Context, category string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM occupation_lvl_data WHERE category = ?)`, category)
}

func (s *SQLiteStore) SchoolCategories(ctx context.Context) ([]model.CategoryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT s.category, sc.school_name
		FROM school_lvl_data s
		LEFT JOIN school_codes sc ON s.category = sc.school_code
		ORDER BY s.category`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query school categories")
	}
	defer rows.Close()

	var cats []model.CategoryRow
	for rows.Next() {
		var c model.CategoryRow
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan school category row")
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate school category rows")
	}
	return cats, nil
}

func (s *SQLiteStore) SchoolSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	return s.spatialData(ctx, category, `
		SELECT geoid, openings_2024_zscore, jobs_2024_zscore,
		       openings_2024_zscore_color, geom
		FROM school_lvl_data
		WHERE category = ?`)
}

func (s *SQLiteStore) SchoolCategoryExists(ctx context.Context, category string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM school_lvl_data WHERE category = ?)`, category)
}

func (s *SQLiteStore) spatialData(ctx context.Context, category, query string) ([]model.OccupationRow, error) {
	rows, err := s.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query spatial data")
	}
	defer rows.Close()

	var out []model.OccupationRow
	for rows.Next() {
		var (
			r   model.OccupationRow
			raw *string
		)
		if err := rows.Scan(&r.GEOID, &r.OpeningsZScore, &r.JobsZScore, &r.OpeningsColor, &raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan spatial data row")
		}
		r.Category = category
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate spatial data rows")
	}
	return out, nil
}

func (s *SQLiteStore) WageData(ctx context.Context) ([]model.WageRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT geoid, all_jobs_zscore, all_jobs_zscore_cat,
		       living_wage_zscore, living_wage_zscore_cat,
		       not_living_wage_zscore, not_living_wage_zscore_cat, geom
		FROM tti_clone`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query wage data")
	}
	defer rows.Close()

	var out []model.WageRow
	for rows.Next() {
		var (
			r   model.WageRow
			raw *string
		)
		if err := rows.Scan(
			&r.GEOID, &r.AllJobsZScore, &r.AllJobsCat,
			&r.LivingWageZScore, &r.LivingWageCat,
			&r.NotLivingZScore, &r.NotLivingCat, &raw,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan wage data row")
		}
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate wage data rows")
	}
	return out, nil
}

func (s *SQLiteStore) Isochrones(ctx context.Context, geoid string) ([]model.IsochroneRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT geoid, traveltime_category, geom
		FROM isochrone_table
		WHERE geoid = ?
		ORDER BY`+isochroneOrder,
		geoid)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query isochrones")
	}
	defer rows.Close()

	var out []model.IsochroneRow
	for rows.Next() {
		var (
			r   model.IsochroneRow
			raw *string
		)
		if err := rows.Scan(&r.GEOID, &r.TimeCategory, &raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan isochrone row")
		}
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate isochrone rows")
	}
	return out, nil
}

func (s *SQLiteStore) IsochroneExists(ctx context.Context, geoid string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM isochrone_table WHERE geoid = ?)`, geoid)
}

func (s *SQLiteStore) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, eris.Wrap(err, "sqlite: exists")
	}
	return exists, nil
}
