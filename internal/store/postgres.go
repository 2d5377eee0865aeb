package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/db"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/geocodec"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

// PostgresStore implements Store against PostGIS using pgxpool.
type PostgresStore struct {
	pool  db.Pool
	codec geocodec.Codec
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a validated connection pool.
// Every handle acquired from the pool is released by pgx when the query's
// rows are closed, regardless of success or failure.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, codec: geocodec.PostGIS{}}, nil
}

// Pool returns the underlying database pool for use by the batch loaders.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE SCHEMA IF NOT EXISTS jsi_data;

CREATE TABLE IF NOT EXISTS jsi_data.occupation_lvl_data (
	geoid                      TEXT NOT NULL,
	category                   TEXT NOT NULL,
	openings_2024_zscore       DOUBLE PRECISION,
	jobs_2024_zscore           DOUBLE PRECISION,
	openings_2024_zscore_color TEXT,
	geom                       GEOMETRY,
	PRIMARY KEY (geoid, category)
);

CREATE TABLE IF NOT EXISTS jsi_data.occupation_codes (
	occupation_code TEXT PRIMARY KEY,
	occupation_name TEXT
);

CREATE TABLE IF NOT EXISTS jsi_data.school_lvl_data (
	geoid                      TEXT NOT NULL,
	category                   TEXT NOT NULL,
	openings_2024_zscore       DOUBLE PRECISION,
	jobs_2024_zscore           DOUBLE PRECISION,
	openings_2024_zscore_color TEXT,
	geom                       GEOMETRY,
	PRIMARY KEY (geoid, category)
);

CREATE TABLE IF NOT EXISTS jsi_data.school_codes (
	school_code TEXT PRIMARY KEY,
	school_name TEXT
);

CREATE TABLE IF NOT EXISTS jsi_data.tti_clone (
	geoid                  TEXT PRIMARY KEY,
	all_jobs_zscore        DOUBLE PRECISION,
	all_jobs_zscore_cat    TEXT,
	living_wage_zscore     DOUBLE PRECISION,
	living_wage_zscore_cat TEXT,
	not_living_wage_zscore     DOUBLE PRECISION,
	not_living_wage_zscore_cat TEXT,
	geom                   GEOMETRY
);

CREATE TABLE IF NOT EXISTS jsi_data.isochrone_table (
	geoid                TEXT NOT NULL,
	traveltime_category  TEXT NOT NULL,
	geom                 GEOMETRY,
	PRIMARY KEY (geoid, traveltime_category)
);

CREATE INDEX IF NOT EXISTS idx_occupation_lvl_category ON jsi_data.occupation_lvl_data(category);
CREATE INDEX IF NOT EXISTS idx_school_lvl_category ON jsi_data.school_lvl_data(category);
CREATE INDEX IF NOT EXISTS idx_isochrone_geoid ON jsi_data.isochrone_table(geoid);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) OccupationCategories(ctx context.Context) ([]model.CategoryRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT occupation_code, occupation_name
		FROM jsi_data.occupation_codes
		ORDER BY occupation_code`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query occupation categories")
	}
	defer rows.Close()

	var cats []model.CategoryRow
	for rows.Next() {
		var c model.CategoryRow
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan occupation category row")
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate occupation category rows")
	}
	return cats, nil
}

func (s *PostgresStore) OccupationSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	return s.spatialData(ctx, category, `
		SELECT geoid, openings_2024_zscore, jobs_2024_zscore,
		       openings_2024_zscore_color, ST_AsGeoJSON(geom)
		FROM jsi_data.occupation_lvl_data
		WHERE category = $1`)
}

func (s *PostgresStore) OccupationCategoryExists(ctx context.Context, category string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jsi_data.occupation_lvl_data WHERE category = $1)`,
		category,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "postgres: occupation category exists")
	}
	return exists, nil
}

func (s *PostgresStore) SchoolCategories(ctx context.Context) ([]model.CategoryRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT s.category, sc.school_name
		FROM jsi_data.school_lvl_data s
		LEFT JOIN jsi_data.school_codes sc ON s.category = sc.school_code
		ORDER BY s.category`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query school categories")
	}
	defer rows.Close()

	var cats []model.CategoryRow
	for rows.Next() {
		var c model.CategoryRow
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan school category row")
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate school category rows")
	}
	return cats, nil
}

func (s *PostgresStore) SchoolSpatialData(ctx context.Context, category string) ([]model.OccupationRow, error) {
	return s.spatialData(ctx, category, `
		SELECT geoid, openings_2024_zscore, jobs_2024_zscore,
		       openings_2024_zscore_color, ST_AsGeoJSON(geom)
		FROM jsi_data.school_lvl_data
		WHERE category = $1`)
}

func (s *PostgresStore) SchoolCategoryExists(ctx context.Context, category string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jsi_data.school_lvl_data WHERE category = $1)`,
		category,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "postgres: school category exists")
	}
	return exists, nil
}

// spatialData runs a category-filtered query whose columns are
// (geoid, openings zscore, jobs zscore, color, geometry text).
func (s *PostgresStore) spatialData(ctx context.Context, category, sql string) ([]model.OccupationRow, error) {
	rows, err := s.pool.Query(ctx, sql, category)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query spatial data")
	}
	defer rows.Close()

	var out []model.OccupationRow
	for rows.Next() {
		var (
			r   model.OccupationRow
			raw *string
		)
		if err := rows.Scan(&r.GEOID, &r.OpeningsZScore, &r.JobsZScore, &r.OpeningsColor, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan spatial data row")
		}
		r.Category = category
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate spatial data rows")
	}
	return out, nil
}

func (s *PostgresStore) WageData(ctx context.Context) ([]model.WageRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT geoid, all_jobs_zscore, all_jobs_zscore_cat,
		       living_wage_zscore, living_wage_zscore_cat,
		       not_living_wage_zscore, not_living_wage_zscore_cat,
		       ST_AsGeoJSON(geom)
		FROM jsi_data.tti_clone`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query wage data")
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
			return nil, eris.Wrap(err, "postgres: scan wage data row")
		}
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate wage data rows")
	}
	return out, nil
}

// isochroneOrder fixes the band ordering in SQL so physical storage order
// never leaks into responses.
const isochroneOrder = `
	CASE traveltime_category
		WHEN '< 5'   THEN 1
		WHEN '5~10'  THEN 2
		WHEN '10~15' THEN 3
		WHEN '15~20' THEN 4
		WHEN '20~25' THEN 5
		WHEN '25~30' THEN 6
		WHEN '30~45' THEN 7
		WHEN '> 45'  THEN 8
	END`

func (s *PostgresStore) Isochrones(ctx context.Context, geoid string) ([]model.IsochroneRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT geoid, traveltime_category, ST_AsGeoJSON(geom)
		FROM jsi_data.isochrone_table
		WHERE geoid = $1
		ORDER BY`+isochroneOrder,
		geoid)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query isochrones")
	}
	defer rows.Close()

	var out []model.IsochroneRow
	for rows.Next() {
		var (
			r   model.IsochroneRow
			raw *string
		)
		if err := rows.Scan(&r.GEOID, &r.TimeCategory, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan isochrone row")
		}
		if r.Geometry, err = s.codec.Decode(raw); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate isochrone rows")
	}
	return out, nil
}

func (s *PostgresStore) IsochroneExists(ctx context.Context, geoid string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jsi_data.isochrone_table WHERE geoid = $1)`,
		geoid,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "postgres: isochrone exists")
	}
	return exists, nil
}
