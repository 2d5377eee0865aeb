package loader

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/db"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/geocodec"
)

const copyBatchSize = 5000

// wage tract shapefile attribute names, matching the upstream export.
var wageColumns = []string{
	"geoid",
	"all_jobs_zscore", "all_jobs_zscore_cat",
	"living_wage_zscore", "living_wage_zscore_cat",
	"not_living_wage_zscore", "not_living_wage_zscore_cat",
}

var wageFields = []string{"GEOID", "ALL_ZS", "ALL_CAT", "LW_ZS", "LW_CAT", "NLW_ZS", "NLW_CAT"}

// isochrone shapefile attribute names.
var isochroneColumns = []string{"geoid", "traveltime_category"}

var isochroneFields = []string{"GEOID", "TT_CAT"}

// LoadWageTracts reads a wage tract shapefile and bulk-loads it into
// jsi_data.tti_clone, replacing existing rows.
func LoadWageTracts(ctx context.Context, pool db.Pool, codec geocodec.Codec, path string) (int64, error) {
	rows, err := parseShapefile(path, wageFields, codec, true)
	if err != nil {
		return 0, err
	}
	if _, err := pool.Exec(ctx, `TRUNCATE jsi_data.tti_clone`); err != nil {
		return 0, eris.Wrap(err, "loader: truncate tti_clone")
	}
	return bulkLoad(ctx, pool, "tti_clone", append(wageColumns, "geom"), rows)
}

// LoadIsochrones reads an isochrone band shapefile and bulk-loads it into
// jsi_data.isochrone_table, replacing existing rows.
func LoadIsochrones(ctx context.Context, pool db.Pool, codec geocodec.Codec, path string) (int64, error) {
	rows, err := parseShapefile(path, isochroneFields, codec, false)
	if err != nil {
		return 0, err
	}
	if _, err := pool.Exec(ctx, `TRUNCATE jsi_data.isochrone_table`); err != nil {
		return 0, eris.Wrap(err, "loader: truncate isochrone_table")
	}
	return bulkLoad(ctx, pool, "isochrone_table", append(isochroneColumns, "geom"), rows)
}

// parseShapefile reads every record, mapping the named DBF fields to row
// values and appending an encoded geometry column. Records with missing or
// unsupported geometry are skipped, not fatal: a partial batch load is
// recoverable, a poisoned one is not. When numericFirst is set, numeric
// attribute fields (all but the leading geoid and any *_cat field) are
// parsed as floats.
func parseShapefile(path string, fields []string, codec geocodec.Codec, numericFirst bool) ([][]any, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}

	var rows [][]any
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		row := make([]any, 0, len(fields)+1)
		for n, field := range fields {
			idx, ok := fieldIdx[field]
			if !ok {
				row = append(row, nil)
				continue
			}
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
			if val == "" {
				row = append(row, nil)
				continue
			}
			if numericFirst && n > 0 && !strings.HasSuffix(field, "_CAT") {
				f, convErr := strconv.ParseFloat(val, 64)
				if convErr != nil {
					row = append(row, nil)
					continue
				}
				row = append(row, f)
				continue
			}
			row = append(row, val)
		}

		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			continue
		}
		encoded, encErr := codec.Encode(g)
		if encErr != nil {
			skipped++
			continue
		}
		row = append(row, encoded)
		rows = append(rows, row)
	}

	if skipped > 0 {
		zap.L().Warn("loader: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return rows, nil
}

// bulkLoad COPYs rows into a jsi_data table in batches.
func bulkLoad(ctx context.Context, pool db.Pool, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	log := zap.L().With(
		zap.String("component", "loader"),
		zap.String("table", "jsi_data."+table),
		zap.Int("total_rows", len(rows)),
	)

	var total int64
	for i := 0; i < len(rows); i += copyBatchSize {
		end := min(i+copyBatchSize, len(rows))
		n, err := pool.CopyFrom(
			ctx,
			pgx.Identifier{"jsi_data", table},
			columns,
			pgx.CopyFromRows(rows[i:end]),
		)
		if err != nil {
			return total, eris.Wrapf(err, "loader: COPY into jsi_data.%s (batch %d-%d)", table, i, end)
		}
		total += n
		log.Debug("batch loaded", zap.Int("batch_start", i), zap.Int64("batch_rows", n))
	}
	return total, nil
}
