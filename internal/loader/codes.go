package loader

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/db"
)

// LoadOccupationCodes reads the occupation code workbook (columns: code,
// name) and upserts into jsi_data.occupation_codes. The first row is
// treated as a header and skipped.
func LoadOccupationCodes(ctx context.Context, pool db.Pool, path string) (int64, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return 0, eris.Wrapf(err, "loader: open workbook %s", path)
	}
	if len(f.Sheets) == 0 {
		return 0, eris.Errorf("loader: workbook %s has no sheets", path)
	}
	sheet := f.Sheets[0]

	var total int64
	var skipped int
	for i, row := range sheet.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) < 1 {
			continue
		}
		code := strings.TrimSpace(row.Cells[0].String())
		if code == "" {
			skipped++
			continue
		}
		var name *string
		if len(row.Cells) > 1 {
			if n := strings.TrimSpace(row.Cells[1].String()); n != "" {
				name = &n
			}
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO jsi_data.occupation_codes (occupation_code, occupation_name)
			VALUES ($1, $2)
			ON CONFLICT (occupation_code) DO UPDATE SET occupation_name = EXCLUDED.occupation_name`,
			code, name)
		if err != nil {
			return total, eris.Wrapf(err, "loader: upsert occupation code %s", code)
		}
		total++
	}

	if skipped > 0 {
		zap.L().Warn("loader: skipped workbook rows with empty codes",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return total, nil
}
