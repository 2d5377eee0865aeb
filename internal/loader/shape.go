// Package loader ingests the labor-market source files: tract shapefiles
// into the spatial tables and the occupation-code workbook into the name
// lookup. It is the batch-load path; the HTTP API never writes.
package loader

import (
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// shapeToGeom converts a go-shp shape to a go-geom geometry with SRID 4326.
// Unsupported or empty shapes yield nil.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}).SetSRID(4326)
	case *shp.PolyLine:
		return polyLineToMultiLineString(s)
	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	default:
		return nil
	}
}

func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(4326)
	for i := int32(0); i < pl.NumParts; i++ {
		start, end := partRange(pl.Parts, pl.NumParts, i, len(pl.Points))
		ls := geom.NewLineStringFlat(geom.XY, flatCoords(pl.Points[start:end]))
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("loader: skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
		}
	}
	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		start, end := partRange(p.Parts, p.NumParts, i, len(p.Points))
		ring := geom.NewLinearRingFlat(geom.XY, flatCoords(p.Points[start:end]))
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("loader: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("loader: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

func partRange(parts []int32, numParts, i int32, total int) (int32, int32) {
	start := parts[i]
	if i+1 < numParts {
		return start, parts[i+1]
	}
	return start, int32(total)
}

func flatCoords(points []shp.Point) []float64 {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}
