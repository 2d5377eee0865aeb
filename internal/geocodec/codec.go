// Package geocodec converts geometry column values to and from GeoJSON.
//
// Two backends share one contract: PostGIS emits GeoJSON text via
// ST_AsGeoJSON, while the lightweight SQLite backend stores GeoJSON text
// natively. Either way the decoded output is a validated GeoJSON geometry
// object, nil for a NULL column, and a hard error for a present-but-corrupt
// value.
package geocodec

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Codec is the geometry strategy selected once at startup.
type Codec interface {
	// Decode turns a geometry column value into a GeoJSON geometry object.
	// A nil or empty input yields (nil, nil); malformed input is an error.
	Decode(raw *string) (json.RawMessage, error)

	// Encode turns a geometry into the value the backend stores in its
	// geometry column.
	Encode(g geom.T) (any, error)
}

// PostGIS decodes ST_AsGeoJSON output and encodes EWKB for PostGIS
// geometry columns.
type PostGIS struct{}

func (PostGIS) Decode(raw *string) (json.RawMessage, error) {
	return decodeGeoJSON(raw)
}

func (PostGIS) Encode(g geom.T) (any, error) {
	if g == nil {
		return nil, nil
	}
	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geocodec: encode EWKB")
	}
	return data, nil
}

// Literal passes GeoJSON text through in both directions for backends
// without native geometry support.
type Literal struct{}

func (Literal) Decode(raw *string) (json.RawMessage, error) {
	return decodeGeoJSON(raw)
}

func (Literal) Encode(g geom.T) (any, error) {
	if g == nil {
		return nil, nil
	}
	data, err := geojson.Marshal(g)
	if err != nil {
		return nil, eris.Wrap(err, "geocodec: encode GeoJSON")
	}
	return string(data), nil
}

// decodeGeoJSON validates that raw is a well-formed GeoJSON geometry and
// returns it unmodified.
func decodeGeoJSON(raw *string) (json.RawMessage, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := geojson.Unmarshal([]byte(*raw), &g); err != nil {
		return nil, eris.Wrap(err, "geocodec: decode geometry")
	}
	return json.RawMessage(*raw), nil
}
