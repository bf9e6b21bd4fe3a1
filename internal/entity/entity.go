// Package entity reads the input formats understood on stdin (lat/lon pairs,
// geohashes, WKT, GeoJSON) into a common shape commands can transform.
package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/geoq-cli/geoq/internal/geohash"
)

// ErrUnparseable marks input lines no reader recognised.
var ErrUnparseable = errors.New("unable to parse entity")

// Entity is one parsed input. It remembers its raw text so commands like
// filter can echo survivors byte-for-byte.
type Entity struct {
	raw    string
	format Format
	geom   orb.Geometry
	props  geojson.Properties
	id     interface{}
}

// Raw returns the input text this entity was read from. For features expanded
// out of a FeatureCollection this is the feature's own JSON.
func (e Entity) Raw() string { return e.raw }

// Format returns the detected input format.
func (e Entity) Format() Format { return e.format }

// Geometry returns the entity geometry. Geohashes are their bounding-box
// polygons, lat/lon pairs are points.
func (e Entity) Geometry() orb.Geometry { return e.geom }

// WKT renders the entity geometry as Well-Known Text.
func (e Entity) WKT() string { return wkt.MarshalString(e.geom) }

// Feature returns the entity as a GeoJSON feature. Properties and id from
// feature input are preserved; other formats get an empty property set.
func (e Entity) Feature() *geojson.Feature {
	f := geojson.NewFeature(e.geom)
	if e.props != nil {
		f.Properties = e.props.Clone()
	}
	f.ID = e.id
	return f
}

// ParseLine parses one stdin line into entities. Blank lines yield an empty
// slice. A FeatureCollection expands into one entity per feature.
func ParseLine(line string) ([]Entity, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	format, ok := Detect(trimmed)
	if !ok {
		return nil, fmt.Errorf("%w from input: %q", ErrUnparseable, trimmed)
	}

	switch format {
	case FormatLatLon:
		return parseLatLon(trimmed)
	case FormatGeohash:
		return []Entity{{
			raw:    trimmed,
			format: FormatGeohash,
			geom:   geohash.CellPolygon(trimmed),
		}}, nil
	case FormatWKT:
		return parseWKT(trimmed)
	case FormatGeoJSON:
		return parseGeoJSON(trimmed)
	}
	return nil, fmt.Errorf("%w from input: %q", ErrUnparseable, trimmed)
}

func parseLatLon(line string) ([]Entity, error) {
	parts := strings.SplitN(line, ",", 2)
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude in %q: %v", ErrUnparseable, line, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude in %q: %v", ErrUnparseable, line, err)
	}
	return []Entity{{
		raw:    line,
		format: FormatLatLon,
		geom:   orb.Point{lon, lat},
	}}, nil
}

func parseWKT(line string) ([]Entity, error) {
	geom, err := wkt.Unmarshal(normalizeWKT(line))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid WKT %q: %v", ErrUnparseable, line, err)
	}
	return []Entity{{raw: line, format: FormatWKT, geom: geom}}, nil
}

// normalizeWKT uppercases the geometry type token; the decoder only matches
// uppercase tags but inputs arrive in either case.
func normalizeWKT(line string) string {
	m := wktRe.FindString(line)
	if m == "" {
		return line
	}
	return strings.ToUpper(m) + line[len(m):]
}

func parseGeoJSON(line string) ([]Entity, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(line), &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON %q: %v", ErrUnparseable, line, err)
	}

	switch probe.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid GeoJSON feature: %v", ErrUnparseable, err)
		}
		e, err := fromFeature(f, line)
		if err != nil {
			return nil, err
		}
		return []Entity{e}, nil
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid GeoJSON feature collection: %v", ErrUnparseable, err)
		}
		entities := make([]Entity, 0, len(fc.Features))
		for _, f := range fc.Features {
			// each expanded feature re-serialises to its own raw form
			e, err := fromFeature(f, "")
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
		return entities, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid GeoJSON geometry: %v", ErrUnparseable, err)
		}
		return []Entity{{raw: line, format: FormatGeoJSON, geom: g.Geometry()}}, nil
	}
	return nil, fmt.Errorf("%w: unrecognised GeoJSON type %q", ErrUnparseable, probe.Type)
}

func fromFeature(f *geojson.Feature, raw string) (Entity, error) {
	if f.Geometry == nil {
		return Entity{}, fmt.Errorf("%w: feature has no geometry", ErrUnparseable)
	}
	if raw == "" {
		b, err := json.Marshal(f)
		if err != nil {
			return Entity{}, fmt.Errorf("re-serialise feature: %w", err)
		}
		raw = string(b)
	}
	return Entity{
		raw:    raw,
		format: FormatGeoJSON,
		geom:   f.Geometry,
		props:  f.Properties,
		id:     f.ID,
	}, nil
}

