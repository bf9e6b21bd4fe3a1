package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	shapefile "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Shp reads an ESRI shapefile and prints one GeoJSON Feature per shape,
// with DBF attributes as properties. Z and M values are flattened away.
// Reads no stdin.
func Shp(ctx context.Context, env Env, args []string) error {
	if len(args) != 1 {
		return Usagef("shp requires the path to a .shp file")
	}

	r, err := shapefile.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	for r.Next() {
		row, s := r.Shape()
		geom, err := shapeGeometry(s)
		if err != nil {
			return fmt.Errorf("shape %d: %w", row, err)
		}

		f := geojson.NewFeature(geom)
		for i, fld := range fields {
			f.Properties[fld.String()] = attributeValue(fld, r.ReadAttribute(row, i))
		}
		buf, err := f.MarshalJSON()
		if err != nil {
			return err
		}
		if err := writeln(env.Out, string(buf)); err != nil {
			return err
		}
	}
	return r.Err()
}

func shapeGeometry(s shapefile.Shape) (orb.Geometry, error) {
	switch v := s.(type) {
	case *shapefile.Point:
		return orb.Point{v.X, v.Y}, nil
	case *shapefile.PointZ:
		return orb.Point{v.X, v.Y}, nil
	case *shapefile.PointM:
		return orb.Point{v.X, v.Y}, nil
	case *shapefile.MultiPoint:
		mp := make(orb.MultiPoint, len(v.Points))
		for i, p := range v.Points {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp, nil
	case *shapefile.PolyLine:
		return lineGeometry(v.Parts, v.Points), nil
	case *shapefile.PolyLineZ:
		return lineGeometry(v.Parts, v.Points), nil
	case *shapefile.PolyLineM:
		return lineGeometry(v.Parts, v.Points), nil
	case *shapefile.Polygon:
		return polygonGeometry(v.Parts, v.Points), nil
	case *shapefile.PolygonZ:
		return polygonGeometry(v.Parts, v.Points), nil
	case *shapefile.PolygonM:
		return polygonGeometry(v.Parts, v.Points), nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T", s)
	}
}

func lineGeometry(parts []int32, points []shapefile.Point) orb.Geometry {
	segs := splitParts(parts, points)
	if len(segs) == 1 {
		return toLineString(segs[0])
	}
	ml := make(orb.MultiLineString, len(segs))
	for i, seg := range segs {
		ml[i] = toLineString(seg)
	}
	return ml
}

// polygonGeometry treats the record's first ring as the exterior and the
// rest as holes.
func polygonGeometry(parts []int32, points []shapefile.Point) orb.Geometry {
	segs := splitParts(parts, points)
	poly := make(orb.Polygon, len(segs))
	for i, seg := range segs {
		poly[i] = orb.Ring(toLineString(seg))
	}
	return poly
}

func splitParts(parts []int32, points []shapefile.Point) [][]shapefile.Point {
	if len(parts) == 0 {
		return [][]shapefile.Point{points}
	}
	out := make([][]shapefile.Point, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		out = append(out, points[int(start):end])
	}
	return out
}

func toLineString(pts []shapefile.Point) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// attributeValue keeps DBF numerics and logicals typed instead of emitting
// everything as strings.
func attributeValue(f shapefile.Field, raw string) interface{} {
	v := strings.TrimSpace(raw)
	switch f.Fieldtype {
	case 'N', 'F':
		if v == "" {
			return nil
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case 'L':
		switch v {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		}
	}
	return v
}
