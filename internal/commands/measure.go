package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/geoq-cli/geoq/internal/entity"
)

// Measure computes scalar properties of entities. Subcommands: distance
// prints haversine meters from a query Point to each Point entity,
// coord-count prints per-entity coordinate totals.
func Measure(ctx context.Context, env Env, args []string) error {
	if len(args) == 0 {
		return Usagef("measure requires a subcommand: distance or coord-count")
	}
	switch args[0] {
	case "distance":
		return measureDistance(ctx, env, args[1:])
	case "coord-count":
		return measureCoordCount(ctx, env, args[1:])
	default:
		return Usagef("unknown measure subcommand %q", args[0])
	}
}

func measureDistance(ctx context.Context, env Env, args []string) error {
	if len(args) != 1 {
		return Usagef("measure distance requires a query point argument")
	}
	queries, err := entity.ParseLine(args[0])
	if err != nil {
		return err
	}
	if len(queries) != 1 {
		return fmt.Errorf("measure distance requires exactly one query entity, got %d", len(queries))
	}
	qp, ok := queries[0].Geometry().(orb.Point)
	if !ok {
		return fmt.Errorf("measure distance requires a Point query, got %s", queries[0].Geometry().GeoJSONType())
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		p, ok := e.Geometry().(orb.Point)
		if !ok {
			return nil, fmt.Errorf("measure distance requires Point entities, got %s from %q", e.Geometry().GeoJSONType(), e.Raw())
		}
		d := geo.DistanceHaversine(qp, p)
		return []string{strconv.FormatFloat(d, 'f', -1, 64)}, nil
	})
}

func measureCoordCount(ctx context.Context, env Env, args []string) error {
	asGeojson, rest := popFlag(args, "--geojson")
	if len(rest) != 0 {
		return Usagef("measure coord-count takes no arguments beyond --geojson")
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		n := coordCount(e.Geometry())
		if !asGeojson {
			return []string{strconv.Itoa(n)}, nil
		}
		f := e.Feature()
		f.Properties["coord_count"] = n
		buf, err := f.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return []string{string(buf)}, nil
	})
}

func coordCount(g orb.Geometry) int {
	switch v := g.(type) {
	case orb.Point:
		return 1
	case orb.MultiPoint:
		return len(v)
	case orb.LineString:
		return len(v)
	case orb.MultiLineString:
		n := 0
		for _, ls := range v {
			n += len(ls)
		}
		return n
	case orb.Ring:
		return len(v)
	case orb.Polygon:
		n := 0
		for _, r := range v {
			n += len(r)
		}
		return n
	case orb.MultiPolygon:
		n := 0
		for _, p := range v {
			n += coordCount(p)
		}
		return n
	case orb.Collection:
		n := 0
		for _, g := range v {
			n += coordCount(g)
		}
		return n
	case orb.Bound:
		return 2
	}
	return 0
}
