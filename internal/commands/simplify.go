package commands

import (
	"context"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/simplify"

	"github.com/geoq-cli/geoq/internal/entity"
)

// maxEpsilonEscalations bounds the --to-coord-count loop; geometries that
// cannot be reduced below the target (points, tiny rings) stop here.
const maxEpsilonEscalations = 100

// Simplify runs Douglas-Peucker simplification over each entity. Output
// stays in the input's representation family: WKT stays WKT, everything
// else becomes a GeoJSON Feature. With --to-coord-count N, epsilon doubles
// until the result carries at most N coordinates.
func Simplify(ctx context.Context, env Env, args []string) error {
	countArg, hasCount, rest, err := popValueFlag(args, "--to-coord-count")
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return Usagef("simplify requires an epsilon argument")
	}
	epsilon, err := strconv.ParseFloat(rest[0], 64)
	if err != nil || epsilon <= 0 {
		return Usagef("epsilon must be a positive number, got %q", rest[0])
	}
	target := 0
	if hasCount {
		target, err = strconv.Atoi(countArg)
		if err != nil || target < 1 {
			return Usagef("--to-coord-count must be a positive integer, got %q", countArg)
		}
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		g := simplifyGeometry(e.Geometry(), epsilon, target)
		if e.Format() == entity.FormatWKT {
			return []string{wkt.MarshalString(g)}, nil
		}
		f := e.Feature()
		f.Geometry = g
		buf, err := f.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return []string{string(buf)}, nil
	})
}

// simplifyGeometry simplifies a clone of g; orb's simplifiers modify the
// geometry they are given.
func simplifyGeometry(g orb.Geometry, epsilon float64, target int) orb.Geometry {
	out := simplify.DouglasPeucker(epsilon).Simplify(orb.Clone(g))
	if target <= 0 {
		return out
	}
	for i := 0; i < maxEpsilonEscalations && coordCount(out) > target; i++ {
		epsilon *= 2
		out = simplify.DouglasPeucker(epsilon).Simplify(orb.Clone(g))
	}
	return out
}
