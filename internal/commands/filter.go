package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"

	"github.com/geoq-cli/geoq/internal/entity"
	"github.com/geoq-cli/geoq/internal/spatial"
	"github.com/geoq-cli/geoq/internal/stream"
)

// Filter keeps entities matching a spatial predicate against one or more
// query entities, echoing survivors' raw input. -n inverts the predicate,
// -q FILE reads query entities from a file instead of the argument.
func Filter(ctx context.Context, env Env, args []string) error {
	if len(args) == 0 {
		return Usagef("filter requires a predicate: intersects or contains")
	}
	pred, rest := args[0], args[1:]

	negate, rest := popFlag(rest, "-n", "--negate")
	queryFile, hasFile, rest, err := popValueFlag(rest, "-q", "--query-file")
	if err != nil {
		return err
	}

	var queries []entity.Entity
	switch {
	case hasFile:
		if len(rest) != 0 {
			return Usagef("filter %s: query argument and --query-file are mutually exclusive", pred)
		}
		queries, err = readQueryFile(ctx, queryFile)
		if err != nil {
			return err
		}
	case len(rest) == 1:
		queries, err = entity.ParseLine(rest[0])
		if err != nil {
			return err
		}
	default:
		return Usagef("filter %s requires a query entity argument or --query-file FILE", pred)
	}
	if len(queries) == 0 {
		return fmt.Errorf("filter %s: no query entities given", pred)
	}

	var match func(g orb.Geometry) bool
	switch pred {
	case "intersects":
		match = func(g orb.Geometry) bool {
			for _, q := range queries {
				if spatial.Intersects(q.Geometry(), g) {
					return true
				}
			}
			return false
		}
	case "contains":
		for _, q := range queries {
			switch q.Geometry().(type) {
			case orb.Polygon, orb.MultiPolygon:
			default:
				return fmt.Errorf("filter contains requires Polygon or MultiPolygon queries, got %s", q.Geometry().GeoJSONType())
			}
		}
		match = func(g orb.Geometry) bool {
			for _, q := range queries {
				if spatial.Contains(q.Geometry(), g) {
					return true
				}
			}
			return false
		}
	default:
		return Usagef("unknown filter predicate %q (expected intersects or contains)", pred)
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		if match(e.Geometry()) != negate {
			return []string{e.Raw()}, nil
		}
		return nil, nil
	})
}

func readQueryFile(ctx context.Context, path string) ([]entity.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening query file: %w", err)
	}
	defer f.Close()

	var out []entity.Entity
	err = stream.Each(ctx, f, func(line string) error {
		ents, err := entity.ParseLine(line)
		if err != nil {
			return err
		}
		out = append(out, ents...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading query file %s: %w", path, err)
	}
	return out, nil
}
