package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/geoq-cli/geoq/internal/entity"
	"github.com/geoq-cli/geoq/internal/geohash"
	"github.com/geoq-cli/geoq/internal/stream"
)

// Geohash works with base32 geohash cells. Subcommands: point, covering,
// children, neighbors, roots and encode-long.
func Geohash(ctx context.Context, env Env, args []string) error {
	if len(args) == 0 {
		return Usagef("gh requires a subcommand: point, covering, children, neighbors, roots or encode-long")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "point":
		return geohashPoint(ctx, env, rest)
	case "covering":
		return geohashCovering(ctx, env, rest)
	case "children":
		return geohashChildren(ctx, env, rest)
	case "neighbors":
		return geohashNeighbors(ctx, env, rest)
	case "roots":
		return geohashRoots(env, rest)
	case "encode-long":
		return geohashEncodeLong(ctx, env, rest)
	default:
		return Usagef("unknown gh subcommand %q", sub)
	}
}

func parseLevel(arg string) (int, error) {
	level, err := strconv.Atoi(arg)
	if err != nil || level < 1 || level > geohash.MaxLevel {
		return 0, Usagef("level must be an integer between 1 and %d, got %q", geohash.MaxLevel, arg)
	}
	return level, nil
}

// geohashPoint prints the level-LEVEL geohash of each Point entity.
func geohashPoint(ctx context.Context, env Env, args []string) error {
	if len(args) != 1 {
		return Usagef("gh point requires a level argument")
	}
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		p, ok := e.Geometry().(orb.Point)
		if !ok {
			return nil, fmt.Errorf("gh point requires Point entities, got %s from %q", e.Geometry().GeoJSONType(), e.Raw())
		}
		return []string{geohash.Encode(p.Y(), p.X(), level)}, nil
	})
}

// geohashCovering prints the set of level-LEVEL cells intersecting each
// entity's geometry. -o re-echoes the entity's raw form first.
func geohashCovering(ctx context.Context, env Env, args []string) error {
	original, rest := popFlag(args, "-o", "--original")
	if len(rest) != 1 {
		return Usagef("gh covering requires a level argument")
	}
	level, err := parseLevel(rest[0])
	if err != nil {
		return err
	}

	maxCells := env.Config.Geohash.MaxCovering
	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		cells, err := geohash.Covering(e.Geometry(), level, maxCells)
		if err != nil {
			return nil, fmt.Errorf("covering %q: %w", e.Raw(), err)
		}
		if original {
			return append([]string{e.Raw()}, cells...), nil
		}
		return cells, nil
	})
}

// geohashChildren prints the 32 children of each geohash entity.
func geohashChildren(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("gh children takes no arguments")
	}
	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		if e.Format() != entity.FormatGeohash {
			return nil, fmt.Errorf("gh children requires geohash entities, got %s from %q", e.Format(), e.Raw())
		}
		return geohash.Children(e.Raw()), nil
	})
}

// geohashNeighbors prints the 3x3 grid around each geohash entity: the hash
// itself, then its 8 neighbors. -e omits the hash itself.
func geohashNeighbors(ctx context.Context, env Env, args []string) error {
	exclude, rest := popFlag(args, "-e", "--exclude")
	if len(rest) != 0 {
		return Usagef("gh neighbors takes no arguments beyond -e")
	}
	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		if e.Format() != entity.FormatGeohash {
			return nil, fmt.Errorf("gh neighbors requires geohash entities, got %s from %q", e.Format(), e.Raw())
		}
		return geohash.Neighbors(e.Raw(), !exclude), nil
	})
}

// geohashRoots prints the 32 top-level cells. Reads no input.
func geohashRoots(env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("gh roots takes no arguments")
	}
	for _, r := range geohash.Roots() {
		if err := writeln(env.Out, r); err != nil {
			return err
		}
	}
	return nil
}

// geohashEncodeLong reads base-10 unsigned 64-bit integers, one per line,
// and prints each as a 12-character base32 geohash.
func geohashEncodeLong(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("gh encode-long takes no arguments")
	}
	return stream.MapOrdered(ctx, env.In, env.Out, env.Config.Stream.Workers, func(line string) ([]string, error) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return nil, nil
		}
		v, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("encode-long requires unsigned 64-bit integers, got %q", trimmed)
		}
		return []string{geohash.EncodeLong(v)}, nil
	})
}
