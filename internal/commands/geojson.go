package commands

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/geoq-cli/geoq/internal/entity"
)

// Geojson converts entities to GeoJSON. Subcommands: geom prints bare
// geometries, f prints Features, fc collects everything into a single
// FeatureCollection line.
func Geojson(ctx context.Context, env Env, args []string) error {
	if len(args) != 1 {
		return Usagef("gj requires one subcommand: geom, f or fc")
	}

	switch args[0] {
	case "geom":
		return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
			buf, err := geojson.NewGeometry(e.Geometry()).MarshalJSON()
			if err != nil {
				return nil, err
			}
			return []string{string(buf)}, nil
		})
	case "f":
		return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
			s, err := featureString(e)
			if err != nil {
				return nil, err
			}
			return []string{s}, nil
		})
	case "fc":
		ents, err := collectEntities(ctx, env)
		if err != nil {
			return err
		}
		fc := geojson.NewFeatureCollection()
		for _, e := range ents {
			fc.Append(e.Feature())
		}
		buf, err := fc.MarshalJSON()
		if err != nil {
			return err
		}
		return writeln(env.Out, string(buf))
	default:
		return Usagef("unknown gj subcommand %q (expected geom, f or fc)", args[0])
	}
}
