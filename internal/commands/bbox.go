package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geoq-cli/geoq/internal/entity"
)

// Bbox prints bounding boxes as [west, south, east, north] JSON arrays, one
// per entity. --all prints one box covering every entity; --embed prints
// each entity as a Feature with its bbox member set.
func Bbox(ctx context.Context, env Env, args []string) error {
	embed, rest := popFlag(args, "--embed")
	all, rest := popFlag(rest, "--all")
	if len(rest) != 0 {
		return Usagef("bbox takes no arguments beyond --embed or --all")
	}
	if embed && all {
		return Usagef("bbox: --embed and --all are mutually exclusive")
	}

	if all {
		ents, err := collectEntities(ctx, env)
		if err != nil {
			return err
		}
		if len(ents) == 0 {
			return fmt.Errorf("bbox: no entities given")
		}
		b := ents[0].Geometry().Bound()
		for _, e := range ents[1:] {
			b = b.Union(e.Geometry().Bound())
		}
		return writeln(env.Out, bboxString(b))
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		b := e.Geometry().Bound()
		if !embed {
			return []string{bboxString(b)}, nil
		}
		f := e.Feature()
		f.BBox = geojson.NewBBox(b)
		buf, err := f.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return []string{string(buf)}, nil
	})
}

func bboxString(b orb.Bound) string {
	buf, _ := json.Marshal([]float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()})
	return string(buf)
}
