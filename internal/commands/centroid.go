package commands

import (
	"context"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/geoq-cli/geoq/internal/entity"
)

// Centroid prints each entity's centroid as "lat,lon", which round-trips as
// entity input.
func Centroid(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("centroid takes no arguments")
	}
	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		c, _ := planar.CentroidArea(e.Geometry())
		return []string{formatLatLon(c)}, nil
	})
}

func formatLatLon(p orb.Point) string {
	return strconv.FormatFloat(p.Y(), 'f', -1, 64) + "," + strconv.FormatFloat(p.X(), 'f', -1, 64)
}
