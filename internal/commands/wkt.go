package commands

import (
	"context"

	"github.com/geoq-cli/geoq/internal/entity"
)

// Wkt prints each entity's geometry as Well-Known Text.
func Wkt(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("wkt takes no arguments")
	}
	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		return []string{e.WKT()}, nil
	})
}
