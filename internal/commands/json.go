package commands

import (
	"context"
	"strings"

	"github.com/geoq-cli/geoq/internal/munge"
	"github.com/geoq-cli/geoq/internal/stream"
)

// JSON works with arbitrary JSON input. The munge subcommand best-effort
// converts each JSON object line into a GeoJSON Feature.
func JSON(ctx context.Context, env Env, args []string) error {
	if len(args) != 1 || args[0] != "munge" {
		return Usagef("json requires the munge subcommand")
	}

	return stream.MapOrdered(ctx, env.In, env.Out, env.Config.Stream.Workers, func(line string) ([]string, error) {
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}
		f, err := munge.ToFeature(line)
		if err != nil {
			return nil, err
		}
		buf, err := f.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return []string{string(buf)}, nil
	})
}
