package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/geoq-cli/geoq/internal/entity"
)

const readGuide = `geoq reads entities from stdin, one or more per line:

  Lat/Lon   34.1,-118.3                  latitude first
  Geohash   9q5c                         base32 cell
  WKT       POINT (-118.3 34.1)
  GeoJSON   {"type":"Point","coordinates":[-118.3,34.1]}

A GeoJSON FeatureCollection expands to one entity per contained feature.

Try: echo '34.1,-118.3' | geoq read
`

// Read describes each entity as "<Format>: <raw>". When stdin is a terminal
// it prints the input-format guide instead of blocking on input.
func Read(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("read takes no arguments")
	}

	if f, ok := env.In.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		_, err := io.WriteString(env.Out, readGuide)
		return err
	}

	return mapEntities(ctx, env, func(e entity.Entity) ([]string, error) {
		return []string{fmt.Sprintf("%s: %s", e.Format(), e.Raw())}, nil
	})
}
