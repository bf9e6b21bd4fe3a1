package commands

import (
	"context"

	"github.com/geoq-cli/geoq/internal/geolocate"
)

// Whereami prints the caller's IP-derived location as a GeoJSON Point
// Feature. Reads no input.
func Whereami(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("whereami takes no arguments")
	}

	client := geolocate.NewClient(env.Config.Whereami.Endpoint, env.Config.Whereami.Timeout)
	f, err := client.Locate(ctx)
	if err != nil {
		return err
	}
	buf, err := f.MarshalJSON()
	if err != nil {
		return err
	}
	return writeln(env.Out, string(buf))
}
