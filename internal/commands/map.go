package commands

import (
	"context"
	"fmt"
	"net/url"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/browser"
)

// Map collects all entities into a FeatureCollection, prints a geojson.io
// style URL for it and opens the browser unless map.open_browser is off.
func Map(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return Usagef("map takes no arguments")
	}

	ents, err := collectEntities(ctx, env)
	if err != nil {
		return err
	}
	if len(ents) == 0 {
		return fmt.Errorf("map: no entities to display")
	}

	fc := geojson.NewFeatureCollection()
	for _, e := range ents {
		fc.Append(e.Feature())
	}
	buf, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	u := env.Config.Map.BaseURL + url.PathEscape(string(buf))
	if max := env.Config.Map.MaxURLLen; len(u) > max {
		return fmt.Errorf("map URL is %d characters, over the %d limit; reduce the input (geoq simplify can help)", len(u), max)
	}
	if err := writeln(env.Out, u); err != nil {
		return err
	}

	if env.Config.Map.OpenBrowser {
		if err := browser.OpenURL(u); err != nil {
			env.Log.Warn().Err(err).Msg("opening browser")
		}
	}
	return nil
}
