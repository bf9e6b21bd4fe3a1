package commands

import (
	"bytes"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/geoq-cli/geoq/internal/config"
)

// testEnv builds an Env over buffers with browser opening disabled, so
// command tests never touch the host.
func testEnv(in string) (Env, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := config.Config{
		Stream:  config.StreamConfig{Workers: 2},
		Geohash: config.GeohashConfig{MaxCovering: 1_000_000},
		Map: config.MapConfig{
			BaseURL:     "https://geojson.io/#data=data:application/json,",
			MaxURLLen:   27000,
			OpenBrowser: false,
		},
	}
	env := Env{
		In:     strings.NewReader(in),
		Out:    &out,
		Err:    io.Discard,
		Config: cfg,
		Log:    zerolog.Nop(),
	}
	return env, &out
}

func outLines(out *bytes.Buffer) []string {
	s := strings.TrimRight(out.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
