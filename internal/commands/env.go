// Package commands implements the geoq command surface. Commands read
// entities from stdin and write results to stdout, one per line, so they
// compose in shell pipelines. Diagnostics go to the logger, never stdout.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/geoq-cli/geoq/internal/config"
	"github.com/geoq-cli/geoq/internal/entity"
	"github.com/geoq-cli/geoq/internal/stream"
)

// Env carries the process-level dependencies commands run against, so tests
// can substitute buffers for the real stdio.
type Env struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Config config.Config
	Log    zerolog.Logger
}

// UsageError marks a bad invocation. The CLI prints usage and exits 2
// instead of treating it as a runtime failure.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError.
func Usagef(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// mapEntities runs fn over every entity of every input line through the
// ordered concurrent mapper.
func mapEntities(ctx context.Context, env Env, fn func(e entity.Entity) ([]string, error)) error {
	return stream.MapOrdered(ctx, env.In, env.Out, env.Config.Stream.Workers, func(line string) ([]string, error) {
		ents, err := entity.ParseLine(line)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, e := range ents {
			lines, err := fn(e)
			if err != nil {
				return nil, err
			}
			out = append(out, lines...)
		}
		return out, nil
	})
}

// collectEntities reads the whole input sequentially, for commands that
// aggregate rather than stream.
func collectEntities(ctx context.Context, env Env) ([]entity.Entity, error) {
	var all []entity.Entity
	err := stream.Each(ctx, env.In, func(line string) error {
		ents, err := entity.ParseLine(line)
		if err != nil {
			return err
		}
		all = append(all, ents...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// featureString renders an entity as one line of GeoJSON Feature.
func featureString(e entity.Entity) (string, error) {
	buf, err := e.Feature().MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
