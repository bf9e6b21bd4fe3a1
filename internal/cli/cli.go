// Package cli holds the command registry, dispatch and the process exit
// code contract.
package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/geoq-cli/geoq/internal/commands"
)

// Exit codes. Runtime failures and bad invocations are distinguished so
// scripts can tell a miss from a typo.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Command is one top-level geoq command.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Run     func(ctx context.Context, env commands.Env, args []string) error
}

// Registry holds the command table.
type Registry struct {
	commands []Command
	byName   map[string]Command
}

// NewRegistry builds the geoq command table.
func NewRegistry() *Registry {
	r := &Registry{}
	r.commands = []Command{
		{
			Name:    "bbox",
			Usage:   "bbox [--embed|--all]",
			Summary: "Print bounding boxes as [w,s,e,n] arrays",
			Run:     commands.Bbox,
		},
		{
			Name:    "centroid",
			Usage:   "centroid",
			Summary: "Print each entity's centroid as lat,lon",
			Run:     commands.Centroid,
		},
		{
			Name:    "filter",
			Usage:   "filter (intersects|contains) QUERY [-n] [-q FILE]",
			Summary: "Keep entities matching a spatial predicate",
			Run:     commands.Filter,
		},
		{
			Name:    "gh",
			Usage:   "gh (point LEVEL | covering LEVEL [-o] | children | neighbors [-e] | roots | encode-long)",
			Summary: "Work with base32 geohash cells",
			Run:     commands.Geohash,
		},
		{
			Name:    "gj",
			Usage:   "gj (geom|f|fc)",
			Summary: "Convert entities to GeoJSON",
			Run:     commands.Geojson,
		},
		{
			Name:    "json",
			Usage:   "json munge",
			Summary: "Coerce arbitrary JSON objects to GeoJSON Features",
			Run:     commands.JSON,
		},
		{
			Name:    "map",
			Usage:   "map",
			Summary: "Open entities on a browser map",
			Run:     commands.Map,
		},
		{
			Name:    "measure",
			Usage:   "measure (distance QUERY | coord-count [--geojson])",
			Summary: "Measure distances and coordinate counts",
			Run:     commands.Measure,
		},
		{
			Name:    "read",
			Usage:   "read",
			Summary: "Describe each entity's detected format",
			Run:     commands.Read,
		},
		{
			Name:    "shp",
			Usage:   "shp PATH",
			Summary: "Read an ESRI shapefile as GeoJSON Features",
			Run:     commands.Shp,
		},
		{
			Name:    "simplify",
			Usage:   "simplify EPSILON [--to-coord-count N]",
			Summary: "Simplify geometries with Douglas-Peucker",
			Run:     commands.Simplify,
		},
		{
			Name:    "snip",
			Usage:   "snip (save NAME | show NAME | list | rm NAME)",
			Summary: "Stash and replay entity streams",
			Run:     commands.Snip,
		},
		{
			Name:    "version",
			Usage:   "version",
			Summary: "Print the version",
			Run: func(ctx context.Context, env commands.Env, args []string) error {
				return writeVersion(env)
			},
		},
		{
			Name:    "whereami",
			Usage:   "whereami",
			Summary: "Print your IP-derived location as a GeoJSON Feature",
			Run:     commands.Whereami,
		},
		{
			Name:    "wkt",
			Usage:   "wkt",
			Summary: "Print each entity as Well-Known Text",
			Run:     commands.Wkt,
		},
	}
	r.byName = make(map[string]Command, len(r.commands))
	for _, cmd := range r.commands {
		r.byName[cmd.Name] = cmd
	}
	return r
}

// All returns a copy of the command table.
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Run dispatches args to a command and maps errors onto exit codes.
func (r *Registry) Run(ctx context.Context, env commands.Env, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(env.Err, r.usage())
		return ExitUsage
	}

	name := args[0]
	switch name {
	case "help", "-h", "--help":
		fmt.Fprint(env.Out, r.usage())
		return ExitOK
	case "--version":
		if err := writeVersion(env); err != nil {
			return ExitFailure
		}
		return ExitOK
	}

	cmd, ok := r.byName[name]
	if !ok {
		fmt.Fprintf(env.Err, "geoq: unknown command %q\n\n%s", name, r.usage())
		return ExitUsage
	}

	if err := cmd.Run(ctx, env, args[1:]); err != nil {
		var usageErr *commands.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(env.Err, "geoq %s: %s\nusage: geoq %s\n", name, usageErr.Msg, cmd.Usage)
			return ExitUsage
		}
		env.Log.Debug().Err(err).Str("command", name).Msg("command failed")
		fmt.Fprintf(env.Err, "geoq %s: %v\n", name, err)
		return ExitFailure
	}
	return ExitOK
}

func writeVersion(env commands.Env) error {
	_, err := fmt.Fprintln(env.Out, Version)
	return err
}

func (r *Registry) usage() string {
	var b strings.Builder
	b.WriteString("geoq - a geospatial utility belt\n\nusage: geoq COMMAND [ARGS]\n\ncommands:\n")

	names := make([]string, 0, len(r.commands))
	width := 0
	for _, c := range r.commands {
		names = append(names, c.Name)
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		c := r.byName[n]
		fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Name, c.Summary)
	}

	b.WriteString("\nEntities are read from stdin, one or more per line. Try: geoq read\n")
	return b.String()
}
