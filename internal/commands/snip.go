package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/geoq-cli/geoq/internal/snip"
)

// Snip manages named stashes of entity streams so intermediate pipeline
// results can be replayed later. Subcommands: save NAME, show NAME, list,
// rm NAME.
func Snip(ctx context.Context, env Env, args []string) error {
	if len(args) == 0 {
		return Usagef("snip requires a subcommand: save, show, list or rm")
	}
	sub, rest := args[0], args[1:]

	store, err := snip.Open(env.Config.Snip.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub {
	case "save":
		if len(rest) != 1 || rest[0] == "" {
			return Usagef("snip save requires a name")
		}
		return snipSave(ctx, env, store, rest[0])
	case "show":
		if len(rest) != 1 {
			return Usagef("snip show requires a name")
		}
		sn, err := store.Show(ctx, rest[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(env.Out, sn.Body)
		return err
	case "list":
		if len(rest) != 0 {
			return Usagef("snip list takes no arguments")
		}
		all, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, sn := range all {
			line := fmt.Sprintf("%s\t%d\t%s", sn.Name, sn.Count, sn.CreatedAt.Format(time.RFC3339))
			if err := writeln(env.Out, line); err != nil {
				return err
			}
		}
		return nil
	case "rm":
		if len(rest) != 1 {
			return Usagef("snip rm requires a name")
		}
		return store.Remove(ctx, rest[0])
	default:
		return Usagef("unknown snip subcommand %q", sub)
	}
}

// snipSave normalizes the input to one Feature per line before storing, so
// the body replays cleanly through any command.
func snipSave(ctx context.Context, env Env, store *snip.Store, name string) error {
	ents, err := collectEntities(ctx, env)
	if err != nil {
		return err
	}
	if len(ents) == 0 {
		return fmt.Errorf("snip save: no entities to save")
	}

	var body strings.Builder
	for _, e := range ents {
		s, err := featureString(e)
		if err != nil {
			return err
		}
		body.WriteString(s)
		body.WriteByte('\n')
	}

	sn, err := store.Save(ctx, name, body.String(), len(ents))
	if err != nil {
		return err
	}
	env.Log.Info().Str("name", sn.Name).Int("features", sn.Count).Msg("snip saved")
	return nil
}
