package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bfrpg-rules/internal/actorfile"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/actor"
)

func newPrepareCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "prepare [actor-file]",
		Short: "Derive an actor's computed fields and show its sheet summary",
		Long: `Run the preparation pass over an actor file: ability bonuses, monster XP and
attack bonus, stronghold prices and totals, vehicle hit points and move, and
carried weight. Examples:

  bfrpg prepare fighter.json
  bfrpg prepare keep.yaml --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd, args[0], write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the derived fields back to the file")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "watch [actor-file]",
		Short: "Re-run the preparation pass whenever the actor file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := a.prepare(cmd, path, false); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, cmd, path, write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write derived fields back after each change")
	return cmd
}

func (a *app) prepare(cmd *cobra.Command, path string, write bool) error {
	subject, err := a.loader.Load(path)
	if err != nil {
		return err
	}
	return a.prepareActor(cmd, path, subject, write)
}

func (a *app) prepareActor(cmd *cobra.Command, path string, subject *bfrpg.Actor, write bool) error {
	out, err := a.actors.PrepareActor(cmd.Context(), &actor.PrepareActorInput{Actor: subject})
	if err != nil {
		return err
	}

	if write {
		if err := a.loader.Save(path, out.Actor); err != nil {
			return err
		}
	}

	return a.render(cmd.OutOrStdout(), newSheetView(out))
}

// watch logs load and prepare failures and keeps going. With write set the
// file is saved only when a derived field changed.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string, write bool) error {
	watcher := actorfile.NewWatcher(a.loader, path)
	return watcher.Run(ctx, func(subject *bfrpg.Actor, err error) {
		if err != nil {
			slog.Error("Failed to reload actor", "path", path, "error", err)
			return
		}

		before, _ := actorfile.Encode(actorfile.FormatJSON, subject)
		if err := a.prepareActor(cmd, path, subject, false); err != nil {
			slog.Error("Failed to prepare actor", "path", path, "error", err)
			return
		}
		if !write {
			return
		}

		after, _ := actorfile.Encode(actorfile.FormatJSON, subject)
		if string(before) == string(after) {
			return
		}
		if err := a.loader.Save(path, subject); err != nil {
			slog.Error("Failed to write actor", "path", path, "error", err)
		}
	})
}
