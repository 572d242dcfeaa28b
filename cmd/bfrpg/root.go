package main

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bfrpg-rules/internal/actorfile"
	"github.com/KirkDiggler/bfrpg-rules/internal/config"
	"github.com/KirkDiggler/bfrpg-rules/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/logging"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/actor"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/roll"
	"github.com/KirkDiggler/bfrpg-rules/internal/pkg/clock"
	"github.com/KirkDiggler/bfrpg-rules/internal/pkg/idgen"
	rollrules "github.com/KirkDiggler/bfrpg-rules/internal/roll"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
)

// Output formats for command results
const (
	outputText = "text"
	outputJSON = "json"
)

// app holds the services shared by every command. It is filled in by the
// root command's pre-run hook once config is loaded.
type app struct {
	roller dice.Roller
	cfg    *config.Config
	loader *actorfile.Loader
	actors actor.Service
	rolls  roll.Service

	envFile string
	output  string
}

func newRootCmd(roller dice.Roller) *cobra.Command {
	a := &app{roller: roller}

	rootCmd := &cobra.Command{
		Use:   "bfrpg",
		Short: "Basic Fantasy RPG rules engine",
		Long: `bfrpg derives actor statistics and rolls sheet formulas for Basic Fantasy RPG
actors stored as JSON or YAML files. Settings are read from BFRPG_* environment
variables and an optional env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "env file with BFRPG_* settings, ignored when missing")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "output format: text or json")

	rootCmd.AddCommand(newPrepareCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newRollCmd(a))
	rootCmd.AddCommand(newAttackCmd(a))
	rootCmd.AddCommand(newItemCmd(a))
	rootCmd.AddCommand(newInitiativeCmd(a))
	rootCmd.AddCommand(newHitPointsCmd(a))

	return rootCmd
}

// setup loads config, installs the logger and wires the services
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != outputText && a.output != outputJSON {
		return errors.InvalidArgumentf("unknown output format %q", a.output)
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if _, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel); err != nil {
		return err
	}

	evaluator, err := rpgtoolkit.NewEvaluator(&rpgtoolkit.Config{
		Roller:  a.roller,
		Timeout: cfg.FormulaTimeout,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create evaluator")
	}

	resolver, err := rollrules.NewResolver(&rollrules.Config{Evaluator: evaluator})
	if err != nil {
		return errors.Wrap(err, "failed to create resolver")
	}

	a.actors, err = actor.NewOrchestrator(&actor.Config{
		Deriver:    rules.NewDeriver(),
		SaveLabels: cfg.Saves.Labels(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create actor orchestrator")
	}

	a.rolls, err = roll.NewOrchestrator(&roll.Config{
		Resolver:        resolver,
		IDGenerator:     idgen.NewUUID("msg"),
		Clock:           clock.New(),
		AutoRollTokenHP: cfg.AutoRollTokenHP,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create roll orchestrator")
	}

	a.loader = actorfile.NewLoader(nil)
	return nil
}
