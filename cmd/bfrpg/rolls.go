package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/roll"
)

func newRollCmd(a *app) *cobra.Command {
	var (
		label     string
		target    string
		rollUnder bool
	)

	cmd := &cobra.Command{
		Use:   "roll [actor-file] [formula]",
		Short: "Roll a formula against an actor's roll data",
		Long: `Roll a formula with @path references into the actor's data. Examples:

  bfrpg roll fighter.json "1d20+@str.bonus" --label "Open Doors" --target 15
  bfrpg roll fighter.json "1d20" --target "@saves.death.value"
  bfrpg roll thief.yaml "1d100" --target 25 --roll-under`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}

			out, err := a.rolls.RollFormula(cmd.Context(), &roll.RollFormulaInput{
				Actor:        subject,
				Formula:      args[1],
				Label:        label,
				TargetNumber: target,
				RollUnder:    rollUnder,
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), newMessageView(out.Message))
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "headline for the roll")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target number or formula")
	cmd.Flags().BoolVar(&rollUnder, "roll-under", false, "succeed at or under the target")
	return cmd
}

func newAttackCmd(a *app) *cobra.Command {
	var (
		ranged bool
		label  string
	)

	cmd := &cobra.Command{
		Use:   "attack [actor-file] [weapon]",
		Short: "Roll an attack with an owned weapon, named by ID or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}
			weapon, err := lookupItem(subject, args[1])
			if err != nil {
				return err
			}

			attack := bfrpg.AttackMelee
			if ranged {
				attack = bfrpg.AttackRanged
			}

			out, err := a.rolls.RollAttack(cmd.Context(), &roll.RollAttackInput{
				Actor:    subject,
				WeaponID: weapon.ID,
				Attack:   attack,
				Label:    label,
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), newMessageView(out.Message))
		},
	}

	cmd.Flags().BoolVarP(&ranged, "ranged", "r", false, "ranged instead of melee attack")
	cmd.Flags().StringVarP(&label, "label", "l", "", "headline for the roll")
	return cmd
}

func newItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "item [actor-file] [item]",
		Short: "Roll an owned item's formula, or show its description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}
			item, err := lookupItem(subject, args[1])
			if err != nil {
				return err
			}

			out, err := a.rolls.RollItem(cmd.Context(), &roll.RollItemInput{
				Actor:  subject,
				ItemID: item.ID,
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), newMessageView(out.Message))
		},
	}
}

func newInitiativeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "initiative [actor-file]",
		Short: "Roll initiative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}

			out, err := a.rolls.RollInitiative(cmd.Context(), &roll.RollInitiativeInput{Actor: subject})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), newMessageView(out.Message))
		},
	}
}

func newHitPointsCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hitpoints [monster-file]",
		Short: "Roll a monster's hit points from its hit dice",
		Long: `Roll a monster's hit points from its hit dice, with a minimum of 1. Nothing is
rolled when BFRPG_AUTO_ROLL_TOKEN_HP is false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			subject, err := a.loader.Load(path)
			if err != nil {
				return err
			}

			out, err := a.rolls.RollHitPoints(cmd.Context(), &roll.RollHitPointsInput{Actor: subject})
			if err != nil {
				return err
			}

			if !out.Rolled {
				hp := out.HitPoints
				return a.render(cmd.OutOrStdout(), &messageView{
					Speaker:   subject.ID,
					Flavor:    []string{"Automatic hit point rolls are disabled"},
					HitPoints: &hp,
				})
			}

			if write {
				if err := a.loader.Save(path, subject); err != nil {
					return err
				}
			}

			view := newMessageView(out.Message)
			hp := out.HitPoints
			view.HitPoints = &hp
			return a.render(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the rolled hit points in the file")
	return cmd
}

// lookupItem finds an owned item by ID, then by name
func lookupItem(subject *bfrpg.Actor, ref string) (*bfrpg.Item, error) {
	if item, ok := subject.Item(ref); ok {
		return item, nil
	}
	if item, ok := subject.ItemByName(ref); ok {
		return item, nil
	}
	return nil, errors.NotFoundf("no item %q on %s", ref, subject.Name)
}
