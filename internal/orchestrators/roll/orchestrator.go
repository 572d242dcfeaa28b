// Package roll implements the roll workflows of the actor sheets. Each
// workflow evaluates a formula against the actor's roll data and returns a
// ChatMessage for the host to post.
package roll

//go:generate mockgen -destination=mock/mock_service.go -package=rollmock github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/roll Service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/pkg/clock"
	"github.com/KirkDiggler/bfrpg-rules/internal/pkg/idgen"
	rollrules "github.com/KirkDiggler/bfrpg-rules/internal/roll"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
)

const (
	// FlavorPrefix starts the headline of every rolled message
	FlavorPrefix = "Roll: "

	// BaseAttackFormula is the weapon attack roll before ability and weapon bonuses
	BaseAttackFormula = "d20+@ab"

	// CharacterInitiativeFormula adds the dexterity bonus for characters
	CharacterInitiativeFormula = "max(1, 1d6 + @abilities.dex.bonus + @initBonus.value)"
	InitiativeFormula          = "max(1, 1d6 + @initBonus.value)"
)

// Service defines the interface for sheet roll workflows
type Service interface {
	// RollFormula rolls a formula supplied by the sheet, with an optional
	// label and target number
	RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error)

	// RollItem rolls an owned item's formula, or posts its description when
	// it has none
	RollItem(ctx context.Context, input *RollItemInput) (*RollItemOutput, error)

	// RollAttack rolls a melee or ranged attack with an owned weapon
	RollAttack(ctx context.Context, input *RollAttackInput) (*RollAttackOutput, error)

	// RollInitiative rolls the actor's initiative, never below 1
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)

	// RollHitPoints rolls a monster's hit points from its hit dice and
	// stores them as both current and maximum
	RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	Resolver    rollrules.Resolver
	IDGenerator idgen.Generator
	Clock       clock.Clock
	// AutoRollTokenHP enables RollHitPoints
	AutoRollTokenHP bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	resolver        rollrules.Resolver
	idGen           idgen.Generator
	clock           clock.Clock
	deriver         *rules.Deriver
	autoRollTokenHP bool
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		resolver:        cfg.Resolver,
		idGen:           cfg.IDGenerator,
		clock:           cfg.Clock,
		deriver:         rules.NewDeriver(),
		autoRollTokenHP: cfg.AutoRollTokenHP,
	}, nil
}

// RollFormula rolls a sheet formula and classifies it against the target
func (o *orchestrator) RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}
	if strings.TrimSpace(input.Formula) == "" {
		return nil, errors.InvalidArgument("formula is required")
	}

	data, err := o.rollData(input.Actor)
	if err != nil {
		return nil, err
	}

	msg := o.newMessage(input.Actor)
	if input.Label != "" {
		msg.Flavor = append(msg.Flavor, FlavorPrefix+input.Label)
	}

	if err := o.roll(ctx, msg, input.Formula, data); err != nil {
		return nil, err
	}
	if err := o.classify(ctx, msg, data, input.TargetNumber, input.RollUnder); err != nil {
		return nil, err
	}

	o.logRoll("Formula rolled", input.Actor, msg)
	return &RollFormulaOutput{Message: msg}, nil
}

// RollItem rolls an item formula with the item's fields under @item
func (o *orchestrator) RollItem(ctx context.Context, input *RollItemInput) (*RollItemOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}

	item, err := findItem(input.Actor, input.ItemID)
	if err != nil {
		return nil, err
	}

	msg := o.newMessage(input.Actor)
	heading := titleCase(string(item.Type)) + " - " + item.Name

	formula := strings.TrimSpace(string(item.System.Formula.Value))
	if formula == "" {
		msg.Flavor = append(msg.Flavor, heading)
		msg.Content = item.System.Description

		slog.Info("Item shown",
			"actor_id", input.Actor.ID,
			"item_id", item.ID,
			"message_id", msg.ID,
		)
		return &RollItemOutput{Message: msg}, nil
	}

	msg.Flavor = append(msg.Flavor, FlavorPrefix+heading)
	if item.Type == bfrpg.ItemKindFeature && item.System.Description != "" {
		msg.Flavor = append(msg.Flavor, item.System.Description)
	}

	actorData, err := o.rollData(input.Actor)
	if err != nil {
		return nil, err
	}
	data, err := actorData.WithItem(item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build roll data for item %s", item.ID)
	}

	if err := o.roll(ctx, msg, formula, data); err != nil {
		return nil, err
	}
	target := string(item.System.TargetNumber.Value)
	if err := o.classify(ctx, msg, data, target, bool(item.System.RollUnder.Value)); err != nil {
		return nil, err
	}

	o.logRoll("Item rolled", input.Actor, msg)
	return &RollItemOutput{Message: msg}, nil
}

// RollAttack rolls d20 plus the attack bonus, the character's strength or
// dexterity bonus and the weapon's own bonus
func (o *orchestrator) RollAttack(ctx context.Context, input *RollAttackInput) (*RollAttackOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("WeaponID", input.WeaponID, vb)
	errors.ValidateEnum("Attack", input.Attack, bfrpg.AttackKinds, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	weapon, err := findItem(input.Actor, input.WeaponID)
	if err != nil {
		return nil, err
	}
	if weapon.Type != bfrpg.ItemKindWeapon {
		return nil, errors.InvalidArgumentf("item %s is a %s, not a weapon", weapon.ID, weapon.Type)
	}

	formula := AttackFormula(input.Actor.Kind(), input.Attack, weapon.System.BonusAb.Value)

	data, err := o.rollData(input.Actor)
	if err != nil {
		return nil, err
	}

	msg := o.newMessage(input.Actor)
	if input.Label != "" {
		msg.Flavor = append(msg.Flavor, FlavorPrefix+input.Label)
	} else {
		msg.Flavor = append(msg.Flavor,
			FlavorPrefix+titleCase(input.Attack)+" attack with "+weapon.Name)
	}

	if err := o.roll(ctx, msg, formula, data); err != nil {
		return nil, err
	}

	o.logRoll("Attack rolled", input.Actor, msg)
	return &RollAttackOutput{Message: msg}, nil
}

// AttackFormula builds the weapon attack formula. Characters add their
// strength bonus to melee and their dexterity bonus to ranged attacks; a
// malformed weapon bonus counts as zero.
func AttackFormula(kind bfrpg.Kind, attack string, weaponBonus bfrpg.Number) string {
	var b strings.Builder
	b.WriteString(BaseAttackFormula)
	if kind == bfrpg.KindCharacter {
		switch attack {
		case bfrpg.AttackMelee:
			b.WriteString("+@str.bonus")
		case bfrpg.AttackRanged:
			b.WriteString("+@dex.bonus")
		}
	}
	b.WriteString(signed(weaponBonus.Float()))
	return b.String()
}

// RollInitiative rolls initiative with the formula for the actor's kind
func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}

	formula := InitiativeFormula
	if input.Actor.Kind() == bfrpg.KindCharacter {
		formula = CharacterInitiativeFormula
	}

	data, err := o.rollData(input.Actor)
	if err != nil {
		return nil, err
	}

	msg := o.newMessage(input.Actor)
	msg.Flavor = append(msg.Flavor, FlavorPrefix+"Initiative")

	if err := o.roll(ctx, msg, formula, data); err != nil {
		return nil, err
	}

	o.logRoll("Initiative rolled", input.Actor, msg)
	return &RollInitiativeOutput{
		Message:    msg,
		Initiative: int(msg.Roll.Total),
	}, nil
}

// RollHitPoints rolls <n>d<size>+<mod> with at least one die and a minimum
// result of 1
func (o *orchestrator) RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}
	monster := input.Actor.Monster()
	if monster == nil {
		return nil, errors.FailedPreconditionf("hit points are rolled for monsters, not %s", input.Actor.Kind())
	}

	if !o.autoRollTokenHP {
		slog.Debug("Hit point roll skipped", "actor_id", input.Actor.ID)
		return &RollHitPointsOutput{HitPoints: monster.HitPoints}, nil
	}

	formula, err := HitPointsFormula(monster.HitDice)
	if err != nil {
		return nil, err
	}

	msg := o.newMessage(input.Actor)
	msg.Flavor = append(msg.Flavor, FlavorPrefix+"Hit Points")

	if err := o.roll(ctx, msg, formula, nil); err != nil {
		return nil, err
	}

	hp := bfrpg.Number(msg.Roll.Total)
	monster.HitPoints = bfrpg.Pool{Value: hp, Max: hp}

	o.logRoll("Hit points rolled", input.Actor, msg)
	return &RollHitPointsOutput{
		Message:   msg,
		HitPoints: monster.HitPoints,
		Rolled:    true,
	}, nil
}

// HitPointsFormula builds the hit point formula for a monster's hit dice
func HitPointsFormula(hd bfrpg.HitDice) (string, error) {
	size := rules.DieRank(hd.Size)
	if size < 1 {
		return "", errors.InvalidArgumentf("invalid hit die size %q", hd.Size)
	}

	n := max(rules.HitDiceCount(hd.Number), 1)

	return fmt.Sprintf("max(1, %dd%d%s)", n, size, signed(math.Trunc(hd.Mod.Float()))), nil
}

func (o *orchestrator) rollData(actor *bfrpg.Actor) (*rules.RollData, error) {
	if actor.System == nil {
		return nil, errors.InvalidArgumentf("actor %s has no system data", actor.ID)
	}

	o.deriver.Prepare(actor)
	data, err := rules.NewRollData(actor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build roll data for actor %s", actor.ID)
	}
	return data, nil
}

func (o *orchestrator) newMessage(speaker *bfrpg.Actor) *ChatMessage {
	return &ChatMessage{
		ID:        o.idGen.Generate(),
		Speaker:   speaker,
		CreatedAt: o.clock.Now(),
	}
}

func (o *orchestrator) roll(ctx context.Context, msg *ChatMessage, formula string, data engine.Variables) error {
	result, err := o.resolver.Evaluate(ctx, formula, data)
	if err != nil {
		return errors.Wrapf(err, "failed to roll %q", formula)
	}
	msg.Roll = result
	return nil
}

// classify resolves the target number and appends the success line. A target
// that cannot be resolved becomes a warning on the message.
func (o *orchestrator) classify(ctx context.Context, msg *ChatMessage, data engine.Variables, targetExpr string, rollUnder bool) error {
	target, err := o.resolver.ResolveTargetNumber(ctx, targetExpr, data)
	if err != nil {
		if !errors.GetCode(err).Recoverable() {
			return err
		}
		slog.Warn("Target number could not be resolved",
			"message_id", msg.ID,
			"target_number", targetExpr,
			"error", err,
		)
		detail := err
		if cause := errors.Unwrap(err); cause != nil {
			detail = cause
		}
		msg.Warnings = append(msg.Warnings, fmt.Sprintf("target number %q ignored: %s", targetExpr, errors.GetMessage(detail)))
	}

	msg.Outcome = rollrules.ClassifySuccess(msg.Roll.Total, target, rollUnder)
	if msg.Outcome.Classified {
		msg.Flavor = append(msg.Flavor, msg.Outcome.Message)
	}
	return nil
}

func (o *orchestrator) logRoll(event string, actor *bfrpg.Actor, msg *ChatMessage) {
	slog.Info(event,
		"actor_id", actor.ID,
		"formula", msg.Roll.Formula,
		"total", msg.Roll.Total,
		"outcome", msg.Outcome.Label(),
		"message_id", msg.ID,
	)
}

func findItem(actor *bfrpg.Actor, id string) (*bfrpg.Item, error) {
	if id == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}
	item, ok := actor.Item(id)
	if !ok {
		return nil, errors.NotFoundf("item %s not found on actor %s", id, actor.ID)
	}
	return item, nil
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// signed renders a bonus as "+n" or "-n"
func signed(v float64) string {
	if v < 0 {
		return "-" + strconv.FormatFloat(-v, 'f', -1, 64)
	}
	return "+" + strconv.FormatFloat(v, 'f', -1, 64)
}
