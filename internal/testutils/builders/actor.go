// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

// ActorBuilder provides a fluent interface for building test Actor instances
type ActorBuilder struct {
	actor *bfrpg.Actor
}

// NewCharacterBuilder creates a level 1 character with average abilities
func NewCharacterBuilder() *ActorBuilder {
	abilities := make(map[string]*bfrpg.Ability, len(bfrpg.Abilities))
	for _, key := range bfrpg.Abilities {
		abilities[key] = &bfrpg.Ability{Value: 10}
	}
	saves := make(map[string]*bfrpg.Field, len(bfrpg.Saves))
	for _, key := range bfrpg.Saves {
		saves[key] = &bfrpg.Field{Value: 12}
	}

	return &ActorBuilder{
		actor: &bfrpg.Actor{
			ID:   "character-test-001",
			Name: "Test Character",
			System: &bfrpg.Character{
				Abilities: abilities,
				Saves:     saves,
				Money:     map[string]*bfrpg.Field{},
				Level:     bfrpg.Field{Value: 1},
				HitPoints: bfrpg.Pool{Value: 6, Max: 6},
			},
		},
	}
}

// NewMonsterBuilder creates a 1d8 hit dice monster
func NewMonsterBuilder() *ActorBuilder {
	return &ActorBuilder{
		actor: &bfrpg.Actor{
			ID:   "monster-test-001",
			Name: "Test Monster",
			System: &bfrpg.Monster{
				HitDice: bfrpg.HitDice{Number: 1, Size: "d8"},
			},
		},
	}
}

// NewStrongholdBuilder creates an empty stronghold with one worker
func NewStrongholdBuilder() *ActorBuilder {
	return &ActorBuilder{
		actor: &bfrpg.Actor{
			ID:   "stronghold-test-001",
			Name: "Test Keep",
			System: &bfrpg.Stronghold{
				CostMultiplier: bfrpg.Field{Value: 1},
				Workers:        bfrpg.Field{Value: 1},
			},
		},
	}
}

// NewVehicleBuilder creates a vehicle with 10 hit points on every side
func NewVehicleBuilder() *ActorBuilder {
	full := bfrpg.Pool{Value: 10, Max: 10}
	return &ActorBuilder{
		actor: &bfrpg.Actor{
			ID:   "vehicle-test-001",
			Name: "Test Ship",
			System: &bfrpg.Vehicle{
				HitPoints: bfrpg.VehicleHitPoints{
					Forward: full, Aft: full, Port: full, Starboard: full,
				},
				Move: bfrpg.Move{Value: 120},
			},
		},
	}
}

// NewSiegeEngineBuilder creates a siege engine
func NewSiegeEngineBuilder() *ActorBuilder {
	return &ActorBuilder{
		actor: &bfrpg.Actor{
			ID:     "siege-test-001",
			Name:   "Test Catapult",
			System: &bfrpg.SiegeEngine{},
		},
	}
}

// WithID sets the actor ID
func (b *ActorBuilder) WithID(id string) *ActorBuilder {
	b.actor.ID = id
	return b
}

// WithName sets the actor name
func (b *ActorBuilder) WithName(name string) *ActorBuilder {
	b.actor.Name = name
	return b
}

// WithAbility sets a character ability score
func (b *ActorBuilder) WithAbility(key string, score bfrpg.Number) *ActorBuilder {
	if c := b.actor.Character(); c != nil {
		c.Abilities[key] = &bfrpg.Ability{Value: score}
	}
	return b
}

// WithLevel sets a character level
func (b *ActorBuilder) WithLevel(level bfrpg.Number) *ActorBuilder {
	if c := b.actor.Character(); c != nil {
		c.Level.Value = level
	}
	return b
}

// WithAttackBonus sets a character attack bonus
func (b *ActorBuilder) WithAttackBonus(ab bfrpg.Number) *ActorBuilder {
	if c := b.actor.Character(); c != nil {
		c.AttackBonus.Value = ab
	}
	return b
}

// WithMoney sets one coin denomination
func (b *ActorBuilder) WithMoney(denomination string, amount bfrpg.Number) *ActorBuilder {
	if c := b.actor.Character(); c != nil {
		c.Money[denomination] = &bfrpg.Field{Value: amount}
	}
	return b
}

// WithInitBonus sets the initiative bonus for any kind that has one
func (b *ActorBuilder) WithInitBonus(bonus bfrpg.Number) *ActorBuilder {
	switch s := b.actor.System.(type) {
	case *bfrpg.Character:
		s.InitBonus.Value = bonus
	case *bfrpg.Monster:
		s.InitBonus.Value = bonus
	case *bfrpg.SiegeEngine:
		s.InitBonus.Value = bonus
	case *bfrpg.Stronghold:
		s.InitBonus.Value = bonus
	case *bfrpg.Vehicle:
		s.InitBonus.Value = bonus
	}
	return b
}

// WithHitDice sets a monster's hit dice
func (b *ActorBuilder) WithHitDice(number bfrpg.Number, size string, mod bfrpg.Number) *ActorBuilder {
	if m := b.actor.Monster(); m != nil {
		m.HitDice = bfrpg.HitDice{Number: number, Size: size, Mod: mod}
	}
	return b
}

// WithSpecialAbilities sets a monster's special ability count
func (b *ActorBuilder) WithSpecialAbilities(count bfrpg.Number) *ActorBuilder {
	if m := b.actor.Monster(); m != nil {
		m.SpecialAbility.Value = count
	}
	return b
}

// WithWorkers sets a stronghold's workforce and cost multiplier
func (b *ActorBuilder) WithWorkers(workers, costMultiplier bfrpg.Number) *ActorBuilder {
	if s, ok := b.actor.System.(*bfrpg.Stronghold); ok {
		s.Workers.Value = workers
		s.CostMultiplier.Value = costMultiplier
	}
	return b
}

// WithSide sets one directional hit point pool of a vehicle
func (b *ActorBuilder) WithSide(side string, value, maximum bfrpg.Number) *ActorBuilder {
	v, ok := b.actor.System.(*bfrpg.Vehicle)
	if !ok {
		return b
	}
	pool := bfrpg.Pool{Value: value, Max: maximum}
	switch side {
	case bfrpg.SideForward:
		v.HitPoints.Forward = pool
	case bfrpg.SideAft:
		v.HitPoints.Aft = pool
	case bfrpg.SidePort:
		v.HitPoints.Port = pool
	case bfrpg.SideStarboard:
		v.HitPoints.Starboard = pool
	}
	return b
}

// WithItems appends owned items
func (b *ActorBuilder) WithItems(items ...*bfrpg.Item) *ActorBuilder {
	b.actor.Items = append(b.actor.Items, items...)
	return b
}

// Build returns the built actor
func (b *ActorBuilder) Build() *bfrpg.Actor {
	return b.actor
}
