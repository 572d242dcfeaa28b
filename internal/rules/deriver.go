package rules

import (
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

// Deriver recomputes the derived fields of an actor in place. Prepare only
// writes fields it owns, so running it twice on unchanged input is a no-op.
type Deriver struct{}

// NewDeriver returns a Deriver
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Prepare derives every computed field for the actor's kind
func (d *Deriver) Prepare(actor *bfrpg.Actor) {
	if actor == nil {
		return
	}

	switch system := actor.System.(type) {
	case *bfrpg.Character:
		d.prepareCharacter(system)
	case *bfrpg.Monster:
		d.prepareMonster(system)
	case *bfrpg.SiegeEngine:
		// nothing is derived for siege engines
	case *bfrpg.Stronghold:
		d.prepareStronghold(system, actor.Items)
	case *bfrpg.Vehicle:
		d.prepareVehicle(system)
	}
}

func (d *Deriver) prepareCharacter(c *bfrpg.Character) {
	for _, ability := range c.Abilities {
		if ability == nil {
			continue
		}
		ability.Bonus = AbilityBonus(ability.Value)
	}
}

func (d *Deriver) prepareMonster(m *bfrpg.Monster) {
	m.XP.Value = bfrpg.Number(MonsterXP(m.HitDice, m.SpecialAbility.Value))
	m.AttackBonus.Value = bfrpg.Number(MonsterAttackBonus(m.HitDice.Number))
}

func (d *Deriver) prepareStronghold(s *bfrpg.Stronghold, items []*bfrpg.Item) {
	var floors, walls []*bfrpg.Item
	for _, item := range items {
		switch item.Type {
		case bfrpg.ItemKindFloor:
			item.System.Price.Value = bfrpg.Number(FloorPrice(string(item.System.Material.Value), item.System.Area.Value))
			floors = append(floors, item)
		case bfrpg.ItemKindWall:
			priced := WallPricing(string(item.System.Material.Value), item.System.Thickness.Value, item.System.Quantity.Value)
			item.System.Hardness.Value = bfrpg.Number(priced.Hardness)
			item.System.Thickness.Value = priced.Thickness
			item.System.Price.Value = bfrpg.Number(priced.Price)
			walls = append(walls, item)
		}
	}

	totals := ComputeStrongholdTotals(floors, walls, s.CostMultiplier.Value, s.Workers.Value)
	s.Height.Value = bfrpg.Number(totals.Height)
	s.Cost.Value = bfrpg.Number(totals.Cost)
	s.BuildTime.Value = bfrpg.Number(totals.BuildTime)
}

func (d *Deriver) prepareVehicle(v *bfrpg.Vehicle) {
	value, maximum := AggregateVehicleHitPoints(v.HitPoints)
	v.HitPoints.Value = bfrpg.Number(value)
	v.HitPoints.Max = bfrpg.Number(maximum)
	v.Move.Current = bfrpg.Number(VehicleMove(v.HitPoints, v.Move.Value))
}
