package rules

import (
	"math"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

// Spell levels shown on a sheet
const (
	MinSpellLevel = 1
	MaxSpellLevel = 6
)

// Inventory is an actor's items bucketed for display
type Inventory struct {
	Gear     []*bfrpg.Item
	Weapons  []*bfrpg.Item
	Armor    []*bfrpg.Item
	Spells   map[int][]*bfrpg.Item // levels 1..6, always present
	Features []*bfrpg.Item
	Floors   []*bfrpg.Item
	Walls    map[int][]*bfrpg.Item // keyed by floor number
	// CarriedWeight is the floored weight of gear, weapons, armor and coins
	CarriedWeight int
}

// OrganizeItems buckets items by kind and folds in carried weight. Spells
// outside levels 1..6 and walls without a floor number are left out.
func OrganizeItems(items []*bfrpg.Item, money map[string]*bfrpg.Field) *Inventory {
	inv := &Inventory{
		Spells: make(map[int][]*bfrpg.Item, MaxSpellLevel),
		Walls:  make(map[int][]*bfrpg.Item),
	}
	for level := MinSpellLevel; level <= MaxSpellLevel; level++ {
		inv.Spells[level] = nil
	}

	for _, item := range items {
		switch item.Type {
		case bfrpg.ItemKindItem:
			inv.Gear = append(inv.Gear, item)
		case bfrpg.ItemKindWeapon:
			inv.Weapons = append(inv.Weapons, item)
		case bfrpg.ItemKindArmor:
			inv.Armor = append(inv.Armor, item)
		case bfrpg.ItemKindSpell:
			if level, ok := spellLevel(item); ok {
				inv.Spells[level] = append(inv.Spells[level], item)
			}
		case bfrpg.ItemKindFeature:
			inv.Features = append(inv.Features, item)
		case bfrpg.ItemKindFloor:
			inv.Floors = append(inv.Floors, item)
		case bfrpg.ItemKindWall:
			if floor, ok := wallFloor(item); ok {
				inv.Walls[floor] = append(inv.Walls[floor], item)
			}
		}
	}

	inv.CarriedWeight = CarriedWeight(items, money)
	return inv
}

func spellLevel(item *bfrpg.Item) (int, bool) {
	level := item.System.SpellLevel.Value
	if !level.IsInteger() {
		return 0, false
	}
	n := level.Int()
	return n, n >= MinSpellLevel && n <= MaxSpellLevel
}

func wallFloor(item *bfrpg.Item) (int, bool) {
	if item.System.Floor == nil {
		return 0, false
	}
	floor := item.System.Floor.Value
	if !floor.Valid() || floor < 0 {
		return 0, false
	}
	return int(math.Floor(float64(floor))), true
}
