package builders

import (
	"fmt"
	"sync/atomic"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

var itemSeq uint64

// ItemBuilder provides a fluent interface for building test Item instances
type ItemBuilder struct {
	item *bfrpg.Item
}

// NewItemBuilder creates an item of the given kind with a unique ID
func NewItemBuilder(kind bfrpg.ItemKind, name string) *ItemBuilder {
	n := atomic.AddUint64(&itemSeq, 1)
	return &ItemBuilder{
		item: &bfrpg.Item{
			ID:   fmt.Sprintf("item-test-%03d", n),
			Name: name,
			Type: kind,
		},
	}
}

// WithID sets the item ID
func (b *ItemBuilder) WithID(id string) *ItemBuilder {
	b.item.ID = id
	return b
}

// WithWeight sets the item weight
func (b *ItemBuilder) WithWeight(weight bfrpg.Number) *ItemBuilder {
	b.item.System.Weight.Value = weight
	return b
}

// WithQuantity sets the item quantity
func (b *ItemBuilder) WithQuantity(quantity bfrpg.Number) *ItemBuilder {
	b.item.System.Quantity.Value = quantity
	return b
}

// WithDescription sets the item description
func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.item.System.Description = description
	return b
}

// WithFormula sets the roll formula
func (b *ItemBuilder) WithFormula(formula string) *ItemBuilder {
	b.item.System.Formula.Value = bfrpg.Text(formula)
	return b
}

// WithTarget sets the target number expression and roll mode
func (b *ItemBuilder) WithTarget(target string, rollUnder bool) *ItemBuilder {
	b.item.System.TargetNumber.Value = bfrpg.Text(target)
	b.item.System.RollUnder.Value = bfrpg.Flag(rollUnder)
	return b
}

// WithBonusAb sets a weapon's attack bonus
func (b *ItemBuilder) WithBonusAb(bonus bfrpg.Number) *ItemBuilder {
	b.item.System.BonusAb.Value = bonus
	return b
}

// WithSpellLevel sets a spell's level
func (b *ItemBuilder) WithSpellLevel(level bfrpg.Number) *ItemBuilder {
	b.item.System.SpellLevel.Value = level
	return b
}

// WithFloorSection sets material, area and height of a floor
func (b *ItemBuilder) WithFloorSection(material string, area, height bfrpg.Number) *ItemBuilder {
	b.item.System.Material.Value = bfrpg.Text(material)
	b.item.System.Area.Value = area
	b.item.System.Height.Value = height
	return b
}

// WithWallSection sets material, thickness and quantity of a wall
func (b *ItemBuilder) WithWallSection(material string, thickness, quantity bfrpg.Number) *ItemBuilder {
	b.item.System.Material.Value = bfrpg.Text(material)
	b.item.System.Thickness.Value = thickness
	b.item.System.Quantity.Value = quantity
	return b
}

// OnFloor assigns a wall to a floor number
func (b *ItemBuilder) OnFloor(floor bfrpg.Number) *ItemBuilder {
	b.item.System.Floor = &bfrpg.Field{Value: floor}
	return b
}

// Build returns the built item
func (b *ItemBuilder) Build() *bfrpg.Item {
	return b.item
}
