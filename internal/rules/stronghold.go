package rules

import (
	"math"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

var floorPriceMultiplier = map[string]float64{
	bfrpg.MaterialRoofSlate: 4,
	bfrpg.MaterialRoofWood:  2,
}

// FloorPrice returns the price of a floor or roof section of the given area
func FloorPrice(material string, area bfrpg.Number) float64 {
	multiplier, ok := floorPriceMultiplier[material]
	if !ok {
		multiplier = 1
	}
	return area.Float() / 10 * multiplier
}

type wallMaterial struct {
	hardness     int
	prices       map[float64]float64 // thickness to price
	defaultPrice float64
	fixedWidth   float64 // when set, thickness is forced to this value
}

var wallMaterials = map[string]wallMaterial{
	bfrpg.MaterialStoneHard: {
		hardness:     16,
		prices:       map[float64]float64{15: 350, 10: 260, 5: 90},
		defaultPrice: 40,
	},
	bfrpg.MaterialStoneSoft: {
		hardness:     12,
		prices:       map[float64]float64{10: 200, 5: 70},
		defaultPrice: 30,
	},
	bfrpg.MaterialBrick: {
		hardness:     8,
		prices:       map[float64]float64{5: 50},
		defaultPrice: 20,
	},
	bfrpg.MaterialWood: {
		hardness:     6,
		defaultPrice: 10,
		fixedWidth:   1,
	},
}

// WallPrice is the priced form of one wall item
type WallPrice struct {
	Hardness  int
	Thickness bfrpg.Number
	Price     float64
}

// WallPricing prices a wall section. Unknown materials price as wood and
// thicknesses missing from a material's table use its default tier.
func WallPricing(material string, thickness, quantity bfrpg.Number) WallPrice {
	m, ok := wallMaterials[material]
	if !ok {
		m = wallMaterials[bfrpg.MaterialWood]
	}

	if m.fixedWidth > 0 {
		thickness = bfrpg.Number(m.fixedWidth)
	}

	price, ok := m.prices[thickness.Float()]
	if !ok || !thickness.Valid() {
		price = m.defaultPrice
	}

	return WallPrice{
		Hardness:  m.hardness,
		Thickness: thickness,
		Price:     price * quantity.Float(),
	}
}

// StrongholdTotals are the derived aggregates of a stronghold
type StrongholdTotals struct {
	Height    float64
	Cost      float64
	BuildTime int
}

// ComputeStrongholdTotals sums floor heights and prices with wall prices,
// applies the height surcharge and cost multiplier, and estimates build time
// in days. Prices are read from the already priced items.
func ComputeStrongholdTotals(floors, walls []*bfrpg.Item, costMultiplier, workers bfrpg.Number) StrongholdTotals {
	var height, base float64
	for _, floor := range floors {
		height += floor.System.Height.Value.Float()
		base += floor.System.Price.Value.Float()
	}
	for _, wall := range walls {
		base += wall.System.Price.Value.Float()
	}

	multiplier := costMultiplier.Float()
	if multiplier <= 0 {
		multiplier = 1
	}

	// every 10' of height adds 10% to the cost
	cost := (base + base*height/100) * multiplier

	return StrongholdTotals{
		Height:    height,
		Cost:      cost,
		BuildTime: BuildTime(cost, workers),
	}
}

// BuildTime returns ceil(max(cost/workers, sqrt(cost))). Without a positive
// workforce only the square-root floor applies.
func BuildTime(cost float64, workers bfrpg.Number) int {
	if cost <= 0 || math.IsNaN(cost) {
		return 0
	}
	days := math.Sqrt(cost)
	if w := workers.Float(); w > 0 {
		days = math.Max(cost/w, days)
	}
	return int(math.Ceil(days))
}
