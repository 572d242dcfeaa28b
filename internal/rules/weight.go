package rules

import (
	"math"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

// coinsPerWeightUnit is how many coins weigh one unit
const coinsPerWeightUnit = 20

// AddWeight folds one possession into a running carried weight. Invalid or
// non-positive quantities are skipped and a non-numeric weight adds nothing.
func AddWeight(total float64, weight, quantity bfrpg.Number) float64 {
	if !quantity.Valid() || quantity <= 0 || !weight.Valid() {
		return total
	}
	return total + float64(weight)*float64(quantity)
}

// AddCoins folds a coin count into a running carried weight
func AddCoins(total, coins float64) float64 {
	if math.IsNaN(coins) || coins <= 0 {
		return total
	}
	if units := math.Floor(coins / coinsPerWeightUnit); units > 0 {
		return total + units
	}
	return total
}

// CoinCount sums every denomination as individual coins. Missing or malformed
// denominations count as none.
func CoinCount(money map[string]*bfrpg.Field) float64 {
	var coins float64
	for _, denomination := range bfrpg.Coins {
		if f, ok := money[denomination]; ok && f != nil {
			coins += f.Value.Float()
		}
	}
	return coins
}

// itemWeight is the contribution of one item to carried weight
func itemWeight(total float64, item *bfrpg.Item) float64 {
	switch item.Type {
	case bfrpg.ItemKindItem:
		return AddWeight(total, item.System.Weight.Value, item.System.Quantity.Value)
	case bfrpg.ItemKindWeapon, bfrpg.ItemKindArmor:
		return AddWeight(total, item.System.Weight.Value, 1)
	default:
		return total
	}
}

// CarriedWeight returns the floored weight of gear, weapons, armor and coins
func CarriedWeight(items []*bfrpg.Item, money map[string]*bfrpg.Field) int {
	total := 0.0
	for _, item := range items {
		total = itemWeight(total, item)
	}
	if money != nil {
		total = AddCoins(total, CoinCount(money))
	}
	return int(math.Floor(total))
}
