package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

var (
	xpLookup = [...]int{
		10, 25, 75, 145, 240, 360, 500, 670, 875, 1075, 1300, 1575, 1875,
		2175, 2500, 2850, 3250, 3600, 4000, 4500, 5250, 6000, 6750, 7500, 8250, 9000,
	}
	specialAbilityLookup = [...]int{
		3, 12, 25, 30, 40, 45, 55, 65, 70, 75, 90, 95, 100,
		110, 115, 125, 135, 145, 160, 175, 200, 225, 250, 275, 300, 325,
	}
)

// attack bonus for hit dice 9..31, indexed by n-9
var attackBonusLookup = [...]int{
	8,
	9, 9,
	10, 10,
	11, 11,
	12, 12, 12, 12,
	13, 13, 13, 13,
	14, 14, 14, 14,
	15, 15, 15, 15,
}

const (
	xpTableMax        = len(xpLookup) - 1
	xpPerExtraHD      = 750
	specialPerExtraHD = 25
	minFullXPDieSize  = 8
)

// DieRank returns the numeric size of a die such as "d8", or 0 when the
// size cannot be read.
func DieRank(size string) int {
	s := strings.TrimSpace(strings.ToLower(size))
	if !strings.HasPrefix(s, "d") {
		return 0
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MaxHitDice caps the hit dice count so oversized values stay in int range
const MaxHitDice = 1 << 20

// HitDiceCount floors the hit dice number into 0..MaxHitDice. NaN and
// negative numbers count as zero.
func HitDiceCount(n bfrpg.Number) int {
	f := math.Floor(n.Float())
	switch {
	case f <= 0:
		return 0
	case f >= MaxHitDice:
		return MaxHitDice
	default:
		return int(f)
	}
}

// MonsterXP returns the experience value of a monster with the given hit dice
// and number of special abilities.
func MonsterXP(hd bfrpg.HitDice, specialAbilities bfrpg.Number) int {
	n := HitDiceCount(hd.Number)
	k := specialAbilities.Float()

	var base, rate int
	switch {
	case n < 1 || (n == 1 && hd.Mod.Float() < 0) || DieRank(hd.Size) < minFullXPDieSize:
		base, rate = xpLookup[0], specialAbilityLookup[0]
	case n > xpTableMax:
		extra := n - xpTableMax
		base = xpLookup[xpTableMax] + extra*xpPerExtraHD
		rate = specialAbilityLookup[xpTableMax] + extra*specialPerExtraHD
	default:
		base, rate = xpLookup[n], specialAbilityLookup[n]
	}

	bonus := float64(rate) * k
	if bonus < 0 {
		bonus = 0
	}
	return base + int(bonus)
}

// MonsterAttackBonus returns a monster's attack bonus from its hit dice number
func MonsterAttackBonus(hitDice bfrpg.Number) int {
	n := HitDiceCount(hitDice)
	switch {
	case n < 1:
		return 0
	case n > 31:
		return 16
	case n <= 8:
		return n
	default:
		return attackBonusLookup[n-9]
	}
}
