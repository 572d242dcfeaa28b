// Package rules computes the derived attributes of Basic Fantasy actors.
//
// Every function here is total: malformed or missing inputs are coerced to
// zero or the table default and never produce an error.
package rules

import "github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"

// abilityBonusTable is indexed by score; scores outside 3..18 have no entry
var abilityBonusTable = [...]int{
	3: -3,
	4: -2, 5: -2,
	6: -1, 7: -1, 8: -1,
	9: 0, 10: 0, 11: 0, 12: 0,
	13: 1, 14: 1, 15: 1,
	16: 2, 17: 2,
	18: 3,
}

// AbilityBonus maps an ability score to its bonus. Scores outside 3..18 and
// non-integer scores get no bonus.
func AbilityBonus(score bfrpg.Number) int {
	if !score.IsInteger() {
		return 0
	}
	s := score.Int()
	if s < 3 || s >= len(abilityBonusTable) {
		return 0
	}
	return abilityBonusTable[s]
}
