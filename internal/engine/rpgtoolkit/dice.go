package rpgtoolkit

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// MaxDice caps the number of dice in one term
const MaxDice = 100

// Matches NdM, dM, NdMkhK, NdMklK and NdMkK (keep highest). The count may
// also be a parenthesised number, which is what (@var)dM resolves to.
var dicePattern = regexp.MustCompile(`(?i)(?:(\(+)\s*([+-]?\d+(?:\.\d+)?)\s*(\)+)|\b(\d*))d(\d+)(?:(kh|kl|k)(\d*))?\b`)

// rollDice replaces each dice term in expr with its parenthesised total
func (e *Evaluator) rollDice(formula, expr string) (string, []engine.DiceTerm, error) {
	var (
		terms []engine.DiceTerm
		out   strings.Builder
		last  int
	)

	for _, loc := range dicePattern.FindAllStringSubmatchIndex(expr, -1) {
		start, end := loc[0], loc[1]
		if loc[2] >= 0 {
			// surplus opening parens belong to the surrounding expression
			opens, closes := loc[3]-loc[2], loc[7]-loc[6]
			if closes > opens {
				return "", nil, errors.Formulaf(formula, "dice count in %q must be a number or a single @variable", expr[start:end])
			}
			start += opens - closes
		}
		if prev := strings.TrimRight(expr[last:start], " \t"); strings.HasSuffix(prev, ")") {
			return "", nil, errors.Formulaf(formula, "dice count before %q must be a number or a single @variable", expr[start:end])
		}

		term, err := e.rollTerm(formula, expr[start:end])
		if err != nil {
			return "", nil, err
		}
		terms = append(terms, *term)

		out.WriteString(expr[last:start])
		out.WriteString("(" + strconv.Itoa(term.Total) + ")")
		last = end
	}
	out.WriteString(expr[last:])

	return out.String(), terms, nil
}

func (e *Evaluator) rollTerm(formula, match string) (*engine.DiceTerm, error) {
	term, err := parseDiceTerm(formula, match)
	if err != nil {
		return nil, err
	}
	if term.Count == 0 {
		return term, nil
	}

	results, err := e.roller.RollN(term.Count, term.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", match)
	}
	term.Results = results

	kept, dropped := keepDice(results, term.Keep, term.KeepCount)
	term.Dropped = dropped
	for _, r := range kept {
		term.Total += r
	}

	return term, nil
}

// parseDiceTerm reads one dice term such as 4d6kh3
func parseDiceTerm(formula, match string) (*engine.DiceTerm, error) {
	m := dicePattern.FindStringSubmatch(match)
	if m == nil {
		return nil, errors.Formulaf(formula, "invalid dice term %q", match)
	}

	count := 1
	switch {
	case m[2] != "":
		if len(m[1]) != len(m[3]) {
			return nil, errors.Formulaf(formula, "unbalanced parentheses in dice count %q", match)
		}
		f, err := strconv.ParseFloat(m[2], 64)
		if err != nil || f < 0 {
			return nil, errors.Formulaf(formula, "dice count in %q must not be negative", match)
		}
		if f > MaxDice {
			return nil, errors.Formulaf(formula, "too many dice in %q (max %d)", match, MaxDice)
		}
		count = int(math.Floor(f))
	case m[4] != "":
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return nil, errors.Formulaf(formula, "invalid dice count in %q", match)
		}
		count = n
	}
	if count > MaxDice {
		return nil, errors.Formulaf(formula, "too many dice in %q (max %d)", match, MaxDice)
	}

	size, err := strconv.Atoi(m[5])
	if err != nil || size < 1 {
		return nil, errors.Formulaf(formula, "invalid die size in %q", match)
	}

	term := &engine.DiceTerm{
		Expression: match,
		Count:      count,
		Size:       size,
		KeepCount:  count,
	}

	if mode := strings.ToLower(m[6]); mode != "" {
		term.Keep = engine.KeepHighest
		if mode == engine.KeepLowest {
			term.Keep = engine.KeepLowest
		}
		term.KeepCount = 1
		if m[7] != "" {
			n, err := strconv.Atoi(m[7])
			if err != nil {
				return nil, errors.Formulaf(formula, "invalid keep count in %q", match)
			}
			term.KeepCount = n
		}
		if term.KeepCount > count {
			term.KeepCount = count
		}
	}

	return term, nil
}

// keepDice splits results into kept and dropped faces
func keepDice(results []int, mode string, keep int) (kept, dropped []int) {
	if mode == engine.KeepAll || keep >= len(results) {
		return results, nil
	}

	sorted := append([]int(nil), results...)
	if mode == engine.KeepHighest {
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	} else {
		sort.Ints(sorted)
	}

	return sorted[:keep], sorted[keep:]
}
