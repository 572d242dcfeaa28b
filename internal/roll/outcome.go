package roll

import (
	"math"
	"strconv"
)

// Natural results that override the target in roll-over mode
const (
	NaturalFailure = 1
	NaturalSuccess = 20
)

// Outcome is the classification of a roll against a target number. When
// Classified is false neither success nor failure is asserted and Message is
// empty.
type Outcome struct {
	Classified bool
	Success    bool
	Target     float64
	Message    string
}

// Label is the short success or failure word, or "" when unclassified
func (o Outcome) Label() string {
	switch {
	case !o.Classified:
		return ""
	case o.Success:
		return "Success"
	default:
		return "Failure"
	}
}

// ClassifySuccess compares a roll total with its target. A total of 20
// always succeeds and a total of 1 always fails unless rollUnder is set, in
// which case success is total <= target. A missing total or target, NaN or
// zero, produces no classification.
func ClassifySuccess(total, target float64, rollUnder bool) Outcome {
	if absent(total) || absent(target) {
		return Outcome{Target: target}
	}

	var success bool
	if rollUnder {
		success = total <= target
	} else {
		success = total == NaturalSuccess || (total > NaturalFailure && total >= target)
	}

	out := Outcome{
		Classified: true,
		Success:    success,
		Target:     target,
	}
	out.Message = out.Label() + " vs. target number " + strconv.FormatFloat(target, 'f', -1, 64)
	return out
}

func absent(v float64) bool {
	return v == 0 || math.IsNaN(v)
}
