// Package engine defines the dice evaluator contract used to resolve rolls
package engine

//go:generate mockgen -destination=mock/mock_evaluator.go -package=enginemock github.com/KirkDiggler/bfrpg-rules/internal/engine Evaluator

import (
	"context"
)

// Evaluator turns a dice formula into a total. Implementations substitute
// @variables from the input's Data, roll each dice term and compute the
// remaining arithmetic.
type Evaluator interface {
	// Evaluate fails with an invalid formula error when the formula references
	// an unresolved variable or cannot be parsed.
	Evaluate(ctx context.Context, input *EvaluateInput) (*Result, error)
}

// Variables resolves a dotted @variable path to a number
type Variables interface {
	Lookup(path string) (float64, bool)
}
