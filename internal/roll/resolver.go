// Package roll resolves roll formulas and target numbers and classifies the
// outcome of a roll against its target.
package roll

//go:generate mockgen -destination=mock/mock_resolver.go -package=rollmock github.com/KirkDiggler/bfrpg-rules/internal/roll Resolver

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// Resolver evaluates roll formulas and target numbers
type Resolver interface {
	// Evaluate returns the result of a formula. Formula problems surface as
	// invalid formula errors.
	Evaluate(ctx context.Context, formula string, data engine.Variables) (*engine.Result, error)

	// ResolveTargetNumber returns a numeric target. An empty expression yields NaN
	// and no error. An expression that fails to evaluate yields NaN and the error,
	// which callers downgrade to a warning.
	ResolveTargetNumber(ctx context.Context, expr string, data engine.Variables) (float64, error)
}

// Config holds the dependencies for the resolver
type Config struct {
	Evaluator engine.Evaluator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}

	return vb.Build()
}

type resolver struct {
	evaluator engine.Evaluator
}

// NewResolver creates a resolver backed by the given evaluator
func NewResolver(cfg *Config) (Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &resolver{evaluator: cfg.Evaluator}, nil
}

// Evaluate delegates to the evaluator. Errors it reports are passed through
// unchanged.
func (r *resolver) Evaluate(ctx context.Context, formula string, data engine.Variables) (*engine.Result, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, errors.Formula(formula, "formula is empty")
	}

	return r.evaluator.Evaluate(ctx, &engine.EvaluateInput{
		Formula: formula,
		Data:    data,
	})
}

// ResolveTargetNumber parses a literal target or evaluates a formula target
func (r *resolver) ResolveTargetNumber(ctx context.Context, expr string, data engine.Variables) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return math.NaN(), nil
	}

	if n, err := strconv.ParseFloat(expr, 64); err == nil {
		return n, nil
	}

	result, err := r.Evaluate(ctx, expr, data)
	if err != nil {
		return math.NaN(), errors.Wrapf(err, "failed to resolve target number %q", expr)
	}
	return result.Total, nil
}
