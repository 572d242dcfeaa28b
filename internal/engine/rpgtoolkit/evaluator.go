// Package rpgtoolkit provides the concrete implementation of the engine
// evaluator. Dice terms are rolled with the rpg-toolkit roller and the
// remaining arithmetic runs in a tengo VM.
package rpgtoolkit

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/d5/tengo/v2"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// DefaultTimeout bounds a single formula run
const DefaultTimeout = 250 * time.Millisecond

var (
	variablePattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)`)
	allowedPattern  = regexp.MustCompile(`^[0-9A-Za-z\s+\-*/().,]*$`)
	identPattern    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Config holds the dependencies for the evaluator
type Config struct {
	Roller  dice.Roller
	Timeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Timeout < 0 {
		vb.InvalidField("Timeout", "must not be negative")
	}

	return vb.Build()
}

// Evaluator implements engine.Evaluator
type Evaluator struct {
	roller  dice.Roller
	timeout time.Duration
	funcs   map[string]interface{}
}

// NewEvaluator creates an evaluator. A zero timeout uses DefaultTimeout.
func NewEvaluator(cfg *Config) (*Evaluator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Evaluator{
		roller:  cfg.Roller,
		timeout: timeout,
		funcs:   helperFunctions(),
	}, nil
}

// Evaluate resolves variables, rolls dice terms and computes the total
func (e *Evaluator) Evaluate(ctx context.Context, input *engine.EvaluateInput) (*engine.Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "formula evaluation canceled")
	}

	formula := strings.TrimSpace(input.Formula)
	if formula == "" {
		return nil, errors.Formula(input.Formula, "formula is empty")
	}

	resolved, err := resolveVariables(formula, input.Data)
	if err != nil {
		return nil, err
	}

	if !allowedPattern.MatchString(resolved) {
		return nil, errors.Formula(formula, "formula contains unsupported characters")
	}

	expr, terms, err := e.rollDice(formula, resolved)
	if err != nil {
		return nil, err
	}

	for _, ident := range identPattern.FindAllString(expr, -1) {
		if _, ok := e.funcs[ident]; !ok {
			return nil, errors.Formulaf(formula, "unknown term %q", ident)
		}
	}

	expr = floatLiterals(expr)

	total, err := e.compute(ctx, formula, expr)
	if err != nil {
		return nil, err
	}

	slog.Debug("Formula evaluated",
		"formula", formula,
		"expression", expr,
		"total", total,
		"dice_terms", len(terms),
	)

	return &engine.Result{
		Formula:    formula,
		Resolved:   resolved,
		Expression: expr,
		Total:      total,
		Dice:       terms,
	}, nil
}

// resolveVariables replaces every @path with its parenthesised value
func resolveVariables(formula string, data engine.Variables) (string, error) {
	var missing string
	out := variablePattern.ReplaceAllStringFunc(formula, func(match string) string {
		path := match[1:]
		if data == nil {
			if missing == "" {
				missing = path
			}
			return match
		}
		v, ok := data.Lookup(path)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			if missing == "" {
				missing = path
			}
			return match
		}
		return "(" + strconv.FormatFloat(v, 'f', -1, 64) + ")"
	})

	if missing != "" {
		return "", errors.Formulaf(formula, "unresolved variable @%s", missing)
	}
	return out, nil
}

// floatLiterals rewrites integer literals as floats so division is never
// truncated by the VM.
func floatLiterals(expr string) string {
	return numberPattern.ReplaceAllStringFunc(expr, func(n string) string {
		if strings.Contains(n, ".") {
			return n
		}
		return n + ".0"
	})
}

func (e *Evaluator) compute(ctx context.Context, formula, expr string) (float64, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	value, err := tengo.Eval(runCtx, expr, e.funcs)
	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return 0, errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "formula evaluation timed out").
					WithMeta(errors.MetaFormula, formula)
			}
			return 0, errors.WrapWithCode(err, errors.CodeCanceled, "formula evaluation canceled").
				WithMeta(errors.MetaFormula, formula)
		}
		return 0, errors.WrapFormula(err, formula, "failed to evaluate formula")
	}

	var total float64
	switch v := value.(type) {
	case float64:
		total = v
	case int64:
		total = float64(v)
	default:
		return 0, errors.Formulaf(formula, "formula produced %T instead of a number", value)
	}

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, errors.Formula(formula, "formula does not produce a finite number")
	}
	return total, nil
}
