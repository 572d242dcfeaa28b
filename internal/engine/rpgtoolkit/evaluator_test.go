package rpgtoolkit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/testutils"
)

type vars map[string]float64

func (v vars) Lookup(path string) (float64, bool) {
	f, ok := v[path]
	return f, ok
}

type failingRoller struct{}

func (failingRoller) Roll(_ int) (int, error)       { return 0, fmt.Errorf("roller offline") }
func (failingRoller) RollN(_, _ int) ([]int, error) { return nil, fmt.Errorf("roller offline") }

func TestNewEvaluator(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		evaluator, err := NewEvaluator(nil)
		assert.Error(t, err)
		assert.Nil(t, evaluator)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("missing roller", func(t *testing.T) {
		evaluator, err := NewEvaluator(&Config{})
		assert.Error(t, err)
		assert.Nil(t, evaluator)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := NewEvaluator(&Config{Roller: testutils.NewScriptedRoller(), Timeout: -time.Second})
		assert.Error(t, err)
	})

	t.Run("default timeout", func(t *testing.T) {
		evaluator, err := NewEvaluator(&Config{Roller: testutils.NewScriptedRoller()})
		assert.NoError(t, err)
		assert.Equal(t, DefaultTimeout, evaluator.timeout)
	})
}

type EvaluatorTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func (s *EvaluatorTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *EvaluatorTestSuite) evaluator(script ...[]int) (*Evaluator, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(script...)
	evaluator, err := NewEvaluator(&Config{Roller: roller})
	s.Require().NoError(err)
	return evaluator, roller
}

func (s *EvaluatorTestSuite) TestAttackFormula() {
	evaluator, roller := s.evaluator([]int{15})

	result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{
		Formula: "d20+@ab+@str.bonus+1",
		Data:    vars{"ab": 2, "str.bonus": -1},
	})
	s.Require().NoError(err)

	s.Equal(17.0, result.Total)
	s.Equal("d20+(2)+(-1)+1", result.Resolved)
	s.Require().Len(result.Dice, 1)
	s.Equal(1, result.Dice[0].Count)
	s.Equal(20, result.Dice[0].Size)
	s.Equal([]int{15}, result.Dice[0].Results)
	s.Equal([]testutils.RollCall{{Count: 1, Size: 20}}, roller.Calls)
}

func (s *EvaluatorTestSuite) TestKeepHighest() {
	evaluator, _ := s.evaluator([]int{1, 5, 3, 6})

	result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: "4d6kh3"})
	s.Require().NoError(err)

	s.Equal(14.0, result.Total)
	s.Equal(engine.KeepHighest, result.Dice[0].Keep)
	s.Equal(3, result.Dice[0].KeepCount)
	s.Equal([]int{1}, result.Dice[0].Dropped)
	s.Equal([]int{1, 5, 3, 6}, result.Dice[0].Results)
}

func (s *EvaluatorTestSuite) TestKeepLowestDefaultsToOne() {
	evaluator, _ := s.evaluator([]int{12, 7})

	result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: "2d20kl"})
	s.Require().NoError(err)

	s.Equal(7.0, result.Total)
	s.Equal([]int{12}, result.Dice[0].Dropped)
}

func (s *EvaluatorTestSuite) TestVariableDiceCount() {
	testCases := []struct {
		name    string
		formula string
		data    vars
		script  [][]int
		want    float64
		calls   []testutils.RollCall
	}{
		{
			name:    "variable count",
			formula: "(@lvl)d6",
			data:    vars{"lvl": 3},
			script:  [][]int{{1, 2, 3}},
			want:    6,
			calls:   []testutils.RollCall{{Count: 3, Size: 6}},
		},
		{
			name:    "inside a helper call",
			formula: "max(1, (@lvl)d8 - 10)",
			data:    vars{"lvl": 2},
			script:  [][]int{{1, 1}},
			want:    1,
			calls:   []testutils.RollCall{{Count: 2, Size: 8}},
		},
		{
			name:    "literal parenthesised count with keep",
			formula: "(4)d6kh3",
			script:  [][]int{{2, 6, 5, 1}},
			want:    13,
			calls:   []testutils.RollCall{{Count: 4, Size: 6}},
		},
		{
			name:    "fractional count floors",
			formula: "(@half)d4",
			data:    vars{"half": 1.5},
			script:  [][]int{{4}},
			want:    4,
			calls:   []testutils.RollCall{{Count: 1, Size: 4}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			evaluator, roller := s.evaluator(tc.script...)

			result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: tc.formula, Data: tc.data})
			s.Require().NoError(err)
			s.Equal(tc.want, result.Total)
			s.Equal(tc.calls, roller.Calls)
		})
	}
}

func (s *EvaluatorTestSuite) TestUnsupportedDiceCount() {
	testCases := []struct {
		name    string
		formula string
		data    vars
		message string
	}{
		{name: "arithmetic count", formula: "(@lvl+1)d6", data: vars{"lvl": 2}, message: "single @variable"},
		{name: "space before die", formula: "(2) d6", message: "single @variable"},
		{name: "negative count", formula: "(@lvl)d6", data: vars{"lvl": -2}, message: "must not be negative"},
		{name: "too many dice", formula: "(@lvl)d6", data: vars{"lvl": 500}, message: "too many dice"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			evaluator, roller := s.evaluator()

			_, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: tc.formula, Data: tc.data})
			s.Require().Error(err)
			s.True(errors.IsFormula(err), "got %v", err)
			s.Contains(err.Error(), tc.message)
			s.Empty(roller.Calls)
		})
	}
}

func (s *EvaluatorTestSuite) TestArithmetic() {
	testCases := []struct {
		formula string
		script  [][]int
		want    float64
	}{
		{formula: "7/2", want: 3.5},
		{formula: "floor(7/2)", want: 3},
		{formula: "ceil(7/2)", want: 4},
		{formula: "round(2.5)", want: 3},
		{formula: "round(-2.5)", want: -2},
		{formula: "abs(3 - 10)", want: 7},
		{formula: "max(1, 1d6 - 5)", script: [][]int{{2}}, want: 1},
		{formula: "min(2d4, 3)", script: [][]int{{4, 4}}, want: 3},
		{formula: "(1d8 + 2) * 2", script: [][]int{{5}}, want: 14},
		{formula: "0d6 + 2", want: 2},
		{formula: "3D6", script: [][]int{{1, 2, 3}}, want: 6},
	}

	for _, tc := range testCases {
		s.Run(tc.formula, func() {
			evaluator, roller := s.evaluator(tc.script...)

			result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: tc.formula})
			s.Require().NoError(err)
			s.Equal(tc.want, result.Total)
			s.Zero(roller.Remaining())
		})
	}
}

func (s *EvaluatorTestSuite) TestFormulaErrors() {
	testCases := []struct {
		name    string
		formula string
		data    engine.Variables
		script  [][]int
	}{
		{name: "empty", formula: "   "},
		{name: "unresolved variable", formula: "d20+@wis.bonus", data: vars{"ab": 1}},
		{name: "variables without data", formula: "d20+@ab"},
		{name: "unknown function", formula: "len(3)"},
		{name: "unknown term", formula: "1d6+foo", script: [][]int{{3}}},
		{name: "dangling die", formula: "2d+1"},
		{name: "unsupported characters", formula: `1d6; import("os")`},
		{name: "syntax error", formula: "1d6 +* 2", script: [][]int{{3}}},
		{name: "division by zero", formula: "1/0"},
		{name: "too many dice", formula: "101d6"},
		{name: "zero sided die", formula: "2d0"},
		{name: "wrong helper arity", formula: "abs(1, 2)"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			evaluator, _ := s.evaluator(tc.script...)

			result, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: tc.formula, Data: tc.data})
			s.Error(err)
			s.Nil(result)
			s.True(errors.IsFormula(err), "got %v", err)
		})
	}
}

func (s *EvaluatorTestSuite) TestUnresolvedVariableNamesThePath() {
	evaluator, _ := s.evaluator()

	_, err := evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: "d20+@wis.bonus", Data: vars{}})
	s.Require().Error(err)
	s.Contains(err.Error(), "@wis.bonus")
	s.Equal("d20+@wis.bonus", errors.GetMeta(err)[errors.MetaFormula])
}

func (s *EvaluatorTestSuite) TestRollerFailureIsInternal() {
	evaluator, err := NewEvaluator(&Config{Roller: failingRoller{}})
	s.Require().NoError(err)

	_, err = evaluator.Evaluate(s.ctx, &engine.EvaluateInput{Formula: "1d20"})
	s.Require().Error(err)
	s.False(errors.IsFormula(err))
	s.True(errors.IsInternal(err))
}

func (s *EvaluatorTestSuite) TestCanceledContext() {
	evaluator, _ := s.evaluator()

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := evaluator.Evaluate(ctx, &engine.EvaluateInput{Formula: "1 + 1"})
	s.Require().Error(err)
	s.False(errors.IsFormula(err))
}
