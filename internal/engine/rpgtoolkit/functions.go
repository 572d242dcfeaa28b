package rpgtoolkit

import (
	"math"

	"github.com/d5/tengo/v2"
)

// helperFunctions are the only identifiers a formula may call
func helperFunctions() map[string]interface{} {
	return map[string]interface{}{
		"abs":   unaryFunc("abs", math.Abs),
		"ceil":  unaryFunc("ceil", math.Ceil),
		"floor": unaryFunc("floor", math.Floor),
		"round": unaryFunc("round", roundHalfUp),
		"max":   foldFunc("max", math.Max),
		"min":   foldFunc("min", math.Min),
	}
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func toFloat(name string, arg tengo.Object) (float64, error) {
	v, ok := tengo.ToFloat64(arg)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{
			Name:     name,
			Expected: "number",
			Found:    arg.TypeName(),
		}
	}
	return v, nil
}

func unaryFunc(name string, fn func(float64) float64) *tengo.UserFunction {
	return &tengo.UserFunction{
		Name: name,
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, err := toFloat("first", args[0])
			if err != nil {
				return nil, err
			}
			return &tengo.Float{Value: fn(v)}, nil
		},
	}
}

func foldFunc(name string, fn func(a, b float64) float64) *tengo.UserFunction {
	return &tengo.UserFunction{
		Name: name,
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) == 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			acc, err := toFloat("first", args[0])
			if err != nil {
				return nil, err
			}
			for _, arg := range args[1:] {
				v, err := toFloat("rest", arg)
				if err != nil {
					return nil, err
				}
				acc = fn(acc, v)
			}
			return &tengo.Float{Value: acc}, nil
		},
	}
}
