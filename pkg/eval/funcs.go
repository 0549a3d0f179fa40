package eval

import (
	"fmt"
	"math"
)

// Stock operator functions for use with operator nodes. Division follows
// IEEE float semantics, a division by zero yields an infinite value
// instead of an error. Functions with a restricted domain fail outside
// of it and abort the evaluation of the complete subgraph.

func Add(a, b float64) (float64, error) {
	return a + b, nil
}

func Sub(a, b float64) (float64, error) {
	return a - b, nil
}

func Mul(a, b float64) (float64, error) {
	return a * b, nil
}

func Div(a, b float64) (float64, error) {
	return a / b, nil
}

func Pow(a, b float64) (float64, error) {
	return math.Pow(a, b), nil
}

func Min(a, b float64) (float64, error) {
	return math.Min(a, b), nil
}

func Max(a, b float64) (float64, error) {
	return math.Max(a, b), nil
}

func Neg(v float64) (float64, error) {
	return -v, nil
}

func Abs(v float64) (float64, error) {
	return math.Abs(v), nil
}

func Sqrt(v float64) (float64, error) {
	if v < 0 {
		return 0, fmt.Errorf("sqrt of negative value %g", v)
	}
	return math.Sqrt(v), nil
}

func Exp(v float64) (float64, error) {
	return math.Exp(v), nil
}

func Log(v float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("log of non-positive value %g", v)
	}
	return math.Log(v), nil
}

func Sin(v float64) (float64, error) {
	return math.Sin(v), nil
}

func Cos(v float64) (float64, error) {
	return math.Cos(v), nil
}
