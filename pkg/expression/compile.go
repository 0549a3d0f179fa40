package expression

import (
	"fmt"

	"github.com/evalgraph/engine/pkg/eval"
)

var unaryFunctions = map[string]eval.UnaryFunction{
	"neg":  eval.Neg,
	"abs":  eval.Abs,
	"sqrt": eval.Sqrt,
	"exp":  eval.Exp,
	"log":  eval.Log,
	"sin":  eval.Sin,
	"cos":  eval.Cos,
}

var binaryFunctions = map[string]eval.BinaryFunction{
	"+":   eval.Add,
	"-":   eval.Sub,
	"*":   eval.Mul,
	"/":   eval.Div,
	"pow": eval.Pow,
	"min": eval.Min,
	"max": eval.Max,
}

// Compile binds a syntax tree as named expression into an evaluation
// context. Literals become constants, operands become variables shared
// with all other expressions of the context using the same name, new
// variables are registered on the fly. The created expression node is
// registered under the given name.
func Compile(ctx *eval.EvaluationContext, name string, tree *Node) (*eval.ExpressionNode, error) {
	err := tree.Validate()
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", name, err)
	}
	n, err := compile(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", name, err)
	}
	e := eval.NewExpression(name, n)
	err = ctx.AddExpression(name, e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func compile(ctx *eval.EvaluationContext, n *Node) (eval.Node, error) {
	switch {
	case n.Value != nil:
		return eval.NewConstant(*n.Value), nil
	case n.isOperand():
		if ctx.IsKnownVariable(n.Name) {
			v, err := ctx.LookupVariable(n.Name)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
		v := eval.NewVariable(n.Name)
		err := ctx.AddVariable(n.Name, v)
		if err != nil {
			return nil, err
		}
		return v, nil
	case n.isOperator() && len(n.Parents) == 1:
		o, err := compile(ctx, n.Parents[0])
		if err != nil {
			return nil, err
		}
		return eval.NewUnaryOperator(o, unaryFunctions[n.Name]), nil
	case n.isOperator() && len(n.Parents) == 2:
		left, err := compile(ctx, n.Parents[0])
		if err != nil {
			return nil, err
		}
		right, err := compile(ctx, n.Parents[1])
		if err != nil {
			return nil, err
		}
		return eval.NewBinaryOperator(left, right, binaryFunctions[n.Name]), nil
	}
	return nil, fmt.Errorf("invalid node %q", n.String())
}
