package expression

import (
	"fmt"
	"strconv"

	"github.com/evalgraph/engine/pkg/utils"
)

// Node is a plain syntax tree for a formula. A node is either a literal
// value, a named operand, or an operator with its arguments as parents.
type Node struct {
	Name    string
	Parents []*Node
	Value   *float64
}

func (n *Node) String() string {
	if n.Value != nil {
		return strconv.FormatFloat(*n.Value, 'g', -1, 64)
	}
	if len(n.Parents) == 1 {
		return fmt.Sprintf("%s(%s)", n.Name, n.Parents[0])
	}
	if len(n.Parents) > 0 {
		s := ""
		sep := ""
		for _, p := range n.Parents {
			s = fmt.Sprintf("%s%s%s", s, sep, p)
			sep = n.Name
		}
		return fmt.Sprintf("(%s)", s)
	}
	return n.Name
}

func NewValueNode(v float64) *Node {
	return &Node{
		Value: utils.Pointer(v),
	}
}

func NewOperandNode(n string) *Node {
	return &Node{
		Name: n,
	}
}

func NewOperatorNode(op string, ops ...*Node) *Node {
	return &Node{
		Name:    op,
		Parents: ops,
	}
}

// Operands returns the names of all operands used in the tree.
func (n *Node) Operands() []string {
	if n.Value != nil {
		return nil
	}
	if len(n.Parents) > 0 {
		var result []string
		for _, p := range n.Parents {
			result = utils.AppendUnique(result, p.Operands()...)
		}
		return result
	}
	return []string{n.Name}
}

// Validate checks the tree for operator nodes with an unknown operator
// symbol or a wrong number of arguments.
func (n *Node) Validate() error {
	if n.Value != nil || len(n.Parents) == 0 {
		return nil
	}
	switch len(n.Parents) {
	case 1:
		if _, ok := unaryFunctions[n.Name]; !ok {
			return fmt.Errorf("unknown unary operator %q", n.Name)
		}
	case 2:
		if _, ok := binaryFunctions[n.Name]; !ok {
			return fmt.Errorf("unknown binary operator %q", n.Name)
		}
	default:
		return fmt.Errorf("operator %q with %d arguments", n.Name, len(n.Parents))
	}
	for _, p := range n.Parents {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) isOperator() bool {
	return n.Value == nil && len(n.Parents) > 0
}

func (n *Node) isOperand() bool {
	return n.Value == nil && len(n.Parents) == 0
}
