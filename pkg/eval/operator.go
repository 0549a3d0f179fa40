package eval

// UnaryFunction calculates the value of a unary operator node from its
// operand value. It must be side-effect-free. Domain errors are reported
// as ordinary evaluation errors and propagate to the original caller.
type UnaryFunction func(v float64) (float64, error)

// BinaryFunction calculates the value of a binary operator node from its
// operand values. The same rules as for UnaryFunction apply.
type BinaryFunction func(a, b float64) (float64, error)

// UnaryOperatorNode applies a function to the value of a single operand
// subgraph. Its dirtiness is derived from the operand on demand, it is
// not stored.
type UnaryOperatorNode struct {
	memo
	node     Node
	function UnaryFunction
}

var _ Node = (*UnaryOperatorNode)(nil)

func NewUnaryOperator(node Node, function UnaryFunction) *UnaryOperatorNode {
	log.Debug("unary operator created")
	return &UnaryOperatorNode{
		node:     node,
		function: function,
	}
}

func (n *UnaryOperatorNode) Evaluate() (float64, error) {
	return n.calc(n)
}

func (n *UnaryOperatorNode) eval() (float64, error) {
	v, err := n.node.Evaluate()
	if err != nil {
		return 0, err
	}
	return n.function(v)
}

func (n *UnaryOperatorNode) NeedsRecalculation() bool {
	return n.node.NeedsRecalculation()
}

// BinaryOperatorNode applies a function to the values of two operand
// subgraphs. It is dirty if at least one operand is dirty.
type BinaryOperatorNode struct {
	memo
	left     Node
	right    Node
	function BinaryFunction
}

var _ Node = (*BinaryOperatorNode)(nil)

func NewBinaryOperator(left, right Node, function BinaryFunction) *BinaryOperatorNode {
	log.Debug("binary operator created")
	return &BinaryOperatorNode{
		left:     left,
		right:    right,
		function: function,
	}
}

func (n *BinaryOperatorNode) Evaluate() (float64, error) {
	return n.calc(n)
}

func (n *BinaryOperatorNode) eval() (float64, error) {
	a, err := n.left.Evaluate()
	if err != nil {
		return 0, err
	}
	b, err := n.right.Evaluate()
	if err != nil {
		return 0, err
	}
	return n.function(a, b)
}

func (n *BinaryOperatorNode) NeedsRecalculation() bool {
	return n.left.NeedsRecalculation() || n.right.NeedsRecalculation()
}
