package eval

// ExpressionNode is a named pass-through over a single operand subgraph.
// It is the addressable unit registered at an evaluation context.
// Evaluation and dirtiness are completely delegated to the operand.
// Multiple expressions may share overlapping operand subgraphs.
type ExpressionNode struct {
	memo
	name string
	node Node
}

var _ Node = (*ExpressionNode)(nil)

func NewExpression(name string, node Node) *ExpressionNode {
	log.Debug("expression created", "name", name)
	return &ExpressionNode{
		name: name,
		node: node,
	}
}

func (n *ExpressionNode) GetName() string {
	return n.name
}

func (n *ExpressionNode) Evaluate() (float64, error) {
	return n.calc(n)
}

func (n *ExpressionNode) eval() (float64, error) {
	return n.node.Evaluate()
}

func (n *ExpressionNode) NeedsRecalculation() bool {
	return n.node.NeedsRecalculation()
}
