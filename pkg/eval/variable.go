package eval

import (
	"fmt"
)

// VariableNode is a named leaf whose value is assigned from outside.
// A freshly created variable is unset, evaluating it fails with ErrNotSet.
// Set always marks the variable dirty, there is no change detection.
// The dirty flag is cleared again by Freeze, which an evaluation context
// calls once at the end of a recalculation pass.
type VariableNode struct {
	memo
	name  string
	dirty bool
}

var _ Node = (*VariableNode)(nil)

func NewVariable(name string) *VariableNode {
	log.Debug("variable created", "name", name)
	return &VariableNode{
		name:  name,
		dirty: true,
	}
}

func (n *VariableNode) GetName() string {
	return n.name
}

func (n *VariableNode) Evaluate() (float64, error) {
	return n.calc(n)
}

func (n *VariableNode) eval() (float64, error) {
	v, ok := n.cachedValue()
	if !ok {
		return 0, fmt.Errorf("variable %q: %w", n.name, ErrNotSet)
	}
	return v, nil
}

// Set assigns a value and marks the variable dirty.
func (n *VariableNode) Set(value float64) {
	n.cacheValue(value)
	n.dirty = true
}

// Freeze marks the variable clean without touching the stored value.
func (n *VariableNode) Freeze() {
	n.dirty = false
}

func (n *VariableNode) NeedsRecalculation() bool {
	return n.dirty
}
