package eval

import (
	"github.com/evalgraph/engine/pkg/utils"
)

// Node is a single unit in an evaluation graph producing a numeric value.
// Evaluate is the only entry point for obtaining the value. It reuses the
// memoized result as long as NeedsRecalculation does not report a stale
// cache. NeedsRecalculation is a pure predicate without side effects.
//
// Operand subgraphs may be shared among multiple nodes. The graph must be
// acyclic, this is not checked. Evaluating a cyclic graph does not terminate.
type Node interface {
	Evaluate() (float64, error)
	NeedsRecalculation() bool
}

// calculator is the variant-specific part of a node. The recalculation
// rule eval is called by the shared memoization logic, only.
type calculator interface {
	eval() (float64, error)
	NeedsRecalculation() bool
}

// memo provides the shared memoized-value storage for all node variants.
// An unset cache is represented by a nil pointer, not by a sentinel value.
// A cached value is never cleared again, it is only replaced.
type memo struct {
	cached *float64
}

// calc implements the memoization contract on behalf of a node variant.
func (m *memo) calc(c calculator) (float64, error) {
	if m.cached == nil || c.NeedsRecalculation() {
		v, err := c.eval()
		if err != nil {
			return 0, err
		}
		m.cached = utils.Pointer(v)
		return v, nil
	}
	log.Trace("using cached value {{value}}", "value", *m.cached)
	return *m.cached, nil
}

func (m *memo) cacheValue(v float64) {
	m.cached = utils.Pointer(v)
}

func (m *memo) cachedValue() (float64, bool) {
	if m.cached == nil {
		return 0, false
	}
	return *m.cached, true
}
