package eval

// Number covers the numeric Go types a constant can be built from. The
// value is normalized to float64 at construction time.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ConstantNode holds an immutable value fixed at construction time.
type ConstantNode struct {
	memo
}

var _ Node = (*ConstantNode)(nil)

func NewConstant[T Number](value T) *ConstantNode {
	n := &ConstantNode{}
	n.cacheValue(float64(value))
	log.Debug("constant created", "value", float64(value))
	return n
}

func (n *ConstantNode) Evaluate() (float64, error) {
	return n.calc(n)
}

func (n *ConstantNode) eval() (float64, error) {
	v, _ := n.cachedValue()
	return v, nil
}

func (n *ConstantNode) NeedsRecalculation() bool {
	return false
}
