package eval_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evalgraph/engine/pkg/utils"

	me "github.com/evalgraph/engine/pkg/eval"
)

var _ = Describe("evaluation context", func() {
	var ctx *me.EvaluationContext
	var a, b *me.VariableNode

	BeforeEach(func() {
		ctx = me.NewContext()
		a = me.NewVariable("a")
		b = me.NewVariable("b")
		MustBeSuccessful(ctx.AddVariable("a", a))
		MustBeSuccessful(ctx.AddVariable("b", b))
	})

	Context("registration", func() {
		It("provides registered nodes", func() {
			e := me.NewExpression("E", me.NewBinaryOperator(a, b, me.Add))
			MustBeSuccessful(ctx.AddExpression("E", e))

			Expect(ctx.IsKnownExpression("E")).To(BeTrue())
			Expect(ctx.IsKnownExpression("F")).To(BeFalse())
			Expect(ctx.IsKnownVariable("a")).To(BeTrue())
			Expect(ctx.IsKnownVariable("x")).To(BeFalse())
			Expect(Must(ctx.LookupExpression("E"))).To(BeIdenticalTo(e))
			Expect(Must(ctx.LookupVariable("a"))).To(BeIdenticalTo(a))
		})

		It("keeps expression and variable namespaces separate", func() {
			e := me.NewExpression("a", a)
			MustBeSuccessful(ctx.AddExpression("a", e))

			Expect(Must(ctx.LookupExpression("a"))).To(BeIdenticalTo(e))
			Expect(Must(ctx.LookupVariable("a"))).To(BeIdenticalTo(a))
		})

		It("rejects duplicate registration", func() {
			MustBeSuccessful(ctx.AddExpression("E", me.NewExpression("E", a)))

			err := ctx.AddExpression("E", me.NewExpression("E", b))
			Expect(err).To(MatchError(me.ErrAlreadyRegistered))
			err = ctx.AddVariable("a", me.NewVariable("a"))
			Expect(err).To(MatchError(me.ErrAlreadyRegistered))
		})

		It("fails looking up unknown names", func() {
			_, err := ctx.LookupExpression("missing")
			Expect(err).To(MatchError(me.ErrUnknownExpression))
			_, err = ctx.LookupVariable("missing")
			Expect(err).To(MatchError(me.ErrUnknownVariable))
		})
	})

	Context("recalculation", func() {
		BeforeEach(func() {
			MustBeSuccessful(ctx.AddExpression("E", me.NewExpression("E", me.NewBinaryOperator(a, b, me.Add))))
		})

		It("recalculates a target expression", func() {
			ctx.SetVariable("a", 2)
			ctx.SetVariable("b", 3)
			Expect(Must(ctx.Recalculate("E"))).To(Equal(5.0))

			ctx.SetVariable("a", 10)
			Expect(Must(ctx.Recalculate("E"))).To(Equal(13.0))
		})

		It("fails for an unknown target", func() {
			ctx.SetVariable("a", 2)
			ctx.SetVariable("b", 3)
			_, err := ctx.Recalculate("missing")
			Expect(err).To(MatchError(me.ErrUnknownExpression))
		})

		It("ignores assignments to unknown variables", func() {
			ctx.SetVariable("a", 2)
			ctx.SetVariable("b", 3)
			ctx.SetVariable("x", 42)
			Expect(Must(ctx.Recalculate("E"))).To(Equal(5.0))
		})

		It("freezes variables at the end of a pass", func() {
			ctx.SetVariable("a", 2)
			ctx.SetVariable("b", 3)
			Expect(a.NeedsRecalculation()).To(BeTrue())

			Must(ctx.Recalculate("E"))
			Expect(a.NeedsRecalculation()).To(BeFalse())
			Expect(b.NeedsRecalculation()).To(BeFalse())
		})

		It("propagates evaluation failures", func() {
			ctx.SetVariable("a", 2)
			_, err := ctx.Recalculate("E")
			Expect(err).To(MatchError(me.ErrNotSet))
		})

		It("is idempotent without intervening assignments", func() {
			counter := &countingNode{value: 7}
			MustBeSuccessful(ctx.AddExpression("C", me.NewExpression("C", counter)))

			ctx.SetVariable("a", 2)
			ctx.SetVariable("b", 3)
			Expect(Must(ctx.Recalculate("C"))).To(Equal(7.0))
			Expect(Must(ctx.Recalculate("C"))).To(Equal(7.0))
			Expect(counter.recalculations).To(Equal(1))
		})

		It("refreshes shared variables for all expressions of a pass", func() {
			MustBeSuccessful(ctx.AddExpression("E1", me.NewExpression("E1", me.NewBinaryOperator(a, me.NewConstant(2), me.Mul))))
			MustBeSuccessful(ctx.AddExpression("E2", me.NewExpression("E2", me.NewBinaryOperator(a, me.NewConstant(3), me.Mul))))

			ctx.SetVariable("a", 5)
			ctx.SetVariable("b", 1)
			Expect(Must(ctx.Recalculate("E1"))).To(Equal(10.0))
			// E2 was evaluated by the pass targeting E1 and already
			// reflects the updated variable
			Expect(Must(ctx.Recalculate("E2"))).To(Equal(15.0))
		})
	})

	Context("events", func() {
		It("notifies handlers for every expression of a pass in registration order", func() {
			MustBeSuccessful(ctx.AddExpression("E1", me.NewExpression("E1", a)))
			MustBeSuccessful(ctx.AddExpression("E2", me.NewExpression("E2", me.NewBinaryOperator(a, b, me.Add))))

			h := &recordingHandler{}
			ctx.RegisterEventHandler(h)

			ctx.SetVariable("a", 1)
			ctx.SetVariable("b", 2)
			Must(ctx.Recalculate("E2"))

			Expect(utils.TransformSlice(h.events, func(e me.EvaluationEvent) string { return e.Expression })).To(Equal([]string{"E1", "E2"}))
			Expect(h.events[1].Value).To(Equal(3.0))
			Expect(h.events[0].Context).To(Equal(ctx.GetId()))

			ctx.UnregisterEventHandler(h)
			Must(ctx.Recalculate("E2"))
			Expect(h.events).To(HaveLen(2))
		})
	})
})

// countingNode is a self-memoizing test node counting its effective
// recalculations.
type countingNode struct {
	value          float64
	dirty          bool
	cached         *float64
	recalculations int
}

var _ me.Node = (*countingNode)(nil)

func (n *countingNode) Evaluate() (float64, error) {
	if n.cached == nil || n.dirty {
		n.recalculations++
		n.cached = utils.Pointer(n.value)
		n.dirty = false
	}
	return *n.cached, nil
}

func (n *countingNode) NeedsRecalculation() bool {
	return n.dirty
}

type recordingHandler struct {
	events []me.EvaluationEvent
}

func (h *recordingHandler) HandleEvent(e me.EvaluationEvent) {
	h.events = append(h.events, e)
}
