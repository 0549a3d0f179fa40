package eval_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/evalgraph/engine/pkg/eval"
)

var _ = Describe("nodes", func() {
	Context("constant", func() {
		It("always provides its construction value", func() {
			c := me.NewConstant(42)

			Expect(c.NeedsRecalculation()).To(BeFalse())
			Expect(Must(c.Evaluate())).To(Equal(42.0))
			Expect(Must(c.Evaluate())).To(Equal(42.0))
			Expect(c.NeedsRecalculation()).To(BeFalse())
		})

		It("normalizes numeric input types", func() {
			Expect(Must(me.NewConstant(int8(7)).Evaluate())).To(Equal(7.0))
			Expect(Must(me.NewConstant(uint32(7)).Evaluate())).To(Equal(7.0))
			Expect(Must(me.NewConstant(float32(0.5)).Evaluate())).To(Equal(0.5))
		})
	})

	Context("variable", func() {
		var v *me.VariableNode

		BeforeEach(func() {
			v = me.NewVariable("a")
		})

		It("fails unset", func() {
			_, err := v.Evaluate()
			Expect(err).To(MatchError(me.ErrNotSet))
			Expect(err.Error()).To(Equal("variable \"a\": variable not set"))
		})

		It("provides a set value and stays dirty until frozen", func() {
			v.Set(5)
			Expect(Must(v.Evaluate())).To(Equal(5.0))
			Expect(v.NeedsRecalculation()).To(BeTrue())

			v.Freeze()
			Expect(v.NeedsRecalculation()).To(BeFalse())
			Expect(Must(v.Evaluate())).To(Equal(5.0))
		})

		It("accepts overwriting the value", func() {
			v.Set(5)
			v.Freeze()
			v.Set(6)
			Expect(v.NeedsRecalculation()).To(BeTrue())
			Expect(Must(v.Evaluate())).To(Equal(6.0))
		})
	})

	Context("operators", func() {
		var a, b *me.VariableNode

		BeforeEach(func() {
			a = me.NewVariable("a")
			b = me.NewVariable("b")
		})

		It("calculates a binary operation", func() {
			sum := me.NewBinaryOperator(a, b, me.Add)

			a.Set(2)
			b.Set(3)
			Expect(Must(sum.Evaluate())).To(Equal(5.0))
		})

		It("propagates dirtiness of any operand", func() {
			sum := me.NewBinaryOperator(a, b, me.Add)

			a.Set(2)
			b.Set(3)
			Expect(Must(sum.Evaluate())).To(Equal(5.0))
			a.Freeze()
			b.Freeze()
			Expect(sum.NeedsRecalculation()).To(BeFalse())

			a.Set(10)
			Expect(sum.NeedsRecalculation()).To(BeTrue())
			Expect(Must(sum.Evaluate())).To(Equal(13.0))
		})

		It("calculates a unary operation", func() {
			neg := me.NewUnaryOperator(a, me.Neg)

			a.Set(2)
			Expect(Must(neg.Evaluate())).To(Equal(-2.0))
			Expect(neg.NeedsRecalculation()).To(BeTrue())
			a.Freeze()
			Expect(neg.NeedsRecalculation()).To(BeFalse())
		})

		It("propagates evaluation failures of the subgraph", func() {
			sum := me.NewBinaryOperator(a, me.NewUnaryOperator(b, me.Neg), me.Add)

			a.Set(2)
			_, err := sum.Evaluate()
			Expect(err).To(MatchError(me.ErrNotSet))
		})

		It("propagates function domain failures", func() {
			root := me.NewUnaryOperator(a, me.Sqrt)

			a.Set(-1)
			_, err := root.Evaluate()
			Expect(err).To(MatchError("sqrt of negative value -1"))
		})
	})

	Context("expression", func() {
		It("delegates to its operand", func() {
			a := me.NewVariable("a")
			e := me.NewExpression("E", me.NewBinaryOperator(a, me.NewConstant(2), me.Mul))

			Expect(e.GetName()).To(Equal("E"))
			a.Set(21)
			Expect(Must(e.Evaluate())).To(Equal(42.0))
			Expect(e.NeedsRecalculation()).To(BeTrue())
			a.Freeze()
			Expect(e.NeedsRecalculation()).To(BeFalse())
		})

		It("supports nesting expressions", func() {
			a := me.NewVariable("a")
			inner := me.NewExpression("inner", me.NewBinaryOperator(a, me.NewConstant(2), me.Mul))
			outer := me.NewExpression("outer", me.NewUnaryOperator(inner, me.Neg))

			a.Set(3)
			Expect(Must(outer.Evaluate())).To(Equal(-6.0))
		})
	})
})
