package graph_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evalgraph/engine/pkg/eval"

	me "github.com/evalgraph/engine/pkg/graph"
)

var _ = Describe("service", func() {
	var svc *me.Service

	BeforeEach(func() {
		doc := me.NewDocument("test").
			AddVariable("a", 2).
			AddVariable("b", 3).
			AddExpression("sum", "a + b").
			AddExpression("prod", "a * b")
		svc = Must(me.NewService(doc))
	})

	It("recalculates a selected expression", func() {
		result := Must(svc.Recalculate(&me.RecalculationRequest{Result: "sum"}))

		Expect(result.Context).To(Equal(svc.Context().GetId()))
		Expect(result.Values).To(Equal(map[string]float64{"sum": 5}))
	})

	It("assigns variables and reports all values", func() {
		result := Must(svc.Recalculate(&me.RecalculationRequest{Variables: map[string]float64{"a": 10}}))

		Expect(result.Values).To(Equal(map[string]float64{"sum": 13, "prod": 30}))
	})

	It("fails for an unknown result expression", func() {
		_, err := svc.Recalculate(&me.RecalculationRequest{Result: "missing"})
		Expect(err).To(MatchError(eval.ErrUnknownExpression))
	})

	It("forwards evaluation events to matching watch registrations", func() {
		all := &recorder{}
		sum := &recorder{}
		svc.Registry().RegisterWatchHandler(me.WatchRequest{}, all)
		svc.Registry().RegisterWatchHandler(me.WatchRequest{Expressions: []string{"sum"}}, sum)

		Must(svc.Recalculate(&me.RecalculationRequest{Result: "sum"}))

		Expect(all.events).To(HaveLen(2))
		Expect(sum.events).To(HaveLen(1))
		Expect(sum.events[0].Expression).To(Equal("sum"))
		Expect(sum.events[0].Value).To(Equal(5.0))

		svc.Registry().UnregisterWatchHandler(me.WatchRequest{}, all)
		Must(svc.Recalculate(&me.RecalculationRequest{Result: "sum"}))
		Expect(all.events).To(HaveLen(2))
	})
})

type recorder struct {
	events []eval.EvaluationEvent
}

func (r *recorder) HandleEvent(e eval.EvaluationEvent) {
	r.events = append(r.events, e)
}
