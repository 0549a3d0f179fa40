package eval

import (
	"github.com/evalgraph/engine/pkg/utils"
)

// EvaluationEvent describes the evaluation of a single registered
// expression during a recalculation pass.
type EvaluationEvent struct {
	Context    string          `json:"context"`
	Expression string          `json:"expression"`
	Value      float64         `json:"value"`
	Timestamp  utils.Timestamp `json:"timestamp"`
}

// EventHandler receives evaluation events from an evaluation context.
// Handlers are called synchronously during a recalculation pass.
type EventHandler interface {
	HandleEvent(e EvaluationEvent)
}
