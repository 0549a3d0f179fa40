package eval

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/mandelsoft/logging"

	"github.com/evalgraph/engine/pkg/utils"
)

// EvaluationContext owns named variables and expressions and drives their
// recalculation. Expression and variable names live in separate namespaces,
// each name is unique within its own namespace.
//
// Expressions are evaluated in registration order, not in dependency
// order. An expression referring to a variable shared with an expression
// registered later sees the value assigned before the pass, like every
// other expression of the pass. This insertion-order policy is part of
// the observable contract and must not be replaced by a topological sort.
type EvaluationContext struct {
	id          string
	expressions map[string]*ExpressionNode
	variables   map[string]*VariableNode
	// evaluation order is registration order
	order []*ExpressionNode

	lock     sync.Mutex
	handlers []EventHandler

	logging.UnboundLogger
}

func NewContext() *EvaluationContext {
	id := uuid.NewString()
	return &EvaluationContext{
		id:            id,
		expressions:   map[string]*ExpressionNode{},
		variables:     map[string]*VariableNode{},
		UnboundLogger: logging.DynamicLogger(logging.DefaultContext(), REALM, logging.NewAttribute("context", id)),
	}
}

func (c *EvaluationContext) GetId() string {
	return c.id
}

// AddExpression registers an expression under a unique name and appends
// it to the evaluation order.
func (c *EvaluationContext) AddExpression(name string, expression *ExpressionNode) error {
	if _, ok := c.expressions[name]; ok {
		return fmt.Errorf("expression %q: %w", name, ErrAlreadyRegistered)
	}
	c.expressions[name] = expression
	c.order = append(c.order, expression)
	c.Debug("expression registered", "name", name, "index", len(c.order)-1)
	return nil
}

// AddVariable registers a variable under a unique name. Variables are not
// evaluated on their own, only through expressions referring to them, so
// there is no ordering to maintain.
func (c *EvaluationContext) AddVariable(name string, variable *VariableNode) error {
	if _, ok := c.variables[name]; ok {
		return fmt.Errorf("variable %q: %w", name, ErrAlreadyRegistered)
	}
	c.variables[name] = variable
	c.Debug("variable registered", "name", name)
	return nil
}

func (c *EvaluationContext) IsKnownExpression(name string) bool {
	_, ok := c.expressions[name]
	return ok
}

func (c *EvaluationContext) IsKnownVariable(name string) bool {
	_, ok := c.variables[name]
	return ok
}

func (c *EvaluationContext) LookupExpression(name string) (*ExpressionNode, error) {
	e, ok := c.expressions[name]
	if !ok {
		return nil, fmt.Errorf("expression %q: %w", name, ErrUnknownExpression)
	}
	return e, nil
}

func (c *EvaluationContext) LookupVariable(name string) (*VariableNode, error) {
	v, ok := c.variables[name]
	if !ok {
		return nil, fmt.Errorf("variable %q: %w", name, ErrUnknownVariable)
	}
	return v, nil
}

func (c *EvaluationContext) ExpressionNames() []string {
	return utils.MapKeys(c.expressions)
}

func (c *EvaluationContext) VariableNames() []string {
	return utils.MapKeys(c.variables)
}

// SetVariable assigns a value to a known variable. Assignments to unknown
// names are deliberately ignored, not reported as errors.
func (c *EvaluationContext) SetVariable(name string, value float64) {
	v, ok := c.variables[name]
	if !ok {
		c.Debug("ignoring assignment to unknown variable", "name", name)
		return
	}
	v.Set(value)
	c.Debug("variable set", "name", name, "value", value)
}

// Recalculate runs a complete recalculation pass and returns the value of
// the expression registered under name.
//
// All registered expressions are evaluated unconditionally in registration
// order, not only the dependencies of the target. Only afterwards all
// variables are frozen. A variable shared across several expressions
// thereby stays dirty for the whole pass and every expression of the pass
// picks up its fresh value. The target lookup happens after the pass, so
// an unknown name fails only after all expressions have been refreshed.
func (c *EvaluationContext) Recalculate(name string) (float64, error) {
	c.Debug("starting recalculation pass", "target", name)
	for i, e := range c.order {
		v, err := e.Evaluate()
		if err != nil {
			return 0, fmt.Errorf("cannot evaluate expression %q: %w", e.GetName(), err)
		}
		c.Trace("expression evaluated", "index", i, "name", e.GetName(), "value", v)
		c.notify(e.GetName(), v)
	}
	for _, v := range c.variables {
		v.Freeze()
	}
	e, err := c.LookupExpression(name)
	if err != nil {
		return 0, err
	}
	// already clean from the pass above, this returns the memoized value
	return e.Evaluate()
}

// RegisterEventHandler attaches a handler receiving an event for every
// expression evaluated by a recalculation pass.
func (c *EvaluationContext) RegisterEventHandler(h EventHandler) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.handlers = append(c.handlers, h)
}

func (c *EvaluationContext) UnregisterEventHandler(h EventHandler) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.handlers = utils.FilterSlice(c.handlers, func(e EventHandler) bool { return e != h })
}

func (c *EvaluationContext) notify(name string, value float64) {
	c.lock.Lock()
	list := slices.Clone(c.handlers)
	c.lock.Unlock()

	if len(list) == 0 {
		return
	}
	evt := EvaluationEvent{
		Context:    c.id,
		Expression: name,
		Value:      value,
		Timestamp:  utils.NewTimestamp(),
	}
	for _, h := range list {
		h.HandleEvent(evt)
	}
}
