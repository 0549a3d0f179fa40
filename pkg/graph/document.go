package graph

import (
	"fmt"

	"github.com/evalgraph/engine/pkg/eval"
	"github.com/evalgraph/engine/pkg/expression"
	"github.com/evalgraph/engine/pkg/utils"
)

// Document is the serializable description of an evaluation graph:
// a set of variables with optional initial values and an ordered list
// of named formulas. The document order of the formulas determines the
// registration order and thereby the evaluation order of a pass.
type Document struct {
	Name      string           `json:"name"`
	CreatedAt *utils.Timestamp `json:"createdAt,omitempty"`

	// Variables declares variables up front. Operands used by a formula
	// need not be declared, they are created on demand. A non-nil value
	// is assigned before the first recalculation.
	Variables map[string]*float64 `json:"variables,omitempty"`

	Expressions []ExpressionDef `json:"expressions"`
}

type ExpressionDef struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

func NewDocument(name string) *Document {
	return &Document{
		Name:      name,
		CreatedAt: utils.Pointer(utils.NewTimestamp()),
	}
}

func (d *Document) AddVariable(name string, value ...float64) *Document {
	if d.Variables == nil {
		d.Variables = map[string]*float64{}
	}
	if len(value) > 0 {
		d.Variables[name] = utils.Pointer(value[0])
	} else {
		d.Variables[name] = nil
	}
	return d
}

func (d *Document) AddExpression(name, formula string) *Document {
	d.Expressions = append(d.Expressions, ExpressionDef{Name: name, Formula: formula})
	return d
}

// Fingerprint returns a digest of the document content based on its
// canonical JSON representation.
func (d *Document) Fingerprint() string {
	return utils.HashData(d)
}

func (d *Document) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("document name missing")
	}
	var names []string
	for _, e := range d.Expressions {
		if e.Name == "" {
			return fmt.Errorf("expression without name (formula %q)", e.Formula)
		}
		if len(utils.AppendUnique(names, e.Name)) == len(names) {
			return fmt.Errorf("duplicate expression %q", e.Name)
		}
		names = append(names, e.Name)
		tree, err := expression.Parse(e.Formula)
		if err != nil {
			return fmt.Errorf("expression %q: %w", e.Name, err)
		}
		if err := tree.Validate(); err != nil {
			return fmt.Errorf("expression %q: %w", e.Name, err)
		}
	}
	return nil
}

// Build instantiates the document into a fresh evaluation context.
// Declared variables are registered first, formulas afterwards in
// document order, sharing variables by name.
func (d *Document) Build() (*eval.EvaluationContext, error) {
	err := d.Validate()
	if err != nil {
		return nil, err
	}
	ctx := eval.NewContext()
	for _, name := range utils.MapKeys(d.Variables) {
		v := eval.NewVariable(name)
		if value := d.Variables[name]; value != nil {
			v.Set(*value)
		}
		err := ctx.AddVariable(name, v)
		if err != nil {
			return nil, err
		}
	}
	for _, e := range d.Expressions {
		tree, err := expression.Parse(e.Formula)
		if err != nil {
			return nil, fmt.Errorf("expression %q: %w", e.Name, err)
		}
		_, err = expression.Compile(ctx, e.Name, tree)
		if err != nil {
			return nil, err
		}
	}
	log.Debug("document instantiated", "name", d.Name, "context", ctx.GetId(), "fingerprint", d.Fingerprint())
	return ctx, nil
}
