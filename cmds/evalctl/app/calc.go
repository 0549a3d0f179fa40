package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evalgraph/engine/pkg/graph"
)

type Calc struct {
	cmd *cobra.Command

	mainopts *Options
	sets     []string
	all      bool
}

func NewCalc(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <document> <expression> <options>",
		Short: "recalculate an expression of a graph document",
	}

	c := &Calc{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringArrayVarP(&c.sets, "set", "s", nil, "set variable (name=value)")
	flags.BoolVarP(&c.all, "all", "a", false, "report all expression values")
	return cmd
}

func (c *Calc) Run(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("document name and optional expression name required")
	}
	if len(args) == 1 && !c.all {
		return fmt.Errorf("expression name required (or --all)")
	}

	store, err := graph.NewStore(c.mainopts.path, c.mainopts.fs)
	if err != nil {
		return err
	}
	doc, err := store.Get(args[0])
	if err != nil {
		return err
	}
	ctx, err := doc.Build()
	if err != nil {
		return err
	}

	for _, s := range c.sets {
		name, value, found := strings.Cut(s, "=")
		if !found {
			return fmt.Errorf("invalid variable assignment %q (name=value required)", s)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q for variable %q", value, name)
		}
		if !ctx.IsKnownVariable(name) {
			return fmt.Errorf("document %q has no variable %q", doc.Name, name)
		}
		ctx.SetVariable(name, v)
	}

	if len(args) == 2 {
		v, err := ctx.Recalculate(args[1])
		if err != nil {
			return err
		}
		if c.all {
			c.report(ctx.ExpressionNames(), func(n string) (float64, error) {
				e, err := ctx.LookupExpression(n)
				if err != nil {
					return 0, err
				}
				return e.Evaluate()
			})
			return nil
		}
		fmt.Printf("%g\n", v)
		return nil
	}

	names := ctx.ExpressionNames()
	if len(names) == 0 {
		return fmt.Errorf("document %q has no expressions", doc.Name)
	}
	_, err = ctx.Recalculate(names[0])
	if err != nil {
		return err
	}
	c.report(names, func(n string) (float64, error) {
		e, err := ctx.LookupExpression(n)
		if err != nil {
			return 0, err
		}
		return e.Evaluate()
	})
	return nil
}

func (c *Calc) report(names []string, get func(string) (float64, error)) {
	for _, n := range names {
		v, err := get(n)
		if err != nil {
			fmt.Printf("%s: error: %s\n", n, err)
		} else {
			fmt.Printf("%s: %g\n", n, v)
		}
	}
}
