package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalgraph/engine/pkg/graph"
)

type Generate struct {
	cmd *cobra.Command

	mainopts    *Options
	variables   int
	expressions int
}

func NewGenerate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <name> <options>",
		Short: "generate a random graph document",
		Long: `
Generate a demo document with random variables and formulas and store
it in the document store. Useful as playground input for the calc and
serve commands.
`,
	}

	c := &Generate{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.IntVarP(&c.variables, "variables", "v", 5, "number of variables")
	flags.IntVarP(&c.expressions, "expressions", "e", 3, "number of expressions")
	return cmd
}

func (c *Generate) Run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("document name required")
	}

	store, err := graph.NewStore(c.mainopts.path, c.mainopts.fs)
	if err != nil {
		return err
	}
	doc := graph.RandomDocument(args[0], c.variables, c.expressions)
	err = store.Set(doc)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d variables, %d expressions (%s)\n", doc.Name, len(doc.Variables), len(doc.Expressions), doc.Fingerprint())
	return nil
}
