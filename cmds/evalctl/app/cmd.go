package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evalgraph/engine/pkg/utils"
)

type Options struct {
	path  string
	level string
	fs    vfs.FileSystem
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		path:  ".",
		level: "warn",
		fs:    utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	maincmd := &cobra.Command{
		Use:   "evalctl <options> <cmd> <args>",
		Short: "work with evaluation graph documents",
		Long: `
This command maintains and evaluates graph documents, yaml files
describing a set of variables and named formulas over them.
`,
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configureLogging()
		},
	}

	opts.AddFlags(maincmd.PersistentFlags())

	maincmd.AddCommand(NewCalc(opts))
	maincmd.AddCommand(NewGenerate(opts))
	maincmd.AddCommand(NewServe(opts))
	return maincmd
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.path, "documents", "d", o.path, "document store directory")
	flags.StringVarP(&o.level, "log-level", "L", o.level, "log level")
}

func (o *Options) configureLogging() error {
	l, err := logging.ParseLevel(o.level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", o.level)
	}
	logcfg := logrusl.Human(true)
	lctx := logging.DefaultContext()
	lctx.SetBaseLogger(logrusr.New(logcfg.NewLogrus()))
	lctx.AddRule(logging.NewConditionRule(l))
	return nil
}
