package app

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalgraph/engine/pkg/eval"
	"github.com/evalgraph/engine/pkg/graph"
	"github.com/evalgraph/engine/pkg/healthz"
	"github.com/evalgraph/engine/pkg/server"
	"github.com/evalgraph/engine/watch"
)

type Serve struct {
	cmd *cobra.Command

	mainopts *Options
	port     int
}

func NewServe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <document> <options>",
		Short: "serve a graph document via http",
		Long: `
Serve a graph document: POST /recalculate assigns variable values and
runs a recalculation pass, /watch streams evaluation events to
websocket clients, /documents/ exposes the document store read-only,
/healthz reports liveness.
`,
	}

	c := &Serve{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.IntVarP(&c.port, "port", "p", 8080, "server port")
	return cmd
}

func (c *Serve) Run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("document name required")
	}

	store, err := graph.NewStore(c.mainopts.path, c.mainopts.fs)
	if err != nil {
		return err
	}
	doc, err := store.Get(args[0])
	if err != nil {
		return err
	}
	svc, err := graph.NewService(doc)
	if err != nil {
		return err
	}

	srv := server.NewServer(c.port, true)
	svc.RegisterHandler(srv, "")
	srv.Handle("/watch", watch.WatchHttpHandler[graph.WatchRequest, eval.EvaluationEvent](svc.Registry()))
	dir, err := server.NewDirectoryHandlerFor(c.mainopts.path, "/documents/")
	if err != nil {
		return err
	}
	dir.RegisterHandler(srv)

	ctx, stop := signal.NotifyContext(c.cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthz.Start("serve", 30*time.Second)
	defer healthz.End("serve")
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				healthz.Tick("serve")
			}
		}
	}()

	fmt.Printf("serving document %q on port %d\n", doc.Name, c.port)
	return srv.ListenAndServeContext(ctx, 20*time.Second)
}
