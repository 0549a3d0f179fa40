package graph

import (
	"slices"
	"sync"

	"github.com/evalgraph/engine/pkg/eval"
	"github.com/evalgraph/engine/pkg/utils"
	"github.com/evalgraph/engine/watch"
)

// WatchRequest selects the evaluation events a watcher is interested
// in. An empty expression list selects all expressions.
type WatchRequest struct {
	Expressions []string `json:"expressions,omitempty"`
}

type registration struct {
	req     WatchRequest
	handler watch.EventHandler[eval.EvaluationEvent]
}

// Registry dispatches the evaluation events of a context to registered
// watch handlers. It implements eval.EventHandler and is attached to a
// context with RegisterEventHandler.
type Registry struct {
	lock          sync.Mutex
	registrations []*registration
}

var _ watch.Registry[WatchRequest, eval.EvaluationEvent] = (*Registry)(nil)
var _ eval.EventHandler = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterWatchHandler(req WatchRequest, h watch.EventHandler[eval.EvaluationEvent]) {
	r.lock.Lock()
	defer r.lock.Unlock()
	log.Debug("registering watch handler", "expressions", req.Expressions)
	r.registrations = append(r.registrations, &registration{req: req, handler: h})
}

func (r *Registry) UnregisterWatchHandler(req WatchRequest, h watch.EventHandler[eval.EvaluationEvent]) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.registrations = utils.FilterSlice(r.registrations, func(e *registration) bool { return e.handler != h })
}

func (r *Registry) HandleEvent(e eval.EvaluationEvent) {
	r.lock.Lock()
	list := slices.Clone(r.registrations)
	r.lock.Unlock()

	for _, reg := range list {
		if len(reg.req.Expressions) == 0 || slices.Contains(reg.req.Expressions, e.Expression) {
			reg.handler.HandleEvent(e)
		}
	}
}
