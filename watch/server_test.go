package watch_test

import (
	"context"
	"slices"
	"sync"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evalgraph/engine/pkg/server"
	"github.com/evalgraph/engine/watch"
)

const PORT = 18731

var _ = Describe("watch endpoint", func() {
	var srv *server.Server
	var registry *Registry
	var ctx context.Context
	var cancel context.CancelFunc

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		srv = server.NewServer(PORT, false)
		registry = NewRegistry()
		srv.Handle("/watch", watch.WatchHttpHandler[RegistrationRequest, Event](registry))
		go srv.ListenAndServe()
	})

	AfterEach(func() {
		cancel()
		srv.Shutdown(context.Background())
	})

	It("streams events to a registered client", func() {
		client := watch.NewClient[RegistrationRequest, Event]("ws://localhost:18731/watch")
		sink := newSink()

		var syncher watch.Syncher
		Eventually(func() error {
			var err error
			syncher, err = client.Register(ctx, RegistrationRequest{Key: "test"}, sink)
			return err
		}, "5s", "100ms").Should(Succeed())

		// the registration request is processed asynchronously
		Eventually(registry.HandlerCount, "5s", "100ms").Should(Equal(1))

		registry.Trigger(Event{Key: "test", Message: "message 1"})
		registry.Trigger(Event{Key: "test", Message: "message 2"})

		Eventually(sink.Messages, "5s", "100ms").Should(Equal([]string{"message 1", "message 2"}))

		cancel()
		MustBeSuccessful(syncher.Wait())
	})
})

type RegistrationRequest struct {
	Key string `json:"key"`
}

type Event struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type Handler = watch.EventHandler[Event]

type Registry struct {
	lock     sync.Mutex
	handlers map[string][]Handler
}

var _ watch.Registry[RegistrationRequest, Event] = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		handlers: map[string][]Handler{},
	}
}

func (r *Registry) RegisterWatchHandler(req RegistrationRequest, h Handler) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.handlers[req.Key] = append(r.handlers[req.Key], h)
}

func (r *Registry) UnregisterWatchHandler(req RegistrationRequest, h Handler) {
	r.lock.Lock()
	defer r.lock.Unlock()

	list := r.handlers[req.Key]
	for i, e := range list {
		if e == h {
			r.handlers[req.Key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
}

func (r *Registry) HandlerCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	cnt := 0
	for _, list := range r.handlers {
		cnt += len(list)
	}
	return cnt
}

func (r *Registry) Trigger(evt Event) {
	r.lock.Lock()
	list := slices.Clone(r.handlers[evt.Key])
	r.lock.Unlock()

	for _, h := range list {
		h.HandleEvent(evt)
	}
}

////////////////////////////////////////////////////////////////////////////////

type sink struct {
	lock   sync.Mutex
	events []Event
}

func newSink() *sink {
	return &sink{}
}

func (s *sink) HandleEvent(e Event) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.events = append(s.events, e)
}

func (s *sink) Messages() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	var r []string
	for _, e := range s.events {
		r = append(r, e.Message)
	}
	return r
}
