package watch

import (
	"encoding/json"
)

// EventHandler receives the events of a watch registration.
type EventHandler[E any] interface {
	HandleEvent(e E)
}

// Registry connects the watch endpoint with an event source. A watch
// request R selects the events a registered handler is interested in.
type Registry[R any, E any] interface {
	RegisterWatchHandler(r R, h EventHandler[E])
	UnregisterWatchHandler(r R, h EventHandler[E])
}

// Syncher reports the termination of a client side watch.
type Syncher interface {
	Wait() error
}

type Error struct {
	Error string `json:"error"`
}

func (e *Error) Message() string {
	return string(e.Data())
}

func (e *Error) Data() []byte {
	data, _ := json.Marshal(e)
	return data
}
