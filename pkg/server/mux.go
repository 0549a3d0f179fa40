package server

import (
	"net/http"
)

var default_mux = http.NewServeMux()

// Register adds a handler to the package default mux, served by every
// server created with the def option.
func Register(pattern string, handler http.Handler) {
	default_mux.Handle(pattern, handler)
}
