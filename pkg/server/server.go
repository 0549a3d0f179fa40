package server

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Server is a plain http server with its own mux. With def set, the
// handlers registered at the package default mux (for example the
// healthz endpoint) are served, too.
type Server struct {
	*http.Server
	*http.ServeMux
}

func NewServer(port int, def bool) *Server {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	if def {
		mux.Handle("/", default_mux)
	}
	return &Server{
		Server:   server,
		ServeMux: mux,
	}
}

// ListenAndServeContext serves until the given context is cancelled and
// then shuts down gracefully.
func (s *Server) ListenAndServeContext(ctx context.Context, shutdownTimeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		// Capture ListenAndServe errors such as "port already in use".
		// A graceful shutdown makes ListenAndServe return
		// http.ErrServerClosed, which the select below discards.
		serverErr <- s.ListenAndServe()
	}()
	var err error
	select {
	case <-ctx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = s.Shutdown(ctx)
	case err = <-serverErr:
	}
	return err
}
