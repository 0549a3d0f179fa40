package server

import (
	"net/http"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// DirectoryHandler exposes a (virtual) filesystem directory read-only,
// used to publish the served document store.
type DirectoryHandler struct {
	fs      vfs.FileSystem
	prefix  string
	handler http.Handler
}

var _ http.Handler = (*DirectoryHandler)(nil)

// NewDirectoryHandlerFor restricts serving to the given directory by
// projecting the os filesystem onto it.
func NewDirectoryHandlerFor(path, prefix string) (*DirectoryHandler, error) {
	fs, err := projectionfs.New(osfs.OsFs, path)
	if err != nil {
		return nil, err
	}
	return NewDirectoryHandler(fs, prefix), nil
}

func NewDirectoryHandler(fs vfs.FileSystem, prefix string) *DirectoryHandler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &DirectoryHandler{
		fs:      fs,
		prefix:  prefix,
		handler: http.StripPrefix(prefix, http.FileServer(http.FS(vfs.AsIoFS(fs)))),
	}
}

func (d *DirectoryHandler) RegisterHandler(srv *Server) {
	srv.Handle(d.prefix, d)
}

func (d *DirectoryHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(writer, "directory content is read-only", http.StatusMethodNotAllowed)
		return
	}
	log.Debug("serving {{url}}", "url", request.URL)
	d.handler.ServeHTTP(writer, request)
}
