package watch

import (
	"errors"
	"io"
	"strings"
)

// IsErrClosed reports whether err indicates a regularly closed
// connection. The net package does not export the underlying error.
func IsErrClosed(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, io.EOF) || strings.Contains(err.Error(), "use of closed network connection")
}
