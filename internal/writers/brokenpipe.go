package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of the aligned table
// went away, as in `pahmm -g YAL001C p.txt | head`. The app then stops
// writing and still exits 0; cell streams drain so no writer goroutine
// is left blocked.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
