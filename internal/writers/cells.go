package writers

import (
	"fmt"
	"io"

	"pahmm/internal/output"
	"pahmm/pkg/api"
)

// StartCellWriter spins up a writer goroutine for heatmap cells in format
// (text or jsonl). Close the channel, then read the error.
func StartCellWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.CellV1, <-chan error) {
	switch format {
	case output.FormatJSONL:
		return StartCellJSONLWriter(out, bufSize)
	case output.FormatText:
		if bufSize <= 0 {
			bufSize = 64
		}
		in := make(chan api.CellV1, bufSize)
		errCh := make(chan error, 1)
		go func() {
			err := output.StreamCellsText(out, in, header)
			if IsBrokenPipe(err) {
				err = nil
			}
			errCh <- err
		}()
		return in, errCh
	}
	in := make(chan api.CellV1)
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown cell format %q (no writer registered)", format)
	}()
	return in, errCh
}
