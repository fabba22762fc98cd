// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"pahmm/pkg/api"
)

// 64 KiB buffered writers are reused across JSONL streams.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// startJSONL runs an encoder goroutine that writes each value of in as one
// JSON line. After an error the remaining values are drained.
func startJSONL[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = encode(enc, v)
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}

// StartCellJSONLWriter streams each heatmap cell as one JSON line (v1).
func StartCellJSONLWriter(out io.Writer, bufSize int) (chan<- api.CellV1, <-chan error) {
	return startJSONL[api.CellV1](out, bufSize, func(enc *json.Encoder, c api.CellV1) error {
		return enc.Encode(c)
	})
}
