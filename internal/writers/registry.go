// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"pahmm/internal/output"
	"pahmm/internal/pipeline"
)

// Options select what a result writer emits.
type Options struct {
	Header bool
	Cells  bool // append the heatmap cells (text) after the aligned table
}

// ResultWriter serializes finished results.
type ResultWriter func(w io.Writer, results []*pipeline.Result, opt Options) error

// ResultWriters maps an output format to its writer.
var ResultWriters = map[string]ResultWriter{}

// RegisterResult installs fn for format (last wins).
func RegisterResult(format string, fn ResultWriter) { ResultWriters[format] = fn }

// WriteResults dispatches to the writer registered for format.
func WriteResults(format string, w io.Writer, results []*pipeline.Result, opt Options) error {
	fn, ok := ResultWriters[format]
	if !ok {
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn(w, results, opt)
}

func init() {
	RegisterResult(output.FormatText, writeText)
	RegisterResult(output.FormatJSON, func(w io.Writer, rs []*pipeline.Result, _ Options) error {
		return output.WriteJSON(w, rs)
	})
	RegisterResult(output.FormatCSV, func(w io.Writer, rs []*pipeline.Result, opt Options) error {
		return output.WriteCSV(w, rs, opt.Header)
	})
	RegisterResult(output.FormatJSONL, func(w io.Writer, rs []*pipeline.Result, _ Options) error {
		return streamCells(w, output.FormatJSONL, false, rs)
	})
}

func writeText(w io.Writer, rs []*pipeline.Result, opt Options) error {
	if err := output.WriteAlignedText(w, rs, opt.Header); err != nil {
		return err
	}
	if !opt.Cells {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return streamCells(w, output.FormatText, opt.Header, rs)
}

// streamCells feeds every cell of rs through a cell writer goroutine.
func streamCells(w io.Writer, format string, header bool, rs []*pipeline.Result) error {
	in, done := StartCellWriter(w, format, header, 256)
	for _, r := range rs {
		for _, c := range output.ToAPICells(r) {
			in <- c
		}
	}
	close(in)
	return <-done
}
