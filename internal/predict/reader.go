package predict

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"pahmm/internal/tabio"
)

// ErrMalformedTable marks a prediction table that cannot be parsed.
var ErrMalformedTable = errors.New("malformed prediction table")

// fieldCount is Base, Position, e1, e2, e3, pASite, e4.
const fieldCount = 2 + NumChannels

// Read parses a prediction table. The first line is a header and is skipped;
// blank lines are ignored. Positions must run 1..N without gaps. A table
// without data rows is returned as an empty, non-nil slice.
func Read(r io.Reader) ([]Record, error) {
	sc := tabio.NewScanner(r)
	recs := []Record{}
	if _, ok := sc.Next(); !ok {
		return recs, sc.Err()
	}

	for {
		f, ok := sc.Next()
		if !ok {
			break
		}
		if len(f) == 0 {
			continue
		}
		if len(f) != fieldCount {
			return nil, fmt.Errorf("%w: line %d: want %d fields, got %d", ErrMalformedTable, sc.Line, fieldCount, len(f))
		}
		if len(f[0]) != 1 {
			return nil, fmt.Errorf("%w: line %d: base %q is not a single character", ErrMalformedTable, sc.Line, f[0])
		}
		pos, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: position %q", ErrMalformedTable, sc.Line, f[1])
		}
		if want := len(recs) + 1; pos != want {
			return nil, fmt.Errorf("%w: line %d: position %d, want %d", ErrMalformedTable, sc.Line, pos, want)
		}
		rec := Record{Base: f[0][0], Position: pos}
		for i := 0; i < NumChannels; i++ {
			v, err := strconv.ParseFloat(f[2+i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s score %q", ErrMalformedTable, sc.Line, Channel(i), f[2+i])
			}
			rec.Scores[i] = v
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadFile opens path ("-" for stdin, gzip detected) and parses it.
func ReadFile(path string) ([]Record, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	recs, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
