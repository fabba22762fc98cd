package reference

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"pahmm/internal/tabio"
)

// ErrMalformedCorpus marks a corpus line that does not fit its family schema.
var ErrMalformedCorpus = errors.New("malformed reference corpus")

// Column layout shared by every family: gene, chromo, position, strand,
// distToCDSstop, distToCDSstart, ... per-replicate counts ..., all.
const (
	colGene           = 0
	colPosition       = 2
	colDistToCDSStop  = 4
	colDistToCDSStart = 5
)

// Row is a corpus line reduced to the columns the pipeline needs.
type Row struct {
	Gene           string
	Position       int
	DistToCDSStart int
	DistToCDSStop  int
	All            float64
}

// Table is one corpus file held in memory, in file order.
type Table struct {
	Family Family
	Kind   Kind
	Rows   []Row
}

// ReadTable parses a corpus file of the given family. Blank lines and lines
// starting with '#' are skipped; every other line must carry exactly
// f.Columns() fields.
func ReadTable(r io.Reader, f Family, k Kind) (Table, error) {
	t := Table{Family: f, Kind: k}
	sc := tabio.NewScanner(r)
	want := f.Columns()
	for {
		fields, ok := sc.Next()
		if !ok {
			break
		}
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != want {
			return t, fmt.Errorf("%w: %s %s line %d: want %d fields, got %d", ErrMalformedCorpus, f, k, sc.Line, want, len(fields))
		}
		row, err := parseRow(fields)
		if err != nil {
			return t, fmt.Errorf("%w: %s %s line %d: %v", ErrMalformedCorpus, f, k, sc.Line, err)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return t, err
	}
	return t, nil
}

// ReadTableFile opens path (gzip detected) and parses it.
func ReadTableFile(path string, f Family, k Kind) (Table, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer rc.Close()
	t, err := ReadTable(rc, f, k)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parseRow(f []string) (Row, error) {
	var (
		row Row
		err error
	)
	row.Gene = f[colGene]
	if row.Position, err = parseInt(f[colPosition]); err != nil {
		return row, fmt.Errorf("position %q", f[colPosition])
	}
	if row.DistToCDSStop, err = parseInt(f[colDistToCDSStop]); err != nil {
		return row, fmt.Errorf("distToCDSstop %q", f[colDistToCDSStop])
	}
	if row.DistToCDSStart, err = parseInt(f[colDistToCDSStart]); err != nil {
		return row, fmt.Errorf("distToCDSstart %q", f[colDistToCDSStart])
	}
	last := f[len(f)-1]
	if row.All, err = strconv.ParseFloat(last, 64); err != nil {
		return row, fmt.Errorf("all %q", last)
	}
	return row, nil
}

// parseInt accepts plain integers and integral floats ("1200.0").
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil || fv != math.Trunc(fv) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(fv), nil
}

// Filter returns the rows whose gene column matches gene, in file order.
func (t Table) Filter(gene string, mode MatchMode) []Row {
	var out []Row
	for _, r := range t.Rows {
		if matches(r.Gene, gene, mode) {
			out = append(out, r)
		}
	}
	return out
}

func matches(field, gene string, mode MatchMode) bool {
	if mode == Exact {
		return field == gene
	}
	return strings.Contains(field, gene)
}
