// Package fixture writes small reference corpora and prediction tables for
// tests.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pahmm/internal/reference"
)

// Row formats one corpus line for family f, padding the per-replicate
// columns with zeros.
func Row(f reference.Family, gene string, pos, distStop, distStart int, all float64) string {
	cols := make([]string, f.Columns())
	for i := range cols {
		cols[i] = "0"
	}
	cols[0] = gene
	cols[1] = "chrI"
	cols[2] = fmt.Sprint(pos)
	cols[3] = "+"
	cols[4] = fmt.Sprint(distStop)
	cols[5] = fmt.Sprint(distStart)
	cols[len(cols)-1] = fmt.Sprint(all)
	return strings.Join(cols, "\t")
}

// Site is one reference row before formatting.
type Site struct {
	Pos, DistStop, DistStart int
	All                      float64
}

// Table renders rows for gene in family f with a '#gene' header line.
func Table(f reference.Family, gene string, sites []Site) string {
	var b strings.Builder
	b.WriteString("#gene\tchromo\tposition\n")
	for _, s := range sites {
		b.WriteString(Row(f, gene, s.Pos, s.DistStop, s.DistStart, s.All))
		b.WriteByte('\n')
	}
	return b.String()
}

// SenseSites is a small sense-strand gene: positions ascend.
var SenseSites = []Site{
	{Pos: 1000, DistStop: 900, DistStart: 50, All: 0.2},
	{Pos: 1010, DistStop: 890, DistStart: 60, All: 0.5},
	{Pos: 1020, DistStop: 880, DistStart: 70, All: 1.0},
}

// AntisenseSites is a small antisense gene: positions descend.
var AntisenseSites = []Site{
	{Pos: 5000, DistStop: 700, DistStart: 40, All: 0.3},
	{Pos: 4990, DistStop: 710, DistStart: 30, All: 0.6},
	{Pos: 4980, DistStop: 720, DistStart: 20, All: 1.0},
}

// WriteCorpus writes all eight corpus files for the given genes into dir
// using the conventional file names.
func WriteCorpus(t testing.TB, dir string, genes map[string][]Site) {
	t.Helper()
	for _, f := range reference.Families {
		for _, k := range []reference.Kind{reference.Cumulative, reference.Probability} {
			var b strings.Builder
			for gene, sites := range genes {
				b.WriteString(Table(f, gene, sites))
			}
			fn := filepath.Join(dir, reference.FileName(f, k))
			if err := os.WriteFile(fn, []byte(b.String()), 0o644); err != nil {
				t.Fatalf("write %s: %v", fn, err)
			}
		}
	}
}

// Prediction renders a prediction table for bases, one pASite score per base;
// the other channels get small position-dependent values.
func Prediction(bases string, pasite []float64) string {
	var b strings.Builder
	b.WriteString("Base\tPosition\te1\te2\te3\tpASite\te4\n")
	for i := 0; i < len(bases); i++ {
		fmt.Fprintf(&b, "%c\t%d\t%g\t%g\t%g\t%g\t%g\n",
			bases[i], i+1, float64(i)*0.1, float64(i)*0.2, float64(i)*0.3, pasite[i], -float64(i))
	}
	return b.String()
}

// WritePrediction writes Prediction(bases, pasite) to dir/name and returns the path.
func WritePrediction(t testing.TB, dir, name, bases string, pasite []float64) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(Prediction(bases, pasite)), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}
