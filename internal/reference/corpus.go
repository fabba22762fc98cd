package reference

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ErrNoMatchingGeneData is returned when a gene matches no row of a corpus table.
var ErrNoMatchingGeneData = errors.New("no matching gene data")

// Corpus holds all reference tables. Build it once with Load (or Put during
// setup), then share it read-only between requests.
type Corpus struct {
	tables [numFamilies][numKinds]Table
}

func NewCorpus() *Corpus { return &Corpus{} }

// Put installs a table. Not safe once the corpus is shared.
func (c *Corpus) Put(t Table) { c.tables[t.Family][t.Kind] = t }

// Table returns the stored table for (f, k).
func (c *Corpus) Table(f Family, k Kind) Table { return c.tables[f][k] }

// Paths maps every (family, kind) to its corpus file.
type Paths map[Family][numKinds]string

// DefaultPaths names the conventional files inside dir.
func DefaultPaths(dir string) Paths {
	p := make(Paths, numFamilies)
	for _, f := range Families {
		p[f] = [numKinds]string{
			filepath.Join(dir, FileName(f, Cumulative)),
			filepath.Join(dir, FileName(f, Probability)),
		}
	}
	return p
}

// Load reads every table in paths concurrently. The first failure cancels the
// remaining reads and is returned.
func Load(ctx context.Context, paths Paths) (*Corpus, error) {
	c := NewCorpus()
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range Families {
		files, ok := paths[f]
		if !ok {
			return nil, fmt.Errorf("no corpus paths for %s", f)
		}
		for k := Kind(0); k < numKinds; k++ {
			f, k, path := f, k, files[k]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				t, err := ReadTableFile(path, f, k)
				if err != nil {
					return err
				}
				c.tables[f][k] = t
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

// Record is a cumulative-table row of one gene plus its derived independent
// probability.
type Record struct {
	Position       int
	DistToCDSStart int
	DistToCDSStop  int
	All            float64
	ProbIndep      float64
}

// ProbRecord is a probability-table row of one gene.
type ProbRecord struct {
	Position int
	All      float64
}

// GeneData is one family's tables filtered to a gene.
type GeneData struct {
	Family      Family
	Cumulative  []Record
	Probability []ProbRecord
	// Genes lists the distinct gene ids that matched; more than one means the
	// query over-matched.
	Genes []string
}

// Selection is the per-request view of every family for one gene.
type Selection [numFamilies]GeneData

// Primary returns the Pcf11 data used for orientation and alignment.
func (s *Selection) Primary() GeneData { return s[Pcf11] }

// Select filters every family to gene. Any table without a matching row fails
// the whole selection with ErrNoMatchingGeneData.
func (c *Corpus) Select(gene string, mode MatchMode) (*Selection, error) {
	if gene == "" {
		return nil, fmt.Errorf("%w: empty gene identifier", ErrNoMatchingGeneData)
	}
	var sel Selection
	for _, f := range Families {
		cum := c.tables[f][Cumulative].Filter(gene, mode)
		if len(cum) == 0 {
			return nil, fmt.Errorf("%w: gene %q in %s %s", ErrNoMatchingGeneData, gene, f, Cumulative)
		}
		prob := c.tables[f][Probability].Filter(gene, mode)
		if len(prob) == 0 {
			return nil, fmt.Errorf("%w: gene %q in %s %s", ErrNoMatchingGeneData, gene, f, Probability)
		}
		sel[f] = GeneData{
			Family:      f,
			Cumulative:  reduceCumulative(cum),
			Probability: reduceProbability(prob),
			Genes:       distinctGenes(cum, prob),
		}
	}
	return &sel, nil
}

func reduceCumulative(rows []Row) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record{
			Position:       r.Position,
			DistToCDSStart: r.DistToCDSStart,
			DistToCDSStop:  r.DistToCDSStop,
			All:            r.All,
		}
		if i == 0 {
			out[i].ProbIndep = r.All
		} else {
			out[i].ProbIndep = r.All - rows[i-1].All
		}
	}
	return out
}

func reduceProbability(rows []Row) []ProbRecord {
	out := make([]ProbRecord, len(rows))
	for i, r := range rows {
		out[i] = ProbRecord{Position: r.Position, All: r.All}
	}
	return out
}

func distinctGenes(sets ...[]Row) []string {
	seen := map[string]struct{}{}
	for _, rows := range sets {
		for _, r := range rows {
			seen[r.Gene] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
