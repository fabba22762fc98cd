package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pahmm/internal/align"
	"pahmm/internal/heatmap"
	"pahmm/internal/kmer"
	"pahmm/internal/orient"
	"pahmm/internal/predict"
	"pahmm/internal/ready"
	"pahmm/internal/reference"
	"pahmm/internal/signal"
)

// Source is the minimal capability the pipeline needs from the reference
// corpus. *reference.Corpus satisfies it.
type Source interface {
	Select(gene string, mode reference.MatchMode) (*reference.Selection, error)
}

// Request carries every per-request value.
type Request struct {
	Gene           string
	UpstreamBuffer string // as typed by the user; parsed by align.ParseBuffer
	Match          reference.MatchMode
	Layout         Layout

	// Table is the HMM output. nil means it never became ready.
	Table []predict.Record
}

// Aligned is one prediction row with everything derived from it.
type Aligned struct {
	predict.Record
	Context          string
	ProbIndep        float64
	Cumulative       float64
	StagedCumulative float64
	GenomePosition   int
}

// Result is the immutable outcome of one request.
type Result struct {
	Gene           string
	Layout         Layout
	UpstreamBuffer int
	Resolution     orient.Resolution
	Records        []Aligned
	References     *reference.Selection
	Heatmap        heatmap.Matrix
}

// Run executes one request. Any error is terminal; no partial result is
// returned. log may be nil.
func Run(ctx context.Context, src Source, req Request, log logrus.FieldLogger) (*Result, error) {
	if log == nil {
		log = discard()
	}
	log = log.WithField("gene", req.Gene)

	buf, err := align.ParseBuffer(req.UpstreamBuffer)
	if err != nil {
		return nil, err
	}
	if req.Table == nil {
		return nil, fmt.Errorf("gene %q: %w", req.Gene, ready.ErrTimeout)
	}

	curves, err := signal.Transform(predict.Column(req.Table, predict.PASite))
	if err != nil {
		return nil, fmt.Errorf("gene %q: %w", req.Gene, err)
	}
	contexts := kmer.Contexts(predict.Bases(req.Table))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel, err := src.Select(req.Gene, req.Match)
	if err != nil {
		return nil, err
	}
	for _, f := range reference.Families {
		gd := sel[f]
		fl := log.WithFields(logrus.Fields{"family": f.String(), "rows": len(gd.Cumulative)})
		if len(gd.Genes) > 1 {
			fl.WithField("matched", gd.Genes).Warn("gene id matched several genes")
		} else {
			fl.Debug("selected reference rows")
		}
	}

	res, err := orient.Resolve(sel.Primary().Cumulative)
	if err != nil {
		return nil, fmt.Errorf("gene %q: %w", req.Gene, err)
	}
	log.WithFields(logrus.Fields{
		"orientation": res.Orientation.String(),
		"cds1":        res.CDS1,
		"cds2":        res.CDS2,
	}).Debug("resolved orientation")

	genome := align.Positions(res, buf, predict.Positions(req.Table))

	out := &Result{
		Gene:           req.Gene,
		Layout:         req.Layout,
		UpstreamBuffer: buf,
		Resolution:     res,
		Records:        make([]Aligned, len(req.Table)),
		References:     sel,
	}
	rows := make([]heatmap.Row, len(req.Table))
	for i, rec := range req.Table {
		out.Records[i] = Aligned{
			Record:           rec,
			Context:          contexts[i],
			ProbIndep:        curves.Prob[i],
			Cumulative:       curves.Cumulative[i],
			StagedCumulative: curves.Staged[i],
			GenomePosition:   genome[i],
		}
		rows[i] = heatmap.Row{Position: rec.Position, Scores: rec.Scores, Context: contexts[i]}
	}
	out.Heatmap = heatmap.Build(rows)
	log.WithField("positions", len(out.Records)).Info("aligned prediction")
	return out, nil
}

// RunAll runs independent requests with at most limit in flight (limit <= 0
// means one per request). Results come back in request order. The first
// failure cancels the rest.
func RunAll(ctx context.Context, src Source, reqs []Request, limit int, log logrus.FieldLogger) ([]*Result, error) {
	out := make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range reqs {
		i := i
		g.Go(func() error {
			r, err := Run(gctx, src, reqs[i], log)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
