// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pahmm/internal/cli"
	"pahmm/internal/cmdutil"
	"pahmm/internal/pipeline"
	"pahmm/internal/predict"
	"pahmm/internal/ready"
	"pahmm/internal/reference"
	"pahmm/internal/render"
	"pahmm/internal/version"
	"pahmm/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags or unusable input
	ExitIO       = 3 // read/write failures
	ExitTimeout  = 4 // prediction output never became ready
	ExitCanceled = 130
)

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch pipeline.Kind(err) {
	case pipeline.KindNone:
		return ExitOK
	case pipeline.KindCanceled:
		return ExitCanceled
	case pipeline.KindTimeout:
		return ExitTimeout
	case pipeline.KindNoMatchingGeneData, pipeline.KindInsufficientReferenceData,
		pipeline.KindEmptySeries, pipeline.KindMalformedBufferLength, pipeline.KindMalformedInput:
		return ExitUsage
	}
	return ExitIO
}

// flush reports the exit code for a final flush of outw.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("pahmm")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		fs.Usage()
		if errors.Is(err, flag.ErrHelp) {
			return flush(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return flush(outw, stderr, ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "pahmm version %s\n", version.Version)
		return flush(outw, stderr, ExitOK)
	}
	if opts.DumpConfig {
		if err := opts.Conf.Write(outw); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitIO
		}
		return flush(outw, stderr, ExitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)
	results, err := run(parent, opts, log)
	if err != nil {
		log.WithField("kind", pipeline.Kind(err)).Error(err)
		return ExitCode(err)
	}

	werr := writers.WriteResults(opts.Conf.Output, outw, results, writers.Options{Header: opts.Header, Cells: opts.Cells})
	if writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		log.Error(werr)
		return ExitIO
	}

	if opts.Plot != "" {
		for _, r := range results {
			fn := render.PathFor(opts.Plot, r.Gene, len(results) > 1)
			if err := render.Save(fn, r); err != nil {
				log.Error(err)
				return ExitIO
			}
			log.WithField("gene", r.Gene).Infof("wrote %s", fn)
		}
	}
	return flush(outw, stderr, ExitOK)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// run loads the corpus, waits for every prediction table and aligns them.
func run(ctx context.Context, opts cli.Options, log logrus.FieldLogger) ([]*pipeline.Result, error) {
	conf := opts.Conf
	corpus, err := reference.Load(ctx, conf.Paths())
	if err != nil {
		return nil, err
	}
	log.WithField("data_dir", conf.DataDir).Debug("loaded reference corpus")

	tables, err := waitTables(ctx, opts, ready.FileWaiter{Options: conf.WaitOptions()}, log)
	if err != nil {
		return nil, err
	}
	reqs := make([]pipeline.Request, len(opts.Genes))
	for i, g := range opts.Genes {
		reqs[i] = pipeline.Request{
			Gene:           g,
			UpstreamBuffer: conf.UpstreamBuffer,
			Match:          conf.MatchMode(),
			Layout:         conf.LayoutValue(),
			Table:          tables[i],
		}
	}
	return pipeline.RunAll(ctx, corpus, reqs, opts.Jobs, log)
}

// waitTables fetches the prediction table of every gene concurrently. A table
// that timed out stays nil; the pipeline reports it.
func waitTables(ctx context.Context, opts cli.Options, w ready.Waiter, log logrus.FieldLogger) ([][]predict.Record, error) {
	tables := make([][]predict.Record, len(opts.Genes))
	g, gctx := errgroup.WithContext(ctx)
	for i, gene := range opts.Genes {
		i, gene := i, gene
		g.Go(func() error {
			path := opts.PredictionPath(gene)
			t, err := w.Table(gctx, path)
			switch {
			case err == nil:
				tables[i] = t
				return nil
			case pipeline.Kind(err) == pipeline.KindTimeout:
				log.WithField("gene", gene).Warn(err)
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
