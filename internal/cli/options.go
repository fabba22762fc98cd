// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"pahmm/internal/config"
	"pahmm/internal/output"
	"pahmm/internal/render"
)

// PredictionSuffix names per-gene files inside --prediction-dir.
const PredictionSuffix = ".pos.txt"

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Genes         []string
	Prediction    string // file or "-"; empty in --prediction-dir mode
	PredictionDir string
	ConfigFile    string

	// Output
	Cells  bool
	Header bool // true unless --no-header
	Plot   string

	Jobs       int
	Quiet      bool
	Verbose    bool
	Version    bool
	DumpConfig bool

	// Conf is the effective configuration: defaults, then --config, then
	// explicit flags.
	Conf *config.Conf
}

// aliases maps short flags to the long flag they stand for.
var aliases = map[string]string{
	"g": "gene",
	"p": "prediction",
	"b": "upstream-buffer",
	"j": "jobs",
	"o": "output",
	"w": "wait",
	"q": "quiet",
	"v": "version",
}

// ParseArgs registers and parses all flags, returns an Options struct.
// A positional argument is taken as the prediction file.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool
	var genes string
	flagConf := config.Default()

	// Input
	fs.StringVar(&genes, "gene", "", "gene id or comma list [*]")
	fs.StringVar(&opt.Prediction, "prediction", "", "HMM per-base output file or '-'")
	fs.StringVar(&opt.PredictionDir, "prediction-dir", "", "directory of <gene>.pos.txt files")
	fs.StringVar(&flagConf.DataDir, "data-dir", flagConf.DataDir, "reference corpus directory")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML configuration file")

	// Alignment
	fs.StringVar(&flagConf.UpstreamBuffer, "upstream-buffer", flagConf.UpstreamBuffer, "upstream buffer length")
	fs.StringVar(&flagConf.Match, "match", flagConf.Match, "gene id match: substring | exact")
	fs.IntVar(&opt.Jobs, "jobs", 0, "genes aligned at once (0 = all)")

	// Output
	fs.StringVar(&flagConf.Output, "output", flagConf.Output, "output: text | json | jsonl | csv")
	fs.BoolVar(&opt.Cells, "cells", false, "append heatmap cells to text output")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header lines")
	fs.StringVar(&opt.Plot, "plot", "", "render a figure to this file")
	fs.StringVar(&flagConf.Layout, "layout", flagConf.Layout, "figure layout: independent | staged")

	// Waiting
	fs.DurationVar(&flagConf.Wait.Timeout, "wait", flagConf.Wait.Timeout, "wait for the prediction file")

	// Misc
	fs.BoolVar(&opt.DumpConfig, "dump-config", false, "print the effective configuration and exit")
	fs.BoolVar(&opt.Quiet, "quiet", false, "errors only")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "help", false, "show this help message")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")
	for short, long := range aliases {
		f := fs.Lookup(long)
		fs.Var(f.Value, short, "alias of --"+long)
	}

	flagArgs, posArgs := splitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	// Record short flags under their long names so FlagMerge sees them.
	var visited []string
	fs.Visit(func(f *flag.Flag) { visited = append(visited, f.Name) })
	for _, name := range visited {
		if long, ok := aliases[name]; ok {
			if err := fs.Set(long, fs.Lookup(name).Value.String()); err != nil {
				return opt, err
			}
		}
	}

	fileConf := config.Default()
	if opt.ConfigFile != "" {
		c, err := config.Load(opt.ConfigFile)
		if err != nil {
			return opt, err
		}
		fileConf = c
	}
	opt.Conf = flagConf.FlagMerge(fs, fileConf)
	opt.Header = !noHeader
	opt.Genes = splitList(genes)

	switch len(posArgs) {
	case 0:
	case 1:
		if opt.Prediction != "" {
			return opt, errors.New("prediction given both as --prediction and as an argument")
		}
		opt.Prediction = posArgs[0]
	default:
		return opt, fmt.Errorf("unexpected arguments %q", posArgs[1:])
	}

	if opt.DumpConfig {
		return opt, opt.Conf.Validate()
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	if len(o.Genes) == 0 {
		return errors.New("--gene is required")
	}
	switch {
	case o.Prediction != "" && o.PredictionDir != "":
		return errors.New("--prediction conflicts with --prediction-dir")
	case o.Prediction == "" && o.PredictionDir == "":
		return errors.New("provide --prediction (or a path argument) or --prediction-dir")
	case len(o.Genes) > 1 && o.PredictionDir == "":
		return errors.New("several genes need --prediction-dir")
	}
	if o.Jobs < 0 {
		return errors.New("--jobs must be >= 0")
	}
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	if !output.ValidFormat(o.Conf.Output) {
		return fmt.Errorf("invalid --output %q", o.Conf.Output)
	}
	if o.Cells && o.Conf.Output != output.FormatText {
		return errors.New("--cells applies to --output text only")
	}
	if o.Plot != "" {
		if _, err := render.FormatFor(o.Plot); err != nil {
			return err
		}
	}
	return o.Conf.Validate()
}

// PredictionPath returns the prediction file for gene.
func (o *Options) PredictionPath(gene string) string {
	if o.PredictionDir != "" {
		return filepath.Join(o.PredictionDir, gene+PredictionSuffix)
	}
	return o.Prediction
}
