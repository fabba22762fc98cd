// Package config loads the TOML run configuration and merges it with the
// flags given on the command line.
package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pahmm/internal/pipeline"
	"pahmm/internal/ready"
	"pahmm/internal/reference"
)

// CorpusFiles names the two tables of one reference family. Relative names
// are resolved against Conf.DataDir.
type CorpusFiles struct {
	Cumulative  string `toml:"cumulative"`
	Probability string `toml:"probability"`
}

// WaitConf bounds the wait for the prediction file.
type WaitConf struct {
	Initial time.Duration `toml:"initial"`
	Max     time.Duration `toml:"max"`
	Timeout time.Duration `toml:"timeout"`
}

type Conf struct {
	DataDir        string                 `toml:"data_dir"`
	UpstreamBuffer string                 `toml:"upstream_buffer"`
	Match          string                 `toml:"match"`
	Layout         string                 `toml:"layout"`
	Output         string                 `toml:"output"`
	Corpus         map[string]CorpusFiles `toml:"corpus"`
	Wait           WaitConf               `toml:"wait"`
}

// Default returns a fresh configuration holding the built-in values.
func Default() *Conf {
	c := &Conf{
		DataDir:        ".",
		UpstreamBuffer: "100",
		Match:          reference.Substring.String(),
		Layout:         pipeline.Independent.String(),
		Output:         "text",
		Corpus:         make(map[string]CorpusFiles, len(reference.Families)),
		Wait: WaitConf{
			Initial: ready.DefaultOptions.Initial,
			Max:     ready.DefaultOptions.Max,
			Timeout: ready.DefaultOptions.Timeout,
		},
	}
	for _, f := range reference.Families {
		c.Corpus[f.String()] = CorpusFiles{
			Cumulative:  reference.FileName(f, reference.Cumulative),
			Probability: reference.FileName(f, reference.Probability),
		}
	}
	return c
}

// Load reads a TOML file over the defaults. Unknown keys are an error.
func Load(path string) (*Conf, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks the enumerated settings and the corpus table names.
func (c *Conf) Validate() error {
	if _, err := reference.ParseMatchMode(c.Match); err != nil {
		return err
	}
	if _, err := pipeline.ParseLayout(c.Layout); err != nil {
		return err
	}
	for name, files := range c.Corpus {
		if _, err := reference.ParseFamily(name); err != nil {
			return err
		}
		if files.Cumulative == "" || files.Probability == "" {
			return fmt.Errorf("corpus %s: both cumulative and probability files are required", name)
		}
	}
	if c.Wait.Timeout < 0 {
		return fmt.Errorf("wait timeout must be >= 0, got %s", c.Wait.Timeout)
	}
	return nil
}

// FlagMerge fills every setting whose flag was not given on the command line
// from fileConf, so explicit flags win over the file. The corpus table names
// have no flags and always come from fileConf.
func (flagConf *Conf) FlagMerge(fs *flag.FlagSet, fileConf *Conf) *Conf {
	only := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { only[f.Name] = true })

	if !only["data-dir"] {
		flagConf.DataDir = fileConf.DataDir
	}
	if !only["upstream-buffer"] {
		flagConf.UpstreamBuffer = fileConf.UpstreamBuffer
	}
	if !only["match"] {
		flagConf.Match = fileConf.Match
	}
	if !only["layout"] {
		flagConf.Layout = fileConf.Layout
	}
	if !only["output"] {
		flagConf.Output = fileConf.Output
	}
	if !only["wait"] {
		flagConf.Wait.Timeout = fileConf.Wait.Timeout
	}
	flagConf.Wait.Initial = fileConf.Wait.Initial
	flagConf.Wait.Max = fileConf.Wait.Max
	flagConf.Corpus = fileConf.Corpus
	return flagConf
}

// Write encodes the configuration as TOML.
func (c Conf) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Paths resolves the corpus files of every family. Families missing from the
// configuration use the conventional names.
func (c *Conf) Paths() reference.Paths {
	p := reference.DefaultPaths(c.DataDir)
	names := make([]string, 0, len(c.Corpus))
	for name := range c.Corpus {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, err := reference.ParseFamily(name)
		if err != nil {
			continue
		}
		files := c.Corpus[name]
		p[f] = [2]string{c.resolve(files.Cumulative), c.resolve(files.Probability)}
	}
	return p
}

func (c *Conf) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// WaitOptions converts the wait bounds for the ready package.
func (c *Conf) WaitOptions() ready.Options {
	return ready.Options{Initial: c.Wait.Initial, Max: c.Wait.Max, Timeout: c.Wait.Timeout}
}

// MatchMode returns the parsed match mode; call Validate first.
func (c *Conf) MatchMode() reference.MatchMode {
	m, _ := reference.ParseMatchMode(c.Match)
	return m
}

// LayoutValue returns the parsed layout; call Validate first.
func (c *Conf) LayoutValue() pipeline.Layout {
	l, _ := pipeline.ParseLayout(c.Layout)
	return l
}
