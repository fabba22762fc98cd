package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pahmm/internal/reference"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "pahmm.toml")
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestLoad_OverridesDefaults(t *testing.T) {
	fn := writeConf(t, `
data_dir = "/data/pa"
match = "exact"

[corpus.steinmetz]
cumulative = "stein_cum.txt"
probability = "/abs/stein_prob.txt"

[wait]
timeout = "30s"
`)
	c, err := Load(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataDir != "/data/pa" || c.Match != "exact" || c.Layout != "independent" {
		t.Fatalf("unexpected conf %+v", c)
	}
	if c.Wait.Timeout != 30*time.Second || c.Wait.Initial != Default().Wait.Initial {
		t.Fatalf("wait=%+v", c.Wait)
	}
	p := c.Paths()
	if got := p[reference.Steinmetz]; got[0] != "/data/pa/stein_cum.txt" || got[1] != "/abs/stein_prob.txt" {
		t.Fatalf("steinmetz paths %v", got)
	}
	if got := p[reference.Pcf11][0]; got != "/data/pa/pcf11_cumPa.txt" {
		t.Fatalf("pcf11 default path %q", got)
	}
	if c.MatchMode() != reference.Exact {
		t.Fatalf("match mode %v", c.MatchMode())
	}
}

func TestLoad_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"unknown key":    "colour = \"red\"\n",
		"bad match":      "match = \"fuzzy\"\n",
		"bad layout":     "layout = \"grid\"\n",
		"unknown family": "[corpus.nope]\ncumulative = \"a\"\nprobability = \"b\"\n",
		"half family":    "[corpus.pcf11]\ncumulative = \"a\"\n",
		"syntax":         "data_dir = \n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConf(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestFlagMerge_ExplicitFlagsWin(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flagConf := Default()
	fs.StringVar(&flagConf.DataDir, "data-dir", flagConf.DataDir, "")
	fs.StringVar(&flagConf.Match, "match", flagConf.Match, "")
	fs.DurationVar(&flagConf.Wait.Timeout, "wait", flagConf.Wait.Timeout, "")
	if err := fs.Parse([]string{"--match", "exact", "--wait", "0s"}); err != nil {
		t.Fatal(err)
	}
	fileConf := Default()
	fileConf.DataDir = "/from/file"
	fileConf.Match = "substring"
	fileConf.Wait.Timeout = time.Hour
	fileConf.Wait.Max = time.Second

	got := flagConf.FlagMerge(fs, fileConf)
	if got.DataDir != "/from/file" {
		t.Fatalf("unset flag should take file value, got %q", got.DataDir)
	}
	if got.Match != "exact" || got.Wait.Timeout != 0 {
		t.Fatalf("explicit flags lost: %+v", got)
	}
	if got.WaitOptions().Max != time.Second {
		t.Fatalf("wait max not taken from file: %v", got.WaitOptions())
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "[corpus.pcf11]") {
		t.Fatalf("missing corpus table:\n%s", buf.String())
	}
	c, err := Load(writeConf(t, buf.String()))
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, buf.String())
	}
	if c.Wait != Default().Wait || c.UpstreamBuffer != "100" {
		t.Fatalf("round trip changed values: %+v", c)
	}
}
