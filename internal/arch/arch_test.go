// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// outer layers: nothing below them may import these.
var outer = []string{
	"pahmm/internal/app", "pahmm/internal/appshell", "pahmm/internal/cli",
	"pahmm/internal/config", "pahmm/cmd/",
}

var presentation = []string{
	"pahmm/internal/output", "pahmm/internal/writers", "pahmm/internal/render",
}

func join(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	core := join(outer, presentation, []string{"pahmm/internal/pipeline", "pahmm/internal/ready"})
	bans := map[string][]string{
		"pahmm/internal/predict":   join(core, []string{"pahmm/internal/reference"}),
		"pahmm/internal/reference": join(core, []string{"pahmm/internal/predict", "pahmm/internal/signal"}),
		"pahmm/internal/signal":    core,
		"pahmm/internal/orient":    core,
		"pahmm/internal/align":     core,
		"pahmm/internal/kmer":      core,
		"pahmm/internal/heatmap":   core,
		"pahmm/internal/tabio":     core,
		"pahmm/internal/ready":     join(outer, presentation, []string{"pahmm/internal/pipeline"}),
		"pahmm/internal/pipeline":  join(outer, presentation),
		"pahmm/internal/output":    join(outer, []string{"pahmm/internal/writers", "pahmm/internal/render"}),
		"pahmm/internal/writers":   join(outer, []string{"pahmm/internal/render"}),
		"pahmm/internal/render":    join(outer, []string{"pahmm/internal/output", "pahmm/internal/writers"}),
		"pahmm/pkg/api":            {"pahmm/internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "pahmm/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "pahmm/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
