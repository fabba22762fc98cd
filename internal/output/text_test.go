package output

import (
	"bytes"
	"strings"
	"testing"

	"pahmm/internal/pipeline"
	"pahmm/pkg/api"
)

func TestWriteAlignedText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAlignedText(&buf, []*pipeline.Result{sample("g1")}, true); err != nil {
		t.Fatalf("text write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 || lines[0] != AlignedHeader {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	want := "g1\t1\t5139\tA\tN/A\t0\t1\t2\t18.5\t4\t0.25\t0.25\t0.4"
	if lines[1] != want {
		t.Fatalf("row:\n got:  %q\n want: %q", lines[1], want)
	}
	if n := len(strings.Split(lines[2], "\t")); n != len(strings.Split(AlignedHeader, "\t")) {
		t.Fatalf("row has %d columns", n)
	}
}

func TestStreamCellsText_NoHeader(t *testing.T) {
	in := make(chan api.CellV1, 2)
	in <- api.CellV1{Gene: "g", Position: 3, Channel: "e2", Score: 1.5, Context: "ACGTAC", Color: "#ffffff"}
	close(in)
	var buf bytes.Buffer
	if err := StreamCellsText(&buf, in, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "g\t3\te2\t1.5\tACGTAC\t#ffffff\n" {
		t.Fatalf("got %q", got)
	}
}
