package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"pahmm/internal/pipeline"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []*pipeline.Result{sample("g1"), sample("g2")}, true); err != nil {
		t.Fatalf("csv write: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("want header + 4 rows, got %d", len(recs))
	}
	if recs[0][0] != "gene" || recs[0][8] != "pASite" || len(recs[0]) != 13 {
		t.Fatalf("header=%v", recs[0])
	}
	if recs[1][0] != "g1" || recs[1][2] != "5139" || recs[4][0] != "g2" || recs[4][3] != "C" {
		t.Fatalf("rows=%v", recs[1:])
	}
}

func TestWriteCSV_KeepsFullPrecision(t *testing.T) {
	res := sample("g1")
	res.Records[0].ProbIndep = 1.2345678e-9
	res.Records[0].Cumulative = 0.123456789012
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []*pipeline.Result{res}, false); err != nil {
		t.Fatalf("csv write: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	got := recs[0][10:]
	if want := []string{"1.2345678e-09", "0.123456789012", "0.4"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("prob/cumulative columns = %v want %v", got, want)
	}
	// Every row carries the same values as the text output.
	for i, a := range res.Records {
		if got, text := strings.Join(recs[i], "\t"), FormatAlignedRow(res.Gene, a); got != text {
			t.Fatalf("row %d:\ncsv  %s\ntext %s", i, got, text)
		}
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	if err := WriteCSV(&bytes.Buffer{}, nil, true); err == nil {
		t.Fatal("expected error for empty input")
	}
}
