package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" || FormatCSV != "csv" {
		t.Fatalf("output format constants changed")
	}
	if ValidFormat("fasta") || !ValidFormat("csv") {
		t.Fatalf("ValidFormat disagrees with Formats")
	}
}
