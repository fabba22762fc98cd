package output

// Output formats accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatJSONL, FormatCSV}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// AlignedHeader is the canonical header row for the aligned text/TSV output.
// Keep this as the single source of truth; all writers should use it.
const AlignedHeader = "gene\tposition\tgenome_position\tbase\tcontext\te1\te2\te3\tpASite\te4\tprob_indep\tcumulative\tstaged_cumulative"

// CellHeader is the header row for the heatmap cell TSV.
const CellHeader = "gene\tposition\tchannel\tscore\tcontext\tcolor"
