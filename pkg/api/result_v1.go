// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON schema for one aligned prediction.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Gene           string             `json:"gene"`
	Orientation    string             `json:"orientation"` // "sense" | "antisense"
	UpstreamBuffer int                `json:"upstream_buffer"`
	Layout         string             `json:"layout"` // "independent" | "staged"
	CDS            CDSV1              `json:"cds"`
	Records        []AlignedV1        `json:"records"`
	References     []ReferenceCurveV1 `json:"references"`
	Cells          []CellV1           `json:"cells"`
	Domain         DomainV1           `json:"domain"`
}

// AlignedV1 is one prediction position on the genome axis.
type AlignedV1 struct {
	Position         int     `json:"position"`
	GenomePosition   int     `json:"genome_position"`
	Base             string  `json:"base"`
	Context          string  `json:"context"` // 6-mer or "N/A"
	E1               float64 `json:"e1"`
	E2               float64 `json:"e2"`
	E3               float64 `json:"e3"`
	PASite           float64 `json:"pasite"`
	E4               float64 `json:"e4"`
	ProbIndep        float64 `json:"prob_indep"`
	Cumulative       float64 `json:"cumulative"`
	StagedCumulative float64 `json:"staged_cumulative"`
}

// CDSV1 is the coding-sequence arrow, drawn from Start to End.
type CDSV1 struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ReferenceCurveV1 is one reference experiment restricted to the gene.
type ReferenceCurveV1 struct {
	Family      string       `json:"family"`
	Label       string       `json:"label"`
	Color       string       `json:"color"`
	Genes       []string     `json:"genes,omitempty"` // matched gene ids
	Cumulative  []RefPointV1 `json:"cumulative"`
	Probability []RefPointV1 `json:"probability"`
}

// RefPointV1 is one reference site. ProbIndep is set on cumulative points only.
type RefPointV1 struct {
	Position  int      `json:"position"`
	All       float64  `json:"all"`
	ProbIndep *float64 `json:"prob_indep,omitempty"`
}

// CellV1 is one heatmap cell; also the JSONL record.
type CellV1 struct {
	Gene     string  `json:"gene,omitempty"`
	Position int     `json:"position"`
	Channel  string  `json:"channel"`
	Score    float64 `json:"score"`
	Context  string  `json:"context"`
	Color    string  `json:"color"`
}

// DomainV1 is the score range the cell colors are scaled to.
type DomainV1 struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
