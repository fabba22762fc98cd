// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"pahmm/internal/heatmap"
	"pahmm/internal/pipeline"
	"pahmm/internal/predict"
	"pahmm/internal/reference"
	"pahmm/pkg/api"
)

// ToAPIAligned converts one aligned record to the stable wire schema (v1).
func ToAPIAligned(a pipeline.Aligned) api.AlignedV1 {
	return api.AlignedV1{
		Position:         a.Position,
		GenomePosition:   a.GenomePosition,
		Base:             string(a.Base),
		Context:          a.Context,
		E1:               a.Score(predict.E1),
		E2:               a.Score(predict.E2),
		E3:               a.Score(predict.E3),
		PASite:           a.Score(predict.PASite),
		E4:               a.Score(predict.E4),
		ProbIndep:        a.ProbIndep,
		Cumulative:       a.Cumulative,
		StagedCumulative: a.StagedCumulative,
	}
}

// ToAPICells converts the heatmap cells of res, colored on its own domain.
func ToAPICells(res *pipeline.Result) []api.CellV1 {
	scale := heatmap.NewScale(res.Heatmap.Domain)
	out := make([]api.CellV1, 0, len(res.Heatmap.Cells))
	for _, c := range res.Heatmap.Cells {
		out = append(out, api.CellV1{
			Gene:     res.Gene,
			Position: c.Position,
			Channel:  c.Channel.String(),
			Score:    c.Score,
			Context:  c.Context,
			Color:    scale.Hex(c.Score),
		})
	}
	return out
}

func toAPIReference(gd reference.GeneData) api.ReferenceCurveV1 {
	v := api.ReferenceCurveV1{
		Family:      gd.Family.String(),
		Label:       gd.Family.Label(),
		Color:       gd.Family.Color(),
		Genes:       append([]string(nil), gd.Genes...),
		Cumulative:  make([]api.RefPointV1, len(gd.Cumulative)),
		Probability: make([]api.RefPointV1, len(gd.Probability)),
	}
	for i, r := range gd.Cumulative {
		p := r.ProbIndep
		v.Cumulative[i] = api.RefPointV1{Position: r.Position, All: r.All, ProbIndep: &p}
	}
	for i, r := range gd.Probability {
		v.Probability[i] = api.RefPointV1{Position: r.Position, All: r.All}
	}
	return v
}

// ToAPIResult converts a pipeline result to the stable wire schema (v1).
func ToAPIResult(res *pipeline.Result) api.ResultV1 {
	v := api.ResultV1{
		Gene:           res.Gene,
		Orientation:    res.Resolution.Orientation.String(),
		UpstreamBuffer: res.UpstreamBuffer,
		Layout:         res.Layout.String(),
		CDS:            api.CDSV1{Start: res.Resolution.CDS1, End: res.Resolution.CDS2},
		Records:        make([]api.AlignedV1, len(res.Records)),
		Cells:          ToAPICells(res),
		Domain:         api.DomainV1{Min: res.Heatmap.Domain.Min, Max: res.Heatmap.Domain.Max},
	}
	for i, a := range res.Records {
		v.Records[i] = ToAPIAligned(a)
	}
	if res.References != nil {
		for _, f := range reference.Families {
			v.References = append(v.References, toAPIReference(res.References[f]))
		}
	}
	return v
}

// WriteJSON writes one pretty-indented v1 document for a single result, or a
// JSON array when there are several.
func WriteJSON(w io.Writer, results []*pipeline.Result) error {
	if len(results) == 1 {
		return encodePretty(w, ToAPIResult(results[0]))
	}
	out := make([]api.ResultV1, 0, len(results))
	for _, r := range results {
		out = append(out, ToAPIResult(r))
	}
	return encodePretty(w, out)
}

func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
