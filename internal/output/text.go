package output

import (
	"fmt"
	"io"
	"strconv"

	"pahmm/internal/pipeline"
	"pahmm/internal/predict"
	"pahmm/pkg/api"
)

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatAlignedRow returns the AlignedHeader columns for a (no trailing newline).
func FormatAlignedRow(gene string, a pipeline.Aligned) string {
	return fmt.Sprintf("%s\t%d\t%d\t%c\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
		gene, a.Position, a.GenomePosition, a.Base, a.Context,
		ftoa(a.Score(predict.E1)), ftoa(a.Score(predict.E2)), ftoa(a.Score(predict.E3)),
		ftoa(a.Score(predict.PASite)), ftoa(a.Score(predict.E4)),
		ftoa(a.ProbIndep), ftoa(a.Cumulative), ftoa(a.StagedCumulative),
	)
}

// WriteAlignedText prints one TSV line per aligned record of every result.
func WriteAlignedText(w io.Writer, results []*pipeline.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, AlignedHeader); err != nil {
			return err
		}
	}
	for _, res := range results {
		for _, a := range res.Records {
			if _, err := fmt.Fprintln(w, FormatAlignedRow(res.Gene, a)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatCellRow returns the CellHeader columns for c.
func FormatCellRow(c api.CellV1) string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%s", c.Gene, c.Position, c.Channel, ftoa(c.Score), c.Context, c.Color)
}

// StreamCellsText writes cells as they arrive on in.
func StreamCellsText(w io.Writer, in <-chan api.CellV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, CellHeader); err != nil {
			// drain so the sender never blocks
			for range in {
			}
			return err
		}
	}
	for c := range in {
		if _, err := fmt.Fprintln(w, FormatCellRow(c)); err != nil {
			for range in {
			}
			return err
		}
	}
	return nil
}
