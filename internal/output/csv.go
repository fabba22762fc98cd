package output

import (
	"errors"
	"io"

	"github.com/go-gota/gota/dataframe"

	"pahmm/internal/pipeline"
	"pahmm/internal/predict"
)

// csvRow is the aligned table as a frame row; tags name the CSV columns.
// Numbers are kept as shortest round-trip text, the same as the text output;
// a float column would be written with six decimals.
type csvRow struct {
	Gene             string `dataframe:"gene"`
	Position         int    `dataframe:"position"`
	GenomePosition   int    `dataframe:"genome_position"`
	Base             string `dataframe:"base"`
	Context          string `dataframe:"context"`
	E1               string `dataframe:"e1"`
	E2               string `dataframe:"e2"`
	E3               string `dataframe:"e3"`
	PASite           string `dataframe:"pASite"`
	E4               string `dataframe:"e4"`
	ProbIndep        string `dataframe:"prob_indep"`
	Cumulative       string `dataframe:"cumulative"`
	StagedCumulative string `dataframe:"staged_cumulative"`
}

// Frame builds the aligned table of every result as one data frame.
func Frame(results []*pipeline.Result) (dataframe.DataFrame, error) {
	var rows []csvRow
	for _, res := range results {
		for _, a := range res.Records {
			rows = append(rows, csvRow{
				Gene:             res.Gene,
				Position:         a.Position,
				GenomePosition:   a.GenomePosition,
				Base:             string(a.Base),
				Context:          a.Context,
				E1:               ftoa(a.Score(predict.E1)),
				E2:               ftoa(a.Score(predict.E2)),
				E3:               ftoa(a.Score(predict.E3)),
				PASite:           ftoa(a.Score(predict.PASite)),
				E4:               ftoa(a.Score(predict.E4)),
				ProbIndep:        ftoa(a.ProbIndep),
				Cumulative:       ftoa(a.Cumulative),
				StagedCumulative: ftoa(a.StagedCumulative),
			})
		}
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, errors.New("no aligned records to write")
	}
	df := dataframe.LoadStructs(rows)
	return df, df.Err
}

// WriteCSV writes the aligned table of every result as CSV.
func WriteCSV(w io.Writer, results []*pipeline.Result, header bool) error {
	df, err := Frame(results)
	if err != nil {
		return err
	}
	return df.WriteCSV(w, dataframe.WriteHeader(header))
}
