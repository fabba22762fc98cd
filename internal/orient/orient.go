// Package orient derives strand orientation and CDS bounds from the primary
// reference table of a gene.
package orient

import (
	"errors"
	"fmt"

	"pahmm/internal/reference"
)

// ErrInsufficientReferenceData is returned when fewer than two reference rows
// are available, so orientation cannot be told.
var ErrInsufficientReferenceData = errors.New("insufficient reference data")

type Orientation int

const (
	Sense Orientation = iota
	Antisense
)

func (o Orientation) String() string {
	if o == Antisense {
		return "antisense"
	}
	return "sense"
}

// Resolution is the orientation of a gene plus the anchors the aligner needs.
type Resolution struct {
	Orientation Orientation
	CDS1, CDS2  int // CDS boundary coordinates (arrow start, end)

	// Anchor row: first row of the primary table.
	Position       int
	DistToCDSStart int
}

// Resolve reads the first two rows: descending positions mean antisense.
func Resolve(rows []reference.Record) (Resolution, error) {
	if len(rows) < 2 {
		return Resolution{}, fmt.Errorf("%w: %d row(s), need 2", ErrInsufficientReferenceData, len(rows))
	}
	r0 := rows[0]
	res := Resolution{Position: r0.Position, DistToCDSStart: r0.DistToCDSStart}
	if r0.Position > rows[1].Position {
		res.Orientation = Antisense
		res.CDS1 = r0.Position + r0.DistToCDSStart
		res.CDS2 = r0.Position + r0.DistToCDSStop
	} else {
		res.Orientation = Sense
		res.CDS1 = r0.Position - r0.DistToCDSStart
		res.CDS2 = r0.Position - r0.DistToCDSStop
	}
	return res, nil
}
