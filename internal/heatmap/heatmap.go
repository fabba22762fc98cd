// Package heatmap reshapes per-position channel scores into long-form cells
// and maps scores onto a reversed black-body color scale.
package heatmap

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"pahmm/internal/predict"
)

// Cell is one (position, channel) score.
type Cell struct {
	Position int
	Channel  predict.Channel
	Score    float64
	Context  string
}

// Domain is the closed score range of a matrix.
type Domain struct {
	Min, Max float64
}

// Matrix is the long-form heatmap: Cells are position-major, channel-minor.
type Matrix struct {
	Cells  []Cell
	Domain Domain
}

// Row is the per-position input of Build.
type Row struct {
	Position int
	Scores   [predict.NumChannels]float64
	Context  string
}

// Build emits predict.NumChannels cells per row, in predict.Channels order,
// each carrying the row's context.
func Build(rows []Row) Matrix {
	m := Matrix{Cells: make([]Cell, 0, len(rows)*predict.NumChannels)}
	scores := make([]float64, 0, cap(m.Cells))
	for _, r := range rows {
		for _, ch := range predict.Channels {
			m.Cells = append(m.Cells, Cell{
				Position: r.Position,
				Channel:  ch,
				Score:    r.Scores[ch],
				Context:  r.Context,
			})
			scores = append(scores, r.Scores[ch])
		}
	}
	if len(scores) > 0 {
		m.Domain = Domain{Min: floats.Min(scores), Max: floats.Max(scores)}
	}
	return m
}

// At returns the cell for row i and channel ch.
func (m Matrix) At(i int, ch predict.Channel) Cell {
	return m.Cells[i*predict.NumChannels+int(ch)]
}

// ColorMap returns the scale for d: black-body reversed, so the highest score
// is the darkest color.
func ColorMap(d Domain) palette.ColorMap {
	cm := moreland.ExtendedBlackBody()
	lo, hi := d.Min, d.Max
	if hi <= lo {
		// Flat matrix: widen so every score lands mid-scale.
		lo, hi = lo-0.5, hi+0.5
	}
	cm.SetMax(hi)
	cm.SetMin(lo)
	return palette.Reverse(cm)
}

// Scale resolves scores to colors for one domain.
type Scale struct {
	cm palette.ColorMap
}

func NewScale(d Domain) Scale { return Scale{cm: ColorMap(d)} }

// Color returns the color of v; values outside the domain are clamped.
func (s Scale) Color(v float64) color.Color {
	if v < s.cm.Min() {
		v = s.cm.Min()
	}
	if v > s.cm.Max() {
		v = s.cm.Max()
	}
	c, err := s.cm.At(v)
	if err != nil {
		return color.Black
	}
	return c
}

// Hex returns the color of v as "#rrggbb".
func (s Scale) Hex(v float64) string {
	return Hex(s.Color(v))
}

func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
