// Package signal turns raw pA-site emission scores into per-position cleavage
// probabilities and their running aggregates.
package signal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptySeries is returned for a series with nothing to normalize.
var ErrEmptySeries = errors.New("empty series")

// Logistic calibration of the HMM's pA-site score. Fixed; not user settable.
const (
	Steepness = 1.5
	Midpoint  = 18.5
)

// Logistic maps a score to (0,1): 1/(1 + 2^(-a*(x-b))). x == b gives 0.5.
// Low scores keep their magnitude instead of rounding to 0.
func Logistic(x, a, b float64) float64 {
	return 1 / (1 + math.Exp2(-a*(x-b)))
}

// Curves are the normalized series derived from one score column. All three
// have the length of the input.
type Curves struct {
	Prob       []float64 // independent probability, scaled by the raw total
	Cumulative []float64 // running sum, ends at 1
	Staged     []float64 // compounding cumulative, ends at 1
}

// Transform applies the logistic calibration and builds both cumulative curves.
func Transform(scores []float64) (Curves, error) {
	n := len(scores)
	if n == 0 {
		return Curves{}, ErrEmptySeries
	}
	p := make([]float64, n)
	for i, x := range scores {
		p[i] = Logistic(x, Steepness, Midpoint)
	}
	c := floats.CumSum(make([]float64, n), p)
	total := c[n-1]
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return Curves{}, fmt.Errorf("%w: total probability is %v", ErrEmptySeries, total)
	}
	for i := range p {
		p[i] /= total
		c[i] /= total
	}
	return Curves{Prob: p, Cumulative: c, Staged: Staged(p)}, nil
}

// Staged compounds p: s[0]=p[0], s[i]=s[i-1]+(1-s[i-1])*p[i], then scales so
// the last value is 1. p must be non-empty with a non-zero sum.
func Staged(p []float64) []float64 {
	s := make([]float64, len(p))
	for i, v := range p {
		if i == 0 {
			s[i] = v
			continue
		}
		s[i] = s[i-1] + (1-s[i-1])*v
	}
	last := s[len(s)-1]
	for i := range s {
		s[i] /= last
	}
	return s
}
