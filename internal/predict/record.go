// Package predict reads the per-base output of the polyadenylation HMM.
package predict

import "fmt"

// Channel names one of the five per-position emission scores.
type Channel int

const (
	E1 Channel = iota
	E2
	E3
	PASite
	E4
)

// NumChannels is the number of score channels per position.
const NumChannels = 5

// Channels lists the channels in table (and heatmap) order.
var Channels = [NumChannels]Channel{E1, E2, E3, PASite, E4}

var channelNames = [NumChannels]string{"e1", "e2", "e3", "pASite", "e4"}

func (c Channel) String() string {
	if c < 0 || int(c) >= NumChannels {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel maps a column name back to its Channel.
func ParseChannel(s string) (Channel, error) {
	for i, n := range channelNames {
		if n == s {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// Record is one row of the prediction table.
type Record struct {
	Base     byte
	Position int // 1-based
	Scores   [NumChannels]float64
}

func (r Record) Score(c Channel) float64 { return r.Scores[c] }

// Bases returns the base column as a string.
func Bases(recs []Record) string {
	b := make([]byte, len(recs))
	for i, r := range recs {
		b[i] = r.Base
	}
	return string(b)
}

// Column returns one channel as a float slice.
func Column(recs []Record, c Channel) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Scores[c]
	}
	return out
}

// Positions returns the local 1-based positions.
func Positions(recs []Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.Position
	}
	return out
}
