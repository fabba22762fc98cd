// Package align places the prediction's local coordinates on the genome axis
// shared with the reference experiments.
package align

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pahmm/internal/orient"
)

// ErrMalformedBufferLength is returned when the upstream buffer is not a
// non-negative integer.
var ErrMalformedBufferLength = errors.New("malformed buffer length")

// ParseBuffer parses the user-supplied upstream buffer length.
func ParseBuffer(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedBufferLength, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrMalformedBufferLength, v)
	}
	return v, nil
}

// Origin is the genome coordinate matching local position 0.
func Origin(res orient.Resolution, upstreamBuf int) int {
	if res.Orientation == orient.Antisense {
		return res.Position + res.DistToCDSStart + upstreamBuf
	}
	return res.Position - res.DistToCDSStart - upstreamBuf
}

// Position maps one local 1-based position to the genome.
func Position(res orient.Resolution, upstreamBuf, local int) int {
	o := Origin(res, upstreamBuf)
	if res.Orientation == orient.Antisense {
		return o - local
	}
	return local + o
}

// Positions maps every local position; the result has len(local) entries.
func Positions(res orient.Resolution, upstreamBuf int, local []int) []int {
	out := make([]int, len(local))
	for i, l := range local {
		out[i] = Position(res, upstreamBuf, l)
	}
	return out
}
