// Package kmer annotates each position with the k-mer that starts there.
package kmer

// ContextLen is the window: the base itself plus the next five.
const ContextLen = 6

// NA marks positions too close to the end for a full context.
const NA = "N/A"

// Contexts returns one entry per base: bases[i:i+6] while i+6 < len(bases),
// NA for the trailing six positions.
func Contexts(bases string) []string {
	n := len(bases)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i+ContextLen >= n {
			out[i] = NA
			continue
		}
		out[i] = bases[i : i+ContextLen]
	}
	return out
}
