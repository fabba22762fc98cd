package output

import "testing"

func TestAlignedHeader_Stable(t *testing.T) {
	const want = "gene\tposition\tgenome_position\tbase\tcontext\te1\te2\te3\tpASite\te4\tprob_indep\tcumulative\tstaged_cumulative"
	if AlignedHeader != want {
		t.Fatalf("AlignedHeader changed:\n got:  %q\n want: %q", AlignedHeader, want)
	}
}
