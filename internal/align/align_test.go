package align

import (
	"errors"
	"testing"

	"pahmm/internal/orient"
)

func TestPosition_Sense(t *testing.T) {
	res := orient.Resolution{Orientation: orient.Sense, Position: 1000, DistToCDSStart: 50}
	if got := Position(res, 10, 1); got != 941 {
		t.Fatalf("sense local 1 -> %d, want 941", got)
	}
	got := Positions(res, 10, []int{1, 2, 3})
	if got[0] != 941 || got[1] != 942 || got[2] != 943 {
		t.Fatalf("sense positions %v", got)
	}
}

func TestPosition_Antisense(t *testing.T) {
	res := orient.Resolution{Orientation: orient.Antisense, Position: 1000, DistToCDSStart: 50}
	// genPos = 1000 + 50 + 10 = 1060
	got := Positions(res, 10, []int{1, 2, 3})
	if got[0] != 1059 || got[1] != 1058 || got[2] != 1057 {
		t.Fatalf("antisense positions %v", got)
	}
}

func TestParseBuffer(t *testing.T) {
	for in, want := range map[string]int{"0": 0, "100": 100, " 42 ": 42} {
		got, err := ParseBuffer(in)
		if err != nil || got != want {
			t.Fatalf("ParseBuffer(%q)=%d,%v want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "-1", "ten", "1.5"} {
		if _, err := ParseBuffer(in); !errors.Is(err, ErrMalformedBufferLength) {
			t.Fatalf("ParseBuffer(%q): want ErrMalformedBufferLength, got %v", in, err)
		}
	}
}
