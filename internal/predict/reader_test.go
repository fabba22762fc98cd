package predict

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const table = `Base Position e1 e2 e3 pASite e4
A 1 0.1 0.2 0.3 18.5 0.5
C 2 1 2 3 4 5

G 3 -1 -2 -3 -4 -5
`

func TestRead(t *testing.T) {
	recs, err := Read(strings.NewReader(table))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	if recs[0].Base != 'A' || recs[0].Score(PASite) != 18.5 || recs[0].Score(E4) != 0.5 {
		t.Fatalf("bad first record %+v", recs[0])
	}
	if got := Bases(recs); got != "ACG" {
		t.Fatalf("bases=%q", got)
	}
	if got := Column(recs, E3); got[2] != -3 {
		t.Fatalf("column e3=%v", got)
	}
	if got := Positions(recs); got[0] != 1 || got[2] != 3 {
		t.Fatalf("positions=%v", got)
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	recs, err := Read(strings.NewReader("Base Position e1 e2 e3 pASite e4\n"))
	if err != nil || recs == nil || len(recs) != 0 {
		t.Fatalf("want empty non-nil, got %v %v", recs, err)
	}
	recs, err = Read(strings.NewReader(""))
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty input: %v %v", recs, err)
	}
}

func TestRead_Malformed(t *testing.T) {
	cases := map[string]string{
		"fields":   "h\nA 1 0 0 0 0\n",
		"base":     "h\nAC 1 0 0 0 0 0\n",
		"position": "h\nA x 0 0 0 0 0\n",
		"gap":      "h\nA 1 0 0 0 0 0\nC 3 0 0 0 0 0\n",
		"score":    "h\nA 1 0 0 zz 0 0\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in))
			if !errors.Is(err, ErrMalformedTable) {
				t.Fatalf("want ErrMalformedTable, got %v", err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "x.pos.txt")
	if err := os.WriteFile(fn, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadFile(fn)
	if err != nil || len(recs) != 3 {
		t.Fatalf("ReadFile: %v (n=%d)", err, len(recs))
	}
}

func TestChannelNames(t *testing.T) {
	want := []string{"e1", "e2", "e3", "pASite", "e4"}
	for i, c := range Channels {
		if c.String() != want[i] {
			t.Fatalf("channel %d = %q, want %q", i, c, want[i])
		}
		back, err := ParseChannel(want[i])
		if err != nil || back != c {
			t.Fatalf("ParseChannel(%q) = %v, %v", want[i], back, err)
		}
	}
	if _, err := ParseChannel("e9"); err == nil {
		t.Fatal("expected error for unknown channel")
	}
}
