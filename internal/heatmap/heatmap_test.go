package heatmap

import (
	"image/color"
	"testing"

	"pahmm/internal/predict"
)

func rows(n int) []Row {
	out := make([]Row, n)
	for i := range out {
		out[i] = Row{Position: i + 1, Context: string(rune('a' + i))}
		for c := range out[i].Scores {
			out[i].Scores[c] = float64(i*10 + c)
		}
	}
	return out
}

func TestBuild_ShapeAndOrder(t *testing.T) {
	m := Build(rows(4))
	if len(m.Cells) != 4*predict.NumChannels {
		t.Fatalf("want %d cells, got %d", 4*predict.NumChannels, len(m.Cells))
	}
	for i, cell := range m.Cells {
		pos := i/predict.NumChannels + 1
		ch := predict.Channels[i%predict.NumChannels]
		if cell.Position != pos || cell.Channel != ch {
			t.Fatalf("cell %d = (%d,%s), want (%d,%s)", i, cell.Position, cell.Channel, pos, ch)
		}
		if cell.Context != string(rune('a'+pos-1)) {
			t.Fatalf("cell %d context %q not the row's", i, cell.Context)
		}
	}
	if got := m.At(2, predict.PASite); got.Score != 23 {
		t.Fatalf("At(2,pASite)=%v want 23", got.Score)
	}
	if m.Domain.Min != 0 || m.Domain.Max != 34 {
		t.Fatalf("domain %+v want [0,34]", m.Domain)
	}
}

func TestBuild_Empty(t *testing.T) {
	m := Build(nil)
	if len(m.Cells) != 0 || m.Domain != (Domain{}) {
		t.Fatalf("empty build: %+v", m)
	}
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

func TestScale_HighIsDark(t *testing.T) {
	s := NewScale(Domain{Min: -3, Max: 12})
	lo, hi := s.Color(-3), s.Color(12)
	if luminance(hi) >= luminance(lo) {
		t.Fatalf("high score should be darker: lo=%v hi=%v", lo, hi)
	}
	// clamped outside the domain
	if Hex(s.Color(100)) != Hex(hi) {
		t.Fatalf("values above max should clamp to max color")
	}
	if len(s.Hex(0)) != 7 || s.Hex(0)[0] != '#' {
		t.Fatalf("bad hex %q", s.Hex(0))
	}
}

func TestScale_FlatDomain(t *testing.T) {
	s := NewScale(Domain{Min: 2, Max: 2})
	_ = s.Color(2) // must not panic or fail
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 0x4d, G: 0xac, B: 0x26, A: 0xff}); got != "#4dac26" {
		t.Fatalf("Hex=%q", got)
	}
}
