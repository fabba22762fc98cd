package pipeline

import "fmt"

// Layout selects the chart arrangement. Only the renderer reads it.
type Layout int

const (
	Independent Layout = iota
	Staged
)

func (l Layout) String() string {
	if l == Staged {
		return "staged"
	}
	return "independent"
}

func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "independent":
		return Independent, nil
	case "staged":
		return Staged, nil
	}
	return 0, fmt.Errorf("invalid layout %q (want independent | staged)", s)
}
