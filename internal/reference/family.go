// Package reference holds the four reference pA-site experiments in memory and
// selects the rows of one gene from them.
package reference

import "fmt"

// Family is one of the reference experiments.
type Family int

const (
	Pcf11 Family = iota
	Decay1
	Decay2
	Steinmetz
)

const numFamilies = 4

// Families lists the experiments in display order; Pcf11 is the primary one.
var Families = [numFamilies]Family{Pcf11, Decay1, Decay2, Steinmetz}

type familyInfo struct {
	name    string
	label   string
	columns int
	color   string
}

var families = [numFamilies]familyInfo{
	{name: "pcf11", label: "pcf11_DRS", columns: 19, color: "#4dac26"},
	{name: "decay1", label: "Decay1", columns: 31, color: "#b8e186"},
	{name: "decay2", label: "Decay2", columns: 31, color: "#f1b6da"},
	{name: "steinmetz", label: "Steinmetz", columns: 27, color: "#d01c8b"},
}

func (f Family) valid() bool { return f >= 0 && int(f) < numFamilies }

func (f Family) String() string {
	if !f.valid() {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return families[f].name
}

// Label is the legend text used for the family.
func (f Family) Label() string { return families[f].label }

// Columns is the fixed column count of the family's corpus files.
func (f Family) Columns() int { return families[f].columns }

// Color is the family's series color (hex).
func (f Family) Color() string { return families[f].color }

// ParseFamily maps a family name back to its Family.
func ParseFamily(s string) (Family, error) {
	for i, fi := range families {
		if fi.name == s {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("unknown reference family %q", s)
}

// Kind distinguishes the two tables each family ships.
type Kind int

const (
	Cumulative Kind = iota
	Probability
)

const numKinds = 2

func (k Kind) String() string {
	switch k {
	case Cumulative:
		return "cumPa"
	case Probability:
		return "paProb"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FileName is the conventional corpus file name, e.g. "pcf11_cumPa.txt".
func FileName(f Family, k Kind) string { return f.String() + "_" + k.String() + ".txt" }

// MatchMode selects how a gene id is compared with the gene column.
type MatchMode int

const (
	// Substring keeps any row whose gene field contains the query. A query
	// that is a substring of another gene id over-matches.
	Substring MatchMode = iota
	// Exact keeps rows whose gene field equals the query.
	Exact
)

func (m MatchMode) String() string {
	if m == Exact {
		return "exact"
	}
	return "substring"
}

func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "substring":
		return Substring, nil
	case "exact":
		return Exact, nil
	}
	return 0, fmt.Errorf("invalid match mode %q (want substring | exact)", s)
}
