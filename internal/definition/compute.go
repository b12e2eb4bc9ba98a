package definition

import (
	"fmt"

	"github.com/vk/footprintgen/internal/combination"
	"github.com/vk/footprintgen/internal/params"
)

// Resolved is one fully merged parameter set together with the entries it
// was built from.
type Resolved struct {
	// Index is the position in ComputeAll's result.
	Index      int
	InputIndex int
	// CombinationIndex is the position in the expanded combinations, or -1
	// when the document has none.
	CombinationIndex int
	Params           *params.Params
}

// Path locates the resolved set in its document for diagnostics.
func (r Resolved) Path() string {
	if r.CombinationIndex < 0 {
		return fmt.Sprintf("inputs[%d]", r.InputIndex)
	}
	return fmt.Sprintf("inputs[%d]+combination %d", r.InputIndex, r.CombinationIndex)
}

func (r Resolved) String() string {
	return fmt.Sprintf("set %d (%s)", r.Index, r.Path())
}

// ComputeAll expands the document's combinations and merges every
// (input, combination) pair over base and the document's defaults. Inputs
// form the outer loop. A document without combinations, or whose
// combinations expand to nothing, yields one set per input.
func ComputeAll(doc *Document, base *params.Params) []Resolved {
	combos := combination.Expand(doc.Combinations)
	hasCombos := len(combos) > 0
	if !hasCombos {
		combos = []*params.Params{params.New()}
	}

	out := make([]Resolved, 0, len(doc.Inputs)*len(combos))
	for i, input := range doc.Inputs {
		for c, combo := range combos {
			r := Resolved{
				Index:            len(out),
				InputIndex:       i,
				CombinationIndex: -1,
				Params: params.Merge(
					params.Layer{Rank: params.RankBase, Params: base},
					params.Layer{Rank: params.RankDefaults, Params: doc.Defaults},
					params.Layer{Rank: params.RankCombination, Params: combo},
					params.Layer{Rank: params.RankInput, Params: input},
				),
			}
			if hasCombos {
				r.CombinationIndex = c
			}
			out = append(out, r)
		}
	}
	return out
}

// Count returns len(ComputeAll(doc, base)) without merging anything.
func Count(doc *Document) int {
	return len(doc.Inputs) * max(1, combination.Count(doc.Combinations))
}
