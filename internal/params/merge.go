package params

import "sort"

// Rank is the precedence of a merge layer. A higher rank overrides a lower
// one on key collision.
type Rank int

const (
	// RankBase is driver-supplied context such as the output directory.
	RankBase Rank = iota
	// RankDefaults is the definition document's "defaults" block.
	RankDefaults
	// RankCombination is one expanded combination.
	RankCombination
	// RankInput is one entry of the "inputs" block. It always wins.
	RankInput
)

func (r Rank) String() string {
	switch r {
	case RankBase:
		return "base"
	case RankDefaults:
		return "defaults"
	case RankCombination:
		return "combination"
	case RankInput:
		return "input"
	default:
		return "unknown"
	}
}

// Layer is one operand of Merge.
type Layer struct {
	Rank   Rank
	Params *Params
}

// Merge folds the layers into a new Params, lowest rank first, so for any
// key the value from the highest ranked layer that sets it wins. Layers of
// equal rank apply in argument order. A key keeps the position where it
// first appeared. Nil layers are skipped and no input is modified.
func Merge(layers ...Layer) *Params {
	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })

	out := New()
	for _, l := range ordered {
		l.Params.Each(out.Set)
	}
	return out
}
