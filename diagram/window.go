package diagram

import "github.com/gaissmai/banana/internal/windex"

// Window is the position range a pair's underlying banana panel spans:
// the (sorted) positions of its birth and death samples, for the
// essential pair the birth position and +Inf. PairIndex names the
// Pairs entry this window belongs to.
type Window struct {
	Lo, Hi    float64
	PairIndex int
}

// CompareFirst implements windex.Interface.
func (w Window) CompareFirst(o Window) int {
	switch {
	case w.Lo < o.Lo:
		return -1
	case w.Lo > o.Lo:
		return 1
	default:
		return 0
	}
}

// CompareLast implements windex.Interface.
func (w Window) CompareLast(o Window) int {
	switch {
	case w.Hi < o.Hi:
		return -1
	case w.Hi > o.Hi:
		return 1
	default:
		return 0
	}
}

func windowFor(pairIndex int, a, b float64) Window {
	if a > b {
		a, b = b, a
	}
	return Window{Lo: a, Hi: b, PairIndex: pairIndex}
}

// Index builds a windex.Tree over d's windows, letting callers ask
// which banana(s) enclose a position (EnclosingPairs) or are nested
// inside a given one (NestedPairs) without re-walking the source tree.
func (d Diagram) Index() *windex.Tree[Window] {
	return windex.NewTree(d.Windows)
}

// EnclosingPairs returns every pair whose window covers position,
// smallest (most specific) first.
func (d Diagram) EnclosingPairs(position float64) []Pair {
	idx := d.Index()
	supersets := idx.Supersets(Window{Lo: position, Hi: position})
	windex.Sort(supersets)
	pairs := make([]Pair, len(supersets))
	for i, w := range supersets {
		pairs[len(supersets)-1-i] = d.Pairs[w.PairIndex]
	}
	return pairs
}

// NestedPairs returns every pair whose window lies entirely within
// pairIndex's own window (excluding pairIndex itself), largest first
// (windex.Sort order: by start, each window ahead of those nested in it).
func (d Diagram) NestedPairs(pairIndex int) []Pair {
	idx := d.Index()
	outer := d.Windows[pairIndex]
	subsets := idx.Subsets(outer)
	windex.Sort(subsets)
	pairs := make([]Pair, 0, len(subsets))
	for _, w := range subsets {
		if w.PairIndex == pairIndex {
			continue
		}
		pairs = append(pairs, d.Pairs[w.PairIndex])
	}
	return pairs
}
