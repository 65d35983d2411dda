// Package diagram extracts persistence diagrams from a pair of banana
// trees: a Diagram holds Pair values classified as ordinary, essential,
// or relative, plus Arrows recording each pair's immediate parent in
// the nesting hierarchy.
package diagram

import (
	"math"

	"github.com/gaissmai/banana/internal/btree"
)

// Type classifies a Pair.
type Type uint8

const (
	// Ordinary pairs a real birth sample with a real death sample.
	Ordinary Type = iota
	// Essential pairs a real birth sample with "infinity": the single
	// feature, per sign, that survives to the global extremum and
	// never merges into anything else.
	Essential
	// Relative pairs involve a hook sentinel on at least one side, an
	// artifact of the interval's boundary rather than of the data.
	Relative
)

func (t Type) String() string {
	switch t {
	case Essential:
		return "essential"
	case Relative:
		return "relative"
	default:
		return "ordinary"
	}
}

// Pair is one birth/death pair. Death is +Inf for Essential pairs.
type Pair struct {
	Birth, Death float64
	Type         Type
}

// Arrow records that Child's banana is immediately nested inside
// Parent's, i.e. child.Death.Up == parent's death node. A pair whose
// death node's parent is the special root gets the essential pair's
// index as Parent.
type Arrow struct {
	Child, Parent int
}

// Diagram is one sign's extracted persistence diagram.
type Diagram struct {
	Pairs   []Pair
	Arrows  []Arrow
	Windows []Window
}

// Extract walks t and produces its persistence diagram: one pair per
// minimum leaf (using the leaf's own Death shortcut directly, rather
// than re-deriving the pairing), plus the single essential pair at
// t.GlobalMax.Low, and one arrow per non-essential pair recording its
// immediate parent banana.
func Extract[S btree.ConstSign](t *btree.Tree[S]) Diagram {
	var d Diagram
	if t.GlobalMax == nil {
		return d
	}

	// pairIndexOf[deathNode] = index into d.Pairs of the pair whose
	// death is deathNode; built while walking leaves.
	pairIndexOf := make(map[*btree.Node[S]]int)

	var leaves []*btree.Node[S]
	var walk func(n *btree.Node[S])
	walk = func(n *btree.Node[S]) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		walk(n.In)
		walk(n.Mid)
	}
	walk(t.GlobalMax)

	for _, leaf := range leaves {
		if leaf.Death == nil {
			continue // the essential survivor, handled below
		}
		typ := Ordinary
		if t.HookFor(leaf) || t.HookFor(leaf.Death) {
			typ = Relative
		}
		idx := len(d.Pairs)
		pairIndexOf[leaf.Death] = idx
		d.Pairs = append(d.Pairs, Pair{
			Birth: leaf.Item.Value(),
			Death: leaf.Death.Item.Value(),
			Type:  typ,
		})
		d.Windows = append(d.Windows, windowFor(idx, leaf.Item.Position(), leaf.Death.Item.Position()))
	}

	essentialType := Essential
	if t.HookFor(t.GlobalMax.Low) {
		essentialType = Relative
	}
	d.Pairs = append(d.Pairs, Pair{
		Birth: t.GlobalMax.Low.Item.Value(),
		Type:  essentialType,
	})
	essentialIndex := len(d.Pairs) - 1
	d.Pairs[essentialIndex].Death = math.Inf(1)
	d.Windows = append(d.Windows, windowFor(essentialIndex, t.GlobalMax.Low.Item.Position(), math.Inf(1)))

	for deathNode, idx := range pairIndexOf {
		parent := deathNode.Up
		if parent == t.SpecialRoot {
			d.Arrows = append(d.Arrows, Arrow{Child: idx, Parent: essentialIndex})
			continue
		}
		if parentIdx, ok := pairIndexOf[parent]; ok {
			d.Arrows = append(d.Arrows, Arrow{Child: idx, Parent: parentIdx})
		}
	}

	return d
}

// SymmetricDifference reports every pair present in exactly one of a, b
// (matched by exact Birth/Death/Type equality); useful for comparing a
// recomputed diagram against an incrementally maintained one in tests.
func SymmetricDifference(a, b Diagram) []Pair {
	count := make(map[Pair]int)
	for _, p := range a.Pairs {
		count[p]++
	}
	for _, p := range b.Pairs {
		count[p]--
	}
	var diff []Pair
	for _, p := range a.Pairs {
		if count[p] > 0 {
			diff = append(diff, p)
			count[p] = 0
		}
	}
	for _, p := range b.Pairs {
		if count[p] < 0 {
			diff = append(diff, p)
			count[p] = 0
		}
	}
	return diff
}
