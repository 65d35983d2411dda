package btree

import "fmt"

// Validate walks t and checks the structural invariants a banana tree
// must satisfy: the max-heap ordering between a node and its two
// children, that every node's Up pointer points back to its actual
// parent, that every maximum's Low is the lower of its two children's
// births while the higher one's Death is that maximum (the elder rule),
// and that every leaf's Death (if any) is a maximum where the leaf's
// branch merges into a lower one. It returns the first violation found,
// or nil.
//
// This is a debugging aid for tests, not exercised on the construction
// hot path; it plays the same role banana_tree_validation.h's
// test_invariant_1/2/3 play for the incrementally maintained original,
// checking the Low/Death shortcuts directly instead of through trails.
func Validate[S ConstSign](t *Tree[S]) error {
	if t.SpecialRoot == nil {
		return fmt.Errorf("btree: nil special root")
	}
	if t.GlobalMax == nil {
		return nil // empty tree
	}
	if t.SpecialRoot.In != t.GlobalMax {
		return fmt.Errorf("btree: special root's In does not point at GlobalMax")
	}
	if t.GlobalMax.Up != t.SpecialRoot {
		return fmt.Errorf("btree: GlobalMax.Up does not point at special root")
	}
	return validate(t, t.GlobalMax)
}

func validate[S ConstSign](t *Tree[S], n *Node[S]) error {
	if n.IsLeaf() {
		if n.Death != nil {
			if err := checkDeathPairing(n); err != nil {
				return err
			}
		}
		return nil
	}
	if n.In == nil || n.Mid == nil {
		return fmt.Errorf("btree: internal node at position %v has only one child", n.Item.Position())
	}
	if n.In.Up != n {
		return fmt.Errorf("btree: node at %v's In child does not point back", n.Item.Position())
	}
	if n.Mid.Up != n {
		return fmt.Errorf("btree: node at %v's Mid child does not point back", n.Item.Position())
	}
	if n.In.Value() >= n.Value() || n.Mid.Value() >= n.Value() {
		return fmt.Errorf("btree: max-heap violation at position %v", n.Item.Position())
	}
	if n.Low == nil {
		return fmt.Errorf("btree: internal node at %v has no Low", n.Item.Position())
	}
	lower, higher := birthOf(n.In), birthOf(n.Mid)
	if higher.Value() < lower.Value() {
		lower, higher = higher, lower
	}
	if n.Low != lower {
		return fmt.Errorf("btree: node at %v's Low is not the lower of its children's births", n.Item.Position())
	}
	if higher.Death != n {
		return fmt.Errorf("btree: the higher birth below node at %v does not die there", n.Item.Position())
	}
	if n == t.GlobalMax && n.Low.Death != nil {
		return fmt.Errorf("btree: GlobalMax's Low must have no Death (it is the essential survivor)")
	}
	if err := validate(t, n.In); err != nil {
		return err
	}
	return validate(t, n.Mid)
}

func checkDeathPairing[S ConstSign](leaf *Node[S]) error {
	killer := leaf.Death
	if killer.In == nil || killer.Mid == nil || killer.Low == leaf ||
		(birthOf(killer.In) != leaf && birthOf(killer.Mid) != leaf) {
		return fmt.Errorf("btree: leaf at %v's Death is not the maximum where its branch merges", leaf.Item.Position())
	}
	return nil
}
