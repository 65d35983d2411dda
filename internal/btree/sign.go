// Package btree implements the banana tree: a sign-parametric structure
// whose pointer graph mirrors the pairing of extrema into birth/death
// pairs.
//
// Sign is carried as a phantom type parameter (U for the up-tree, D for
// the down-tree, i.e. the up-tree run on negated values) rather than as
// a runtime field: a single generic type parameterised by a trait,
// instantiated twice, rather than branching on a sign field at every
// comparison.
package btree

import "github.com/gaissmai/banana/internal/sample"

// ConstSign is the compile-time trait a Node/Tree is parameterised by.
type ConstSign interface {
	Sign() sample.Sign
}

// U instantiates the up-tree: minima paired with their killing maxima.
type U struct{}

// Sign implements ConstSign.
func (U) Sign() sample.Sign { return sample.Up }

// D instantiates the down-tree: maxima paired with their killing minima,
// under the sign-flipped (negated) view.
type D struct{}

// Sign implements ConstSign.
func (D) Sign() sample.Sign { return sample.Down }

// zero returns the zero value of a ConstSign phantom type.
func zero[S ConstSign]() S {
	var s S
	return s
}

// nodeOf returns the node currently representing it under S's sign, or
// nil if it is non-critical under that sign.
func nodeOf[S ConstSign](it *sample.Item) *Node[S] {
	ref := it.GetNode(zero[S]().Sign())
	if ref == nil {
		return nil
	}
	return ref.(*Node[S])
}

// setNodeOf records n as the representative of it under S's sign.
func setNodeOf[S ConstSign](it *sample.Item, n *Node[S]) {
	if n == nil {
		it.AssignNode(zero[S]().Sign(), nil)
		return
	}
	it.AssignNode(zero[S]().Sign(), n)
}

// SpineLabel classifies a node's reachability from the special root
// along the leftmost (In) or rightmost (Mid) chain of children. Build
// labels the special root OnBothSpines and the chain reached from it
// through In links OnLeftSpine; it never sets the special root's Mid,
// so no node built by Build is labelled OnRightSpine.
type SpineLabel uint8

const (
	NotOnSpine SpineLabel = iota
	OnLeftSpine
	OnRightSpine
	OnBothSpines
)

func (s SpineLabel) String() string {
	switch s {
	case OnLeftSpine:
		return "left-spine"
	case OnRightSpine:
		return "right-spine"
	case OnBothSpines:
		return "both-spines"
	default:
		return "not-on-spine"
	}
}
