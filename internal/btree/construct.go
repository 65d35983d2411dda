package btree

import (
	"math"

	"github.com/gaissmai/banana/internal/sample"
)

// Build performs the linear-time construction for a single sign: a
// left-to-right pass turns the ordered sample sequence into a banana
// tree.
//
// The construction rests on the equivalence between a 1-D Morse
// function's merge tree (which the up/down banana tree is, restricted
// to the sign's superlevel sets) and the Cartesian tree (max-heap by
// value) of its samples: a node with zero Cartesian children is a
// local minimum leaf, a node with one child is non-critical and is
// spliced out of the reduced tree, and a node with two children is a
// local maximum whose birth (Low) is the lower of its two children's
// surviving minima, while the higher-valued child's Death is recorded
// as this node (the elder rule). This is built with the classic
// monotonic-stack Cartesian tree algorithm; see DESIGN.md for how this
// relates to the incremental node-surgery primitives in node.go.
//
// Down-type endpoints materialise a hook sample, just outside the
// endpoint, with a value nextafter-stepped below the endpoint's signed
// value, so the endpoint always has two Cartesian children.
func Build[S ConstSign](ordered []*sample.Item) *Tree[S] {
	t := &Tree[S]{}
	sign := zero[S]().Sign()

	augmented, leftHook, rightHook := augment(ordered, sign)

	raw := buildCartesian(augmented, sign)
	t.SpecialRoot = t.New(nil)
	if raw == nil {
		return t
	}

	crit, _ := reduce(t, raw)
	if crit == nil {
		return t
	}
	t.SpecialRoot.In = crit
	crit.Up = t.SpecialRoot
	t.GlobalMax = crit

	if leftHook != nil {
		t.LeftHook = nodeOf[S](leftHook)
	}
	if rightHook != nil {
		t.RightHook = nodeOf[S](rightHook)
	}

	labelSpine(t)
	return t
}

// rawNode is an un-contracted Cartesian-tree node: one per sample,
// including non-critical ones.
type rawNode struct {
	it          *sample.Item
	left, right *rawNode
}

// buildCartesian builds the max-heap (by sign.Signed value) Cartesian
// tree over items with the standard O(n) monotonic-stack algorithm.
func buildCartesian(items []*sample.Item, sign sample.Sign) *rawNode {
	stack := make([]*rawNode, 0, len(items))
	for _, it := range items {
		n := &rawNode{it: it}
		v := sign.Signed(it.Value())

		var lastPopped *rawNode
		for len(stack) > 0 && sign.Signed(stack[len(stack)-1].it.Value()) < v {
			lastPopped = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		n.left = lastPopped
		if len(stack) > 0 {
			stack[len(stack)-1].right = n
		}
		stack = append(stack, n)
	}
	if len(stack) == 0 {
		return nil
	}
	return stack[0]
}

// reduce contracts raw into the final banana-tree shape, returning the
// critical node representing raw's subtree (nil if raw's whole subtree
// turned out non-critical, impossible for a non-nil raw unless raw
// itself is spliced away) and the surviving minimum leaf of that
// subtree (used by the parent to decide which side wins the elder
// rule).
func reduce[S ConstSign](t *Tree[S], raw *rawNode) (crit, minLeaf *Node[S]) {
	if raw == nil {
		return nil, nil
	}
	leftCrit, leftMin := reduce[S](t, raw.left)
	rightCrit, rightMin := reduce[S](t, raw.right)

	switch {
	case leftCrit == nil && rightCrit == nil:
		leaf := t.New(raw.it)
		return leaf, leaf
	case leftCrit == nil:
		return rightCrit, rightMin
	case rightCrit == nil:
		return leftCrit, leftMin
	default:
		n := t.New(raw.it)
		n.In, n.Mid = leftCrit, rightCrit
		leftCrit.Up, rightCrit.Up = n, n

		sign := zero[S]().Sign()
		if sign.Signed(leftMin.Item.Value()) <= sign.Signed(rightMin.Item.Value()) {
			n.Low = leftMin
			rightMin.Death = n
		} else {
			n.Low = rightMin
			leftMin.Death = n
		}
		return n, n.Low
	}
}

// augment prepends/appends hook samples where a boundary endpoint is
// down-type (or, for a one-sample interval, on both sides), returning
// the sequence fed to the Cartesian-tree builder.
func augment(items []*sample.Item, sign sample.Sign) (augmented []*sample.Item, leftHook, rightHook *sample.Item) {
	augmented = make([]*sample.Item, 0, len(items)+2)

	lone := len(items) == 1
	left, right := items[0], items[len(items)-1]

	if lone || left.Criticality(sign) == sample.DownEndpoint {
		leftHook = hook(sign, left, -1)
	}
	if leftHook != nil {
		augmented = append(augmented, leftHook)
	}
	augmented = append(augmented, items...)
	if lone || right.Criticality(sign) == sample.DownEndpoint {
		rightHook = hook(sign, right, 1)
	}
	if rightHook != nil {
		augmented = append(augmented, rightHook)
	}
	return augmented, leftHook, rightHook
}

// hook materialises a sentinel sample just outside endpoint, on the
// side given by dir (-1 left, +1 right), with a value nextafter-stepped
// below endpoint's signed value.
func hook(sign sample.Sign, endpoint *sample.Item, dir int) *sample.Item {
	signedEndpoint := sign.Signed(endpoint.Value())
	signedHookValue := math.Nextafter(signedEndpoint, math.Inf(-1))
	return sample.New(
		sample.AddTinyOffset(dir, endpoint.Position()),
		sign.Signed(signedHookValue),
	)
}

func labelSpine[S ConstSign](t *Tree[S]) {
	t.SpecialRoot.Spine = OnBothSpines
	for n := t.SpecialRoot.In; n != nil; n = n.In {
		n.Spine = OnLeftSpine
	}
	for n := t.SpecialRoot.Mid; n != nil; n = n.In {
		if n.Spine == OnLeftSpine {
			n.Spine = OnBothSpines
		} else {
			n.Spine = OnRightSpine
		}
	}
}

// IsEssential reports whether n's parent is the special root, i.e. n's
// death (as the killing maximum of its birth) is "at infinity".
func (t *Tree[S]) IsEssential(n *Node[S]) bool {
	return n.Up == t.SpecialRoot
}

// HookFor reports whether n is the tree's left or right hook sentinel.
func (t *Tree[S]) HookFor(n *Node[S]) bool {
	return n == t.LeftHook || n == t.RightHook
}
