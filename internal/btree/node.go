package btree

import (
	"math"

	"github.com/gaissmai/banana/internal/arena"
	"github.com/gaissmai/banana/internal/sample"
)

// Node is one vertex of a banana tree: either a critical internal
// sample (minimum or maximum) or one of the three sentinels (special
// root, left hook, right hook). Six intra-tree links are carried on
// every node:
//
//   - Up is the parent link, toward the special root.
//   - In and Mid are the two panel children of a maximum: its in-trail
//     and mid-trail, together forming its banana's nested structure.
//   - Down is a plain stacking child. Build never sets it and SiftDown
//     does not examine it; UnlinkFromTrail and the InsertOnBottom*
//     primitives carry it along when a caller has set it.
//   - Low is the O(1) shortcut from a maximum to the lowest minimum
//     below it, the birth that survives past it (elder rule); Death is
//     the O(1) shortcut from a minimum to the maximum at which its
//     branch merges into a lower one (its death). Both are maintained
//     directly rather than derived on demand. See DESIGN.md.
type Node[S ConstSign] struct {
	Item *sample.Item

	Up, Down, In, Mid *Node[S]
	Low, Death        *Node[S]

	Spine SpineLabel
}

// IsLeaf reports whether n is a minimum leaf (no panel children).
func (n *Node[S]) IsLeaf() bool {
	return n.In == nil && n.Mid == nil && n.Down == nil
}

// Birth returns n's paired minimum, for a maximum node: the birth of
// the child branch that dies at n (n.Low is the one that survives). It
// returns nil for a leaf.
func (n *Node[S]) Birth() *Node[S] {
	if n.IsLeaf() {
		return nil
	}
	if b := birthOf(n.In); b != n.Low {
		return b
	}
	return birthOf(n.Mid)
}

// Value returns the node's sample value under S's sign (so that
// comparisons between nodes of the same tree are plain float compares).
func (n *Node[S]) Value() float64 {
	if n.Item == nil {
		return math.Inf(1)
	}
	return zero[S]().Sign().Signed(n.Item.Value())
}

// Tree is a banana tree of sign S: the up-tree (S=U) pairs minima with
// their killing maxima, the down-tree (S=D) pairs maxima with their
// killing minima under the negated view.
type Tree[S ConstSign] struct {
	pool arena.Pool[Node[S]]

	SpecialRoot *Node[S]
	LeftHook    *Node[S]
	RightHook   *Node[S]
	GlobalMax   *Node[S]
}

// New allocates a node representing it and records the back-link.
func (t *Tree[S]) New(it *sample.Item) *Node[S] {
	n := t.pool.Get()
	n.Item = it
	if it != nil {
		setNodeOf[S](it, n)
	}
	return n
}

// Free releases n back to the pool and clears the sample's back-link.
// Tree nodes must be freed before the samples they reference, so the
// back-link clear below always has a live item to clear.
func (t *Tree[S]) Free(n *Node[S]) {
	if n == nil {
		return
	}
	if n.Item != nil {
		setNodeOf[S](n.Item, nil)
	}
	t.pool.Put(n)
}

// Stats reports node-pool occupancy.
func (t *Tree[S]) Stats() arena.Stats { return t.pool.Stats() }

// ######################################################################
// Node primitives: each is a constant-time pointer rewrite plus a
// constant-time low/death/spine relabelling of the directly affected
// nodes.
// ######################################################################

// UnlinkFromTrail splices q out of its parent's in/mid/down chain,
// replacing q in its parent with q's corresponding child (the trail
// q sat on), and clears q's own Up link.
func (t *Tree[S]) UnlinkFromTrail(q *Node[S]) {
	p := q.Up
	if p == nil {
		return
	}
	var child *Node[S]
	switch {
	case p.In == q:
		child = q.In
		p.In = child
	case p.Mid == q:
		child = q.Mid
		p.Mid = child
	case p.Down == q:
		child = q.Down
		p.Down = child
	}
	if child != nil {
		child.Up = p
	}
	q.Up = nil
}

// InsertOnTopOfIn pushes node q between x and x's current In child,
// carrying forward the displaced child's birth shortcut onto q (q is
// now the node whose in-trail leads to that birth).
func (t *Tree[S]) InsertOnTopOfIn(x, q *Node[S]) {
	child := x.In
	x.In = q
	q.Up = x
	q.In = child
	if child != nil {
		child.Up = q
		q.Low = child.Low
	}
}

// InsertOnTopOfMid pushes node q between x and x's current Mid child,
// the Mid-trail analogue of InsertOnTopOfIn.
func (t *Tree[S]) InsertOnTopOfMid(x, q *Node[S]) {
	child := x.Mid
	x.Mid = q
	q.Up = x
	q.Mid = child
	if child != nil {
		child.Up = q
		q.Low = child.Low
	}
}

// InsertOnBottomOfIn pushes node q between leaf and leaf's current
// In-parent, i.e. q becomes leaf's new immediate In-parent and leaf
// becomes q's birth.
func (t *Tree[S]) InsertOnBottomOfIn(leaf, q *Node[S]) {
	parent := leaf.Up
	q.Up = parent
	if parent != nil {
		if parent.In == leaf {
			parent.In = q
		} else if parent.Mid == leaf {
			parent.Mid = q
		} else if parent.Down == leaf {
			parent.Down = q
		}
	}
	q.In = leaf
	q.Low = leaf
	leaf.Up = q
}

// InsertOnBottomOfMid is the Mid-trail analogue of InsertOnBottomOfIn.
func (t *Tree[S]) InsertOnBottomOfMid(leaf, q *Node[S]) {
	parent := leaf.Up
	q.Up = parent
	if parent != nil {
		if parent.In == leaf {
			parent.In = q
		} else if parent.Mid == leaf {
			parent.Mid = q
		} else if parent.Down == leaf {
			parent.Down = q
		}
	}
	q.Mid = leaf
	q.Low = leaf
	leaf.Up = q
}

// SwapBananas exchanges the in-trail and mid-trail subtrees of two
// maxima and swaps their birth.Death back-pointers.
func (t *Tree[S]) SwapBananas(a, b *Node[S]) {
	a.In, b.In = b.In, a.In
	a.Mid, b.Mid = b.Mid, a.Mid
	if a.In != nil {
		a.In.Up = a
	}
	if a.Mid != nil {
		a.Mid.Up = a
	}
	if b.In != nil {
		b.In.Up = b
	}
	if b.Mid != nil {
		b.Mid.Up = b
	}
	a.Low, b.Low = b.Low, a.Low
	if a.Low != nil {
		a.Low.Death = a
	}
	if b.Low != nil {
		b.Low.Death = b
	}
}

// MergeInTrailToUp dissolves q as a distinct node on its parent's
// in-trail, reconnecting q's parent directly to q's own In child. q
// must currently be its parent's In child.
func (t *Tree[S]) MergeInTrailToUp(q *Node[S]) {
	t.UnlinkFromTrail(q)
}

// MergeMidTrailToUp is the Mid-trail analogue of MergeInTrailToUp. q
// must currently be its parent's Mid child.
func (t *Tree[S]) MergeMidTrailToUp(q *Node[S]) {
	t.UnlinkFromTrail(q)
}

// SwapSpine swaps the spine labels of two nodes.
func SwapSpine[S ConstSign](a, b *Node[S]) {
	a.Spine, b.Spine = b.Spine, a.Spine
}

// birthOf returns n's birth: itself if n is a minimum leaf, or its Low
// shortcut if n is an internal maximum. Mirrors the elder-rule lookup
// construct.go's reduce performs during initial construction (see
// DESIGN.md), reused here to keep Low/Death correct after a rotation
// touches only the two nodes involved.
func birthOf[S ConstSign](n *Node[S]) *Node[S] {
	if n.IsLeaf() {
		return n
	}
	return n.Low
}

// recomputeBirth assigns n.Low from n's two children's current births,
// following the same elder rule construct.go's reduce uses: the
// lower-valued birth survives as n.Low (and loses any stale Death), the
// other's birth now dies at n. Callers apply this bottom node first,
// top node second after a rotation, so each node's inputs are already
// up to date by the time it is recomputed.
func (t *Tree[S]) recomputeBirth(n *Node[S]) {
	left, right := birthOf(n.In), birthOf(n.Mid)
	if left.Value() <= right.Value() {
		n.Low = left
		left.Death = nil
		right.Death = n
	} else {
		n.Low = right
		right.Death = nil
		left.Death = n
	}
}

// rotateUp promotes child above its parent, the standard Cartesian-tree
// (treap) rotation construct.go's Build already treats this shape as
// (see its doc comment): child keeps its own same-side subtree, the
// subtree it gave up is handed to the demoted parent, and both nodes'
// Low/Death shortcuts are recomputed locally via recomputeBirth. This
// is the real, O(1)-per-step pointer surgery behind SiftUp/SiftDown;
// it restores heap order without ever rescanning the sample list.
func (t *Tree[S]) rotateUp(child *Node[S]) {
	parent := child.Up
	grand := parent.Up

	if parent.In == child {
		moved := child.Mid
		child.Mid = parent
		parent.In = moved
		if moved != nil {
			moved.Up = parent
		}
	} else {
		moved := child.In
		child.In = parent
		parent.Mid = moved
		if moved != nil {
			moved.Up = parent
		}
	}

	child.Up = grand
	parent.Up = child
	if grand != nil {
		if grand.In == parent {
			grand.In = child
		} else if grand.Mid == parent {
			grand.Mid = child
		}
	}

	t.recomputeBirth(parent)
	t.recomputeBirth(child)

	if child.Up == t.SpecialRoot {
		t.GlobalMax = child
	}
}

// SiftUp restores heap order after n's value has increased, rotating n
// up past ancestors whose value it now exceeds, and then recomputes the
// Low/Death shortcuts of every node above n, since a changed leaf value
// can change which birth survives at each of them. It is the
// incremental replacement for rebuilding the whole tree on a value
// change that keeps n's criticality kind unchanged; see
// internal/maintain.
func (t *Tree[S]) SiftUp(n *Node[S]) {
	for n.Up != nil && n.Value() > n.Up.Value() {
		t.rotateUp(n)
	}
	for p := n.Up; p != nil && p != t.SpecialRoot; p = p.Up {
		t.recomputeBirth(p)
	}
}

// SiftDown restores heap order after n's value has decreased, rotating
// whichever child now exceeds n up past it, repeatedly, until n sits
// below both of its (possibly new) children or has none, and then
// recomputes the Low/Death shortcuts of every node above n.
func (t *Tree[S]) SiftDown(n *Node[S]) {
	for !n.IsLeaf() {
		hi := n.In
		if n.Mid.Value() > hi.Value() {
			hi = n.Mid
		}
		if hi.Value() <= n.Value() {
			break
		}
		t.rotateUp(hi)
	}
	for p := n.Up; p != nil && p != t.SpecialRoot; p = p.Up {
		t.recomputeBirth(p)
	}
}
