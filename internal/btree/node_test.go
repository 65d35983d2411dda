package btree

import (
	"testing"

	"github.com/gaissmai/banana/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafNode(t *testing.T, tr *Tree[U], value float64) *Node[U] {
	t.Helper()
	it := sample.New(0, value)
	return tr.New(it)
}

func TestNewAndFreeClearsBackLink(t *testing.T) {
	var tr Tree[U]
	it := sample.New(0, 1)
	n := tr.New(it)
	assert.Same(t, n, it.GetNode(sample.Up))

	tr.Free(n)
	assert.Nil(t, it.GetNode(sample.Up))
	assert.Equal(t, 1, tr.Stats().Free)
}

func TestUnlinkFromTrail(t *testing.T) {
	var tr Tree[U]
	parent := leafNode(t, &tr, 10)
	child := leafNode(t, &tr, 5)
	grandchild := leafNode(t, &tr, 1)

	parent.In = child
	child.Up = parent
	child.In = grandchild
	grandchild.Up = child

	tr.UnlinkFromTrail(child)
	assert.Same(t, grandchild, parent.In)
	assert.Same(t, parent, grandchild.Up)
	assert.Nil(t, child.Up)
}

func TestUnlinkFromTrailOnRootIsNoop(t *testing.T) {
	var tr Tree[U]
	root := leafNode(t, &tr, 10)
	tr.UnlinkFromTrail(root)
	assert.Nil(t, root.Up)
}

func TestInsertOnTopOfInAndMid(t *testing.T) {
	var tr Tree[U]
	x := leafNode(t, &tr, 10)
	oldChild := leafNode(t, &tr, 5)
	x.In = oldChild
	oldChild.Up = x

	q := leafNode(t, &tr, 7)
	tr.InsertOnTopOfIn(x, q)

	assert.Same(t, q, x.In)
	assert.Same(t, x, q.Up)
	assert.Same(t, oldChild, q.In)
	assert.Same(t, q, oldChild.Up)

	y := leafNode(t, &tr, 20)
	oldMid := leafNode(t, &tr, 15)
	y.Mid = oldMid
	oldMid.Up = y

	r := leafNode(t, &tr, 17)
	tr.InsertOnTopOfMid(y, r)
	assert.Same(t, r, y.Mid)
	assert.Same(t, y, r.Up)
	assert.Same(t, oldMid, r.Mid)
}

func TestInsertOnBottomOfInAndMid(t *testing.T) {
	var tr Tree[U]
	parent := leafNode(t, &tr, 10)
	leaf := leafNode(t, &tr, 5)
	parent.In = leaf
	leaf.Up = parent

	q := leafNode(t, &tr, 7)
	tr.InsertOnBottomOfIn(leaf, q)

	assert.Same(t, q, parent.In)
	assert.Same(t, parent, q.Up)
	assert.Same(t, leaf, q.In)
	assert.Same(t, q, leaf.Up)

	// Mid-trail analogue, starting from a Mid-linked leaf.
	parent2 := leafNode(t, &tr, 20)
	leaf2 := leafNode(t, &tr, 12)
	parent2.Mid = leaf2
	leaf2.Up = parent2

	r := leafNode(t, &tr, 15)
	tr.InsertOnBottomOfMid(leaf2, r)
	assert.Same(t, r, parent2.Mid)
	assert.Same(t, leaf2, r.Mid)
	assert.Same(t, r, leaf2.Up)
}

func TestSwapBananas(t *testing.T) {
	var tr Tree[U]
	a := leafNode(t, &tr, 10)
	aIn := leafNode(t, &tr, 4)
	aMid := leafNode(t, &tr, 6)
	a.In, a.Mid = aIn, aMid
	aIn.Up, aMid.Up = a, a
	a.Low = aIn
	aIn.Death = a

	b := leafNode(t, &tr, 20)
	bIn := leafNode(t, &tr, 8)
	bMid := leafNode(t, &tr, 9)
	b.In, b.Mid = bIn, bMid
	bIn.Up, bMid.Up = b, b
	b.Low = bIn
	bIn.Death = b

	tr.SwapBananas(a, b)

	assert.Same(t, bIn, a.In)
	assert.Same(t, bMid, a.Mid)
	assert.Same(t, a, bIn.Up)
	assert.Same(t, a, bMid.Up)

	assert.Same(t, aIn, b.In)
	assert.Same(t, aMid, b.Mid)
	assert.Same(t, b, aIn.Up)
	assert.Same(t, b, aMid.Up)

	require.Same(t, bIn, a.Low)
	require.Same(t, aIn, b.Low)
	assert.Same(t, a, bIn.Death)
	assert.Same(t, b, aIn.Death)
}

func TestMergeInTrailToUp(t *testing.T) {
	var tr Tree[U]
	grandparent := leafNode(t, &tr, 20)
	max := leafNode(t, &tr, 10)
	below := leafNode(t, &tr, 5)

	grandparent.In = max
	max.Up = grandparent
	max.In = below
	below.Up = max

	tr.MergeInTrailToUp(max)
	assert.Same(t, below, grandparent.In)
	assert.Same(t, grandparent, below.Up)
	assert.Nil(t, max.Up)
}

func TestMergeMidTrailToUp(t *testing.T) {
	var tr Tree[U]
	grandparent := leafNode(t, &tr, 20)
	max := leafNode(t, &tr, 10)
	below := leafNode(t, &tr, 5)

	grandparent.Mid = max
	max.Up = grandparent
	max.Mid = below
	below.Up = max

	tr.MergeMidTrailToUp(max)
	assert.Same(t, below, grandparent.Mid)
	assert.Same(t, grandparent, below.Up)
	assert.Nil(t, max.Up)
}

// banana builds a single max over two leaves, wiring Low/Death
// the way construct.go's reduce would, for rotation tests below.
func banana(t *testing.T, tr *Tree[U], maxVal, inVal, midVal float64) (max, in, mid *Node[U]) {
	t.Helper()
	max = leafNode(t, tr, maxVal)
	in = leafNode(t, tr, inVal)
	mid = leafNode(t, tr, midVal)
	max.In, max.Mid = in, mid
	in.Up, mid.Up = max, max
	tr.recomputeBirth(max)
	return max, in, mid
}

func TestRotateUpPromotesInChild(t *testing.T) {
	var tr Tree[U]
	tr.SpecialRoot = &Node[U]{}

	parent, child, c := banana(t, &tr, 10, 20, 5)
	// child (value 20) illegally above parent (value 10): rotate it up.
	a := leafNode(t, &tr, 1)
	b := leafNode(t, &tr, 2)
	child.In, child.Mid = a, b
	a.Up, b.Up = child, child
	tr.recomputeBirth(child)

	tr.SpecialRoot.In = parent
	parent.Up = tr.SpecialRoot

	tr.rotateUp(child)

	assert.Same(t, child, tr.SpecialRoot.In)
	assert.Same(t, tr.SpecialRoot, child.Up)
	assert.Same(t, a, child.In)
	assert.Same(t, parent, child.Mid)
	assert.Same(t, b, parent.In)
	assert.Same(t, c, parent.Mid)
	assert.Same(t, child, tr.GlobalMax)
}

func TestSiftUpStopsAtRoot(t *testing.T) {
	var tr Tree[U]
	tr.SpecialRoot = &Node[U]{}
	top := leafNode(t, &tr, 100)
	tr.SpecialRoot.In = top
	top.Up = tr.SpecialRoot
	tr.GlobalMax = top

	tr.SiftUp(top) // already at the root: no-op, must not panic
	assert.Same(t, top, tr.GlobalMax)
}

func TestSiftDownStopsAtLeaf(t *testing.T) {
	var tr Tree[U]
	leaf := leafNode(t, &tr, 1)
	tr.SiftDown(leaf) // leaf has no children: no-op, must not panic
	assert.True(t, leaf.IsLeaf())
}

func TestNodeIsLeafAndValue(t *testing.T) {
	var tr Tree[U]
	n := leafNode(t, &tr, 42)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, 42.0, n.Value())

	n.In = leafNode(t, &tr, 1)
	assert.False(t, n.IsLeaf())
}

func TestNodeValueSentinelIsInfinite(t *testing.T) {
	n := &Node[U]{}
	assert.True(t, n.Value() > 1e300)
}

func TestNodeOfAndSetNodeOf(t *testing.T) {
	it := sample.New(0, 1)
	var tr Tree[U]
	n := tr.New(it)
	assert.Same(t, n, nodeOf[U](it))

	setNodeOf[U](it, nil)
	assert.Nil(t, nodeOf[U](it))
}
