// Package dict implements the ordered-set dictionaries: splay trees
// keyed by sample position, supporting insert, erase, membership,
// next/previous, and split and join, the operations cutting and gluing
// an interval need. Join runs in amortised logarithmic time; Split
// recounts the entries of both halves, so it takes time linear in the
// size of the tree being split.
//
// Splay trees give the simplest implementation of split/join among
// balanced search trees (see DESIGN.md). Rotation discipline follows
// the classic zig/zig-zig/zig-zag scheme via repeated single rotations
// toward the root, but splaying rewrites nodes in place rather than
// returning persistent copies, since this engine is single-threaded
// with one mutable owner per arena.
package dict

// Tree is an ordered set of keys of type K mapping to values of type V.
// The zero value is an empty tree.
type Tree[K Ordered, V any] struct {
	root *node[K, V]
	size int
}

// Ordered is satisfied by any strictly totally ordered key type; the
// engine instantiates Tree with K = float64 (sample position).
type Ordered interface {
	~float64 | ~int
}

type node[K Ordered, V any] struct {
	left, right *node[K, V]
	key         K
	value       V
}

// Len returns the number of entries.
func (t *Tree[K, V]) Len() int { return t.size }

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Lookup(key)
	return ok
}

// Lookup returns the value stored under key, splaying it to the root
// on success.
func (t *Tree[K, V]) Lookup(key K) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	t.root = splay(t.root, key)
	if t.root.key == key {
		return t.root.value, true
	}
	var zero V
	return zero, false
}

// Insert adds key/value to the tree, replacing any existing value for
// an equal key.
func (t *Tree[K, V]) Insert(key K, value V) {
	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value}
		t.size = 1
		return
	}
	t.root = splay(t.root, key)
	switch {
	case t.root.key == key:
		t.root.value = value
	case key < t.root.key:
		n := &node[K, V]{key: key, value: value, right: t.root, left: t.root.left}
		t.root.left = nil
		t.root = n
		t.size++
	default:
		n := &node[K, V]{key: key, value: value, left: t.root, right: t.root.right}
		t.root.right = nil
		t.root = n
		t.size++
	}
}

// Erase removes key, if present.
func (t *Tree[K, V]) Erase(key K) {
	if t.root == nil {
		return
	}
	t.root = splay(t.root, key)
	if t.root.key != key {
		return
	}
	if t.root.left == nil {
		t.root = t.root.right
	} else {
		r := t.root.right
		t.root = splay(t.root.left, key) // splays the max of left subtree to its root
		t.root.right = r
	}
	t.size--
}

// NextItem returns the least key strictly greater than key.
func (t *Tree[K, V]) NextItem(key K) (K, V, bool) {
	n := t.root
	var candidate *node[K, V]
	for n != nil {
		if n.key > key {
			candidate = n
			n = n.left
		} else {
			n = n.right
		}
	}
	if candidate == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	return candidate.key, candidate.value, true
}

// PreviousItem returns the greatest key strictly less than key.
func (t *Tree[K, V]) PreviousItem(key K) (K, V, bool) {
	n := t.root
	var candidate *node[K, V]
	for n != nil {
		if n.key < key {
			candidate = n
			n = n.right
		} else {
			n = n.left
		}
	}
	if candidate == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	return candidate.key, candidate.value, true
}

// ClosestOnOppositeSide returns NextItem(center) if other < center,
// otherwise PreviousItem(center).
func (t *Tree[K, V]) ClosestOnOppositeSide(center, other K) (K, V, bool) {
	if other < center {
		return t.NextItem(center)
	}
	return t.PreviousItem(center)
}

// Min returns the least key, if any.
func (t *Tree[K, V]) Min() (K, V, bool) {
	if t.root == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.key, n.value, true
}

// Max returns the greatest key, if any.
func (t *Tree[K, V]) Max() (K, V, bool) {
	if t.root == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.key, n.value, true
}

// Each calls fn for every entry in ascending key order.
func (t *Tree[K, V]) Each(fn func(key K, value V)) {
	var walk func(n *node[K, V])
	walk = func(n *node[K, V]) {
		if n == nil {
			return
		}
		walk(n.left)
		fn(n.key, n.value)
		walk(n.right)
	}
	walk(t.root)
}

// Split divides t into (left, right) such that left holds every key <
// at and right holds every key >= at. t is left empty.
func (t *Tree[K, V]) Split(at K) (left, right *Tree[K, V]) {
	left, right = &Tree[K, V]{}, &Tree[K, V]{}
	if t.root == nil {
		return
	}
	t.root = splay(t.root, at)
	if t.root.key >= at {
		right.root = t.root
		left.root = right.root.left
		right.root.left = nil
	} else {
		left.root = t.root
		right.root = left.root.right
		left.root.right = nil
	}
	left.size, right.size = size(left.root), size(right.root) // walks both halves: O(n)
	t.root, t.size = nil, 0
	return
}

// Join merges right into left in place; every key in right must be
// strictly greater than every key in left. right is left empty.
func Join[K Ordered, V any](left, right *Tree[K, V]) {
	if right.root == nil {
		return
	}
	if left.root == nil {
		left.root, left.size = right.root, right.size
		right.root, right.size = nil, 0
		return
	}
	// splay the maximum of left to the root, then hang right off it
	maxKey, _, _ := left.Max()
	left.root = splay(left.root, maxKey)
	left.root.right = right.root
	left.size += right.size
	right.root, right.size = nil, 0
}

func size[K Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + size(n.left) + size(n.right)
}

// splay brings the node closest to key to the root using the standard
// top-down zig/zig-zig/zig-zag rotations.
func splay[K Ordered, V any](root *node[K, V], key K) *node[K, V] {
	if root == nil {
		return nil
	}

	var header node[K, V]
	leftTreeMax, rightTreeMin := &header, &header
	n := root

	for {
		switch {
		case key < n.key:
			if n.left == nil {
				goto done
			}
			if key < n.left.key {
				// zig-zig: rotate right
				n = rotateRight(n)
				if n.left == nil {
					goto done
				}
			}
			// link right
			rightTreeMin.left = n
			rightTreeMin = n
			n = n.left
		case key > n.key:
			if n.right == nil {
				goto done
			}
			if key > n.right.key {
				// zig-zig: rotate left
				n = rotateLeft(n)
				if n.right == nil {
					goto done
				}
			}
			// link left
			leftTreeMax.right = n
			leftTreeMax = n
			n = n.right
		default:
			goto done
		}
	}
done:
	// reassemble
	leftTreeMax.right = n.left
	rightTreeMin.left = n.right
	n.left = header.right
	n.right = header.left
	return n
}

func rotateRight[K Ordered, V any](n *node[K, V]) *node[K, V] {
	l := n.left
	n.left = l.right
	l.right = n
	return l
}

func rotateLeft[K Ordered, V any](n *node[K, V]) *node[K, V] {
	r := n.right
	n.right = r.left
	r.left = n
	return r
}
