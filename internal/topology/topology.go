// Package topology implements the interval-splitting and
// interval-joining operations: Cut and Glue.
//
// Every cut or glue boundary sample changes criticality kind by
// construction: cutting always turns the samples adjacent to the new
// edge into endpoints (an endpoint's classification is governed by its
// single remaining neighbour, never the same comparison an interior
// sample uses), and gluing always turns two endpoints back into
// interior samples. That is unlike internal/maintain's ChangeValue,
// InsertItem and DeleteItem, where "the edit keeps everyone's
// criticality kind" is the dominant case and a real local fast path
// (btree.Tree.SiftUp/SiftDown, or skipping the trees outright) covers
// it. Here the boundary-criticality change is the common case, not the
// edge case, so the same kind of fast path would almost never trigger -
// the honest move is to spend the effort where it pays off and rebuild
// the two affected banana trees directly with maintain.State.
// RebuildTreesOnly rather than hand-splicing trail pointers for a path
// that would barely ever run. The three dictionaries are split and
// joined with dict.Split/dict.Join rather than refilled from the sample
// list; dict.Join is amortised logarithmic, while dict.Split recounts
// both halves and is linear in the dictionary's size. See DESIGN.md.
package topology

import (
	"errors"

	"github.com/gaissmai/banana/internal/dict"
	"github.com/gaissmai/banana/internal/maintain"
	"github.com/gaissmai/banana/internal/sample"
)

// ErrCutAtRightEndpoint is returned by Cut when asked to cut to the
// right of an interval's own right endpoint, which would leave the
// right half empty.
var ErrCutAtRightEndpoint = errors.New("topology: cannot cut to the right of the interval's right endpoint")

// Cut splits s into two intervals at the edge immediately to the right
// of cutItem: the left interval keeps every sample up to and including
// cutItem, the right interval gets the rest.
func Cut(s *maintain.State, cutItem *sample.Item) (left, right *maintain.State, err error) {
	if cutItem.IsRightEndpoint() {
		return nil, nil, ErrCutAtRightEndpoint
	}
	rightNeighbor := cutItem.RightNeighbor()
	splitAt := rightNeighbor.Position()

	leftMinima, rightMinima := s.Minima.Split(splitAt)
	leftMaxima, rightMaxima := s.Maxima.Split(splitAt)
	leftNonCrit, rightNonCrit := s.NonCritical.Split(splitAt)

	oldLeftEnd, oldRightEnd := s.Left, s.Right
	cutItem.CutRight()

	left = &maintain.State{
		Left: oldLeftEnd, Right: cutItem,
		Minima: *leftMinima, Maxima: *leftMaxima, NonCritical: *leftNonCrit,
	}
	right = &maintain.State{
		Left: rightNeighbor, Right: oldRightEnd,
		Minima: *rightMinima, Maxima: *rightMaxima, NonCritical: *rightNonCrit,
	}

	left.Reclassify(cutItem)
	right.Reclassify(rightNeighbor)

	left.RebuildTreesOnly()
	right.RebuildTreesOnly()
	return left, right, nil
}

// Glue joins right onto the right end of left, producing a single
// interval. Both left and right are left unusable afterwards.
func Glue(left, right *maintain.State) *maintain.State {
	joinEdgeLeft, joinEdgeRight := left.Right, right.Left
	sample.Link(joinEdgeLeft, joinEdgeRight)

	minima, maxima, nonCrit := left.Minima, left.Maxima, left.NonCritical
	rMinima, rMaxima, rNonCrit := right.Minima, right.Maxima, right.NonCritical
	dict.Join(&minima, &rMinima)
	dict.Join(&maxima, &rMaxima)
	dict.Join(&nonCrit, &rNonCrit)

	merged := &maintain.State{
		Left: left.Left, Right: right.Right,
		Minima: minima, Maxima: maxima, NonCritical: nonCrit,
	}

	merged.Reclassify(joinEdgeLeft)
	merged.Reclassify(joinEdgeRight)

	merged.RebuildTreesOnly()
	return merged
}
