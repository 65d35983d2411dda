// Package maintain implements the per-interval state: the sample list,
// the three position-keyed dictionaries, and the pair of banana trees,
// kept consistent across every mutation an interval can undergo.
//
// A value change that leaves every affected sample's criticality kind
// unchanged is maintained in place: ChangeValue rotates the affected
// node up or down past its neighbours with btree.Tree.SiftUp/SiftDown,
// the same Cartesian-tree rotation construct.go's Build itself treats
// as the shape of this structure, touching only the nodes the rotation
// passes through and the Low/Death shortcuts on the path from the moved
// node to the root. InsertItem and DeleteItem take the equivalent
// zero-tree-touch fast path when the edit is purely non-critical (the
// new/removed sample and its neighbours keep their criticality kind).
// Edits that change which samples are critical - a new local extremum
// appearing or an old one disappearing - fall back to a full
// btree.Build resync; porting the source algorithm's full trail-based
// interchange choreography for that case was out of scope for this
// pass. See DESIGN.md.
package maintain

import (
	"github.com/gaissmai/banana/internal/btree"
	"github.com/gaissmai/banana/internal/dict"
	"github.com/gaissmai/banana/internal/sample"
)

// State is one interval's full mutable state: its ordered sample list,
// dictionaries keyed by position, and its two banana trees.
type State struct {
	Left, Right *sample.Item // endpoints of the sample list

	Minima, Maxima, NonCritical dict.Tree[float64, *sample.Item]

	Up   *btree.Tree[btree.U]
	Down *btree.Tree[btree.D]
}

// NewSingle creates a one-sample interval.
func NewSingle(position, value float64) *State {
	it := sample.New(position, value)
	s := &State{Left: it, Right: it}
	s.Rebuild()
	return s
}

// NewFromOrdered creates an interval from an already position-ordered,
// already-linked run of samples (items[i].RightNeighbor() == items[i+1]).
func NewFromOrdered(items []*sample.Item) *State {
	s := &State{Left: items[0], Right: items[len(items)-1]}
	s.Rebuild()
	return s
}

// Items returns the sample list as a slice, left to right.
func (s *State) Items() []*sample.Item {
	items := make([]*sample.Item, 0, s.Minima.Len()+s.Maxima.Len()+s.NonCritical.Len()+2)
	for it := s.Left; it != nil; it = it.RightNeighbor() {
		items = append(items, it)
	}
	return items
}

// Rebuild recomputes both banana trees and every dictionary from the
// current sample list. Used on construction and by every edit that
// changes some sample's criticality kind.
func (s *State) Rebuild() {
	s.RebuildTreesOnly()

	s.Minima = dict.Tree[float64, *sample.Item]{}
	s.Maxima = dict.Tree[float64, *sample.Item]{}
	s.NonCritical = dict.Tree[float64, *sample.Item]{}

	for _, it := range s.Items() {
		s.bucketOf(it).Insert(it.Position(), it)
	}
}

// RebuildTreesOnly recomputes just the two banana trees, leaving the
// dictionaries untouched; used by topology.Cut/Glue, which maintain the
// dictionaries themselves via dict.Split/dict.Join plus a boundary
// Reclassify instead of a full O(n) rescan. Every sample's back-links
// are cleared first, so a sample that is no longer critical does not
// keep pointing at a node of the discarded trees.
func (s *State) RebuildTreesOnly() {
	items := s.Items()
	for _, it := range items {
		it.AssignNode(sample.Up, nil)
		it.AssignNode(sample.Down, nil)
	}
	s.Up = btree.Build[btree.U](items)
	s.Down = btree.Build[btree.D](items)
}

// bucketOf returns the dictionary it currently belongs in, under the
// up-sign classification convention.
func (s *State) bucketOf(it *sample.Item) *dict.Tree[float64, *sample.Item] {
	switch it.Criticality(sample.Up) {
	case sample.Minimum, sample.UpEndpoint:
		return &s.Minima
	case sample.Maximum, sample.DownEndpoint:
		return &s.Maxima
	default:
		return &s.NonCritical
	}
}

// Reclassify moves it into the dictionary matching its current
// criticality, erasing it from the other two first. Used after a
// structural edit changes it's neighbour set (and hence possibly its
// criticality) without triggering a full Rebuild.
func (s *State) Reclassify(it *sample.Item) {
	s.Minima.Erase(it.Position())
	s.Maxima.Erase(it.Position())
	s.NonCritical.Erase(it.Position())
	s.bucketOf(it).Insert(it.Position(), it)
}

// ItemBefore returns the sample with the greatest position strictly
// less than position, searching all three dictionaries, or false if
// position is at or before the left endpoint.
func (s *State) ItemBefore(position float64) (*sample.Item, bool) {
	var best *sample.Item
	for _, d := range []*dict.Tree[float64, *sample.Item]{&s.Minima, &s.Maxima, &s.NonCritical} {
		if _, it, ok := d.PreviousItem(position); ok {
			if best == nil || it.Position() > best.Position() {
				best = it
			}
		}
	}
	return best, best != nil
}

// criticalityPair captures a sample's classification under both signs,
// a cheap comparable fingerprint used to detect whether an edit changed
// anyone's criticality kind.
type criticalityPair [2]sample.Criticality

func classify(it *sample.Item) criticalityPair {
	if it == nil {
		return criticalityPair{sample.NonCritical, sample.NonCritical}
	}
	return criticalityPair{it.Criticality(sample.Up), it.Criticality(sample.Down)}
}

// InsertItem splices a new sample immediately to the right of after (or
// at the left end if after is nil) with the given value. If the new
// sample and both of its new neighbours keep their criticality kind
// (the common case: a purely non-critical sample lands inside an
// existing monotone run), neither tree is touched, only the
// non-critical dictionary. Otherwise the trees are rebuilt.
func (s *State) InsertItem(after *sample.Item, position, value float64) *sample.Item {
	var next *sample.Item
	var beforeAfter, beforeNext criticalityPair
	if after != nil {
		next = after.RightNeighbor()
		beforeAfter = classify(after)
	} else {
		next = s.Left
	}
	if next != nil {
		beforeNext = classify(next)
	}

	it := sample.New(position, value)
	if after == nil {
		sample.Link(it, next)
		s.Left = it
	} else {
		sample.Link(after, it)
		if next != nil {
			sample.Link(it, next)
		} else {
			s.Right = it
		}
	}

	localFit := classify(it) == criticalityPair{sample.NonCritical, sample.NonCritical}
	if after != nil {
		localFit = localFit && classify(after) == beforeAfter
	}
	if next != nil {
		localFit = localFit && classify(next) == beforeNext
	}

	if localFit {
		s.NonCritical.Insert(it.Position(), it)
		return it
	}

	s.Rebuild()
	return it
}

// DeleteItem removes it from the sample list; an endpoint is passed only
// after the caller has already moved s.Left or s.Right past it, as the
// façade's DeleteLeftEndpoint/DeleteRightEndpoint do. If it was non-critical under both signs and removing
// it doesn't change either remaining neighbour's criticality kind,
// neither tree is touched. Otherwise the trees are rebuilt.
func (s *State) DeleteItem(it *sample.Item) {
	l, r := it.LeftNeighbor(), it.RightNeighbor()
	wasNonCritical := classify(it) == criticalityPair{sample.NonCritical, sample.NonCritical}
	beforeL, beforeR := classify(l), classify(r)

	sample.Link(l, r)

	localFit := wasNonCritical
	if l != nil {
		localFit = localFit && classify(l) == beforeL
	}
	if r != nil {
		localFit = localFit && classify(r) == beforeR
	}

	if localFit {
		s.NonCritical.Erase(it.Position())
		return
	}

	s.Rebuild()
}

// ChangeValue assigns it a new value. If it and its immediate
// neighbours keep their criticality kind (the common case: a critical
// sample's value moves without crossing a neighbour's), the affected
// node in each tree where it is represented is rotated into its new
// heap position with SiftUp/SiftDown - real, local pointer surgery, not
// a rescan of the sample list. Otherwise the trees are rebuilt.
func (s *State) ChangeValue(it *sample.Item, value float64) {
	left, right := it.LeftNeighbor(), it.RightNeighbor()
	beforeIt, beforeLeft, beforeRight := classify(it), classify(left), classify(right)
	increased := value > it.Value()

	it.AssignValue(value)

	if classify(it) != beforeIt || classify(left) != beforeLeft || classify(right) != beforeRight {
		s.Rebuild()
		return
	}

	if n, ok := it.GetNode(sample.Up).(*btree.Node[btree.U]); ok && n != nil {
		if increased {
			s.Up.SiftUp(n)
		} else {
			s.Up.SiftDown(n)
		}
	}
	if n, ok := it.GetNode(sample.Down).(*btree.Node[btree.D]); ok && n != nil {
		if increased {
			s.Down.SiftDown(n)
		} else {
			s.Down.SiftUp(n)
		}
	}
	s.Reclassify(it)
}

// Criticality reports it's classification under the up-sign convention
// the dictionaries use.
func (s *State) Criticality(it *sample.Item) sample.Criticality {
	return it.Criticality(sample.Up)
}
