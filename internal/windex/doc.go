// Package windex is an immutable datastructure for fast lookups among
// one dimensional windows.
//
// A window is any type implementing the two-point Interface
// (CompareFirst, CompareLast); the persistence-diagram layer uses it
// for the position range a banana's panel spans between its birth and
// death sample, letting callers ask "which banana(s) enclose this
// position" or "which bananas are nested inside this one" without
// walking the tree.
//
// The underlying data structure is a sorted slice plus a parent/child
// index, both built by NewTree from the full window set at once rather
// than maintained incrementally.
//
//	NewTree()   O(n*log(n))
//	Shortest()  O(log(n))
//	Largest()   O(log(n))
//
//	Subsets()   O(n*log(n))
//	Supersets() O(n*log(n))
//
// The space complexity is O(n).
package windex
