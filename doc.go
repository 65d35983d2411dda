// Package banana maintains persistence diagrams of piecewise-linear
// functions over ordered intervals of samples, via a pair of banana
// trees kept in sync with every edit to the sample sequence.
//
// Context owns the pool intervals are allocated from and tracks the
// live ones. An Interval is an ordered run of samples; Item is an
// opaque handle to one sample within an Interval. Edits (ChangeValue,
// InsertItem, DeleteItem, CutInterval, GlueIntervals) keep both the
// up-tree (minima paired with killing maxima) and down-tree (maxima
// paired with killing minima) consistent, and ComputePersistenceDiagram
// extracts the current pairing for either sign at any time.
package banana
