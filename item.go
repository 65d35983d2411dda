package banana

import "github.com/gaissmai/banana/internal/sample"

// Item is an opaque handle to one sample within an Interval. Item
// values from different Intervals (or from before a CutInterval/
// GlueIntervals that recreated the underlying interval state) must
// never be mixed.
type Item struct {
	it *sample.Item
}
