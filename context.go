package banana

import (
	"github.com/gaissmai/banana/diagram"
	"github.com/gaissmai/banana/internal/arena"
	"github.com/gaissmai/banana/internal/maintain"
	"github.com/gaissmai/banana/internal/sample"
	"github.com/gaissmai/banana/internal/topology"
)

// Interval is an ordered run of samples and its two maintained banana
// trees. The zero value is not usable; create one with
// Context.NewInterval.
type Interval struct {
	state *maintain.State
}

// Context owns the set of live Intervals. Intervals are allocated from
// Context's recycling pool (see internal/arena); samples are allocated
// directly, and each banana tree allocates its nodes from its own pool.
// Context tracks which intervals are currently live, for NumIntervals
// and DeleteInterval bookkeeping.
type Context struct {
	intervals map[*Interval]struct{}
	pool      arena.Pool[Interval]
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{intervals: make(map[*Interval]struct{})}
}

func itemsOf(state *maintain.State) []*Item {
	raw := state.Items()
	out := make([]*Item, len(raw))
	for i, it := range raw {
		out[i] = &Item{it: it}
	}
	return out
}

// NewInterval creates an interval from values, one sample per value,
// at positions startPosition, startPosition+1, .... Requires at least
// two values, mirroring persistence_context's "an interval needs at
// least two items" precondition.
func (c *Context) NewInterval(values []float64, startPosition float64) (*Interval, []*Item) {
	if len(values) < 2 {
		failPrecondition("NewInterval", "an interval needs at least two items")
	}
	items := make([]*sample.Item, len(values))
	for i, v := range values {
		items[i] = sample.New(startPosition+float64(i), v)
	}
	for i := 0; i < len(items)-1; i++ {
		sample.Link(items[i], items[i+1])
	}
	iv := c.pool.Get()
	*iv = Interval{state: maintain.NewFromOrdered(items)}
	c.intervals[iv] = struct{}{}
	return iv, itemsOf(iv.state)
}

// ChangeValue assigns item a new function value and re-maintains both
// trees.
func (c *Context) ChangeValue(iv *Interval, item *Item, value float64) {
	iv.state.ChangeValue(item.it, value)
}

// InsertItem inserts a new non-critical sample at position, which must
// lie strictly between the interval's endpoints, and returns its handle.
func (c *Context) InsertItem(iv *Interval, position float64) *Item {
	left := iv.state.Left
	right := iv.state.Right
	if !(left.Position() < position && position < right.Position()) {
		failPrecondition("InsertItem", "position must lie strictly between the interval's endpoints")
	}
	after, ok := iv.state.ItemBefore(position)
	if !ok {
		failCorruption("InsertItem", "no sample found left of a position inside the interval's bounds")
	}
	value := interpolatedValue(after)
	return &Item{it: iv.state.InsertItem(after, position, value)}
}

// InsertItemRightOf inserts a new sample immediately to the right of
// item, at the midpoint position between item and its current right
// neighbour, which must exist (item must not be the right endpoint).
func (c *Context) InsertItemRightOf(iv *Interval, item *Item) *Item {
	right := item.it.RightNeighbor()
	if right == nil {
		failPrecondition("InsertItemRightOf", "item has no right neighbour to insert before")
	}
	position := (item.it.Position() + right.Position()) / 2
	value := (item.it.Value() + right.Value()) / 2
	return &Item{it: iv.state.InsertItem(item.it, position, value)}
}

// interpolatedValue assigns a new non-critical sample the average of
// its neighbours' values, as the original engine's
// interpolate_neighbors does.
func interpolatedValue(after *sample.Item) float64 {
	right := after.RightNeighbor()
	return (after.Value() + right.Value()) / 2
}

// InsertLeftEndpoint installs a new left endpoint at positionOffset
// before the current one, with the given value; the old left endpoint
// becomes an ordinary (non-endpoint) sample.
func (c *Context) InsertLeftEndpoint(iv *Interval, value, positionOffset float64) *Item {
	old := iv.state.Left
	it := iv.state.InsertItem(nil, old.Position()-positionOffset, value)
	return &Item{it: it}
}

// InsertRightEndpoint installs a new right endpoint at positionOffset
// after the current one, with the given value.
func (c *Context) InsertRightEndpoint(iv *Interval, value, positionOffset float64) *Item {
	old := iv.state.Right
	it := iv.state.InsertItem(old, old.Position()+positionOffset, value)
	return &Item{it: it}
}

// DeleteItem removes item, which must be an interior (non-endpoint)
// sample of iv.
func (c *Context) DeleteItem(iv *Interval, item *Item) {
	if item.it.IsEndpoint() {
		failPrecondition("DeleteItem", "use DeleteLeftEndpoint/DeleteRightEndpoint for endpoints")
	}
	iv.state.DeleteItem(item.it)
}

// DeleteLeftEndpoint removes iv's current left endpoint; its right
// neighbour becomes the new left endpoint.
func (c *Context) DeleteLeftEndpoint(iv *Interval) {
	old := iv.state.Left
	next := old.RightNeighbor()
	if next == nil {
		failPrecondition("DeleteLeftEndpoint", "cannot delete the only sample of an interval")
	}
	iv.state.Left = next
	iv.state.DeleteItem(old)
}

// DeleteRightEndpoint removes iv's current right endpoint; its left
// neighbour becomes the new right endpoint.
func (c *Context) DeleteRightEndpoint(iv *Interval) {
	old := iv.state.Right
	prev := old.LeftNeighbor()
	if prev == nil {
		failPrecondition("DeleteRightEndpoint", "cannot delete the only sample of an interval")
	}
	iv.state.Right = prev
	iv.state.DeleteItem(old)
}

// CutInterval splits iv into two intervals at the edge immediately to
// the right of cutItem. iv itself is left unusable afterwards.
func (c *Context) CutInterval(iv *Interval, cutItem *Item) (left, right *Interval) {
	delete(c.intervals, iv)
	leftState, rightState, err := topology.Cut(iv.state, cutItem.it)
	if err != nil {
		failPrecondition("CutInterval", err.Error())
	}
	left = c.pool.Get()
	*left = Interval{state: leftState}
	right = c.pool.Get()
	*right = Interval{state: rightState}
	c.intervals[left] = struct{}{}
	c.intervals[right] = struct{}{}
	return left, right
}

// GlueIntervals joins right onto the right end of left, producing a
// single merged interval. Both left and right are left unusable
// afterwards.
func (c *Context) GlueIntervals(left, right *Interval) *Interval {
	if left == right {
		failPrecondition("GlueIntervals", "cannot glue an interval to itself")
	}
	if !(left.state.Right.Position() < right.state.Left.Position()) {
		failPrecondition("GlueIntervals", "left must lie entirely to the left of right")
	}
	delete(c.intervals, left)
	delete(c.intervals, right)
	merged := c.pool.Get()
	*merged = Interval{state: topology.Glue(left.state, right.state)}
	c.intervals[merged] = struct{}{}
	return merged
}

// DeleteInterval discards iv; its Item handles become invalid.
func (c *Context) DeleteInterval(iv *Interval) {
	delete(c.intervals, iv)
	c.pool.Put(iv)
}

// ComputePersistenceDiagram extracts both the up-sign and down-sign
// persistence diagrams of iv's current state.
func (c *Context) ComputePersistenceDiagram(iv *Interval) (up, down diagram.Diagram) {
	return diagram.Extract(iv.state.Up), diagram.Extract(iv.state.Down)
}

// IsNonCritical, IsMaximum, IsMinimum classify item under the up-sign
// convention, matching persistence_context's item-property queries.
func (c *Context) IsNonCritical(iv *Interval, item *Item) bool {
	return iv.state.Criticality(item.it) == sample.NonCritical
}

func (c *Context) IsMaximum(iv *Interval, item *Item) bool {
	cr := iv.state.Criticality(item.it)
	return cr == sample.Maximum || cr == sample.DownEndpoint
}

func (c *Context) IsMinimum(iv *Interval, item *Item) bool {
	cr := iv.state.Criticality(item.it)
	return cr == sample.Minimum || cr == sample.UpEndpoint
}

// CriticalityString renders item's classification as "nc", "max", or
// "min".
func (c *Context) CriticalityString(iv *Interval, item *Item) string {
	switch {
	case c.IsNonCritical(iv, item):
		return "nc"
	case c.IsMaximum(iv, item):
		return "max"
	default:
		return "min"
	}
}

// GlobalMaxOrder and GlobalMaxValue report the position and value of
// iv's globally largest sample.
func (c *Context) GlobalMaxOrder(iv *Interval) float64 { return iv.state.Up.GlobalMax.Item.Position() }
func (c *Context) GlobalMaxValue(iv *Interval) float64 { return iv.state.Up.GlobalMax.Item.Value() }

// GlobalMinOrder and GlobalMinValue report the position and value of
// iv's globally smallest sample.
func (c *Context) GlobalMinOrder(iv *Interval) float64 {
	return iv.state.Down.GlobalMax.Item.Position()
}
func (c *Context) GlobalMinValue(iv *Interval) float64 { return iv.state.Down.GlobalMax.Item.Value() }

// NumIntervals reports how many intervals are currently live in c.
func (c *Context) NumIntervals() int { return len(c.intervals) }

// ValidateNumItems reports whether iv's three dictionaries and sample
// list agree on item count, a cheap sanity check exercised in tests.
func (c *Context) ValidateNumItems(iv *Interval) bool {
	want := iv.state.Minima.Len() + iv.state.Maxima.Len() + iv.state.NonCritical.Len()
	got := len(iv.state.Items())
	return want == got
}
