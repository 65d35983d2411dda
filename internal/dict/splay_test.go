package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, keys ...float64) *Tree[float64, string] {
	t.Helper()
	tr := &Tree[float64, string]{}
	for _, k := range keys {
		tr.Insert(k, keyLabel(k))
	}
	return tr
}

func keyLabel(k float64) string {
	switch k {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "three"
	default:
		return "other"
	}
}

func TestInsertLookupContains(t *testing.T) {
	tr := build(t, 5, 2, 8, 1, 3)
	require.Equal(t, 5, tr.Len())

	v, ok := tr.Lookup(8)
	require.True(t, ok)
	assert.Equal(t, "other", v)
	assert.True(t, tr.Contains(2))
	assert.False(t, tr.Contains(100))
}

func TestInsertReplacesValue(t *testing.T) {
	tr := &Tree[float64, string]{}
	tr.Insert(1, "a")
	tr.Insert(1, "b")
	require.Equal(t, 1, tr.Len())
	v, ok := tr.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestEraseRemovesAndSizeShrinks(t *testing.T) {
	tr := build(t, 5, 2, 8, 1, 3)
	tr.Erase(2)
	assert.False(t, tr.Contains(2))
	assert.Equal(t, 4, tr.Len())

	// erasing a missing key is a no-op
	tr.Erase(999)
	assert.Equal(t, 4, tr.Len())
}

func TestEraseEveryKeyLeavesEmptyTree(t *testing.T) {
	keys := []float64{5, 2, 8, 1, 3, 9, 0, 4}
	tr := build(t, keys...)
	for _, k := range keys {
		tr.Erase(k)
	}
	assert.Equal(t, 0, tr.Len())
	for _, k := range keys {
		assert.False(t, tr.Contains(k))
	}
}

func TestEachVisitsInAscendingOrder(t *testing.T) {
	tr := build(t, 5, 2, 8, 1, 3)
	var got []float64
	tr.Each(func(k float64, _ string) { got = append(got, k) })
	assert.Equal(t, []float64{1, 2, 3, 5, 8}, got)
}

func TestMinMax(t *testing.T) {
	tr := build(t, 5, 2, 8, 1, 3)
	minK, _, ok := tr.Min()
	require.True(t, ok)
	assert.Equal(t, 1.0, minK)

	maxK, _, ok := tr.Max()
	require.True(t, ok)
	assert.Equal(t, 8.0, maxK)
}

func TestMinMaxEmptyTree(t *testing.T) {
	tr := &Tree[float64, string]{}
	_, _, ok := tr.Min()
	assert.False(t, ok)
	_, _, ok = tr.Max()
	assert.False(t, ok)
}

func TestNextPreviousItem(t *testing.T) {
	tr := build(t, 1, 3, 5, 7, 9)

	k, _, ok := tr.NextItem(5)
	require.True(t, ok)
	assert.Equal(t, 7.0, k)

	k, _, ok = tr.NextItem(9)
	assert.False(t, ok)

	k, _, ok = tr.PreviousItem(5)
	require.True(t, ok)
	assert.Equal(t, 3.0, k)

	_, _, ok = tr.PreviousItem(1)
	assert.False(t, ok)
}

func TestClosestOnOppositeSide(t *testing.T) {
	tr := build(t, 1, 3, 5, 7, 9)

	// other < center -> look to the right of center
	k, _, ok := tr.ClosestOnOppositeSide(5, 1)
	require.True(t, ok)
	assert.Equal(t, 7.0, k)

	// other > center -> look to the left of center
	k, _, ok = tr.ClosestOnOppositeSide(5, 9)
	require.True(t, ok)
	assert.Equal(t, 3.0, k)
}

func TestSplitPartitionsByKey(t *testing.T) {
	tr := build(t, 1, 2, 3, 4, 5, 6)
	left, right := tr.Split(4)

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 3, left.Len())
	assert.Equal(t, 3, right.Len())

	var leftKeys, rightKeys []float64
	left.Each(func(k float64, _ string) { leftKeys = append(leftKeys, k) })
	right.Each(func(k float64, _ string) { rightKeys = append(rightKeys, k) })

	assert.Equal(t, []float64{1, 2, 3}, leftKeys)
	assert.Equal(t, []float64{4, 5, 6}, rightKeys)
}

func TestJoinMergesBackTogether(t *testing.T) {
	tr := build(t, 1, 2, 3, 4, 5, 6)
	left, right := tr.Split(4)

	Join(left, right)
	assert.Equal(t, 6, left.Len())
	assert.Equal(t, 0, right.Len())

	var keys []float64
	left.Each(func(k float64, _ string) { keys = append(keys, k) })
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, keys)
}

func TestJoinOntoEmptyLeft(t *testing.T) {
	left := &Tree[float64, string]{}
	right := build(t, 1, 2, 3)
	Join(left, right)
	assert.Equal(t, 3, left.Len())
	assert.Equal(t, 0, right.Len())
}

func TestJoinEmptyRightIsNoop(t *testing.T) {
	left := build(t, 1, 2, 3)
	right := &Tree[float64, string]{}
	Join(left, right)
	assert.Equal(t, 3, left.Len())
}
