package vdom

import (
	"iter"
	"maps"
	"testing"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/stretchr/testify/assert"
)

func plusA[T any](item T, _ int, _, _ bool) string {
	return Stringify(item) + "a"
}

func TestIEmptySources(t *testing.T) {
	none := func(any, int, bool, bool) any { return nil }

	assert.Equal(t, []any{}, I[any, any](nil, none))
	assert.Equal(t, []any{}, I(Slice([]any{}), none))
	assert.Equal(t, []any{}, I(Slice[any](nil), none))
	assert.Equal(t, []any{}, I(Set(nil), none))
	assert.Equal(t, []any{}, I(Seq[any](nil), none))
}

func TestIOpaqueItems(t *testing.T) {
	none := func(map[string]int, int, bool, bool) any { return nil }

	assert.Equal(t, []any{nil}, I(Slice([]map[string]int{{"key": 0}}), none))
	assert.Equal(t, []any{nil}, I(Slice([]map[string]int{{"key": 1}}), none))
}

func TestIItemAndIndex(t *testing.T) {
	type pair struct {
		Index int
		Item  *struct{ X int }
	}
	o := &struct{ X int }{X: 1}

	got := I(Slice([]*struct{ X int }{o}), func(item *struct{ X int }, index int, _, _ bool) pair {
		return pair{Index: index, Item: item}
	})
	assert.Equal(t, []pair{{Index: 0, Item: o}}, got)
	assert.Same(t, o, got[0].Item)
}

func TestIFirstLast(t *testing.T) {
	items := []int{1, 2, 3}

	last := I(Slice(items), func(_ int, _ int, _, last bool) bool { return last })
	assert.Equal(t, []bool{false, false, true}, last)

	first := I(Slice(items), func(_ int, _ int, first, _ bool) bool { return first })
	assert.Equal(t, []bool{true, false, false}, first)

	single := I(Slice([]int{9}), func(_ int, _ int, first, last bool) [2]bool { return [2]bool{first, last} })
	assert.Equal(t, [][2]bool{{true, true}}, single)

	// Unsized sources rely on lookahead.
	seq := Seq(func(yield func(int) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	})
	indexes := I(seq, func(_ int, index int, _, last bool) []any { return []any{index, last} })
	assert.Equal(t, [][]any{{0, false}, {1, false}, {2, true}}, indexes)
}

func TestISlices(t *testing.T) {
	assert.Equal(t, []string{"1a", "2a"}, I(Slice([]int{1, 2}), plusA[int]))
}

func TestISets(t *testing.T) {
	set := linkedhashset.New()
	set.Add(1)
	set.Add(2)
	set.Add(1)

	assert.Equal(t, []string{"1a", "2a"}, I(Set(set), plusA[any]))
}

func TestIMaps(t *testing.T) {
	m := linkedhashmap.New()
	m.Put("foo", 1)
	m.Put("bar", 2)

	assert.Equal(t, []string{"foo,1a", "bar,2a"}, I(Map(m), plusA[Entry]))
	assert.Equal(t, []string{}, I(Map(nil), plusA[Entry]))
}

func TestISortedMap(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a,1a", "b,2a", "c,3a"}, I(SortedMap(m), plusA[Entry]))
}

func TestISeq2(t *testing.T) {
	m := map[string]int{"only": 1}
	assert.Equal(t, []string{"only,1a"}, I(Seq2(maps.All(m)), plusA[Entry]))

	var empty iter.Seq2[string, int]
	assert.Equal(t, []string{}, I(Seq2(empty), plusA[Entry]))
}

// observed wraps another source the way a reactive proxy would.
type observed[T any] struct {
	target Iterable[T]
	reads  int
}

func (o *observed[T]) All() iter.Seq[T] {
	o.reads++
	return o.target.All()
}

func TestIWrappedSources(t *testing.T) {
	proxy := &observed[int]{target: Slice([]int{1, 2})}

	assert.Equal(t, []string{"1a", "2a"}, I[int](proxy, plusA[int]))
	assert.Equal(t, 1, proxy.reads)
}

func TestICallbackOrder(t *testing.T) {
	var seen []int
	I(Slice([]int{5, 6, 7}), func(item int, _ int, _, _ bool) struct{} {
		seen = append(seen, item)
		return struct{}{}
	})
	assert.Equal(t, []int{5, 6, 7}, seen)
}
