package vdom

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Iterable is a source that enumerates its items in a defined order.
type Iterable[T any] interface {
	All() iter.Seq[T]
}

// sized is implemented by sources that know their length up front.
type sized interface {
	Len() int
}

// I calls fn once per item of src, in order, and collects the results.
// index is zero based; first and last mark the two ends of the sequence.
// A nil src produces an empty slice.
func I[T, R any](src Iterable[T], fn func(item T, index int, first, last bool) R) []R {
	if src == nil {
		return []R{}
	}

	n := 0
	if s, ok := src.(sized); ok {
		n = s.Len()
	}
	out := make([]R, 0, n)

	// One item of lookahead tells us which item is last without needing
	// the length.
	var (
		prev    T
		pending bool
		index   int
	)
	for item := range src.All() {
		if pending {
			out = append(out, fn(prev, index, index == 0, false))
			index++
		}
		prev, pending = item, true
	}
	if pending {
		out = append(out, fn(prev, index, index == 0, true))
	}
	return out
}

// Entry is one key/value pair of a map-like source.
type Entry struct {
	Key   any
	Value any
}

// String renders the pair as "key,value".
func (e Entry) String() string {
	return Stringify(e.Key) + "," + Stringify(e.Value)
}

type sliceSource[T any] []T

func (s sliceSource[T]) All() iter.Seq[T] { return slices.Values(s) }
func (s sliceSource[T]) Len() int         { return len(s) }

// Slice adapts a slice.
func Slice[T any](s []T) Iterable[T] {
	return sliceSource[T](s)
}

type seqSource[T any] iter.Seq[T]

func (s seqSource[T]) All() iter.Seq[T] {
	if s == nil {
		return func(func(T) bool) {}
	}
	return iter.Seq[T](s)
}

// Seq adapts an iterator.
func Seq[T any](seq iter.Seq[T]) Iterable[T] {
	return seqSource[T](seq)
}

// Seq2 adapts a key/value iterator. Each pair becomes one Entry.
func Seq2[K, V any](seq iter.Seq2[K, V]) Iterable[Entry] {
	return Seq(func(yield func(Entry) bool) {
		if seq == nil {
			return
		}
		for k, v := range seq {
			if !yield(Entry{Key: k, Value: v}) {
				return
			}
		}
	})
}

type setSource struct {
	set *linkedhashset.Set
}

func (s setSource) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		if s.set == nil {
			return
		}
		it := s.set.Iterator()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (s setSource) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Size()
}

// Set adapts an insertion-ordered set.
func Set(set *linkedhashset.Set) Iterable[any] {
	return setSource{set: set}
}

type mapSource struct {
	m *linkedhashmap.Map
}

func (s mapSource) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if s.m == nil {
			return
		}
		it := s.m.Iterator()
		for it.Next() {
			if !yield(Entry{Key: it.Key(), Value: it.Value()}) {
				return
			}
		}
	}
}

func (s mapSource) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Size()
}

// Map adapts an insertion-ordered map. Items are key/value Entry pairs.
func Map(m *linkedhashmap.Map) Iterable[Entry] {
	return mapSource{m: m}
}

// SortedMap adapts a Go map. Go maps have no insertion order, so entries
// are enumerated in ascending key order.
func SortedMap[K cmp.Ordered, V any](m map[K]V) Iterable[Entry] {
	keys := slices.Sorted(maps.Keys(m))
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Value: m[k]}
	}
	return Slice(entries)
}
