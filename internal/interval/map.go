// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package interval provides an interval map keyed by integer ranges.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Map is a map from disjoint closed intervals to values.
//
// A zero value is ready to use.
type Map[K Endpoint, V any] struct {
	// Keys in this map are the ends of intervals in the map.
	tree btree.Map[K, *entry[K, V]]
}

// Interval is an entry in a [Map].
type Interval[K Endpoint, V any] struct {
	// The range for this interval, inclusive.
	Start, End K

	// The value associated with it. Nil when returned for a missing
	// interval.
	Value *V
}

// Contains returns whether this interval contains a given point.
func (i Interval[K, V]) Contains(point K) bool {
	return i.Value != nil && i.Start <= point && point <= i.End
}

type entry[K Endpoint, V any] struct {
	start K
	value V
}

// Len returns the number of intervals in this map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Get looks up the interval which contains key, if one exists.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	// The least interval whose end is at least key is the only one that can
	// contain it.
	iter := m.tree.Iter()
	if !iter.Seek(key) || key < iter.Value().start {
		return Interval[K, V]{}
	}
	return m.interval(iter.Key(), iter.Value())
}

// Insert inserts a new interval into this map, with the given associated value.
// Both endpoints are inclusive.
//
// If [start, end] overlaps an interval already in this map, nothing is
// inserted, and the overlapping interval with the least start is returned.
// Otherwise, returns an interval with a nil Value.
func (m *Map[K, V]) Insert(start, end K, value V) (overlap Interval[K, V]) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// Intervals are disjoint, so the least interval that ends at or after
	// start is the least one that could overlap. If it begins after end, so
	// does every interval after it.
	iter := m.tree.Iter()
	if iter.Seek(start) && iter.Value().start <= end {
		return m.interval(iter.Key(), iter.Value())
	}

	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	return Interval[K, V]{}
}

// Intervals returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(m.interval(iter.Key(), iter.Value())) {
				return
			}
		}
	}
}

// Format implements [fmt.Formatter].
func (m *Map[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	m.tree.Scan(func(end K, entry *entry[K, V]) bool {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if entry.start == end {
			fmt.Fprintf(s, "%#v: ", entry.start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", entry.start, end)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), entry.value)
		return true
	})
	fmt.Fprint(s, "}")
}

func (m *Map[K, V]) interval(end K, e *entry[K, V]) Interval[K, V] {
	return Interval[K, V]{Start: e.start, End: end, Value: &e.value}
}
