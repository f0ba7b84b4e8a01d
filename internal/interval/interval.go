// Copyright 2023-2026 The Prim Language Authors
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

// Package interval provides a stabbing map over closed integer intervals.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is any integer type usable as an interval endpoint.
type Endpoint = constraints.Integer

// Segment is a maximal run of points covered by the same set of intervals
// in a [Cover].
type Segment[K Endpoint, V any] struct {
	Start, End K // Inclusive on both ends.
	Value      V
}

// Contains reports whether point lies within the segment.
func (s Segment[K, V]) Contains(point K) bool {
	return s.Start <= point && point <= s.End
}

// Cover answers stabbing queries over a collection of closed intervals:
// after some number of [Cover.Add] calls, [Cover.At] reports which
// intervals cover a given point and with what values, in insertion order.
//
// The zero value is empty and ready to use.
type Cover[K Endpoint, V any] struct {
	// Keyed by segment end, so that Seek(point) lands on the only segment
	// that can contain point.
	tree    btree.Map[K, *Segment[K, []V]]
	pending []*Segment[K, []V] // Scratch space for Add.
}

// At returns the segment containing point.
//
// The segment's Value holds the value of every added interval that covers
// point, in the order those intervals were added. If no interval covers
// point, the Value is nil.
func (c *Cover[K, V]) At(point K) Segment[K, []V] {
	it := c.tree.Iter()
	found := it.Seek(point)

	if !found || point < it.Value().Start {
		// Seek guarantees point <= End for the segment it lands on, so
		// only the start needs checking.
		return Segment[K, []V]{}
	}

	return *it.Value()
}

// Segments returns an iterator over the segments of the cover, in
// ascending order. Segments are pairwise disjoint; one is yielded per
// maximal run of points covered by the same intervals.
func (c *Cover[K, V]) Segments() iter.Seq[Segment[K, []V]] {
	return func(yield func(Segment[K, []V]) bool) {
		it := c.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// Add records an interval with an associated value. Both endpoints are
// inclusive; Add panics if start > end.
//
// Returns true if the interval was disjoint from all intervals added
// before it.
func (c *Cover[K, V]) Add(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	var prev *Segment[K, []V]
	for seg := range c.overlapping(start, end) {
		if prev == nil && start < seg.Start {
			// The new interval begins before the first overlapping
			// segment; cover the points in between.
			c.pending = append(c.pending, &Segment[K, []V]{
				Start: start,
				End:   seg.Start - 1,
				Value: []V{value},
			})
		}

		// Keep the original value list around: pieces split off outside
		// [start, end] must not carry value.
		//
		// NB: split pieces share their value list, so every append below
		// goes through a clipped copy; an in-place append could write
		// into a list another segment still reads.
		orig := seg.Value

		// A segment sticking out past end gets split at end.
		if seg.Contains(end) && end < seg.End {
			next := &Segment[K, []V]{
				Start: seg.Start,
				End:   end,
				Value: append(slices.Clip(orig), value),
			}

			// Shorten the existing segment.
			seg.Start = end + 1

			// Queue next for insertion and continue with it as the
			// overlapping segment.
			c.pending = append(c.pending, next)
			seg = next
		}

		// Likewise, a segment sticking out before start gets split there.
		if seg.Contains(start) && seg.Start < start {
			next := &Segment[K, []V]{
				Start: seg.Start,
				End:   start - 1,
				Value: orig,
			}

			// Queue next for insertion, but keep seg as the current
			// segment; next lies entirely outside [start, end].
			c.pending = append(c.pending, next)

			// Shorten the existing segment to the overlapping part.
			seg.Start = start
		}

		// Record the new value on the overlap.
		seg.Value = append(slices.Clip(orig), value)

		if prev != nil && prev.End < seg.Start {
			// Cover the gap between consecutive overlapping segments.
			c.pending = append(c.pending, &Segment[K, []V]{
				Start: prev.End + 1,
				End:   seg.Start - 1,
				Value: []V{value},
			})
		}

		prev = seg
	}

	if prev != nil && prev.End < end {
		// The new interval extends past the last overlapping segment.
		c.pending = append(c.pending, &Segment[K, []V]{
			Start: prev.End + 1,
			End:   end,
			Value: []V{value},
		})
	}

	for _, seg := range c.pending {
		c.tree.Set(seg.End, seg)
	}
	c.pending = c.pending[:0]

	if prev == nil {
		c.tree.Set(end, &Segment[K, []V]{
			Start: start,
			End:   end,
			Value: []V{value},
		})
	}

	return prev == nil
}

// Format implements [fmt.Formatter].
func (c *Cover[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	c.tree.Scan(func(end K, seg *Segment[K, []V]) bool {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if seg.Start == end {
			fmt.Fprintf(s, "%#v: ", seg.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", seg.Start, end)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), seg.Value)

		return true
	})
	fmt.Fprint(s, "}")
}

// overlapping returns an iterator over the segments that overlap
// [start, end].
func (c *Cover[K, V]) overlapping(start, end K) iter.Seq[*Segment[K, []V]] {
	return func(yield func(*Segment[K, []V]) bool) {
		it := c.tree.Iter()

		// Walk the tree forward from the first segment whose end is at
		// least start. Each such segment overlaps the query until its
		// start passes end; Seek returning false covers both the empty
		// tree and a query past every segment.
		for more := it.Seek(start); more; more = it.Next() {
			if end < it.Value().Start || !yield(it.Value()) {
				return
			}
		}
	}
}
