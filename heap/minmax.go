// Package heap provides a double-ended priority queue backed by a min-max
// heap: a single slice-shaped tree whose even levels hold minima and odd
// levels hold maxima, giving O(1) access to both extremes and O(log n)
// insertion, extraction and replacement.
//
// See "Min-Max Heaps and Generalized Priority Queues", Atkinson et al., 1986.
// https://doi.org/10.1145/6617.6621
package heap

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// @Author KHighness
// @Update 2023-07-02

// ErrEmpty reports an extraction or replacement attempted on a heap with no
// elements. It is the only error this package returns; the optional-style
// accessors (Peek, Take) signal emptiness with ok == false instead.
var ErrEmpty = errors.New("heap: empty")

// MinMax is a min-max heap over elements ordered by a less function.
//
// A MinMax is an ordinary in-memory value: no locking, no background work.
// Callers sharing one across goroutines must synchronize externally or hand
// each goroutine its own Clone.
type MinMax[E any] struct {
	elems []E
	less  func(a, b E) bool
}

// New creates a heap over a naturally ordered element type, bulk-building
// from the given elements in O(n).
func New[E constraints.Ordered](elems ...E) *MinMax[E] {
	return NewFunc(func(a, b E) bool { return a < b }, elems...)
}

// NewFunc creates a heap ordered by less, bulk-building from the given
// elements in O(n). less must define a strict weak ordering.
func NewFunc[E any](less func(a, b E) bool, elems ...E) *MinMax[E] {
	h := &MinMax[E]{
		elems: append([]E(nil), elems...),
		less:  less,
	}
	h.heapify()
	return h
}

// Len returns the number of elements in the heap.
func (h *MinMax[E]) Len() int { return len(h.elems) }

// IsEmpty checks if the heap has no elements.
func (h *MinMax[E]) IsEmpty() bool { return len(h.elems) == 0 }

// Unordered returns a copy of the backing slice in heap order. The order is
// not sorted order: beyond the min-max property it carries no guarantee at
// all, and callers must not rely on element positions.
func (h *MinMax[E]) Unordered() []E {
	return append([]E(nil), h.elems...)
}

// Reserve grows the backing capacity to hold at least n elements without
// changing the logical contents.
func (h *MinMax[E]) Reserve(n int) {
	if n <= cap(h.elems) {
		return
	}
	grown := make([]E, len(h.elems), n)
	copy(grown, h.elems)
	h.elems = grown
}

// Clear removes all elements, optionally retaining the backing capacity for
// reuse.
func (h *MinMax[E]) Clear(keepCapacity bool) {
	if !keepCapacity {
		h.elems = nil
		return
	}
	var zero E
	for i := range h.elems {
		h.elems[i] = zero
	}
	h.elems = h.elems[:0]
}

// Clone returns an independent copy of the heap in O(n). Mutating the clone
// never affects the original.
func (h *MinMax[E]) Clone() *MinMax[E] {
	return &MinMax[E]{
		elems: append([]E(nil), h.elems...),
		less:  h.less,
	}
}

// PeekMin returns the minimum element without mutation, or ok == false on an
// empty heap. O(1).
func (h *MinMax[E]) PeekMin() (_ E, ok bool) {
	if h.IsEmpty() {
		var zero E
		return zero, false
	}
	return h.elems[rootNode.offset], true
}

// PeekMax returns the maximum element without mutation, or ok == false on an
// empty heap. O(1).
func (h *MinMax[E]) PeekMax() (_ E, ok bool) {
	if h.IsEmpty() {
		var zero E
		return zero, false
	}
	return h.elems[h.maxOffset()], true
}

// PopMin removes and returns the minimum element. It returns ErrEmpty on an
// empty heap. O(log n).
func (h *MinMax[E]) PopMin() (E, error) {
	if h.IsEmpty() {
		var zero E
		return zero, ErrEmpty
	}
	return h.remove(rootNode.offset), nil
}

// PopMax removes and returns the maximum element. It returns ErrEmpty on an
// empty heap. O(log n).
func (h *MinMax[E]) PopMax() (E, error) {
	if h.IsEmpty() {
		var zero E
		return zero, ErrEmpty
	}
	return h.remove(h.maxOffset()), nil
}

// TakeMin removes and returns the minimum element, or ok == false on an empty
// heap. O(log n).
func (h *MinMax[E]) TakeMin() (_ E, ok bool) {
	if h.IsEmpty() {
		var zero E
		return zero, false
	}
	return h.remove(rootNode.offset), true
}

// TakeMax removes and returns the maximum element, or ok == false on an empty
// heap. O(log n).
func (h *MinMax[E]) TakeMax() (_ E, ok bool) {
	if h.IsEmpty() {
		var zero E
		return zero, false
	}
	return h.remove(h.maxOffset()), true
}

// ReplaceMin swaps x in for the minimum element and returns the old minimum.
// It returns ErrEmpty on an empty heap. Cheaper than PopMin followed by Push:
// only a single sift-down runs. O(log n).
func (h *MinMax[E]) ReplaceMin(x E) (E, error) {
	if h.IsEmpty() {
		var zero E
		return zero, ErrEmpty
	}
	old := h.elems[rootNode.offset]
	h.elems[rootNode.offset] = x
	h.descend(rootNode)
	return old, nil
}

// ReplaceMax swaps x in for the maximum element and returns the old maximum.
// It returns ErrEmpty on an empty heap. O(log n).
func (h *MinMax[E]) ReplaceMax(x E) (E, error) {
	if h.IsEmpty() {
		var zero E
		return zero, ErrEmpty
	}
	i := h.maxOffset()
	old := h.elems[i]
	// A replacement below the current minimum belongs at the root; the
	// displaced old minimum then sifts down from the max slot. Sift-down
	// alone cannot fix this case when the max slot is a leaf.
	if i > 0 && h.less(x, h.elems[rootNode.offset]) {
		x, h.elems[rootNode.offset] = h.elems[rootNode.offset], x
	}
	h.elems[i] = x
	h.descend(nodeOf(i))
	return old, nil
}

// Push inserts x. Amortized O(log n).
func (h *MinMax[E]) Push(x E) {
	h.elems = append(h.elems, x)
	h.siftUp(len(h.elems) - 1)
}

// PushAll inserts a batch of k elements. For small batches each element is
// sifted up individually (O(k log(n+k))); once k crosses (n+k)/log2(n+k) the
// batch is appended and the whole heap rebuilt in O(n+k) instead.
func (h *MinMax[E]) PushAll(xs ...E) {
	k := len(xs)
	if k == 0 {
		return
	}
	total := len(h.elems) + k
	if k*bits.Len(uint(total)) >= total {
		h.elems = append(h.elems, xs...)
		h.heapify()
		return
	}
	for _, x := range xs {
		h.Push(x)
	}
}

// String renders the heap one level per line, for debugging.
func (h *MinMax[E]) String() string {
	var sb strings.Builder
	for lvl := 0; ; lvl++ {
		lo, hi, ok := nodesOnLevel(lvl, len(h.elems))
		if !ok {
			break
		}
		fmt.Fprintf(&sb, "%d: %v\n", lvl, h.elems[lo:hi+1])
	}
	return sb.String()
}

// maxOffset returns the offset holding the maximum. With three or more
// elements the maximum sits at the larger of the root's two children; with
// fewer it is the last element. Callers guarantee a non-empty heap.
func (h *MinMax[E]) maxOffset() int {
	if len(h.elems) <= 2 {
		return len(h.elems) - 1
	}
	if h.less(h.elems[leftMax.offset], h.elems[rightMax.offset]) {
		return rightMax.offset
	}
	return leftMax.offset
}

// remove deletes the element at offset t by moving the last element into its
// place and sifting it down. Callers guarantee t is in range.
func (h *MinMax[E]) remove(t int) E {
	n := len(h.elems) - 1
	out := h.elems[t]
	h.elems[t] = h.elems[n]
	var zero E
	h.elems[n] = zero
	h.elems = h.elems[:n]
	if t < n {
		h.descend(nodeOf(t))
	}
	return out
}

// heapify rebuilds the invariant bottom-up in O(n), Floyd-style: every
// non-leaf offset is sifted down as if freshly placed. Leaves need no pass.
func (h *MinMax[E]) heapify() {
	n := len(h.elems)
	for i := (n >> 1) - 1; i >= 0; i-- {
		h.descend(nodeOf(i))
	}
}

// better reports whether the element at offset i is a strictly better
// extremum candidate than the one at offset j: smaller when max is false,
// greater when max is true.
func (h *MinMax[E]) better(i, j int, max bool) bool {
	if max {
		return h.less(h.elems[j], h.elems[i])
	}
	return h.less(h.elems[i], h.elems[j])
}

// siftUp restores the invariant after the element at offset i has been
// appended. The parent is checked exactly once: a violation there means the
// element belongs on the opposite level parity, so it swaps into the parent
// slot and the comparison sense flips. From then on only grandparents are
// walked, two levels at a time on a fixed parity.
func (h *MinMax[E]) siftUp(i int) {
	if i == 0 {
		return
	}
	n := nodeOf(i)
	p := n.parent()
	if n.minLevel() {
		if h.less(h.elems[p.offset], h.elems[n.offset]) {
			h.swap(p.offset, n.offset)
			h.ascend(p, true)
		} else {
			h.ascend(n, false)
		}
		return
	}
	if h.less(h.elems[n.offset], h.elems[p.offset]) {
		h.swap(p.offset, n.offset)
		h.ascend(p, false)
	} else {
		h.ascend(n, true)
	}
}

// ascend walks grandparents on a fixed level parity, swapping while the
// two-level ordering is violated.
func (h *MinMax[E]) ascend(n node, max bool) {
	for n.hasGrandParent() {
		g := n.grandParent()
		if !h.better(n.offset, g.offset, max) {
			return
		}
		h.swap(n.offset, g.offset)
		n = g
	}
}

// descend restores the invariant below n after the element there has been
// replaced. Each round picks the best of up to two children and four
// grandchildren. A winning grandchild swap can leave the displaced element
// under a violated parent one level up, which is repaired before the descent
// continues; a winning child terminates the descent outright.
func (h *MinMax[E]) descend(n node) {
	max := !n.minLevel()
	limit := len(h.elems)
	for {
		l := n.leftChild()
		if l.offset >= limit {
			return
		}
		m := l
		if r := l.offset + 1; r < limit && h.better(r, m.offset, max) {
			m = node{offset: r, level: l.level}
		}
		grandchild := false
		last := n.lastGrandchild().offset
		for g := n.firstGrandchild().offset; g <= last && g < limit; g++ {
			if h.better(g, m.offset, max) {
				m = node{offset: g, level: n.level + 2}
				grandchild = true
			}
		}
		if !h.better(m.offset, n.offset, max) {
			return
		}
		h.swap(m.offset, n.offset)
		if !grandchild {
			return
		}
		if p := m.parent(); h.better(p.offset, m.offset, max) {
			h.swap(p.offset, m.offset)
		}
		n = m
	}
}

func (h *MinMax[E]) swap(i, j int) {
	h.elems[i], h.elems[j] = h.elems[j], h.elems[i]
}
