package heap

import "math/bits"

// @Author KHighness
// @Update 2023-07-02

// node addresses a slot in the implicit tree laid over the backing slice.
// Offsets use the platform's native signed index width (int), so the relative
// formulas stay far from overflow for any heap that fits in memory. The level
// is carried alongside the offset so that relatives can be reached without
// recomputing the logarithm.
type node struct {
	offset int
	level  int
}

var (
	rootNode = node{offset: 0, level: 0}
	leftMax  = node{offset: 1, level: 1}
	rightMax = node{offset: 2, level: 1}
)

// nodeOf returns the node at the given offset.
func nodeOf(offset int) node {
	return node{offset: offset, level: levelOf(offset)}
}

// levelOf returns floor(log2(offset+1)), the depth of the offset in the tree.
func levelOf(offset int) int {
	return bits.Len(uint(offset)+1) - 1
}

// minLevel reports whether the node lives on a min level. Even levels hold
// minima, odd levels hold maxima; the root is a min level.
func (n node) minLevel() bool {
	return n.level%2 == 0
}

func (n node) isRoot() bool {
	return n.offset == 0
}

func (n node) parent() node {
	return node{offset: (n.offset - 1) / 2, level: n.level - 1}
}

// hasGrandParent reports whether the node is below the first two levels.
func (n node) hasGrandParent() bool {
	return n.offset > 2
}

// grandParent is defined only when hasGrandParent holds.
func (n node) grandParent() node {
	return node{offset: (n.offset - 3) / 4, level: n.level - 2}
}

func (n node) leftChild() node {
	return node{offset: 2*n.offset + 1, level: n.level + 1}
}

func (n node) rightChild() node {
	return node{offset: 2*n.offset + 2, level: n.level + 1}
}

// firstGrandchild and lastGrandchild bound the four contiguous offsets two
// levels down; none of them need exist in a given heap.
func (n node) firstGrandchild() node {
	return node{offset: 4*n.offset + 3, level: n.level + 2}
}

func (n node) lastGrandchild() node {
	return node{offset: 4*n.offset + 6, level: n.level + 2}
}

// firstOnLevel returns the offset of the leftmost node on a level.
func firstOnLevel(level int) int {
	return 1<<level - 1
}

// lastOnLevel returns the offset of the rightmost node on a full level.
func lastOnLevel(level int) int {
	return 1<<(level+1) - 2
}

// nodesOnLevel returns the closed offset range of a level clamped to a heap
// of limit elements. ok is false when the level starts at or beyond limit.
func nodesOnLevel(level, limit int) (lo, hi int, ok bool) {
	lo = firstOnLevel(level)
	if lo >= limit {
		return 0, 0, false
	}
	hi = lastOnLevel(level)
	if hi > limit-1 {
		hi = limit - 1
	}
	return lo, hi, true
}
