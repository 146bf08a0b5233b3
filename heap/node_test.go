package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// @Author KHighness
// @Update 2023-07-02

func TestNode_Level(t *testing.T) {
	levels := []struct {
		offset int
		level  int
	}{
		{0, 0},
		{1, 1}, {2, 1},
		{3, 2}, {4, 2}, {5, 2}, {6, 2},
		{7, 3}, {14, 3},
		{15, 4}, {30, 4},
		{1<<20 - 1, 20},
	}
	for _, l := range levels {
		assert.Equal(t, l.level, levelOf(l.offset), "offset %d", l.offset)
		assert.Equal(t, node{l.offset, l.level}, nodeOf(l.offset))
	}
}

func TestNode_Parity(t *testing.T) {
	assert.True(t, rootNode.minLevel())
	assert.False(t, leftMax.minLevel())
	assert.False(t, rightMax.minLevel())
	assert.True(t, nodeOf(3).minLevel())
	assert.True(t, nodeOf(6).minLevel())
	assert.False(t, nodeOf(7).minLevel())
	assert.False(t, nodeOf(14).minLevel())
}

func TestNode_Relatives(t *testing.T) {
	n := nodeOf(4)
	assert.Equal(t, node{1, 1}, n.parent())
	assert.True(t, n.hasGrandParent())
	assert.Equal(t, rootNode, n.grandParent())
	assert.Equal(t, node{9, 3}, n.leftChild())
	assert.Equal(t, node{10, 3}, n.rightChild())
	assert.Equal(t, node{19, 4}, n.firstGrandchild())
	assert.Equal(t, node{22, 4}, n.lastGrandchild())

	assert.False(t, rootNode.hasGrandParent())
	assert.False(t, leftMax.hasGrandParent())
	assert.False(t, rightMax.hasGrandParent())
	assert.True(t, nodeOf(3).hasGrandParent())
	assert.Equal(t, rootNode, nodeOf(3).grandParent())
	assert.Equal(t, rootNode, nodeOf(6).grandParent())
	assert.Equal(t, leftMax, nodeOf(7).grandParent())
}

func TestNode_LevelRanges(t *testing.T) {
	assert.Equal(t, 0, firstOnLevel(0))
	assert.Equal(t, 0, lastOnLevel(0))
	assert.Equal(t, 1, firstOnLevel(1))
	assert.Equal(t, 2, lastOnLevel(1))
	assert.Equal(t, 7, firstOnLevel(3))
	assert.Equal(t, 14, lastOnLevel(3))

	lo, hi, ok := nodesOnLevel(2, 100)
	assert.True(t, ok)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 6, hi)

	// Partial last level clamps to the final element.
	lo, hi, ok = nodesOnLevel(2, 5)
	assert.True(t, ok)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 4, hi)

	// A level starting at or beyond the limit yields no range.
	_, _, ok = nodesOnLevel(2, 3)
	assert.False(t, ok)
	_, _, ok = nodesOnLevel(0, 0)
	assert.False(t, ok)
}
