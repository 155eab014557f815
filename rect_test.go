package atlaspack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 10, 10)
	inner := NewRect(2, 2, 4, 4)
	assert.True(t, outer.ContainsRect(inner))
	assert.False(t, inner.ContainsRect(outer))

	edge := NewRect(0, 0, 10, 10)
	assert.True(t, outer.ContainsRect(edge))

	spill := NewRect(8, 8, 4, 4)
	assert.False(t, outer.ContainsRect(spill))
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(9, 9, 5, 5)
	c := NewRect(10, 10, 5, 5)

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c), "rects touching only at a corner do not overlap")
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	got := a.Intersect(b)
	assert.Equal(t, NewRect(5, 5, 5, 5), got)

	none := NewRect(20, 20, 5, 5)
	assert.True(t, a.Intersect(none).IsEmpty())
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 20)
	assert.Equal(t, 3, r.Left())
	assert.Equal(t, 4, r.Top())
	assert.Equal(t, 13, r.Right())
	assert.Equal(t, 24, r.Bottom())
}

func TestSizeHelpers(t *testing.T) {
	sz := NewSize(8, 3)
	assert.Equal(t, 24, sz.Area())
	assert.Equal(t, 22, sz.Perimeter())
	assert.Equal(t, 8, sz.MaxSide())
	assert.Equal(t, 3, sz.MinSide())
}

// vim: ts=4
