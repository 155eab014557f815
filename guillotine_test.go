package atlaspack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuillotinePlaceAndSplit(t *testing.T) {
	e := newGuillotineEngine(64, 64, GBestArea, GSplitShortLeftoverAxis)
	pl, err := e.Place(packItem{Key: "a", SlotW: 20, SlotH: 10}, false)
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 20, 10), pl.Rect)
	assert.Equal(t, 200, e.UsedArea())
}

func TestGuillotineNoFit(t *testing.T) {
	e := newGuillotineEngine(16, 16, GBestArea, GSplitShortLeftoverAxis)
	_, err := e.Place(packItem{Key: "big", SlotW: 17, SlotH: 5}, false)
	assert.ErrorIs(t, err, errNoFit)
}

func TestGuillotineExactFitConsumesWholeFreeRect(t *testing.T) {
	e := newGuillotineEngine(32, 32, GBestArea, GSplitShortLeftoverAxis)
	pl, err := e.Place(packItem{Key: "a", SlotW: 32, SlotH: 32}, false)
	require.NoError(t, err)
	assert.Equal(t, NewRect(0, 0, 32, 32), pl.Rect)
	assert.Empty(t, e.freeRects)
}

func TestGuillotineBestFitDoesNotMutate(t *testing.T) {
	e := newGuillotineEngine(32, 32, GBestArea, GSplitShortLeftoverAxis)
	before := len(e.freeRects)

	rect, rotated, ok := e.bestFit(10, 10, false)
	require.True(t, ok)
	assert.False(t, rotated)
	assert.Equal(t, NewRect(0, 0, 10, 10), rect)
	assert.Len(t, e.freeRects, before, "bestFit must not mutate the free list")

	e.consume(rect)
	assert.Equal(t, 100, e.UsedArea())
}

func TestGuillotineFreeReturnsSlotAndMerges(t *testing.T) {
	e := newGuillotineEngine(20, 10, GBestArea, GSplitShortLeftoverAxis)
	pl, err := e.Place(packItem{Key: "a", SlotW: 20, SlotH: 10}, false)
	require.NoError(t, err)
	assert.Equal(t, 200, e.UsedArea())

	e.free(pl.Rect)
	assert.Equal(t, 0, e.UsedArea())
	require.Len(t, e.freeRects, 1)
	assert.Equal(t, NewRect(0, 0, 20, 10), e.freeRects[0])
}

func TestGuillotineNoOverlapAcrossChoiceAndSplit(t *testing.T) {
	choices := []GChoice{GBestArea, GWorstArea, GBestShortSide, GBestLongSide}
	splits := []GSplit{GSplitShortLeftoverAxis, GSplitLongLeftoverAxis, GSplitMinArea, GSplitMaxArea}
	sizes := [][2]int{{20, 20}, {15, 30}, {30, 15}, {10, 10}, {5, 5}}

	for _, c := range choices {
		for _, s := range splits {
			e := newGuillotineEngine(64, 64, c, s)
			var placed []Rect
			for i, sz := range sizes {
				pl, err := e.Place(packItem{Key: string(rune('a' + i)), SlotW: sz[0], SlotH: sz[1]}, true)
				require.NoError(t, err, "choice %v split %v item %d", c, s, i)
				placed = append(placed, pl.Rect)
			}
			for i := 0; i < len(placed); i++ {
				for j := i + 1; j < len(placed); j++ {
					assert.False(t, placed[i].Intersects(placed[j]))
				}
			}
		}
	}
}

// vim: ts=4
