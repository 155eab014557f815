package atlaspack

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveSlotSymmetricOffset(t *testing.T) {
	slotW, slotH, offset := reserveSlot(30, 10, 2, 1)
	assert.Equal(t, 34, slotW)
	assert.Equal(t, 14, slotH)
	assert.Equal(t, Point{X: 2, Y: 2}, offset)
}

func TestReserveSlotNoMargin(t *testing.T) {
	slotW, slotH, offset := reserveSlot(40, 20, 0, 0)
	assert.Equal(t, 40, slotW)
	assert.Equal(t, 20, slotH)
	assert.Equal(t, Point{X: 0, Y: 0}, offset)
}

func TestPrepareItemsDuplicateKey(t *testing.T) {
	cfg := NewPackerConfig()
	_, _, err := prepareItems([]InputItem{
		{Key: "a", SrcW: 10, SrcH: 10},
		{Key: "a", SrcW: 5, SrcH: 5},
	}, &cfg)

	var perr *PackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, InvalidInput, perr.Kind)
}

func TestPrepareItemsZeroDimension(t *testing.T) {
	cfg := NewPackerConfig()
	_, _, err := prepareItems([]InputItem{{Key: "a", SrcW: 0, SrcH: 10}}, &cfg)

	var perr *PackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, InvalidInput, perr.Kind)
}

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestTrimItemProducesTrimmedItem(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Trim = true
	cfg.TrimThreshold = 0

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	opaque := color.RGBA{R: 255, A: 255}
	for y := 2; y < 6; y++ {
		for x := 3; x < 7; x++ {
			img.SetRGBA(x, y, opaque)
		}
	}

	ti, ok := trimItem(InputItem{Key: "a", SrcW: 10, SrcH: 10, Pixels: img}, &cfg)
	require.True(t, ok)
	assert.Equal(t, "a", ti.Key)
	assert.Equal(t, NewRect(3, 2, 4, 4), ti.TrimRect)
	assert.Equal(t, NewSize(10, 10), ti.SourceSize)
	assert.True(t, ti.Trimmed)

	pi := toPackItem(ti, &cfg)
	assert.Equal(t, 4, pi.ContentW)
	assert.Equal(t, 4, pi.ContentH)
}

func TestTrimItemNoTrimWithoutPixels(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Trim = true

	ti, ok := trimItem(InputItem{Key: "a", SrcW: 8, SrcH: 6}, &cfg)
	require.True(t, ok)
	assert.Equal(t, NewRect(0, 0, 8, 6), ti.TrimRect)
	assert.False(t, ti.Trimmed)
}

func TestPrepareItemsTrim(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Trim = true
	cfg.TrimThreshold = 0

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	opaque := color.RGBA{R: 255, A: 255}
	for y := 2; y < 6; y++ {
		for x := 3; x < 7; x++ {
			img.SetRGBA(x, y, opaque)
		}
	}

	items, skipped, err := prepareItems([]InputItem{{Key: "a", SrcW: 10, SrcH: 10, Pixels: img}}, &cfg)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, items, 1)
	assert.True(t, items[0].Trimmed)
	assert.Equal(t, NewRect(3, 2, 4, 4), items[0].Source)
	assert.Equal(t, 4, items[0].ContentW)
	assert.Equal(t, 4, items[0].ContentH)
}

func TestPrepareItemsEmptyAfterTrim(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Trim = true
	cfg.TrimThreshold = 10

	img := uniformImage(4, 4, color.RGBA{})
	items, skipped, err := prepareItems([]InputItem{{Key: "a", SrcW: 4, SrcH: 4, Pixels: img}}, &cfg)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.Len(t, skipped, 1)
	assert.Equal(t, EmptyAfterTrim, skipped[0].Reason)
}

func TestPrepareLayoutItemsNeverRetrims(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Trim = true

	src := NewRect(1, 1, 2, 2)
	size := NewSize(4, 4)
	items, err := prepareLayoutItems([]LayoutItem{
		{Key: "a", Width: 2, Height: 2, Source: &src, SourceSize: &size, Trimmed: true},
	}, &cfg)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, src, items[0].Source)
	assert.Equal(t, size, items[0].SourceSize)
	assert.True(t, items[0].Trimmed)
}

func TestSortItemsAreaDescWithKeyTieBreak(t *testing.T) {
	items := []packItem{
		{Key: "b", SlotW: 10, SlotH: 10},
		{Key: "a", SlotW: 10, SlotH: 10},
		{Key: "c", SlotW: 20, SlotH: 5},
	}
	sortItems(items, SortAreaDesc)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].Key)
	assert.Equal(t, "a", items[1].Key)
	assert.Equal(t, "b", items[2].Key)
}

func TestSortItemsKeyAsc(t *testing.T) {
	items := []packItem{
		{Key: "z", SlotW: 1, SlotH: 1},
		{Key: "a", SlotW: 100, SlotH: 100},
	}
	sortItems(items, SortKeyAsc)
	assert.Equal(t, "a", items[0].Key)
	assert.Equal(t, "z", items[1].Key)
}

// vim: ts=4
