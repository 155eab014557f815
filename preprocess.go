package atlaspack

import (
	"cmp"
	"image"
	"slices"
)

// packItem is the internal, fully pre-processed unit the engines and the
// multipage driver operate on: content size after trim, the reserved slot
// size (content + padding + extrusion), and the frame offset inside that
// slot. This generalizes the teacher's padSize/unpadRect pair (previously
// algorithm.go) into a single reusable reservation computed once up front,
// instead of being re-derived by every engine on every insert.
type packItem struct {
	Key         string
	ContentW    int
	ContentH    int
	SlotW       int
	SlotH       int
	FrameOffset Point
	Source      Rect
	SourceSize  Size
	Trimmed     bool
	Padding     int
	Extrusion   int
}

// reserveSlot computes the reserved slot dimensions and the frame offset
// inside that slot for a sprite of the given content size, per §4.1. The
// slot extends the content by texture_padding shared with neighbors plus
// texture_extrusion replicated on every edge, so the rendered pixels never
// extend past the reserved slot. Integer division truncates; half-padding
// on even padding values is symmetric.
func reserveSlot(contentW, contentH, padding, extrusion int) (slotW, slotH int, offset Point) {
	margin := padding + 2*extrusion
	slotW = contentW + margin
	slotH = contentH + margin
	off := extrusion + padding/2
	offset = Point{X: off, Y: off}
	return
}

// trimItem runs the alpha-trim half of the pre-processing stage for a single
// InputItem, producing the TrimmedItem per §3's data model. ok is false when
// the item is fully transparent and must be skipped.
func trimItem(in InputItem, cfg *PackerConfig) (item TrimmedItem, ok bool) {
	source := NewRect(0, 0, in.SrcW, in.SrcH)
	sourceSize := NewSize(in.SrcW, in.SrcH)

	if cfg.Trim && in.Pixels != nil {
		bbox, any := trimBBox(in.Pixels, cfg.TrimThreshold)
		if !any {
			return TrimmedItem{}, false
		}
		return TrimmedItem{
			Key:        in.Key,
			TrimRect:   bbox,
			SourceSize: sourceSize,
			Trimmed:    bbox != source,
		}, true
	}

	return TrimmedItem{Key: in.Key, TrimRect: source, SourceSize: sourceSize, Trimmed: false}, true
}

// toPackItem reserves the slot for a trimmed item's content and assembles
// the internal packItem the engines operate on.
func toPackItem(ti TrimmedItem, cfg *PackerConfig) packItem {
	slotW, slotH, offset := reserveSlot(ti.TrimRect.Width, ti.TrimRect.Height, cfg.TexturePadding, cfg.TextureExtrusion)
	return packItem{
		Key:         ti.Key,
		ContentW:    ti.TrimRect.Width,
		ContentH:    ti.TrimRect.Height,
		SlotW:       slotW,
		SlotH:       slotH,
		FrameOffset: offset,
		Source:      ti.TrimRect,
		SourceSize:  ti.SourceSize,
		Trimmed:     ti.Trimmed,
		Padding:     cfg.TexturePadding,
		Extrusion:   cfg.TextureExtrusion,
	}
}

// prepareItems validates intake (duplicate keys, zero dimensions), runs the
// trim stage (trimItem) when requested and pixels are available, and
// returns the internal packItem list in input order. Sorting is a separate
// stage (sortItems) that the caller runs afterwards.
func prepareItems(inputs []InputItem, cfg *PackerConfig) ([]packItem, []SkippedItem, error) {
	seen := make(map[string]struct{}, len(inputs))
	items := make([]packItem, 0, len(inputs))
	var skipped []SkippedItem

	for _, in := range inputs {
		if _, dup := seen[in.Key]; dup {
			return nil, nil, newError(InvalidInput, in.Key, errDuplicateKey)
		}
		seen[in.Key] = struct{}{}

		if in.SrcW <= 0 || in.SrcH <= 0 {
			return nil, nil, newError(InvalidInput, in.Key, errZeroDimension)
		}

		ti, ok := trimItem(in, cfg)
		if !ok {
			skipped = append(skipped, SkippedItem{Key: in.Key, Reason: EmptyAfterTrim})
			continue
		}

		items = append(items, toPackItem(ti, cfg))
	}

	return items, skipped, nil
}

// prepareLayoutItems is the LayoutItem counterpart of prepareItems. Per the
// resolved Open Question in §9, caller-supplied Source/SourceSize is
// authoritative and is never re-trimmed.
func prepareLayoutItems(inputs []LayoutItem, cfg *PackerConfig) ([]packItem, error) {
	seen := make(map[string]struct{}, len(inputs))
	items := make([]packItem, 0, len(inputs))

	for _, in := range inputs {
		if _, dup := seen[in.Key]; dup {
			return nil, newError(InvalidInput, in.Key, errDuplicateKey)
		}
		seen[in.Key] = struct{}{}

		if in.Width <= 0 || in.Height <= 0 {
			return nil, newError(InvalidInput, in.Key, errZeroDimension)
		}

		source := NewRect(0, 0, in.Width, in.Height)
		sourceSize := NewSize(in.Width, in.Height)
		if in.Source != nil {
			source = *in.Source
		}
		if in.SourceSize != nil {
			sourceSize = *in.SourceSize
		}

		slotW, slotH, offset := reserveSlot(in.Width, in.Height, cfg.TexturePadding, cfg.TextureExtrusion)
		items = append(items, packItem{
			Key:         in.Key,
			ContentW:    in.Width,
			ContentH:    in.Height,
			SlotW:       slotW,
			SlotH:       slotH,
			FrameOffset: offset,
			Source:      source,
			SourceSize:  sourceSize,
			Trimmed:     in.Trimmed,
			Padding:     cfg.TexturePadding,
			Extrusion:   cfg.TextureExtrusion,
		})
	}

	return items, nil
}

// trimBBox scans img for pixels whose 8-bit alpha exceeds threshold and
// returns the tightest bounding box containing them, relative to img's
// bounds. The bool return is false when every pixel is transparent.
func trimBBox(img image.Image, threshold uint8) (Rect, bool) {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			// a is alpha scaled to 16 bits; reduce to 8-bit for the
			// threshold comparison spec.md uses.
			a8 := uint8(a >> 8)
			if a8 <= threshold {
				continue
			}
			found = true
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x+1)
			maxY = max(maxY, y+1)
		}
	}

	if !found {
		return Rect{}, false
	}

	ox, oy := bounds.Min.X, bounds.Min.Y
	return NewRect(minX-ox, minY-oy, maxX-minX, maxY-minY), true
}

// sortItems stably orders items per the requested SortOrder, with Key
// ascending as the universal tie-breaker, generalizing the teacher's single
// always-descending SortFunc family (sort.go) into the spec's named orders.
func sortItems(items []packItem, order SortOrder) {
	less := func(a, b packItem) int {
		switch order {
		case SortMaxSideDesc:
			if c := cmp.Compare(max(b.SlotW, b.SlotH), max(a.SlotW, a.SlotH)); c != 0 {
				return c
			}
		case SortHeightDesc:
			if c := cmp.Compare(b.SlotH, a.SlotH); c != 0 {
				return c
			}
		case SortWidthDesc:
			if c := cmp.Compare(b.SlotW, a.SlotW); c != 0 {
				return c
			}
		case SortPerimeterDesc:
			bp := (b.SlotW + b.SlotH) << 1
			ap := (a.SlotW + a.SlotH) << 1
			if c := cmp.Compare(bp, ap); c != 0 {
				return c
			}
		case SortKeyAsc:
			// fall through to the key compare below directly.
		default: // SortAreaDesc
			if c := cmp.Compare(b.SlotW*b.SlotH, a.SlotW*a.SlotH); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Key, b.Key)
	}
	slices.SortStableFunc(items, less)
}

// vim: ts=4
