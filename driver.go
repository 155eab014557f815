package atlaspack

import "errors"

// newPlacer builds a fresh single-page engine for the given family, sized
// to the page's placeable area (already net of border padding). A fresh
// instance is created per page so algorithm state is initialized
// identically every run, matching §4.6's determinism requirement.
func newPlacer(family Family, cfg *PackerConfig, width, height int) placer {
	switch family {
	case FamilySkyline:
		return newSkylineEngine(width, height, cfg.SkylineHeuristic, cfg.UseWasteMap)
	case FamilyGuillotine:
		return newGuillotineEngine(width, height, cfg.GChoice, cfg.GSplit)
	default: // FamilyMaxRects
		return newMaxRectsEngine(width, height, cfg.MRHeuristic, cfg.MRReference)
	}
}

// algorithmName renders the Atlas.Meta.Algorithm string for a concrete,
// non-Auto family selection.
func algorithmName(family Family, cfg *PackerConfig) string {
	switch family {
	case FamilySkyline:
		return family.String() + "/" + cfg.SkylineHeuristic.String()
	case FamilyGuillotine:
		return family.String() + "/" + cfg.GChoice.String() + "+" + cfg.GSplit.String()
	default:
		return FamilyMaxRects.String() + "/" + cfg.MRHeuristic.String()
	}
}

// pageDimensions applies the pow2/square rounding from §4.6 step 1,
// rounding down to the largest size satisfying the requested constraints.
func pageDimensions(cfg *PackerConfig) (width, height int) {
	width, height = cfg.MaxWidth, cfg.MaxHeight
	if cfg.PowerOfTwo {
		width = largestPowerOfTwo(width)
		height = largestPowerOfTwo(height)
	}
	if cfg.Square {
		side := min(width, height)
		width, height = side, side
	}
	return
}

// runDriver implements the multipage driver of §4.6 for a single concrete
// (family, heuristic) selection: items are fed to one engine per page,
// spilling to a new page on NoFit and failing with ItemTooLarge when an
// item cannot fit even an empty page.
func runDriver(items []packItem, cfg *PackerConfig, family Family) (*Atlas, error) {
	border := cfg.BorderPadding
	pageW, pageH := pageDimensions(cfg)
	effW, effH := pageW-2*border, pageH-2*border
	if effW <= 0 || effH <= 0 {
		return nil, newError(InvalidInput, "", errConfigBounds)
	}

	var pages []Page
	pageID := 0
	engine := newPlacer(family, cfg, effW, effH)
	var frames []PlacedFrame

	for _, it := range items {
		pl, err := engine.Place(it, cfg.AllowRotation)
		if errors.Is(err, errNoFit) {
			pages = append(pages, buildPage(pageID, pageW, pageH, border, frames, cfg))
			pageID++
			frames = nil
			engine = newPlacer(family, cfg, effW, effH)
			pl, err = engine.Place(it, cfg.AllowRotation)
			if errors.Is(err, errNoFit) {
				return nil, newError(ItemTooLarge, it.Key, nil)
			}
		}
		if err != nil {
			return nil, newError(InternalInvariantViolation, it.Key, err)
		}
		frames = append(frames, buildFrame(it, pl, border))
	}
	pages = append(pages, buildPage(pageID, pageW, pageH, border, frames, cfg))

	atlas := &Atlas{
		Pages: pages,
		Meta: Meta{
			SchemaVersion:  "1",
			Algorithm:      algorithmName(family, cfg),
			GeneratedPages: len(pages),
		},
	}
	atlas.Meta.Fingerprint = atlas.Fingerprint()
	return atlas, nil
}

// buildFrame converts an engine placement back into public coordinates,
// applying the border offset and the slot's frame offset computed by
// reserveSlot. The frame offset is symmetric on both axes, so it applies
// unchanged whether or not the item was rotated.
func buildFrame(it packItem, pl placement, border int) PlacedFrame {
	contentW, contentH := it.ContentW, it.ContentH
	if pl.Rotated {
		contentW, contentH = contentH, contentW
	}
	return PlacedFrame{
		Key: it.Key,
		Frame: Rect{
			Point: Point{
				X: pl.Rect.X + border + it.FrameOffset.X,
				Y: pl.Rect.Y + border + it.FrameOffset.Y,
			},
			Size: Size{Width: contentW, Height: contentH},
		},
		Rotated:     pl.Rotated,
		Trimmed:     it.Trimmed,
		Source:      it.Source,
		SourceSize:  it.SourceSize,
		Pivot:       Point{X: it.SourceSize.Width / 2, Y: it.SourceSize.Height / 2},
		SlotPadding: it.Padding,
		Extrusion:   it.Extrusion,
	}
}

// buildPage assembles a Page, shrinking width/height to the tightest
// bounding box of its placed frames per the resolved Open Question in §9,
// unless power_of_two or square already pins an exact size.
func buildPage(id, width, height, border int, frames []PlacedFrame, cfg *PackerConfig) Page {
	w, h := width, height
	if !cfg.PowerOfTwo && !cfg.Square && len(frames) > 0 {
		maxX, maxY := 0, 0
		for _, f := range frames {
			maxX = max(maxX, f.Frame.Right())
			maxY = max(maxY, f.Frame.Bottom())
		}
		w = maxX + border
		h = maxY + border
	}
	return Page{ID: id, Width: w, Height: h, Frames: frames}
}

// vim: ts=4
