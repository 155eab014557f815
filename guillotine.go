package atlaspack

import (
	"math"
	"slices"
)

// guillotineEngine implements the Guillotine family from §4.5, directly
// descended from the teacher's guillotinePack (guillotine.go), generalized
// to place one item at a time and exposing a read/commit split (bestFit,
// consume) so a skylineEngine can use a private guillotineEngine instance
// as its waste map without double-placing a candidate it decides not to
// use.
type guillotineEngine struct {
	algorithmBase
	choice    GChoice
	split     GSplit
	freeRects []Rect
}

func newGuillotineEngine(width, height int, choice GChoice, split GSplit) *guillotineEngine {
	e := &guillotineEngine{choice: choice, split: split}
	e.maxWidth, e.maxHeight = width, height
	e.freeRects = append(e.freeRects, NewRect(0, 0, width, height))
	return e
}

func (e *guillotineEngine) scoreRect(width, height int, freeRect *Rect) int {
	switch e.choice {
	case GWorstArea:
		return -scoreBestArea(width, height, freeRect)
	case GBestShortSide:
		return scoreBestShort(width, height, freeRect)
	case GBestLongSide:
		return scoreBestLong(width, height, freeRect)
	default: // GBestArea
		return scoreBestArea(width, height, freeRect)
	}
}

// selectFreeRect scans the free list for the best-scoring placement of an
// item sized width x height, trying the rotated orientation too when
// allowRotation is set. It does not mutate engine state. idx is -1 when
// nothing fits.
func (e *guillotineEngine) selectFreeRect(width, height int, allowRotation bool) (idx, placedW, placedH int, rotated bool, ok bool) {
	bestScore := math.MaxInt
	idx = -1

	for i, fr := range e.freeRects {
		if width == fr.Width && height == fr.Height {
			return i, width, height, false, true
		}
		if allowRotation && height == fr.Width && width == fr.Height {
			return i, height, width, true, true
		}
		if width <= fr.Width && height <= fr.Height {
			if score := e.scoreRect(width, height, &fr); score < bestScore {
				bestScore, idx, placedW, placedH, rotated, ok = score, i, width, height, false, true
			}
		}
		if allowRotation && height <= fr.Width && width <= fr.Height {
			if score := e.scoreRect(height, width, &fr); score < bestScore {
				bestScore, idx, placedW, placedH, rotated, ok = score, i, height, width, true, true
			}
		}
	}
	return
}

// commit places an item of size placedW x placedH into free rect idx,
// splitting the leftover L-shape per the configured GSplit strategy and
// merging the free list afterward, mirroring the teacher's Insert loop body
// for a single rectangle instead of a whole batch.
func (e *guillotineEngine) commit(idx, placedW, placedH int) Rect {
	fr := e.freeRects[idx]
	placed := NewRect(fr.X, fr.Y, placedW, placedH)

	e.splitByHeuristic(&fr, &placed)
	e.freeRects = slices.Delete(e.freeRects, idx, idx+1)
	e.mergeFreeList()
	e.usedArea += placed.Area()
	return placed
}

func (e *guillotineEngine) Place(item packItem, allowRotation bool) (placement, error) {
	idx, w, h, rotated, ok := e.selectFreeRect(item.SlotW, item.SlotH, allowRotation)
	if !ok {
		return placement{}, errNoFit
	}
	rect := e.commit(idx, w, h)
	return placement{Rect: rect, Rotated: rotated}, nil
}

// bestFit is the read-only counterpart of Place, used by skylineEngine to
// compare a waste-map candidate against its own skyline placement before
// committing to either. It inspects the free list without mutating it, so a
// candidate the caller declines leaves the waste map untouched.
func (e *guillotineEngine) bestFit(width, height int, allowRotation bool) (Rect, bool, bool) {
	idx, w, h, rotated, ok := e.selectFreeRect(width, height, allowRotation)
	if !ok {
		return Rect{}, false, false
	}
	fr := e.freeRects[idx]
	return NewRect(fr.X, fr.Y, w, h), rotated, true
}

// consume re-selects and commits the same candidate a prior bestFit
// reported. It is only ever called immediately after a bestFit that
// returned ok, with no intervening mutation of the waste map, so the
// selection is guaranteed to reproduce the same free rect.
func (e *guillotineEngine) consume(wr Rect) {
	w, h := wr.Width, wr.Height
	for i, fr := range e.freeRects {
		if fr.X == wr.X && fr.Y == wr.Y && w <= fr.Width && h <= fr.Height {
			e.commit(i, w, h)
			return
		}
	}
}

// free returns a placed rect to the free list and merges it with any
// co-linear neighbors, for the runtime session's Guillotine evict, per
// §4.8.
func (e *guillotineEngine) free(rect Rect) {
	e.freeRects = append(e.freeRects, rect)
	e.usedArea -= rect.Area()
	e.mergeFreeList()
}

func scoreBestArea(width, height int, freeRect *Rect) int {
	return freeRect.Width*freeRect.Height - width*height
}

func scoreBestShort(width, height int, freeRect *Rect) int {
	leftoverHoriz := abs(freeRect.Width - width)
	leftoverVert := abs(freeRect.Height - height)
	return min(leftoverHoriz, leftoverVert)
}

func scoreBestLong(width, height int, freeRect *Rect) int {
	leftoverHoriz := abs(freeRect.Width - width)
	leftoverVert := abs(freeRect.Height - height)
	return max(leftoverHoriz, leftoverVert)
}

func (e *guillotineEngine) splitAlongAxis(freeRect, placedRect *Rect, splitHorizontal bool) {
	var bottom Rect
	bottom.X = freeRect.X
	bottom.Y = freeRect.Y + placedRect.Height
	bottom.Height = freeRect.Height - placedRect.Height

	var right Rect
	right.X = freeRect.X + placedRect.Width
	right.Y = freeRect.Y
	right.Width = freeRect.Width - placedRect.Width

	if splitHorizontal {
		bottom.Width = freeRect.Width
		right.Height = placedRect.Height
	} else {
		bottom.Width = placedRect.Width
		right.Height = freeRect.Height
	}

	if bottom.Width > 0 && bottom.Height > 0 {
		e.freeRects = append(e.freeRects, bottom)
	}
	if right.Width > 0 && right.Height > 0 {
		e.freeRects = append(e.freeRects, right)
	}
}

func (e *guillotineEngine) splitByHeuristic(freeRect, placedRect *Rect) {
	w := freeRect.Width - placedRect.Width
	h := freeRect.Height - placedRect.Height

	var splitHorizontal bool
	switch e.split {
	case GSplitLongLeftoverAxis:
		splitHorizontal = w > h
	case GSplitMinArea:
		splitHorizontal = placedRect.Width*h > w*placedRect.Height
	case GSplitMaxArea:
		splitHorizontal = placedRect.Width*h <= w*placedRect.Height
	default: // GSplitShortLeftoverAxis
		splitHorizontal = w <= h
	}

	e.splitAlongAxis(freeRect, placedRect, splitHorizontal)
}

// mergeFreeList does a Theta(n^2) pass looking for pairs of free rects that
// share an edge and can be combined into one, matching the teacher's
// mergeFreeList (guillotine.go) fixed to compare rect i against rect j
// instead of comparing i against itself.
func (e *guillotineEngine) mergeFreeList() {
	for i := 0; i < len(e.freeRects); i++ {
		for j := i + 1; j < len(e.freeRects); j++ {
			a, b := &e.freeRects[i], &e.freeRects[j]
			if a.Width == b.Width && a.X == b.X {
				if a.Y == b.Y+b.Height {
					a.Y -= b.Height
					a.Height += b.Height
					e.freeRects = slices.Delete(e.freeRects, j, j+1)
					j--
					continue
				} else if a.Y+a.Height == b.Y {
					a.Height += b.Height
					e.freeRects = slices.Delete(e.freeRects, j, j+1)
					j--
					continue
				}
			}
			if a.Height == b.Height && a.Y == b.Y {
				if a.X == b.X+b.Width {
					a.X -= b.Width
					a.Width += b.Width
					e.freeRects = slices.Delete(e.freeRects, j, j+1)
					j--
				} else if a.X+a.Width == b.X {
					a.Width += b.Width
					e.freeRects = slices.Delete(e.freeRects, j, j+1)
					j--
				}
			}
		}
	}
}

// vim: ts=4
