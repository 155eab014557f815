package atlaspack

import "math"

// lazyPruneWindow bounds the non-reference prune pass to the most recently
// appended free rectangles, trading completeness for speed per §4.4: newly
// split free regions are most likely to be contained by other regions split
// from the same or an adjacent used node, so the tail of freeRects is where
// most real containment happens in practice.
const lazyPruneWindow = 64

// maxRectsEngine implements the MaxRects family from §4.4, directly
// descended from the teacher's maxRects (maxrects.go), generalized to
// place one item at a time and to carry the MRReference staged/lazy prune
// split instead of a single fixed pruneFreeList behavior.
type maxRectsEngine struct {
	algorithmBase
	heuristic    MRHeuristic
	reference    bool
	freeRects    []Rect
	newFreeRects []Rect
	newLastSize  int
	placed       []Rect
}

func newMaxRectsEngine(width, height int, heuristic MRHeuristic, reference bool) *maxRectsEngine {
	e := &maxRectsEngine{heuristic: heuristic, reference: reference}
	e.maxWidth, e.maxHeight = width, height
	e.freeRects = append(e.freeRects, NewRect(0, 0, width, height))
	return e
}

func (e *maxRectsEngine) Place(item packItem, allowRotation bool) (placement, error) {
	node, rotated, score1, _ := e.scoreRect(item.SlotW, item.SlotH, allowRotation)
	if score1 == math.MaxInt {
		return placement{}, errNoFit
	}
	e.placeRect(node)
	return placement{Rect: node, Rotated: rotated}, nil
}

func (e *maxRectsEngine) scoreRect(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var node Rect
	var rotated bool
	var score1, score2 int

	switch e.heuristic {
	case MRBestAreaFit:
		node, rotated, score1, score2 = e.findBestAreaFit(width, height, allowRotation)
	case MRBestLongSideFit:
		node, rotated, score1, score2 = e.findBestLongSideFit(width, height, allowRotation)
	case MRBottomLeft:
		node, rotated, score1, score2 = e.findBottomLeft(width, height, allowRotation)
	case MRContactPoint:
		node, rotated, score1, score2 = e.findContactPoint(width, height, allowRotation)
	default: // MRBestShortSideFit
		node, rotated, score1, score2 = e.findBestShortSideFit(width, height, allowRotation)
	}

	if node.Height == 0 {
		score1 = math.MaxInt
		score2 = math.MaxInt
	}
	return node, rotated, score1, score2
}

func (e *maxRectsEngine) placeRect(node Rect) {
	for i := 0; i < len(e.freeRects); {
		if e.splitFreeNode(&e.freeRects[i], &node) {
			last := len(e.freeRects) - 1
			e.freeRects[i] = e.freeRects[last]
			e.freeRects = e.freeRects[:last]
		} else {
			i++
		}
	}
	e.pruneFreeList()
	e.usedArea += node.Area()
	e.placed = append(e.placed, node)
}

func (e *maxRectsEngine) findBottomLeft(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var bestNode Rect
	var rotated bool
	bestY := math.MaxInt
	bestX := math.MaxInt

	for _, fr := range e.freeRects {
		if fr.Width >= width && fr.Height >= height {
			topSideY := fr.Y + height
			if topSideY < bestY || (topSideY == bestY && fr.X < bestX) {
				bestNode = NewRect(fr.X, fr.Y, width, height)
				rotated = false
				bestY, bestX = topSideY, fr.X
			}
		}
		if allowRotation && fr.Width >= height && fr.Height >= width {
			topSideY := fr.Y + width
			if topSideY < bestY || (topSideY == bestY && fr.X < bestX) {
				bestNode = NewRect(fr.X, fr.Y, height, width)
				rotated = true
				bestY, bestX = topSideY, fr.X
			}
		}
	}
	return bestNode, rotated, bestY, bestX
}

func (e *maxRectsEngine) findBestShortSideFit(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var bestNode Rect
	var rotated bool
	bestShort := math.MaxInt
	bestLong := math.MaxInt

	for _, fr := range e.freeRects {
		if fr.Width >= width && fr.Height >= height {
			lh, lv := abs(fr.Width-width), abs(fr.Height-height)
			short, long := min(lh, lv), max(lh, lv)
			if short < bestShort || (short == bestShort && long < bestLong) {
				bestNode = NewRect(fr.X, fr.Y, width, height)
				rotated = false
				bestShort, bestLong = short, long
			}
		}
		if allowRotation && fr.Width >= height && fr.Height >= width {
			lh, lv := abs(fr.Width-height), abs(fr.Height-width)
			short, long := min(lh, lv), max(lh, lv)
			if short < bestShort || (short == bestShort && long < bestLong) {
				bestNode = NewRect(fr.X, fr.Y, height, width)
				rotated = true
				bestShort, bestLong = short, long
			}
		}
	}
	return bestNode, rotated, bestShort, bestLong
}

func (e *maxRectsEngine) findBestLongSideFit(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var bestNode Rect
	var rotated bool
	bestShort := math.MaxInt
	bestLong := math.MaxInt

	for _, fr := range e.freeRects {
		if fr.Width >= width && fr.Height >= height {
			lh, lv := abs(fr.Width-width), abs(fr.Height-height)
			short, long := min(lh, lv), max(lh, lv)
			if long < bestLong || (long == bestLong && short < bestShort) {
				bestNode = NewRect(fr.X, fr.Y, width, height)
				rotated = false
				bestShort, bestLong = short, long
			}
		}
		if allowRotation && fr.Width >= height && fr.Height >= width {
			lh, lv := abs(fr.Width-height), abs(fr.Height-width)
			short, long := min(lh, lv), max(lh, lv)
			if long < bestLong || (long == bestLong && short < bestShort) {
				bestNode = NewRect(fr.X, fr.Y, height, width)
				rotated = true
				bestShort, bestLong = short, long
			}
		}
	}
	return bestNode, rotated, bestShort, bestLong
}

func (e *maxRectsEngine) findBestAreaFit(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var bestNode Rect
	var rotated bool
	bestArea := math.MaxInt
	bestShort := math.MaxInt

	for _, fr := range e.freeRects {
		area := fr.Width*fr.Height - width*height
		if fr.Width >= width && fr.Height >= height {
			lh, lv := abs(fr.Width-width), abs(fr.Height-height)
			short := min(lh, lv)
			if area < bestArea || (area == bestArea && short < bestShort) {
				bestNode = NewRect(fr.X, fr.Y, width, height)
				rotated = false
				bestShort, bestArea = short, area
			}
		}
		if allowRotation && fr.Width >= height && fr.Height >= width {
			lh, lv := abs(fr.Width-height), abs(fr.Height-width)
			short := min(lh, lv)
			if area < bestArea || (area == bestArea && short < bestShort) {
				bestNode = NewRect(fr.X, fr.Y, height, width)
				rotated = true
				bestShort, bestArea = short, area
			}
		}
	}
	return bestNode, rotated, bestArea, bestShort
}

// commonIntervalLength returns 0 if the two intervals are disjoint, or the
// length of their overlap otherwise.
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

func (e *maxRectsEngine) contactPointScoreNode(x, y, width, height int) int {
	score := 0
	if x == 0 || x+width == e.maxWidth {
		score += height
	}
	if y == 0 || y+height == e.maxHeight {
		score += width
	}
	for _, used := range e.placed {
		if used.X == x+width || used.X+used.Width == x {
			score += commonIntervalLength(used.Y, used.Y+used.Height, y, y+height)
		}
		if used.Y == y+height || used.Y+used.Height == y {
			score += commonIntervalLength(used.X, used.X+used.Width, x, x+width)
		}
	}
	return score
}

func (e *maxRectsEngine) findContactPoint(width, height int, allowRotation bool) (Rect, bool, int, int) {
	var bestNode Rect
	var rotated bool
	bestScore := -1

	for _, fr := range e.freeRects {
		if fr.Width >= width && fr.Height >= height {
			score := e.contactPointScoreNode(fr.X, fr.Y, width, height)
			if score > bestScore {
				bestNode = NewRect(fr.X, fr.Y, width, height)
				rotated = false
				bestScore = score
			}
		}
		if allowRotation && fr.Width >= height && fr.Height >= width {
			score := e.contactPointScoreNode(fr.X, fr.Y, height, width)
			if score > bestScore {
				bestNode = NewRect(fr.X, fr.Y, height, width)
				rotated = true
				bestScore = score
			}
		}
	}
	// Contact point maximizes score, but scoreRect's caller treats score1 as
	// a minimize-best value shared across heuristics; invert so a higher
	// contact score still wins the comparison, and guard the no-fit case
	// with math.MaxInt like every other heuristic.
	if bestScore == -1 {
		return Rect{}, false, math.MaxInt, math.MaxInt
	}
	return bestNode, rotated, -bestScore, math.MaxInt
}

func (e *maxRectsEngine) insertNewFreeRectangle(newFreeRect Rect) {
	for i := 0; i < e.newLastSize; {
		if e.newFreeRects[i].ContainsRect(newFreeRect) {
			return
		}
		if newFreeRect.ContainsRect(e.newFreeRects[i]) {
			e.newLastSize--
			e.newFreeRects[i] = e.newFreeRects[e.newLastSize]

			last := len(e.newFreeRects) - 1
			e.newFreeRects[e.newLastSize] = e.newFreeRects[last]
			e.newFreeRects = e.newFreeRects[:last]
			continue
		}
		i++
	}
	e.newFreeRects = append(e.newFreeRects, newFreeRect)
}

func (e *maxRectsEngine) splitFreeNode(freeNode, usedNode *Rect) bool {
	if usedNode.X >= freeNode.X+freeNode.Width || usedNode.X+usedNode.Width <= freeNode.X ||
		usedNode.Y >= freeNode.Y+freeNode.Height || usedNode.Y+usedNode.Height <= freeNode.Y {
		return false
	}

	e.newLastSize = len(e.newFreeRects)

	if usedNode.X < freeNode.X+freeNode.Width && usedNode.X+usedNode.Width > freeNode.X {
		if usedNode.Y > freeNode.Y && usedNode.Y < freeNode.Y+freeNode.Height {
			newNode := *freeNode
			newNode.Height = usedNode.Y - newNode.Y
			e.insertNewFreeRectangle(newNode)
		}
		if usedNode.Y+usedNode.Height < freeNode.Y+freeNode.Height {
			newNode := *freeNode
			newNode.Y = usedNode.Y + usedNode.Height
			newNode.Height = freeNode.Y + freeNode.Height - (usedNode.Y + usedNode.Height)
			e.insertNewFreeRectangle(newNode)
		}
	}

	if usedNode.Y < freeNode.Y+freeNode.Height && usedNode.Y+usedNode.Height > freeNode.Y {
		if usedNode.X > freeNode.X && usedNode.X < freeNode.X+freeNode.Width {
			newNode := *freeNode
			newNode.Width = usedNode.X - newNode.X
			e.insertNewFreeRectangle(newNode)
		}
		if usedNode.X+usedNode.Width < freeNode.X+freeNode.Width {
			newNode := *freeNode
			newNode.X = usedNode.X + usedNode.Width
			newNode.Width = freeNode.X + freeNode.Width - (usedNode.X + usedNode.Width)
			e.insertNewFreeRectangle(newNode)
		}
	}

	return true
}

// pruneFreeList tests newly introduced free rectangles against existing
// ones, dropping any new rectangle already fully contained by an old one.
// MRReference runs the teacher's full O(len(freeRects)) sweep every
// placement; otherwise only the most recently appended lazyPruneWindow free
// rectangles are checked, per §4.4.
func (e *maxRectsEngine) pruneFreeList() {
	start := 0
	if !e.reference && len(e.freeRects) > lazyPruneWindow {
		start = len(e.freeRects) - lazyPruneWindow
	}

	for i := start; i < len(e.freeRects); i++ {
		for j := 0; j < len(e.newFreeRects); {
			if e.freeRects[i].ContainsRect(e.newFreeRects[j]) {
				last := len(e.newFreeRects) - 1
				e.newFreeRects[j] = e.newFreeRects[last]
				e.newFreeRects = e.newFreeRects[:last]
				continue
			}
			j++
		}
	}

	e.freeRects = append(e.freeRects, e.newFreeRects...)
	e.newFreeRects = e.newFreeRects[:0]
}

// vim: ts=4
