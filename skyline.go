package atlaspack

import (
	"math"
	"slices"
)

// skylineNode is one horizontal segment of the skyline's piecewise-constant
// upper envelope.
type skylineNode struct {
	X, Y, Width int
}

// skylineEngine implements the Skyline family from §4.3, directly
// descended from the teacher's skylinePack (skyline.go), generalized to
// place one item at a time and to track rotation explicitly.
type skylineEngine struct {
	algorithmBase
	heuristic SkylineHeuristic
	skyline   []skylineNode
	wasteMap  *guillotineEngine
}

func newSkylineEngine(width, height int, heuristic SkylineHeuristic, useWasteMap bool) *skylineEngine {
	e := &skylineEngine{heuristic: heuristic}
	e.maxWidth, e.maxHeight = width, height
	e.skyline = append(e.skyline, skylineNode{X: 0, Y: 0, Width: width})
	if heuristic == SkylineMinWaste || useWasteMap {
		e.wasteMap = newGuillotineEngine(width, height, GBestArea, GSplitMinArea)
		// The waste map only holds pockets left beneath the skyline, so it
		// starts empty rather than with the whole page free.
		e.wasteMap.freeRects = e.wasteMap.freeRects[:0]
	}
	return e
}

func (e *skylineEngine) Place(item packItem, allowRotation bool) (placement, error) {
	// Prefer an exact or best-area-fit waste-map rect when it yields no
	// worse y and equal-or-smaller waste than the skyline placement, per
	// §4.3's waste-map preference rule.
	var (
		skyRect    Rect
		skyRotated bool
		skyY       = math.MaxInt
		skyScore   = math.MaxInt
		skyIndex   = -1
	)

	switch e.heuristic {
	case SkylineMinWaste:
		skyRect, skyRotated, skyY, skyScore, skyIndex = e.findMinWaste(item.SlotW, item.SlotH, allowRotation)
	default:
		skyRect, skyRotated, skyY, skyScore, skyIndex = e.findBottomLeft(item.SlotW, item.SlotH, allowRotation)
	}

	if skyIndex == -1 {
		return placement{}, errNoFit
	}

	if e.wasteMap != nil {
		if wr, wRotated, ok := e.wasteMap.bestFit(item.SlotW, item.SlotH, allowRotation); ok {
			if wr.Y+wr.Height <= skyY {
				e.wasteMap.consume(wr)
				e.usedArea += wr.Width * wr.Height
				return placement{Rect: Rect{Point: Point{X: wr.X, Y: wr.Y}, Size: Size{Width: wr.Width, Height: wr.Height}}, Rotated: wRotated}, nil
			}
		}
	}

	e.addLevel(skyIndex, &skyRect)
	e.usedArea += skyRect.Area()
	_ = skyScore
	return placement{Rect: skyRect, Rotated: skyRotated}, nil
}

func (e *skylineEngine) mergeSkylines() {
	for i := 0; i < len(e.skyline)-1; i++ {
		if e.skyline[i].Y == e.skyline[i+1].Y {
			e.skyline[i].Width += e.skyline[i+1].Width
			e.skyline = slices.Delete(e.skyline, i+1, i+2)
			i--
		}
	}
}

func (e *skylineEngine) testFit(index, width, height int, y *int) bool {
	x := e.skyline[index].X
	if x+width > e.maxWidth {
		return false
	}

	widthLeft := width
	i := index
	*y = e.skyline[index].Y
	for widthLeft > 0 {
		*y = max(*y, e.skyline[i].Y)
		if *y+height > e.maxHeight {
			return false
		}
		widthLeft -= e.skyline[i].Width
		i++
	}
	return true
}

func (e *skylineEngine) computeWaste(index, width, height, y int) int {
	wastedArea := 0
	rectLeft := e.skyline[index].X
	rectRight := rectLeft + width

	for index < len(e.skyline) && e.skyline[index].X < rectRight {
		if e.skyline[index].X >= rectRight || e.skyline[index].X+e.skyline[index].Width <= rectLeft {
			break
		}
		leftSide := e.skyline[index].X
		rightSide := min(rectRight, leftSide+e.skyline[index].Width)
		wastedArea += (rightSide - leftSide) * (y - e.skyline[index].Y)
		index++
	}
	return wastedArea
}

func (e *skylineEngine) addWaste(index, width, y int) {
	rectLeft := e.skyline[index].X
	rectRight := rectLeft + width

	for index < len(e.skyline) && e.skyline[index].X < rectRight {
		if e.skyline[index].X >= rectRight || e.skyline[index].X+e.skyline[index].Width <= rectLeft {
			break
		}
		leftSide := e.skyline[index].X
		rightSide := min(rectRight, leftSide+e.skyline[index].Width)

		waste := NewRect(leftSide, e.skyline[index].Y, rightSide-leftSide, y-e.skyline[index].Y)
		if waste.Width > 0 && waste.Height > 0 {
			e.wasteMap.freeRects = append(e.wasteMap.freeRects, waste)
		}
		index++
	}
}

func (e *skylineEngine) addLevel(index int, rect *Rect) {
	if e.wasteMap != nil {
		e.addWaste(index, rect.Width, rect.Y)
	}

	newNode := skylineNode{X: rect.X, Y: rect.Y + rect.Height, Width: rect.Width}
	e.skyline = slices.Insert(e.skyline, index, newNode)

	for i := index + 1; i < len(e.skyline); i++ {
		if e.skyline[i].X < e.skyline[i-1].X+e.skyline[i-1].Width {
			shrink := e.skyline[i-1].X + e.skyline[i-1].Width - e.skyline[i].X
			e.skyline[i].X += shrink
			e.skyline[i].Width -= shrink

			if e.skyline[i].Width <= 0 {
				e.skyline = slices.Delete(e.skyline, i, i+1)
				i--
			} else {
				break
			}
		} else {
			break
		}
	}
	e.mergeSkylines()
}

// findBottomLeft returns the best placement, whether it required rotation,
// the resulting y+height (which the caller compares against the waste map),
// a heuristic score (also y+height; the caller does not use it), and the
// skyline index it was found at, or index -1 if nothing fits.
func (e *skylineEngine) findBottomLeft(width, height int, allowRotation bool) (Rect, bool, int, int, int) {
	bestHeight := math.MaxInt
	bestWidth := math.MaxInt
	bestIndex := -1
	var node Rect
	var rotated bool

	for i := 0; i < len(e.skyline); i++ {
		var y int
		if e.testFit(i, width, height, &y) {
			if y+height < bestHeight || (y+height == bestHeight && e.skyline[i].Width < bestWidth) {
				bestHeight = y + height
				bestIndex = i
				bestWidth = e.skyline[i].Width
				node = NewRect(e.skyline[i].X, y, width, height)
				rotated = false
			}
		}
		if allowRotation && width != height && e.testFit(i, height, width, &y) {
			if y+width < bestHeight || (y+width == bestHeight && e.skyline[i].Width < bestWidth) {
				bestHeight = y + width
				bestIndex = i
				bestWidth = e.skyline[i].Width
				node = NewRect(e.skyline[i].X, y, height, width)
				rotated = true
			}
		}
	}
	return node, rotated, bestHeight, bestHeight, bestIndex
}

func (e *skylineEngine) findMinWaste(width, height int, allowRotation bool) (Rect, bool, int, int, int) {
	bestHeight := math.MaxInt
	bestWaste := math.MaxInt
	bestIndex := -1
	var node Rect
	var rotated bool

	for i := 0; i < len(e.skyline); i++ {
		var y int
		if e.testFit(i, width, height, &y) {
			wasted := e.computeWaste(i, width, height, y)
			if wasted < bestWaste || (wasted == bestWaste && y+height < bestHeight) {
				bestHeight = y + height
				bestWaste = wasted
				bestIndex = i
				node = NewRect(e.skyline[i].X, y, width, height)
				rotated = false
			}
		}
		if allowRotation && width != height && e.testFit(i, height, width, &y) {
			wasted := e.computeWaste(i, height, width, y)
			if wasted < bestWaste || (wasted == bestWaste && y+width < bestHeight) {
				bestHeight = y + width
				bestWaste = wasted
				bestIndex = i
				node = NewRect(e.skyline[i].X, y, height, width)
				rotated = true
			}
		}
	}
	return node, rotated, bestHeight, bestWaste, bestIndex
}

// vim: ts=4
