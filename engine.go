package atlaspack

// placement is a candidate or final placement produced by an engine: the
// slot rect (including padding/extrusion margin) plus whether the item was
// rotated to achieve it.
type placement struct {
	Rect    Rect
	Rotated bool
}

// placer is the single-page engine contract shared by Skyline, MaxRects,
// and Guillotine. One instance packs exactly one page; the multipage
// driver creates a fresh instance per page, matching the spec's
// determinism requirement that algorithm state is initialized identically
// every run (§4.6).
//
// Unlike the teacher's packAlgorithm interface (algorithm.go), Place
// operates on a single item at a time instead of a whole batch: item order
// is now decided once, up front, by the pre-processor's stable sort, so
// the driver — not the engine — owns iteration.
type placer interface {
	// Place attempts to fit an item's reserved slot (SlotW x SlotH, i.e.
	// content plus padding/extrusion) onto the page. It returns errNoFit if the item
	// does not fit in any remaining free space, trying both orientations
	// when allowRotation is set.
	Place(item packItem, allowRotation bool) (placement, error)
	// UsedArea returns the total slot area occupied so far.
	UsedArea() int
}

// algorithmBase holds the page bounds shared by every engine, mirroring
// the teacher's algorithmBase (formerly algorithm.go).
type algorithmBase struct {
	maxWidth  int
	maxHeight int
	usedArea  int
}

func (b *algorithmBase) UsedArea() int {
	return b.usedArea
}

// vim: ts=4
