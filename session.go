package atlaspack

import "sync"

// SessionStrategy selects the online placement strategy an AtlasSession
// uses, per §4.8.
type SessionStrategy int

const (
	// StrategyShelfNextFit appends to the current shelf until it cannot
	// fit, then opens a new shelf.
	StrategyShelfNextFit SessionStrategy = iota
	// StrategyShelfFirstFit scans shelves top-down for the first that fits.
	StrategyShelfFirstFit
	// StrategyGuillotine uses a per-page Guillotine engine online.
	StrategyGuillotine
)

// segment is a horizontal span [x, x+width) on a shelf.
type segment struct {
	x, width int
}

// shelf is one horizontal strip of a session page, per §4.8. holes are
// spans freed by eviction and are reused in preference to extending the
// shelf's untouched tail (cursor); this lets an evicted slot be reclaimed
// by either strategy immediately, while cursor-based growth still follows
// the chosen strategy's scan order.
type shelf struct {
	y, height, width, cursor int
	occupied                 map[string]segment
	holes                    []segment
}

func newShelf(y, height, width int) *shelf {
	return &shelf{y: y, height: height, width: width, occupied: make(map[string]segment)}
}

func (s *shelf) reuse(w int) (segment, bool) {
	for i, h := range s.holes {
		if h.width >= w {
			taken := segment{x: h.x, width: w}
			if h.width > w {
				s.holes[i] = segment{x: h.x + w, width: h.width - w}
			} else {
				s.holes = append(s.holes[:i], s.holes[i+1:]...)
			}
			return taken, true
		}
	}
	return segment{}, false
}

func (s *shelf) appendTail(w int) (segment, bool) {
	if s.width-s.cursor < w {
		return segment{}, false
	}
	taken := segment{x: s.cursor, width: w}
	s.cursor += w
	return taken, true
}

func (s *shelf) release(key string) {
	seg, ok := s.occupied[key]
	if !ok {
		return
	}
	delete(s.occupied, key)
	s.holes = append(s.holes, seg)
	s.coalesceHoles()
}

// coalesceHoles merges adjacent free segments, per §4.8's "coalesces with
// neighbors".
func (s *shelf) coalesceHoles() {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(s.holes); i++ {
			for j := i + 1; j < len(s.holes); j++ {
				a, b := s.holes[i], s.holes[j]
				if a.x+a.width == b.x {
					s.holes[i] = segment{x: a.x, width: a.width + b.width}
					s.holes = append(s.holes[:j], s.holes[j+1:]...)
					merged = true
					break
				}
				if b.x+b.width == a.x {
					s.holes[i] = segment{x: b.x, width: a.width + b.width}
					s.holes = append(s.holes[:j], s.holes[j+1:]...)
					merged = true
					break
				}
			}
			if merged {
				break
			}
		}
	}
}

// sessionPage is one page owned by an AtlasSession: either a shelf list or
// a single online Guillotine engine, per the session's configured
// strategy, plus the bookkeeping needed to support evict and snapshot.
type sessionPage struct {
	id            int
	width, height int
	shelves       []*shelf
	guillotine    *guillotineEngine
	placed        map[string]Rect
	order         []string
}

// AtlasSession is an incremental placer supporting append/evict and a
// read-only geometry snapshot, per §4.8. Mutation is exclusive: Append and
// Evict are serialized by mu, matching the "no concurrent mutation"
// ordering guarantee of §5, modeled on the mutex-guarded bookkeeping style
// of other_examples/felipemarts-krakovia's DynamicAtlasManager, rebuilt
// around the spec's Shelf/Guillotine strategies instead of a fixed grid.
type AtlasSession struct {
	mu       sync.Mutex
	cfg      PackerConfig
	strategy SessionStrategy
	pages    []*sessionPage
	keys     map[string]int // key -> owning page id, for evict and duplicate detection
}

// NewAtlasSession creates an empty session. cfg.MaxWidth/MaxHeight bound
// every page this session opens; cfg.MaxPages bounds how many pages it may
// open (0 = unbounded).
func NewAtlasSession(cfg PackerConfig, strategy SessionStrategy) *AtlasSession {
	return &AtlasSession{cfg: cfg, strategy: strategy, keys: make(map[string]int)}
}

func (s *AtlasSession) newPage() *sessionPage {
	id := len(s.pages)
	p := &sessionPage{id: id, width: s.cfg.MaxWidth, height: s.cfg.MaxHeight, placed: make(map[string]Rect)}
	if s.strategy == StrategyGuillotine {
		p.guillotine = newGuillotineEngine(s.cfg.MaxWidth, s.cfg.MaxHeight, s.cfg.GChoice, s.cfg.GSplit)
	}
	s.pages = append(s.pages, p)
	return p
}

// Append places a new sprite of size (w, h) on the first page that can
// hold it, opening a new page if none can, per §4.8. It fails with
// InvalidInput when key already exists in the session and with NoCapacity
// when the page-count ceiling has been reached.
func (s *AtlasSession) Append(key string, w, h int) (int, PlacedFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.keys[key]; dup {
		return 0, PlacedFrame{}, newError(InvalidInput, key, errDuplicateKey)
	}
	if w <= 0 || h <= 0 {
		return 0, PlacedFrame{}, newError(InvalidInput, key, errZeroDimension)
	}

	if s.strategy == StrategyGuillotine {
		return s.appendGuillotine(key, w, h)
	}
	return s.appendShelf(key, w, h)
}

func (s *AtlasSession) appendShelf(key string, w, h int) (int, PlacedFrame, error) {
	if w > s.cfg.MaxWidth || h > s.cfg.MaxHeight {
		return 0, PlacedFrame{}, newError(ItemTooLarge, key, nil)
	}

	// Reuse an evicted hole on any existing page/shelf first, regardless
	// of strategy: eviction reuse is a cross-cutting guarantee in §4.8,
	// independent of whether new growth follows NextFit or FirstFit.
	for _, page := range s.pages {
		for _, sh := range page.shelves {
			if h > sh.height {
				continue
			}
			if seg, ok := sh.reuse(w); ok {
				return s.commitShelf(page, sh, seg, key, w, h)
			}
		}
	}

	// Extend an existing shelf's untouched tail, scoped by strategy.
	for _, page := range s.pages {
		candidates := page.shelves
		if s.strategy == StrategyShelfNextFit && len(candidates) > 0 {
			candidates = candidates[len(candidates)-1:]
		}
		for _, sh := range candidates {
			if h > sh.height {
				continue
			}
			if seg, ok := sh.appendTail(w); ok {
				return s.commitShelf(page, sh, seg, key, w, h)
			}
		}
	}

	// Open a new shelf, on the last page if it has room, else a new page.
	var page *sessionPage
	if len(s.pages) > 0 {
		page = s.pages[len(s.pages)-1]
	}
	y := 0
	if page != nil {
		for _, sh := range page.shelves {
			y += sh.height
		}
		if y+h > page.height {
			page = nil
		}
	}
	if page == nil {
		if s.cfg.MaxPages > 0 && len(s.pages) >= s.cfg.MaxPages {
			return 0, PlacedFrame{}, newError(NoCapacity, key, nil)
		}
		page = s.newPage()
		if h > page.height {
			return 0, PlacedFrame{}, newError(ItemTooLarge, key, nil)
		}
		y = 0
	}
	sh := newShelf(y, h, page.width)
	page.shelves = append(page.shelves, sh)
	seg, _ := sh.appendTail(w)
	return s.commitShelf(page, sh, seg, key, w, h)
}

func (s *AtlasSession) commitShelf(page *sessionPage, sh *shelf, seg segment, key string, w, h int) (int, PlacedFrame, error) {
	sh.occupied[key] = seg
	rect := NewRect(seg.x, sh.y, w, h)
	page.placed[key] = rect
	page.order = append(page.order, key)
	s.keys[key] = page.id
	return page.id, PlacedFrame{Key: key, Frame: rect, SourceSize: NewSize(w, h)}, nil
}

func (s *AtlasSession) appendGuillotine(key string, w, h int) (int, PlacedFrame, error) {
	for _, page := range s.pages {
		pl, err := page.guillotine.Place(packItem{Key: key, SlotW: w, SlotH: h}, s.cfg.AllowRotation)
		if err == nil {
			page.placed[key] = pl.Rect
			page.order = append(page.order, key)
			s.keys[key] = page.id
			return page.id, PlacedFrame{Key: key, Frame: pl.Rect, Rotated: pl.Rotated, SourceSize: NewSize(w, h)}, nil
		}
	}

	if s.cfg.MaxPages > 0 && len(s.pages) >= s.cfg.MaxPages {
		return 0, PlacedFrame{}, newError(NoCapacity, key, nil)
	}
	page := s.newPage()
	pl, err := page.guillotine.Place(packItem{Key: key, SlotW: w, SlotH: h}, s.cfg.AllowRotation)
	if err != nil {
		return 0, PlacedFrame{}, newError(ItemTooLarge, key, nil)
	}
	page.placed[key] = pl.Rect
	page.order = append(page.order, key)
	s.keys[key] = page.id
	return page.id, PlacedFrame{Key: key, Frame: pl.Rect, Rotated: pl.Rotated, SourceSize: NewSize(w, h)}, nil
}

// Evict releases key's slot on pageID, returning true if it was found and
// removed. The slot becomes reusable by a subsequent Append, per §4.8.
func (s *AtlasSession) Evict(pageID int, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.keys[key]
	if !ok || owner != pageID || pageID < 0 || pageID >= len(s.pages) {
		return false
	}
	page := s.pages[pageID]
	rect, ok := page.placed[key]
	if !ok {
		return false
	}

	if s.strategy == StrategyGuillotine {
		page.guillotine.free(rect)
	} else {
		for _, sh := range page.shelves {
			if sh.y == rect.Y {
				sh.release(key)
				break
			}
		}
	}

	delete(page.placed, key)
	delete(s.keys, key)
	for i, k := range page.order {
		if k == key {
			page.order = append(page.order[:i], page.order[i+1:]...)
			break
		}
	}
	return true
}

// SnapshotAtlas returns a read-only geometry clone of the session's
// current state: pages in id order, frames in insertion order per page.
func (s *AtlasSession) SnapshotAtlas() Atlas {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := make([]Page, len(s.pages))
	for i, page := range s.pages {
		frames := make([]PlacedFrame, 0, len(page.order))
		for _, key := range page.order {
			rect := page.placed[key]
			frames = append(frames, PlacedFrame{
				Key:        key,
				Frame:      rect,
				SourceSize: NewSize(rect.Width, rect.Height),
				Pivot:      Point{X: rect.Width / 2, Y: rect.Height / 2},
			})
		}
		pages[i] = Page{ID: page.id, Width: page.width, Height: page.height, Frames: frames}
	}

	atlas := Atlas{Pages: pages, Meta: Meta{SchemaVersion: "1", GeneratedPages: len(pages)}}
	atlas.Meta.Fingerprint = atlas.Fingerprint()
	return atlas
}

// vim: ts=4
