package atlaspack

import (
	"image"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// InputItem is a raw sprite supplied by the caller. Key must be unique
// across a single pack call; duplicates fail intake with InvalidInput.
type InputItem struct {
	Key    string
	SrcW   int
	SrcH   int
	Pixels image.Image // optional; only consulted by trimming.
}

// LayoutItem is the pre-sized, already-measured counterpart of InputItem
// accepted by PackLayoutItems, matching spec §6's pack_layout_items entry
// point. Source/SourceSize, when provided, are treated as authoritative and
// are never re-trimmed, per the spec's resolved Open Question.
type LayoutItem struct {
	Key        string
	Width      int
	Height     int
	Source     *Rect
	SourceSize *Size
	Trimmed    bool
}

// TrimmedItem is an InputItem after the trim stage: TrimRect lies inside
// SourceSize, and Trimmed is true iff the bounding box is not the full
// source image.
type TrimmedItem struct {
	Key        string
	TrimRect   Rect
	SourceSize Size
	Trimmed    bool
}

// PlacedFrame is the per-sprite placement result.
type PlacedFrame struct {
	// Key identifies the sprite this frame belongs to.
	Key string
	// Frame is the sprite's footprint on the page, including the
	// reserved slot offset for extrusion/half-padding.
	Frame Rect
	// Rotated indicates the content is rotated 90 degrees clockwise at
	// blit time.
	Rotated bool
	// Trimmed indicates the source had a transparent border removed.
	Trimmed bool
	// Source is the sub-region of the sprite inside its untrimmed source.
	Source Rect
	// SourceSize is the untrimmed source's full dimensions.
	SourceSize Size
	// Pivot defaults to the center of SourceSize.
	Pivot Point
	// SlotPadding and Extrusion echo the config values that produced
	// this frame's slot offset, so a downstream blitter does not need
	// the original PackerConfig in hand.
	SlotPadding int
	Extrusion   int
}

// Page is a single rectangular texture containing non-overlapping frames.
type Page struct {
	ID     int
	Width  int
	Height int
	Frames []PlacedFrame
}

// Meta carries diagnostic information about how an Atlas was produced. Only
// SchemaVersion is part of the stable wire contract; the remaining fields
// are informational and may be omitted or zero.
type Meta struct {
	SchemaVersion string
	// Algorithm names which (family, heuristic) produced the layout, for
	// example "MaxRects/BestAreaFit". Populated by FamilyAuto; single
	// algorithm packs leave it as the requested family/heuristic too.
	Algorithm string
	// GeneratedPages is len(Atlas.Pages), duplicated here for convenience.
	GeneratedPages int
	// Fingerprint is an xxhash of the canonical page/frame listing. It is
	// not part of the stable wire contract and exists purely so a caller
	// can cheaply detect bit-identical reruns without a full comparison.
	Fingerprint uint64
	// Skipped lists items dropped during pre-processing, e.g. because
	// they became empty after trimming.
	Skipped []SkippedItem
}

// SkippedItem records a non-fatal item that did not make it into the atlas.
type SkippedItem struct {
	Key    string
	Reason Kind
}

// Atlas is the immutable result of a pack: an ordered collection of pages.
type Atlas struct {
	Pages []Page
	Meta  Meta
}

// Fingerprint returns the xxhash of the atlas's canonical layout
// description, recomputing it from Pages rather than trusting Meta in case
// the caller mutated the returned value.
func (a *Atlas) Fingerprint() uint64 {
	var sb strings.Builder
	for _, page := range a.Pages {
		sb.WriteString("P")
		sb.WriteString(strconv.Itoa(page.ID))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(page.Width))
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(page.Height))
		sb.WriteByte(';')
		for _, f := range page.Frames {
			sb.WriteString(f.Key)
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(f.Frame.X))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(f.Frame.Y))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(f.Frame.Width))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(f.Frame.Height))
			if f.Rotated {
				sb.WriteByte('r')
			}
			sb.WriteByte(';')
		}
	}
	return xxhash.Sum64String(sb.String())
}

// vim: ts=4
