package atlaspack

import "github.com/creasty/defaults"

// Family selects the top-level placement algorithm.
type Family int

const (
	// FamilyMaxRects selects the MaxRects algorithm. Generally the most
	// efficient at a static page size, at the cost of O(n) (worst case
	// O(n^2)) free-rectangle bookkeeping.
	FamilyMaxRects Family = iota
	// FamilySkyline selects the Skyline algorithm, a good balance of
	// speed and efficiency.
	FamilySkyline
	// FamilyGuillotine selects the Guillotine algorithm: fast, but more
	// sensitive to choosing the right bin/split heuristic for the input.
	FamilyGuillotine
	// FamilyAuto evaluates a portfolio of (family, heuristic) candidates
	// under a time budget and selects the best by the lexicographic
	// objective in §4.7.
	FamilyAuto
)

// SkylineHeuristic selects the bin-selection strategy for the Skyline engine.
type SkylineHeuristic int

const (
	// SkylineBottomLeft performs the classic "Tetris" placement.
	SkylineBottomLeft SkylineHeuristic = iota
	// SkylineMinWaste scores candidate placements by the wasted area
	// beneath the placed rect, using a waste map of free pockets.
	SkylineMinWaste
)

// MRHeuristic selects the bin-selection strategy for the MaxRects engine.
type MRHeuristic int

const (
	// MRBestShortSideFit positions the rect against the short side of the
	// free rect it fits best.
	MRBestShortSideFit MRHeuristic = iota
	// MRBestAreaFit positions the rect into the smallest free rect it fits.
	MRBestAreaFit
	// MRBestLongSideFit positions the rect against the long side of the
	// free rect it fits best.
	MRBestLongSideFit
	// MRBottomLeft performs the classic "Tetris" placement.
	MRBottomLeft
	// MRContactPoint maximizes shared edge length with the page border
	// and already-placed rects.
	MRContactPoint
)

// GChoice selects which free rectangle the Guillotine engine places into.
type GChoice int

const (
	// GBestArea minimizes leftover area (free rect area - item area).
	GBestArea GChoice = iota
	// GWorstArea maximizes leftover area.
	GWorstArea
	// GBestShortSide minimizes the shorter leftover side.
	GBestShortSide
	// GBestLongSide minimizes the longer leftover side.
	GBestLongSide
)

// GSplit selects the guillotine cut axis after an item is placed.
type GSplit int

const (
	// GSplitShortLeftoverAxis cuts along the axis with the smaller
	// leftover dimension.
	GSplitShortLeftoverAxis GSplit = iota
	// GSplitLongLeftoverAxis cuts along the axis with the larger leftover
	// dimension.
	GSplitLongLeftoverAxis
	// GSplitMinArea chooses the axis that produces one large and one
	// small leftover rect (minimizes the smaller of the two areas).
	GSplitMinArea
	// GSplitMaxArea chooses the axis that produces two evenly sized
	// leftover rects (maximizes the smaller of the two areas).
	GSplitMaxArea
)

// SortOrder selects the stable pre-pack ordering of items. Ties always
// break on Key ascending, regardless of the chosen order.
type SortOrder int

const (
	// SortAreaDesc sorts by total area, greatest first.
	SortAreaDesc SortOrder = iota
	// SortMaxSideDesc sorts by the longer side, greatest first.
	SortMaxSideDesc
	// SortHeightDesc sorts by height, greatest first.
	SortHeightDesc
	// SortWidthDesc sorts by width, greatest first.
	SortWidthDesc
	// SortPerimeterDesc sorts by perimeter, greatest first.
	SortPerimeterDesc
	// SortKeyAsc sorts by key, ascending; this is also the universal
	// tie-breaker applied on top of every other order.
	SortKeyAsc
)

// AutoMode selects the candidate set size evaluated by FamilyAuto.
type AutoMode int

const (
	// AutoFast evaluates a small fixed candidate list.
	AutoFast AutoMode = iota
	// AutoQuality evaluates a superset covering every Skyline and MaxRects
	// heuristic plus every Guillotine choice paired with the
	// ShortLeftoverAxis and MinArea splits.
	AutoQuality
)

// PackerConfig controls every tunable of the placement pipeline. Zero-value
// fields are populated with sane defaults by NewPackerConfig; constructing
// the struct literal directly also works for every field whose zero value
// is already the documented default (e.g. AllowRotation defaults to false).
type PackerConfig struct {
	// MaxWidth and MaxHeight bound a single page.
	MaxWidth  int `default:"4096"`
	MaxHeight int `default:"4096"`

	// AllowRotation permits the placer to consider both orientations of
	// an item and pick the better by heuristic.
	AllowRotation bool

	// BorderPadding is reserved at every page edge.
	BorderPadding int
	// TexturePadding is reserved between adjacent sprite slots.
	TexturePadding int
	// TextureExtrusion replicates edge pixels inside the slot to prevent
	// bilinear bleed across neighbors.
	TextureExtrusion int

	// Trim enables alpha-based bounding-box trimming when pixels are
	// available on the input item.
	Trim bool
	// TrimThreshold is the alpha value at or below which a pixel is
	// considered transparent for trimming purposes.
	TrimThreshold uint8

	// PowerOfTwo constrains page dimensions to powers of two.
	PowerOfTwo bool
	// Square constrains page width to equal page height.
	Square bool

	// Family selects the placement algorithm.
	Family Family
	// SkylineHeuristic selects the Skyline bin-selection strategy.
	SkylineHeuristic SkylineHeuristic
	// UseWasteMap enables the Skyline waste map for SkylineBottomLeft.
	// SkylineMinWaste always uses a waste map, whatever this is set to.
	UseWasteMap bool
	// MRHeuristic selects the MaxRects bin-selection strategy.
	MRHeuristic MRHeuristic
	// MRReference enables the exact reference SplitFreeNode ordering and
	// a full O(n^2) staged prune after every placement, trading CPU for
	// higher occupancy. When false, a lazy, bounded-window prune is used.
	MRReference bool
	// GChoice selects the Guillotine free-rect choice strategy.
	GChoice GChoice
	// GSplit selects the Guillotine cut-axis strategy.
	GSplit GSplit

	// SortOrder selects the stable pre-pack item ordering.
	SortOrder SortOrder

	// AutoMode selects the FamilyAuto candidate set.
	AutoMode AutoMode `default:"0"`
	// TimeBudgetMS bounds candidate admission for FamilyAuto; already
	// admitted candidates are always allowed to complete.
	TimeBudgetMS int64 `default:"250"`
	// Parallel evaluates FamilyAuto candidates concurrently.
	Parallel bool
	// AutoMRRefTimeMsThreshold auto-enables MRReference for MaxRects
	// candidates in AutoQuality mode once the time budget reaches this
	// value.
	AutoMRRefTimeMsThreshold int64 `default:"500"`
	// AutoMRRefInputThreshold auto-enables MRReference for MaxRects
	// candidates in AutoQuality mode once the input count reaches this
	// value.
	AutoMRRefInputThreshold int `default:"500"`

	// MaxPages bounds the number of pages an AtlasSession may open before
	// refusing further growth with NoCapacity. Zero means unbounded,
	// matching §4.8's "bounded by configured maximum count; unbounded by
	// default". Unused by the one-shot driver and portfolio, which always
	// open a new page on overflow.
	MaxPages int
}

// NewPackerConfig returns a PackerConfig with every zero-value field
// populated from its documented default, using struct-tag defaulting in
// the same declarative style the imageset-packer reference tool applies to
// its own packer configuration, instead of a hand-rolled assignment ladder.
func NewPackerConfig() PackerConfig {
	cfg := PackerConfig{}
	// Only numeric/string fields carry `default` tags; every enum and
	// bool field is designed so its Go zero value is already the
	// documented default (see the const blocks above), so defaults.Set
	// leaves them untouched.
	_ = defaults.Set(&cfg)
	return cfg
}

// Validate checks the configuration for the InvalidInput conditions named
// in the error handling design (duplicate keys are checked at item intake,
// not here).
func (cfg *PackerConfig) Validate() error {
	if cfg.MaxWidth < 1 || cfg.MaxHeight < 1 {
		return newError(InvalidInput, "", errConfigBounds)
	}
	if cfg.BorderPadding < 0 || cfg.TexturePadding < 0 || cfg.TextureExtrusion < 0 {
		return newError(InvalidInput, "", errConfigNegative)
	}
	if cfg.Square && cfg.PowerOfTwo {
		if largestPowerOfTwo(min(cfg.MaxWidth, cfg.MaxHeight)) < 1 {
			return newError(InvalidInput, "", errConfigBounds)
		}
	}
	return nil
}

// String returns the candidate-table name used in Atlas.Meta.Algorithm.
func (f Family) String() string {
	switch f {
	case FamilySkyline:
		return "Skyline"
	case FamilyGuillotine:
		return "Guillotine"
	case FamilyAuto:
		return "Auto"
	default:
		return "MaxRects"
	}
}

func (h SkylineHeuristic) String() string {
	if h == SkylineMinWaste {
		return "MinWaste"
	}
	return "BottomLeft"
}

func (h MRHeuristic) String() string {
	switch h {
	case MRBestAreaFit:
		return "BestAreaFit"
	case MRBestLongSideFit:
		return "BestLongSideFit"
	case MRBottomLeft:
		return "BottomLeft"
	case MRContactPoint:
		return "ContactPoint"
	default:
		return "BestShortSideFit"
	}
}

func (c GChoice) String() string {
	switch c {
	case GWorstArea:
		return "WorstArea"
	case GBestShortSide:
		return "BestShortSide"
	case GBestLongSide:
		return "BestLongSide"
	default:
		return "BestArea"
	}
}

func (s GSplit) String() string {
	switch s {
	case GSplitLongLeftoverAxis:
		return "LongLeftoverAxis"
	case GSplitMinArea:
		return "MinArea"
	case GSplitMaxArea:
		return "MaxArea"
	default:
		return "ShortLeftoverAxis"
	}
}

// largestPowerOfTwo returns the largest power of two less than or equal to
// n, or 0 if n < 1.
func largestPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

// vim: ts=4
