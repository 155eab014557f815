package atlaspack

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// candidate is one (family, heuristic...) entry in a Fast or Quality
// portfolio table. Its position in the table is its identifier: scoring
// ties break on this index, never on completion order, per §4.7/§5.
type candidate struct {
	family Family
	cfg    PackerConfig
}

// fastCandidates mirrors spec §4.7's small fixed Fast list.
func fastCandidates(base PackerConfig) []candidate {
	return []candidate{
		{family: FamilySkyline, cfg: withSkyline(base, SkylineMinWaste, true)},
		{family: FamilyMaxRects, cfg: withMaxRects(base, MRBestAreaFit, base.MRReference)},
		{family: FamilyGuillotine, cfg: withGuillotine(base, GBestArea, GSplitShortLeftoverAxis)},
	}
}

// qualityCandidates mirrors spec §4.7's superset: every MaxRects
// heuristic, Skyline with and without the waste map, and a spread of
// Guillotine choice/split combinations.
func qualityCandidates(base PackerConfig) []candidate {
	mrRef := base.MRReference
	if base.TimeBudgetMS >= base.AutoMRRefTimeMsThreshold {
		mrRef = true
	}

	var cands []candidate
	for _, h := range []SkylineHeuristic{SkylineBottomLeft, SkylineMinWaste} {
		cands = append(cands, candidate{family: FamilySkyline, cfg: withSkyline(base, h, h == SkylineMinWaste)})
	}
	for _, h := range []MRHeuristic{MRBestAreaFit, MRBestShortSideFit, MRBestLongSideFit, MRBottomLeft, MRContactPoint} {
		cands = append(cands, candidate{family: FamilyMaxRects, cfg: withMaxRects(base, h, mrRef)})
	}
	for _, c := range []GChoice{GBestArea, GWorstArea, GBestShortSide, GBestLongSide} {
		for _, s := range []GSplit{GSplitShortLeftoverAxis, GSplitMinArea} {
			cands = append(cands, candidate{family: FamilyGuillotine, cfg: withGuillotine(base, c, s)})
		}
	}
	return cands
}

func withSkyline(base PackerConfig, h SkylineHeuristic, waste bool) PackerConfig {
	cfg := base
	cfg.SkylineHeuristic, cfg.UseWasteMap = h, waste
	return cfg
}

func withMaxRects(base PackerConfig, h MRHeuristic, reference bool) PackerConfig {
	cfg := base
	cfg.MRHeuristic, cfg.MRReference = h, reference
	return cfg
}

func withGuillotine(base PackerConfig, choice GChoice, split GSplit) PackerConfig {
	cfg := base
	cfg.GChoice, cfg.GSplit = choice, split
	return cfg
}

// candidateResult is the scored outcome of one candidate's run. atlas is
// nil when the candidate could not produce a layout at all (e.g. every
// item is ItemTooLarge), which excludes it from the winner selection.
type candidateResult struct {
	atlas *Atlas
	pages int
	area  int
	err   error
}

func scoreAtlas(atlas *Atlas) (pages, area int) {
	pages = len(atlas.Pages)
	for _, p := range atlas.Pages {
		area += p.Width * p.Height
	}
	return
}

// runPortfolio implements §4.7: it runs the Fast or Quality candidate
// table against the pre-processed item stream under a time budget,
// optionally in parallel, and returns the lexicographically best-scoring
// admissible atlas. Ties (including "no candidate finished before the
// budget expired") break on the first-admitted candidate, matching the
// "we never return no result when inputs are valid" rule in §5.
func runPortfolio(items []packItem, cfg *PackerConfig) (*Atlas, error) {
	var cands []candidate
	if cfg.AutoMode == AutoQuality {
		cands = qualityCandidates(*cfg)
	} else {
		cands = fastCandidates(*cfg)
	}
	if cfg.AutoMode == AutoQuality && len(items) >= cfg.AutoMRRefInputThreshold {
		for i := range cands {
			if cands[i].family == FamilyMaxRects {
				cands[i].cfg.MRReference = true
			}
		}
	}

	deadline := time.Now().Add(time.Duration(cfg.TimeBudgetMS) * time.Millisecond)
	admitted := make([]bool, len(cands))
	for i := range cands {
		if cfg.TimeBudgetMS <= 0 && i > 0 {
			break
		}
		if i > 0 && time.Now().After(deadline) {
			break
		}
		admitted[i] = true
	}

	results := make([]candidateResult, len(cands))

	if cfg.Parallel {
		var g errgroup.Group
		for i := range cands {
			if !admitted[i] {
				continue
			}
			i := i
			itemsCopy := make([]packItem, len(items))
			copy(itemsCopy, items)
			g.Go(func() error {
				c := cands[i].cfg
				atlas, err := runDriver(itemsCopy, &c, cands[i].family)
				results[i] = toResult(atlas, err)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range cands {
			if !admitted[i] {
				continue
			}
			if i > 0 && time.Now().After(deadline) {
				break
			}
			c := cands[i].cfg
			atlas, err := runDriver(items, &c, cands[i].family)
			results[i] = toResult(atlas, err)
		}
	}

	return pickWinner(results)
}

func toResult(atlas *Atlas, err error) candidateResult {
	if err != nil {
		return candidateResult{err: err}
	}
	pages, area := scoreAtlas(atlas)
	return candidateResult{atlas: atlas, pages: pages, area: area}
}

// pickWinner applies the lexicographic objective from §4.7: fewer pages,
// then smaller total area, then lower candidate index.
func pickWinner(results []candidateResult) (*Atlas, error) {
	var winner *candidateResult
	var firstErr error

	for i := range results {
		r := &results[i]
		if r.atlas == nil {
			if r.err != nil && firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if winner == nil ||
			r.pages < winner.pages ||
			(r.pages == winner.pages && r.area < winner.area) {
			winner = r
		}
	}

	if winner == nil {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, newError(InvalidInput, "", errNoCandidates)
	}
	return winner.atlas, nil
}

// vim: ts=4
