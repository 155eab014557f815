package atlaspack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPortfolioZeroBudgetStillReturnsLayout reproduces literal scenario S5:
// even with a zero time budget, the first-admitted candidate always
// completes.
func TestPortfolioZeroBudgetStillReturnsLayout(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.Family = FamilyAuto
	cfg.AutoMode = AutoQuality
	cfg.TimeBudgetMS = 0
	cfg.Parallel = false

	atlas, err := PackLayout([]SizeItem{
		{Key: "a", Width: 40, Height: 20},
		{Key: "b", Width: 30, Height: 50},
		{Key: "c", Width: 70, Height: 10},
	}, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, atlas.Pages)
}

func TestPortfolioParallelMatchesSequentialWinner(t *testing.T) {
	items := []SizeItem{
		{Key: "a", Width: 40, Height: 20},
		{Key: "b", Width: 30, Height: 50},
		{Key: "c", Width: 70, Height: 10},
		{Key: "d", Width: 15, Height: 15},
		{Key: "e", Width: 90, Height: 5},
	}

	seqCfg := NewPackerConfig()
	seqCfg.Family = FamilyAuto
	seqCfg.AutoMode = AutoQuality
	seqCfg.Parallel = false

	parCfg := seqCfg
	parCfg.Parallel = true

	seq, err := PackLayout(items, seqCfg)
	require.NoError(t, err)
	par, err := PackLayout(items, parCfg)
	require.NoError(t, err)

	assert.Equal(t, seq.Fingerprint(), par.Fingerprint(),
		"parallel evaluation must not change the winner for identical inputs")
}

func TestPortfolioFastCandidatesCoverEachFamily(t *testing.T) {
	cands := fastCandidates(NewPackerConfig())
	seen := map[Family]bool{}
	for _, c := range cands {
		seen[c.family] = true
	}
	assert.True(t, seen[FamilySkyline])
	assert.True(t, seen[FamilyMaxRects])
	assert.True(t, seen[FamilyGuillotine])
}

func TestPortfolioQualityCandidatesCoverEveryMRHeuristic(t *testing.T) {
	cands := qualityCandidates(NewPackerConfig())
	seenMR := map[MRHeuristic]bool{}
	for _, c := range cands {
		if c.family == FamilyMaxRects {
			seenMR[c.cfg.MRHeuristic] = true
		}
	}
	for _, h := range []MRHeuristic{MRBestAreaFit, MRBestShortSideFit, MRBestLongSideFit, MRBottomLeft, MRContactPoint} {
		assert.True(t, seenMR[h], "missing MR heuristic %v", h)
	}
}

func TestPickWinnerTieBreaksByCandidateIndex(t *testing.T) {
	a := &Atlas{Pages: []Page{{ID: 0, Width: 10, Height: 10}}}
	b := &Atlas{Pages: []Page{{ID: 0, Width: 10, Height: 10}}}

	winner, err := pickWinner([]candidateResult{
		{atlas: a, pages: 1, area: 100},
		{atlas: b, pages: 1, area: 100},
	})
	require.NoError(t, err)
	assert.Same(t, a, winner, "equal scores must break ties toward the lower candidate index")
}

func TestPickWinnerNoCandidatesReturnsError(t *testing.T) {
	_, err := pickWinner(nil)
	require.Error(t, err)
	var perr *PackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, InvalidInput, perr.Kind)
}

// vim: ts=4
