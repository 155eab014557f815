package atlaspack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionShelfNextFitEvictReuse reproduces literal scenario S6.
func TestSessionShelfNextFitEvictReuse(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 64, 64
	s := NewAtlasSession(cfg, StrategyShelfNextFit)

	pageA, frameA, err := s.Append("A", 64, 32)
	require.NoError(t, err)
	assert.Equal(t, 0, pageA)
	assert.Equal(t, NewRect(0, 0, 64, 32), frameA.Frame)

	pageB, frameB, err := s.Append("B", 64, 16)
	require.NoError(t, err)
	assert.Equal(t, 0, pageB)
	assert.Equal(t, NewRect(0, 32, 64, 16), frameB.Frame)

	require.True(t, s.Evict(pageA, "A"))

	pageC, frameC, err := s.Append("C", 64, 32)
	require.NoError(t, err)
	assert.Equal(t, 0, pageC)
	assert.Equal(t, NewRect(0, 0, 64, 32), frameC.Frame, "C must reclaim A's freed segment")
}

func TestSessionDuplicateKeyFails(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 64, 64
	s := NewAtlasSession(cfg, StrategyShelfFirstFit)

	_, _, err := s.Append("A", 10, 10)
	require.NoError(t, err)

	_, _, err = s.Append("A", 5, 5)
	var perr *PackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, InvalidInput, perr.Kind)
}

func TestSessionAppendEvictAppendSamePlacement(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 128, 128
	s := NewAtlasSession(cfg, StrategyGuillotine)

	page, first, err := s.Append("sprite", 20, 20)
	require.NoError(t, err)

	require.True(t, s.Evict(page, "sprite"))

	_, second, err := s.Append("sprite", 20, 20)
	require.NoError(t, err)
	assert.Equal(t, first.Frame, second.Frame)
}

func TestSessionGuillotineOpensNewPageOnOverflow(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 16, 16
	s := NewAtlasSession(cfg, StrategyGuillotine)

	p0, _, err := s.Append("a", 16, 16)
	require.NoError(t, err)
	assert.Equal(t, 0, p0)

	p1, _, err := s.Append("b", 16, 16)
	require.NoError(t, err)
	assert.Equal(t, 1, p1)
}

func TestSessionNoCapacityWhenMaxPagesReached(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 8, 8
	cfg.MaxPages = 1
	s := NewAtlasSession(cfg, StrategyShelfFirstFit)

	_, _, err := s.Append("a", 8, 8)
	require.NoError(t, err)

	_, _, err = s.Append("b", 8, 8)
	var perr *PackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NoCapacity, perr.Kind)
}

func TestSessionSnapshotAtlasOrdersPagesAndFrames(t *testing.T) {
	cfg := NewPackerConfig()
	cfg.MaxWidth, cfg.MaxHeight = 64, 64
	s := NewAtlasSession(cfg, StrategyShelfFirstFit)

	_, _, err := s.Append("a", 10, 10)
	require.NoError(t, err)
	_, _, err = s.Append("b", 10, 10)
	require.NoError(t, err)

	snap := s.SnapshotAtlas()
	require.Len(t, snap.Pages, 1)
	require.Len(t, snap.Pages[0].Frames, 2)
	assert.Equal(t, "a", snap.Pages[0].Frames[0].Key)
	assert.Equal(t, "b", snap.Pages[0].Frames[1].Key)
}

// vim: ts=4
