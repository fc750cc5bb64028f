package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rift-league/internal/domain"
)

var allTiers = []domain.Tier{
	domain.TierBronze, domain.TierSilver, domain.TierGold, domain.TierPlatinum,
	domain.TierDiamond, domain.TierMaster, domain.TierChallenger,
}

func TestOutcomeTieBreakFavorsHomeSide(t *testing.T) {
	assert.Equal(t, SideA, ResolveOutcome(100, 100))
	assert.Equal(t, SideA, ResolveOutcome(0, 0))
	assert.Equal(t, SideA, ResolveOutcome(120, 80))
	assert.Equal(t, SideB, ResolveOutcome(80, 120))
}

func TestLPDeltaAlwaysClamped(t *testing.T) {
	for _, self := range allTiers {
		for _, opp := range allTiers {
			win, err := WinLPDelta(self, opp)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, win, 10, "win %s vs %s", self, opp)
			assert.LessOrEqual(t, win, 100, "win %s vs %s", self, opp)

			loss, err := LossLPDelta(self, opp)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, loss, 10, "loss %s vs %s", self, opp)
			assert.LessOrEqual(t, loss, 100, "loss %s vs %s", self, opp)
		}
	}
}

func TestLPDeltaFormulas(t *testing.T) {
	// Bronze beating Challenger: 50 + 6*10 = 110, clamped to 100.
	win, err := WinLPDelta(domain.TierBronze, domain.TierChallenger)
	require.NoError(t, err)
	assert.Equal(t, 100, win)

	// Challenger beating Bronze: 50 - 6*10 = -10, clamped to 10.
	win, err = WinLPDelta(domain.TierChallenger, domain.TierBronze)
	require.NoError(t, err)
	assert.Equal(t, 10, win)

	// Challenger losing to Bronze: 30 - (-6)*5 = 60.
	loss, err := LossLPDelta(domain.TierChallenger, domain.TierBronze)
	require.NoError(t, err)
	assert.Equal(t, 60, loss)

	// Bronze losing to Challenger: 30 - 6*5 = 0, clamped to 10.
	loss, err = LossLPDelta(domain.TierBronze, domain.TierChallenger)
	require.NoError(t, err)
	assert.Equal(t, 10, loss)
}

func TestUnknownTierIsFatal(t *testing.T) {
	_, err := WinLPDelta(domain.Tier("WOOD"), domain.TierBronze)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)

	_, err = LossLPDelta(domain.TierBronze, domain.Tier("WOOD"))
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
}

func TestTierForLPThresholds(t *testing.T) {
	cases := []struct {
		lp   int
		want domain.Tier
	}{
		{0, domain.TierBronze},
		{999, domain.TierBronze},
		{1000, domain.TierSilver},
		{2000, domain.TierGold},
		{2499, domain.TierGold},
		{2500, domain.TierPlatinum},
		{3500, domain.TierDiamond},
		{4000, domain.TierMaster},
		{6499, domain.TierMaster},
		{6500, domain.TierChallenger},
		{99999, domain.TierChallenger},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierForLP(tc.lp), "lp=%d", tc.lp)
	}
}

func TestTierReevaluationIdempotent(t *testing.T) {
	for lp := 0; lp <= 7000; lp += 37 {
		once := TierForLP(lp)
		assert.Equal(t, once, TierForLP(lp))
	}
}

func TestApplyMatchResult(t *testing.T) {
	r := &domain.TeamRating{TeamID: "t1", LP: 980, Tier: domain.TierBronze, WinStreak: 2}

	// Win against a same-tier opponent: +50 LP, streak up, promoted to Silver.
	delta, err := ApplyMatchResult(r, domain.TierBronze, true)
	require.NoError(t, err)
	assert.Equal(t, 50, delta)
	assert.Equal(t, 1030, r.LP)
	assert.Equal(t, domain.TierSilver, r.Tier)
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 3, r.WinStreak)

	// Loss resets the streak and can demote.
	delta, err = ApplyMatchResult(r, domain.TierSilver, false)
	require.NoError(t, err)
	assert.Equal(t, -30, delta)
	assert.Equal(t, 1000, r.LP)
	assert.Equal(t, domain.TierSilver, r.Tier)
	assert.Equal(t, 0, r.WinStreak)
	assert.Equal(t, 1, r.Losses)
}

func TestApplyMatchResultFloorsLPAtZero(t *testing.T) {
	r := &domain.TeamRating{TeamID: "t1", LP: 5, Tier: domain.TierBronze}
	_, err := ApplyMatchResult(r, domain.TierBronze, false)
	require.NoError(t, err)
	assert.Equal(t, 0, r.LP)
	assert.Equal(t, domain.TierBronze, r.Tier)
}
