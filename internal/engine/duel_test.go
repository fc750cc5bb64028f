package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rift-league/internal/domain"
)

func TestPositionWeightsSumToOne(t *testing.T) {
	for _, pos := range domain.Positions {
		w, err := WeightsFor(pos)
		require.NoError(t, err)
		sum := w.Mental + w.TeamFight + w.CSAbility + w.Vision + w.Judgment + w.Laning
		assert.InDelta(t, 1.0, sum, 1e-9, "position %s", pos)
	}
}

func TestWeightsForUnknownPosition(t *testing.T) {
	_, err := WeightsFor(domain.Position("COACH"))
	assert.ErrorIs(t, err, domain.ErrUnknownPosition)
}

func TestDuelScoreWeighting(t *testing.T) {
	m := domain.RosterMember{
		Position: domain.PositionSupport,
		Mental:   100, TeamFight: 100, CSAbility: 100,
		Vision: 100, Judgment: 100, Laning: 100,
	}
	w, err := WeightsFor(m.Position)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, DuelScore(m, w), 1e-9)

	// Vision dominates a support's score.
	visionOnly := domain.RosterMember{Position: domain.PositionSupport, Vision: 100}
	assert.InDelta(t, 30.0, DuelScore(visionOnly, w), 1e-9)
}

func TestResolveDuelHigherScoreWins(t *testing.T) {
	a := domain.RosterMember{PlayerID: "p1", Position: domain.PositionMid, Mental: 80, TeamFight: 80, CSAbility: 80, Vision: 80, Judgment: 80, Laning: 80}
	b := domain.RosterMember{PlayerID: "p2", Position: domain.PositionMid, Mental: 60, TeamFight: 60, CSAbility: 60, Vision: 60, Judgment: 60, Laning: 60}

	// Equal jitters: the stronger card wins.
	winner, loser, err := ResolveDuel(a, b, &scriptRNG{floats: []float64{0.5, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, "p1", winner.PlayerID)
	assert.Equal(t, "p2", loser.PlayerID)
}

func TestResolveDuelJitterCanFlip(t *testing.T) {
	a := domain.RosterMember{PlayerID: "p1", Position: domain.PositionMid, Mental: 62, TeamFight: 62, CSAbility: 62, Vision: 62, Judgment: 62, Laning: 62}
	b := domain.RosterMember{PlayerID: "p2", Position: domain.PositionMid, Mental: 60, TeamFight: 60, CSAbility: 60, Vision: 60, Judgment: 60, Laning: 60}

	// A draws the bottom of the jitter range, B the top: 62*0.9 < 60*1.1.
	winner, _, err := ResolveDuel(a, b, &scriptRNG{floats: []float64{0.0, 1.0}})
	require.NoError(t, err)
	assert.Equal(t, "p2", winner.PlayerID)
}

func TestResolveDuelTieBreakLowerID(t *testing.T) {
	a := domain.RosterMember{PlayerID: "p9", Position: domain.PositionTop, Laning: 100}
	b := domain.RosterMember{PlayerID: "p2", Position: domain.PositionTop, Laning: 100}

	winner, _, err := ResolveDuel(a, b, &scriptRNG{floats: []float64{0.5, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, "p2", winner.PlayerID)
}
