package engine

import (
	"fmt"

	"rift-league/internal/domain"
)

// AttributeWeights is a per-position weighting over the six base attributes.
// Every row sums to 1.0.
type AttributeWeights struct {
	Mental    float64
	TeamFight float64
	CSAbility float64
	Vision    float64
	Judgment  float64
	Laning    float64
}

// positionWeights tunes the simplified 1v1 contest per lane role. Supports
// live on vision, carries on team fighting, laners on the lane itself.
var positionWeights = map[domain.Position]AttributeWeights{
	domain.PositionTop:     {Mental: 0.20, TeamFight: 0.20, CSAbility: 0.15, Vision: 0.05, Judgment: 0.15, Laning: 0.25},
	domain.PositionJungle:  {Mental: 0.15, TeamFight: 0.20, CSAbility: 0.20, Vision: 0.20, Judgment: 0.15, Laning: 0.10},
	domain.PositionMid:     {Mental: 0.15, TeamFight: 0.20, CSAbility: 0.20, Vision: 0.05, Judgment: 0.20, Laning: 0.20},
	domain.PositionADC:     {Mental: 0.10, TeamFight: 0.30, CSAbility: 0.25, Vision: 0.05, Judgment: 0.10, Laning: 0.20},
	domain.PositionSupport: {Mental: 0.20, TeamFight: 0.20, CSAbility: 0.05, Vision: 0.30, Judgment: 0.20, Laning: 0.05},
}

// WeightsFor returns the contest weights for a position. An unknown position
// is a programming error.
func WeightsFor(pos domain.Position) (AttributeWeights, error) {
	w, ok := positionWeights[pos]
	if !ok {
		return AttributeWeights{}, fmt.Errorf("%w: %q", domain.ErrUnknownPosition, pos)
	}
	return w, nil
}

// DuelScore is the position-weighted attribute sum for one contestant.
func DuelScore(m domain.RosterMember, w AttributeWeights) float64 {
	return float64(m.Mental)*w.Mental +
		float64(m.TeamFight)*w.TeamFight +
		float64(m.CSAbility)*w.CSAbility +
		float64(m.Vision)*w.Vision +
		float64(m.Judgment)*w.Judgment +
		float64(m.Laning)*w.Laning
}

// ResolveDuel runs the simplified 1v1 contest: weighted sums, one jitter per
// player (A first), strictly greater wins. Exact jittered ties are
// astronomically rare with independent continuous draws; policy when one
// occurs anyway: the lower player-card id wins.
func ResolveDuel(a, b domain.RosterMember, rng RNG) (winner domain.RosterMember, loser domain.RosterMember, err error) {
	wa, err := WeightsFor(a.Position)
	if err != nil {
		return domain.RosterMember{}, domain.RosterMember{}, err
	}
	wb, err := WeightsFor(b.Position)
	if err != nil {
		return domain.RosterMember{}, domain.RosterMember{}, err
	}

	sa := DuelScore(a, wa) * Jitter(rng)
	sb := DuelScore(b, wb) * Jitter(rng)

	switch {
	case sa > sb:
		return a, b, nil
	case sb > sa:
		return b, a, nil
	case a.PlayerID <= b.PlayerID:
		return a, b, nil
	default:
		return b, a, nil
	}
}
