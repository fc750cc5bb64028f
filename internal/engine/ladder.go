package engine

import (
	"fmt"

	"rift-league/internal/domain"
)

// LP delta tuning.
const (
	winBaseLP  = 50
	lossBaseLP = 30
	minLPDelta = 10
	maxLPDelta = 100
)

// tierOrdinals orders the tiers BRONZE=1 through CHALLENGER=7.
var tierOrdinals = map[domain.Tier]int{
	domain.TierBronze:     1,
	domain.TierSilver:     2,
	domain.TierGold:       3,
	domain.TierPlatinum:   4,
	domain.TierDiamond:    5,
	domain.TierMaster:     6,
	domain.TierChallenger: 7,
}

// tierThresholds lists tier → minimum LP, highest first, for re-evaluation.
var tierThresholds = []struct {
	Tier domain.Tier
	LP   int
}{
	{domain.TierChallenger, 6500},
	{domain.TierMaster, 4000},
	{domain.TierDiamond, 3500},
	{domain.TierPlatinum, 2500},
	{domain.TierGold, 2000},
	{domain.TierSilver, 1000},
	{domain.TierBronze, 0},
}

// TierOrdinal maps a tier to its ladder ordinal. An unknown tier is a
// programming error.
func TierOrdinal(t domain.Tier) (int, error) {
	ord, ok := tierOrdinals[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownTier, t)
	}
	return ord, nil
}

func clampLPDelta(d int) int {
	if d < minLPDelta {
		return minLPDelta
	}
	if d > maxLPDelta {
		return maxLPDelta
	}
	return d
}

// WinLPDelta is the LP gained by a winner: 50 + 10 per ordinal the opponent
// sits above them, clamped to [10, 100].
func WinLPDelta(self, opponent domain.Tier) (int, error) {
	so, err := TierOrdinal(self)
	if err != nil {
		return 0, err
	}
	oo, err := TierOrdinal(opponent)
	if err != nil {
		return 0, err
	}
	return clampLPDelta(winBaseLP + (oo-so)*10), nil
}

// LossLPDelta is the LP magnitude lost by a loser: 30 - 5 per ordinal the
// opponent sits above them, clamped to [10, 100]. The formula is applied
// verbatim regardless of the sign of the tier gap; the clamp bounds it.
func LossLPDelta(self, opponent domain.Tier) (int, error) {
	so, err := TierOrdinal(self)
	if err != nil {
		return 0, err
	}
	oo, err := TierOrdinal(opponent)
	if err != nil {
		return 0, err
	}
	return clampLPDelta(lossBaseLP - (oo-so)*5), nil
}

// TierForLP re-evaluates tier membership: the highest tier whose threshold
// the LP meets or exceeds. Idempotent and independent of the previous tier,
// so promotion and demotion are the same rule.
func TierForLP(lp int) domain.Tier {
	for _, t := range tierThresholds {
		if lp >= t.LP {
			return t.Tier
		}
	}
	return domain.TierBronze
}

// ApplyMatchResult mutates a team's rating in place after a match: LP delta,
// win/loss counters, streak bookkeeping, then tier re-evaluation. LP never
// goes below zero. The streak feeds external systems (fan satisfaction) and
// does not enter the LP formula.
func ApplyMatchResult(r *domain.TeamRating, opponent domain.Tier, won bool) (int, error) {
	if won {
		delta, err := WinLPDelta(r.Tier, opponent)
		if err != nil {
			return 0, err
		}
		r.LP += delta
		r.Wins++
		r.WinStreak++
		r.Tier = TierForLP(r.LP)
		return delta, nil
	}

	delta, err := LossLPDelta(r.Tier, opponent)
	if err != nil {
		return 0, err
	}
	r.LP -= delta
	if r.LP < 0 {
		r.LP = 0
	}
	r.Losses++
	r.WinStreak = 0
	r.Tier = TierForLP(r.LP)
	return -delta, nil
}
