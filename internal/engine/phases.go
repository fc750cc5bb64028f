package engine

import (
	"fmt"

	"rift-league/internal/domain"
)

// Phase point awards.
const (
	lanePoints      = 20
	laneTiePoints   = 10
	objectivePoints = 30
	finalPoints     = 50

	objectiveContests = 3
)

// PhaseResult is the full output of the three-phase simulation: per-phase
// score pairs, cumulative totals, and the narrative event log.
type PhaseResult struct {
	Laning     domain.PhaseScore
	Objective  domain.PhaseScore
	FinalFight domain.PhaseScore
	TotalA     int
	TotalB     int
	Events     []string
}

// laneScore is the phase-1 per-lane comparison value: laning + cs + judgment,
// condition- and form-adjusted the same way as team power aggregation.
func laneScore(m domain.RosterMember) float64 {
	raw := float64(m.Laning + m.CSAbility + m.Judgment)
	return raw * (1 + ConditionModifier(m.Condition)) * (1 + m.Form/100)
}

// objectiveScore is the phase-2 roster-wide base: team fight + vision, raw.
func objectiveScore(roster domain.Roster) float64 {
	var total float64
	for _, pos := range domain.Positions {
		m := roster[pos]
		total += float64(m.TeamFight + m.Vision)
	}
	return total
}

// finalScore is the phase-3 base: mental + team fight + judgment across the
// roster, plus condition-scaled power.
func finalScore(roster domain.Roster) float64 {
	var total float64
	for _, pos := range domain.Positions {
		m := roster[pos]
		total += float64(m.Mental + m.TeamFight + m.Judgment)
		total += m.Power * (1 + ConditionModifier(m.Condition))
	}
	return total
}

// SimulatePhases runs the three sequential contests between two complete
// rosters. Phases always run in order and exactly once; phase 1 consumes no
// randomness, phase 2 draws one jitter per side per contest (A first), and
// phase 3 draws one die per side (A first).
func SimulatePhases(a, b domain.Roster, rng RNG) PhaseResult {
	var res PhaseResult

	// Phase 1: laning, per matching lane, deterministic.
	for _, pos := range domain.Positions {
		sa, sb := laneScore(a[pos]), laneScore(b[pos])
		switch {
		case sa > sb:
			res.Laning.TeamA += lanePoints
			res.Events = append(res.Events, fmt.Sprintf("%s lane: %s takes the lead", pos, a[pos].Name))
		case sb > sa:
			res.Laning.TeamB += lanePoints
			res.Events = append(res.Events, fmt.Sprintf("%s lane: %s takes the lead", pos, b[pos].Name))
		default:
			res.Laning.TeamA += laneTiePoints
			res.Laning.TeamB += laneTiePoints
			res.Events = append(res.Events, fmt.Sprintf("%s lane: dead even", pos))
		}
	}

	// Phase 2: three independent objective contests, jittered roster sums.
	baseA, baseB := objectiveScore(a), objectiveScore(b)
	for i := 1; i <= objectiveContests; i++ {
		ja := baseA * Jitter(rng)
		jb := baseB * Jitter(rng)
		switch {
		case ja > jb:
			res.Objective.TeamA += objectivePoints
			res.Events = append(res.Events, fmt.Sprintf("objective %d secured by blue side", i))
		case jb > ja:
			res.Objective.TeamB += objectivePoints
			res.Events = append(res.Events, fmt.Sprintf("objective %d secured by red side", i))
		default:
			// Exact jittered tie: neither side is credited.
			res.Events = append(res.Events, fmt.Sprintf("objective %d contested, nobody takes it", i))
		}
	}

	// Phase 3: final fight, one die per side.
	dieA, dieB := Die(rng), Die(rng)
	fa := finalScore(a) * (1 + float64(dieA)/100)
	fb := finalScore(b) * (1 + float64(dieB)/100)
	switch {
	case fa > fb:
		res.FinalFight.TeamA += finalPoints
		res.Events = append(res.Events, "blue side wins the final fight")
	case fb > fa:
		res.FinalFight.TeamB += finalPoints
		res.Events = append(res.Events, "red side wins the final fight")
	default:
		res.Events = append(res.Events, "the final fight ends in a standoff")
	}

	res.TotalA = res.Laning.TeamA + res.Objective.TeamA + res.FinalFight.TeamA
	res.TotalB = res.Laning.TeamB + res.Objective.TeamB + res.FinalFight.TeamB
	return res
}
