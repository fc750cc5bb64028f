package engine

import (
	"fmt"

	"rift-league/internal/domain"
)

// scriptRNG replays a fixed sequence of draws so every jitter and die roll is
// forced. Float64 values feed Jitter (0.5 → exactly 1.0), Intn values feed
// Die (value d-1 → die face d).
type scriptRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRNG) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptRNG) Intn(int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v
}

// uniformRoster builds a full five-lane roster with identical members.
func uniformRoster(teamID string, power float64, cond domain.Condition, form float64) domain.Roster {
	r := make(domain.Roster, len(domain.Positions))
	for i, pos := range domain.Positions {
		r[pos] = domain.RosterMember{
			TeamID:    teamID,
			PlayerID:  fmt.Sprintf("%s-%d", teamID, i),
			Name:      fmt.Sprintf("%s %s", teamID, pos),
			Position:  pos,
			Mental:    50,
			TeamFight: 50,
			CSAbility: 50,
			Vision:    50,
			Judgment:  50,
			Laning:    50,
			Power:     power,
			Condition: cond,
			Form:      form,
		}
	}
	return r
}

// setLane replaces one lane's laning/cs/judgment triple to rig phase 1.
func setLane(r domain.Roster, pos domain.Position, laning, cs, judgment int) {
	m := r[pos]
	m.Laning, m.CSAbility, m.Judgment = laning, cs, judgment
	r[pos] = m
}
