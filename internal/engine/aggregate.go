package engine

import (
	"rift-league/internal/domain"
)

// conditionModifiers is the fixed condition → power bonus table.
var conditionModifiers = map[domain.Condition]float64{
	domain.ConditionRed:    0.10,
	domain.ConditionOrange: 0.05,
	domain.ConditionYellow: 0.00,
	domain.ConditionBlue:   -0.05,
	domain.ConditionPurple: -0.10,
}

// ConditionModifier returns the power bonus for a condition. Unknown values
// fall back to 0; conditions come from a CHECK-constrained column, so an
// unknown value never reaches here through the repositories.
func ConditionModifier(c domain.Condition) float64 {
	return conditionModifiers[c]
}

// EffectivePower applies condition and form to a member's base power.
func EffectivePower(m domain.RosterMember) float64 {
	return m.Power * (1 + ConditionModifier(m.Condition)) * (1 + m.Form/100)
}

// TeamPower aggregates a complete starting roster into one comparable
// strength value. The caller guarantees all five positions are filled;
// bench members never appear in the roster map.
func TeamPower(roster domain.Roster) float64 {
	var total float64
	for _, pos := range domain.Positions {
		total += EffectivePower(roster[pos])
	}
	return total
}
