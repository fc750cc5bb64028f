package engine

// Side identifies which team a result refers to.
type Side int

const (
	SideA Side = iota
	SideB
)

// ResolveOutcome declares the winner from the cumulative score pair.
// Strictly greater wins; an exact tie goes to team A, the initiating home
// side. The tie-break is deliberate policy, not an incidental default.
func ResolveOutcome(totalA, totalB int) Side {
	if totalB > totalA {
		return SideB
	}
	return SideA
}
