package domain

import "errors"

var (
	// ErrIncompleteRoster means a required lane is unfilled. Raised before a
	// simulation starts, never mid-simulation.
	ErrIncompleteRoster = errors.New("roster is missing a required position")

	// ErrUnknownTier and ErrUnknownPosition signal a lookup outside the fixed
	// enumerations. Both are programming errors, not retryable conditions.
	ErrUnknownTier     = errors.New("unknown tier")
	ErrUnknownPosition = errors.New("unknown position")

	// ErrAlreadyQueued rejects a join for a player already SEARCHING.
	ErrAlreadyQueued = errors.New("player is already in the match queue")

	// ErrNotQueued rejects a cancel for a player with no SEARCHING entry.
	ErrNotQueued = errors.New("player has no active queue entry")

	// ErrTeamNotFound / ErrPlayerNotFound map to 404 on the HTTP surface.
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
)
