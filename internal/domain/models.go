package domain

import (
	"time"
)

// Position is one of the five fixed lane roles a roster member can fill.
type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JUNGLE"
	PositionMid     Position = "MID"
	PositionADC     Position = "ADC"
	PositionSupport Position = "SUPPORT"
)

// Positions lists every required lane role in a fixed order. A roster is
// eligible to simulate only when all five are filled.
var Positions = []Position{
	PositionTop,
	PositionJungle,
	PositionMid,
	PositionADC,
	PositionSupport,
}

// Condition is the five-level daily form indicator. It modifies a member's
// effective power by a fixed percentage.
type Condition string

const (
	ConditionRed    Condition = "RED"
	ConditionOrange Condition = "ORANGE"
	ConditionYellow Condition = "YELLOW"
	ConditionBlue   Condition = "BLUE"
	ConditionPurple Condition = "PURPLE"
)

// Tier is the team ladder rank category, ordered from BRONZE up.
type Tier string

const (
	TierBronze     Tier = "BRONZE"
	TierSilver     Tier = "SILVER"
	TierGold       Tier = "GOLD"
	TierPlatinum   Tier = "PLATINUM"
	TierDiamond    Tier = "DIAMOND"
	TierMaster     Tier = "MASTER"
	TierChallenger Tier = "CHALLENGER"
)

// QueueStatus is the lifecycle state of a matchmaking queue entry.
type QueueStatus string

const (
	QueueSearching QueueStatus = "SEARCHING"
	QueueMatched   QueueStatus = "MATCHED"
	QueueCancelled QueueStatus = "CANCELLED"
)

// RosterMember is one fielded unit: a player card assigned to a lane.
type RosterMember struct {
	TeamID    string
	PlayerID  string
	Name      string
	Position  Position
	Mental    int
	TeamFight int
	CSAbility int
	Vision    int
	Judgment  int
	Laning    int
	Power     float64
	Condition Condition
	Form      float64 // percentage, layered multiplicatively on condition
	Traits    []string
	Starter   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roster maps each required position to its starting member.
type Roster map[Position]RosterMember

// PhaseScore is the points both sides earned in one phase.
type PhaseScore struct {
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

// MatchOutcome is the immutable audit record of one team-vs-team simulation.
type MatchOutcome struct {
	ID         string     `json:"id"`
	TeamA      string     `json:"team_a"`
	TeamB      string     `json:"team_b"`
	Winner     string     `json:"winner"`
	Laning     PhaseScore `json:"laning"`
	Objective  PhaseScore `json:"objective"`
	FinalFight PhaseScore `json:"final_fight"`
	TotalA     int        `json:"total_a"`
	TotalB     int        `json:"total_b"`
	LPDeltaA   int        `json:"lp_delta_a"`
	LPDeltaB   int        `json:"lp_delta_b"`
	Events     []string   `json:"events"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TeamRating is the persistent per-team ladder state. Tier is a pure function
// of LP, recomputed after every mutation.
type TeamRating struct {
	TeamID    string    `json:"team_id"`
	LP        int       `json:"lp"`
	Tier      Tier      `json:"tier"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	WinStreak int       `json:"win_streak"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerRating is the per-player-card, per-season Elo state.
type PlayerRating struct {
	PlayerID    string    `json:"player_id"`
	SeasonID    string    `json:"season_id"`
	Position    Position  `json:"position"`
	Rating      int       `json:"rating"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	WinRate     float64   `json:"win_rate"`
	Rank        int       `json:"rank"`
	LastMatchAt time.Time `json:"last_match_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QueueEntry is one pairing-eligibility record. Entries are never reused:
// a new join always inserts a fresh row.
type QueueEntry struct {
	ID         string
	PlayerID   string
	SeasonID   string
	Position   Position
	Rating     int
	Status     QueueStatus
	EnqueuedAt time.Time
	UpdatedAt  time.Time
}

// DuelOutcome is the audit record of one simplified 1v1 contest resolved by
// matchmaking, synchronous or batch.
type DuelOutcome struct {
	ID          string    `json:"id"`
	SeasonID    string    `json:"season_id"`
	PlayerA     string    `json:"player_a"`
	PlayerB     string    `json:"player_b"`
	Winner      string    `json:"winner"`
	RatingDelta int       `json:"rating_delta"` // applied to the winner; loser gets the negation
	CreatedAt   time.Time `json:"created_at"`
}
