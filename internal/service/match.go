package service

import (
	"context"
	"database/sql"
	"fmt"

	"rift-league/internal/constants"
	"rift-league/internal/domain"
	"rift-league/internal/engine"
	"rift-league/internal/repository"

	"github.com/rs/zerolog"
)

// MatchService runs the synchronous team-vs-team flow: aggregation, the
// three-phase simulation, outcome resolution, and the LP ladder update, all
// inside one transaction.
type MatchService struct {
	db       *sql.DB
	rosters  *repository.RosterRepository
	teams    *repository.TeamRatingRepository
	outcomes *repository.OutcomeRepository
	rng      engine.RNG
	logger   zerolog.Logger
}

func NewMatchService(
	db *sql.DB,
	rosters *repository.RosterRepository,
	teams *repository.TeamRatingRepository,
	outcomes *repository.OutcomeRepository,
	rng engine.RNG,
	logger zerolog.Logger,
) *MatchService {
	return &MatchService{db: db, rosters: rosters, teams: teams, outcomes: outcomes, rng: rng, logger: logger}
}

// SimulateTeamMatch simulates teamA (home side) against teamB and applies the
// result to both ladder rows. Rating writes and the audit record commit
// together or not at all.
func (s *MatchService) SimulateTeamMatch(ctx context.Context, teamA, teamB string) (*domain.MatchOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("team_a", teamA).Str("team_b", teamB).Msg("simulating team match")

	// Roster completeness is checked before any simulation or mutation.
	rosterA, err := s.rosters.StartingRoster(ctx, teamA)
	if err != nil {
		return nil, err
	}
	rosterB, err := s.rosters.StartingRoster(ctx, teamB)
	if err != nil {
		return nil, err
	}

	powerA := engine.TeamPower(rosterA)
	powerB := engine.TeamPower(rosterB)

	phases := engine.SimulatePhases(rosterA, rosterB, s.rng)
	winnerSide := engine.ResolveOutcome(phases.TotalA, phases.TotalB)

	outcome := &domain.MatchOutcome{
		TeamA:      teamA,
		TeamB:      teamB,
		Laning:     phases.Laning,
		Objective:  phases.Objective,
		FinalFight: phases.FinalFight,
		TotalA:     phases.TotalA,
		TotalB:     phases.TotalB,
		Events: append(
			[]string{fmt.Sprintf("team power: %.1f vs %.1f", powerA, powerB)},
			phases.Events...,
		),
	}
	if winnerSide == engine.SideA {
		outcome.Winner = teamA
	} else {
		outcome.Winner = teamB
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	teams := s.teams.WithTx(tx)

	ratingA, err := teams.GetOrInit(ctx, teamA)
	if err != nil {
		return nil, err
	}
	ratingB, err := teams.GetOrInit(ctx, teamB)
	if err != nil {
		return nil, err
	}

	// Deltas are computed against the pre-match tiers on both sides.
	tierA, tierB := ratingA.Tier, ratingB.Tier

	outcome.LPDeltaA, err = engine.ApplyMatchResult(ratingA, tierB, winnerSide == engine.SideA)
	if err != nil {
		return nil, err
	}
	outcome.LPDeltaB, err = engine.ApplyMatchResult(ratingB, tierA, winnerSide == engine.SideB)
	if err != nil {
		return nil, err
	}

	if err := teams.Update(ctx, ratingA); err != nil {
		return nil, err
	}
	if err := teams.Update(ctx, ratingB); err != nil {
		return nil, err
	}
	if err := s.outcomes.WithTx(tx).InsertMatch(ctx, outcome); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match transaction: %w", err)
	}

	s.logger.Info().
		Str("winner", outcome.Winner).
		Int("total_a", outcome.TotalA).
		Int("total_b", outcome.TotalB).
		Int("lp_delta_a", outcome.LPDeltaA).
		Int("lp_delta_b", outcome.LPDeltaB).
		Msg("match resolved")

	return outcome, nil
}

// TeamRating is the read surface for the team ladder.
func (s *MatchService) TeamRating(ctx context.Context, teamID string) (*domain.TeamRating, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.teams.GetOrInit(ctx, teamID)
}
