package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rift-league/internal/constants"
	"rift-league/internal/domain"
	"rift-league/internal/engine"
	"rift-league/internal/repository"

	"github.com/rs/zerolog"
)

// JoinResult is the synchronous join-path answer: either an immediate duel
// outcome or "still searching".
type JoinResult struct {
	Matched bool                `json:"matched"`
	Outcome *domain.DuelOutcome `json:"outcome,omitempty"`
}

// QueueService owns the synchronous matchmaking entry points. Pairing and the
// rating update always land in the same transaction as the queue status
// flips.
type QueueService struct {
	db       *sql.DB
	rosters  *repository.RosterRepository
	ratings  *repository.PlayerRatingRepository
	queue    *repository.QueueRepository
	outcomes *repository.OutcomeRepository
	rng      engine.RNG
	logger   zerolog.Logger
}

func NewQueueService(
	db *sql.DB,
	rosters *repository.RosterRepository,
	ratings *repository.PlayerRatingRepository,
	queue *repository.QueueRepository,
	outcomes *repository.OutcomeRepository,
	rng engine.RNG,
	logger zerolog.Logger,
) *QueueService {
	return &QueueService{db: db, rosters: rosters, ratings: ratings, queue: queue, outcomes: outcomes, rng: rng, logger: logger}
}

// JoinMatchQueue tries to pair the player with the oldest eligible opponent
// already waiting at the same position. No opponent within the rating window
// is not an error: the player is enqueued as SEARCHING and a later join or
// batch pass may still resolve them.
func (s *QueueService) JoinMatchQueue(ctx context.Context, playerID, seasonID string) (*JoinResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	member, err := s.rosters.Member(ctx, playerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queue := s.queue.WithTx(tx)
	ratings := s.ratings.WithTx(tx)

	existing, err := queue.ActiveEntry(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyQueued, playerID)
	}

	rating, err := ratings.GetOrInit(ctx, playerID, seasonID, member.Position)
	if err != nil {
		return nil, err
	}

	opponent, err := queue.FindOpponent(ctx, seasonID, member.Position, rating.Rating, constants.RatingWindow, playerID)
	if err != nil {
		return nil, err
	}

	entry := &domain.QueueEntry{
		PlayerID: playerID,
		SeasonID: seasonID,
		Position: member.Position,
		Rating:   rating.Rating,
	}

	if opponent == nil {
		if err := queue.Insert(ctx, entry); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit enqueue: %w", err)
		}
		s.logger.Info().Str("player_id", playerID).Str("position", string(member.Position)).Msg("no opponent in window, searching")
		return &JoinResult{Matched: false}, nil
	}

	// Pair found: both entries flip to MATCHED atomically with the duel.
	entry.Status = domain.QueueMatched
	if err := queue.Insert(ctx, entry); err != nil {
		return nil, err
	}
	flipped, err := queue.MarkMatched(ctx, opponent.ID)
	if err != nil {
		return nil, err
	}
	if flipped != 1 {
		// The opponent was paired by a concurrent writer after our read.
		// Fall back to searching rather than double-pairing them.
		return nil, fmt.Errorf("opponent %s no longer searching", opponent.PlayerID)
	}

	duel, err := resolveDuel(ctx, s.rosters.WithTx(tx), ratings, s.outcomes.WithTx(tx), s.rng, seasonID, playerID, opponent.PlayerID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pairing: %w", err)
	}

	s.logger.Info().
		Str("player_a", duel.PlayerA).
		Str("player_b", duel.PlayerB).
		Str("winner", duel.Winner).
		Int("rating_delta", duel.RatingDelta).
		Msg("queue join resolved immediately")

	return &JoinResult{Matched: true, Outcome: duel}, nil
}

// CancelQueue withdraws a SEARCHING entry. Cancellation is a status flip and
// is safe at any point before a pairing transaction commits.
func (s *QueueService) CancelQueue(ctx context.Context, playerID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.queue.Cancel(ctx, playerID)
}

// PlayerRating is the read surface for the player ladder.
func (s *QueueService) PlayerRating(ctx context.Context, playerID, seasonID string) (*domain.PlayerRating, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.ratings.Get(ctx, playerID, seasonID)
}

// resolveDuel runs the simplified 1v1 contest between two paired players and
// applies the Elo update, win counters, and derived win-rate to both season
// rows, and records the audit row. All repositories must already be bound to
// the caller's transaction.
func resolveDuel(
	ctx context.Context,
	rosters *repository.RosterRepository,
	ratings *repository.PlayerRatingRepository,
	outcomes *repository.OutcomeRepository,
	rng engine.RNG,
	seasonID, playerA, playerB string,
) (*domain.DuelOutcome, error) {
	memberA, err := rosters.Member(ctx, playerA)
	if err != nil {
		return nil, err
	}
	memberB, err := rosters.Member(ctx, playerB)
	if err != nil {
		return nil, err
	}

	ratingA, err := ratings.GetOrInit(ctx, playerA, seasonID, memberA.Position)
	if err != nil {
		return nil, err
	}
	ratingB, err := ratings.GetOrInit(ctx, playerB, seasonID, memberB.Position)
	if err != nil {
		return nil, err
	}

	winner, _, err := engine.ResolveDuel(memberA, memberB, rng)
	if err != nil {
		return nil, err
	}
	aWon := winner.PlayerID == playerA

	newA, newB, delta := engine.ApplyElo(ratingA.Rating, ratingB.Rating, aWon)
	now := time.Now()

	ratingA.Rating = newA
	ratingB.Rating = newB
	if aWon {
		ratingA.Wins++
		ratingB.Losses++
	} else {
		ratingB.Wins++
		ratingA.Losses++
	}
	ratingA.WinRate = engine.WinRate(ratingA.Wins, ratingA.Losses)
	ratingB.WinRate = engine.WinRate(ratingB.Wins, ratingB.Losses)
	ratingA.LastMatchAt = now
	ratingB.LastMatchAt = now

	if err := ratings.Update(ctx, ratingA); err != nil {
		return nil, err
	}
	if err := ratings.Update(ctx, ratingB); err != nil {
		return nil, err
	}

	winnerDelta := delta
	if !aWon {
		winnerDelta = -delta
	}
	duel := &domain.DuelOutcome{
		SeasonID:    seasonID,
		PlayerA:     playerA,
		PlayerB:     playerB,
		Winner:      winner.PlayerID,
		RatingDelta: winnerDelta,
		CreatedAt:   now,
	}
	if err := outcomes.InsertDuel(ctx, duel); err != nil {
		return nil, err
	}
	return duel, nil
}
