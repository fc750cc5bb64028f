package service

import (
	"context"
	"database/sql"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"rift-league/internal/constants"
	"rift-league/internal/domain"
	"rift-league/internal/engine"
	"rift-league/internal/repository"

	"github.com/rs/zerolog"
)

// PairingOutcome tags what happened to one adjacent pair during a batch
// sweep. Skipped is a normal result, not an error: the entries stay
// SEARCHING for the next run with no carried-over priority.
type PairingOutcome int

const (
	PairingMatched PairingOutcome = iota
	PairingSkipped
)

// BatchResult is the summary of one matchmaking run.
type BatchResult struct {
	MatchesResolved int `json:"matches_resolved"`
	Skipped         int `json:"skipped"`
}

// BatchService is the periodic matchmaking job. It is a pure callable; the
// schedule itself belongs to the scheduler component (or a manual trigger).
type BatchService struct {
	db       *sql.DB
	rosters  *repository.RosterRepository
	ratings  *repository.PlayerRatingRepository
	queue    *repository.QueueRepository
	outcomes *repository.OutcomeRepository
	rng      engine.RNG
	logger   zerolog.Logger
}

func NewBatchService(
	db *sql.DB,
	rosters *repository.RosterRepository,
	ratings *repository.PlayerRatingRepository,
	queue *repository.QueueRepository,
	outcomes *repository.OutcomeRepository,
	rng engine.RNG,
	logger zerolog.Logger,
) *BatchService {
	return &BatchService{db: db, rosters: rosters, ratings: ratings, queue: queue, outcomes: outcomes, rng: rng, logger: logger}
}

// RunMatchmakingBatch sweeps every position bucket once: shuffle the
// SEARCHING entries, greedily pair adjacent indices gated by the rating
// window, and resolve each pair. Buckets share no state and run in parallel.
// After all buckets settle, the denormalized per-position ranks are
// recomputed.
func (s *BatchService) RunMatchmakingBatch(ctx context.Context, seasonID string) (*BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.BatchTimeout)
	defer cancel()

	var resolved, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for _, pos := range domain.Positions {
		g.Go(func() error {
			r, sk, err := s.sweepBucket(gctx, seasonID, pos)
			resolved.Add(int64(r))
			skipped.Add(int64(sk))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.ratings.RecomputeRanks(ctx, seasonID); err != nil {
		return nil, err
	}

	res := &BatchResult{
		MatchesResolved: int(resolved.Load()),
		Skipped:         int(skipped.Load()),
	}
	s.logger.Info().
		Str("season_id", seasonID).
		Int("matches_resolved", res.MatchesResolved).
		Int("skipped", res.Skipped).
		Msg("matchmaking batch finished")
	return res, nil
}

func (s *BatchService) sweepBucket(ctx context.Context, seasonID string, pos domain.Position) (resolved, skipped int, err error) {
	entries, err := s.queue.Searching(ctx, seasonID, pos, constants.QueueScanLimit)
	if err != nil {
		return 0, 0, err
	}
	if len(entries) < 2 {
		return 0, len(entries), nil
	}

	// Shuffle-then-greedy-pair: processing order decides the pairing and is
	// deliberately randomized.
	s.shuffle(entries)

	for i := 0; i+1 < len(entries); i += 2 {
		a, b := entries[i], entries[i+1]
		switch s.pair(ctx, seasonID, &a, &b) {
		case PairingMatched:
			resolved++
		case PairingSkipped:
			skipped += 2
		}
	}
	if len(entries)%2 == 1 {
		skipped++
	}
	return resolved, skipped, nil
}

// pair resolves one adjacent pair in its own transaction. The SEARCHING
// status is re-checked by the guarded update immediately before commit, so a
// concurrent synchronous join can never double-pair either player.
func (s *BatchService) pair(ctx context.Context, seasonID string, a, b *domain.QueueEntry) PairingOutcome {
	diff := a.Rating - b.Rating
	if diff < 0 {
		diff = -diff
	}
	if diff > constants.RatingWindow {
		return PairingSkipped
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin pairing transaction")
		return PairingSkipped
	}
	defer tx.Rollback()

	queue := s.queue.WithTx(tx)

	flipped, err := queue.MarkMatched(ctx, a.ID, b.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to flip queue entries")
		return PairingSkipped
	}
	if flipped != 2 {
		s.logger.Debug().
			Str("player_a", a.PlayerID).
			Str("player_b", b.PlayerID).
			Msg("pair no longer searching, skipping")
		return PairingSkipped
	}

	duel, err := resolveDuel(ctx, s.rosters.WithTx(tx), s.ratings.WithTx(tx), s.outcomes.WithTx(tx), s.rng, seasonID, a.PlayerID, b.PlayerID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve batch duel")
		return PairingSkipped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit pairing")
		return PairingSkipped
	}

	s.logger.Debug().
		Str("winner", duel.Winner).
		Int("rating_delta", duel.RatingDelta).
		Msg("batch pair resolved")
	return PairingMatched
}

// shuffle is a Fisher-Yates over the injected RNG so batch sweeps stay
// reproducible under a scripted source.
func (s *BatchService) shuffle(entries []domain.QueueEntry) {
	for i := len(entries) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}
