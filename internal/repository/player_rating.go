package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rift-league/internal/domain"
	"rift-league/internal/engine"

	"github.com/rs/zerolog"
)

type PlayerRatingRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewPlayerRatingRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRatingRepository {
	return &PlayerRatingRepository{db: sqlDB, logger: logger}
}

func (r *PlayerRatingRepository) WithTx(tx *sql.Tx) *PlayerRatingRepository {
	return &PlayerRatingRepository{db: tx, logger: r.logger}
}

// GetOrInit loads a player's season rating, lazily creating a 1500 row on
// first reference. Position is fixed at creation and never moves afterwards.
func (r *PlayerRatingRepository) GetOrInit(ctx context.Context, playerID, seasonID string, position domain.Position) (*domain.PlayerRating, error) {
	rating := &domain.PlayerRating{}
	err := r.db.QueryRowContext(ctx, `
		SELECT player_id, season_id, position, rating, wins, losses, win_rate,
		       rank, last_match_at, updated_at
		FROM player_ratings
		WHERE player_id = ? AND season_id = ?`, playerID, seasonID).Scan(
		&rating.PlayerID, &rating.SeasonID, &rating.Position, &rating.Rating,
		&rating.Wins, &rating.Losses, &rating.WinRate, &rating.Rank,
		&rating.LastMatchAt, &rating.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		now := time.Now()
		rating = &domain.PlayerRating{
			PlayerID:    playerID,
			SeasonID:    seasonID,
			Position:    position,
			Rating:      engine.InitialRating,
			LastMatchAt: now,
			UpdatedAt:   now,
		}
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO player_ratings (player_id, season_id, position, rating, last_match_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			playerID, seasonID, position, engine.InitialRating, now, now,
		); err != nil {
			return nil, fmt.Errorf("failed to init player rating %s/%s: %w", playerID, seasonID, err)
		}
		r.logger.Debug().Str("player_id", playerID).Str("season_id", seasonID).Msg("initialized player rating")
		return rating, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player rating %s/%s: %w", playerID, seasonID, err)
	}
	return rating, nil
}

// Get loads a player's season rating without initializing.
func (r *PlayerRatingRepository) Get(ctx context.Context, playerID, seasonID string) (*domain.PlayerRating, error) {
	rating := &domain.PlayerRating{}
	err := r.db.QueryRowContext(ctx, `
		SELECT player_id, season_id, position, rating, wins, losses, win_rate,
		       rank, last_match_at, updated_at
		FROM player_ratings
		WHERE player_id = ? AND season_id = ?`, playerID, seasonID).Scan(
		&rating.PlayerID, &rating.SeasonID, &rating.Position, &rating.Rating,
		&rating.Wins, &rating.Losses, &rating.WinRate, &rating.Rank,
		&rating.LastMatchAt, &rating.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player rating %s/%s: %w", playerID, seasonID, err)
	}
	return rating, nil
}

func (r *PlayerRatingRepository) Update(ctx context.Context, rating *domain.PlayerRating) error {
	rating.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE player_ratings
		SET rating = ?, wins = ?, losses = ?, win_rate = ?, last_match_at = ?, updated_at = ?
		WHERE player_id = ? AND season_id = ?`,
		rating.Rating, rating.Wins, rating.Losses, rating.WinRate,
		rating.LastMatchAt, rating.UpdatedAt, rating.PlayerID, rating.SeasonID,
	)
	if err != nil {
		return fmt.Errorf("failed to update player rating %s/%s: %w", rating.PlayerID, rating.SeasonID, err)
	}
	return nil
}

// RecomputeRanks rewrites the denormalized per-position dense rank for a
// season, ordered by (rating desc, wins desc). The rank column is a read
// projection only; matchmaking never consults it.
func (r *PlayerRatingRepository) RecomputeRanks(ctx context.Context, seasonID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE player_ratings
		SET rank = (
			SELECT rnk FROM (
				SELECT player_id,
				       DENSE_RANK() OVER (
				           PARTITION BY position
				           ORDER BY rating DESC, wins DESC
				       ) AS rnk
				FROM player_ratings
				WHERE season_id = ?
			) ranked
			WHERE ranked.player_id = player_ratings.player_id
		)
		WHERE season_id = ?`, seasonID, seasonID)
	if err != nil {
		return fmt.Errorf("failed to recompute ranks for season %s: %w", seasonID, err)
	}
	return nil
}
