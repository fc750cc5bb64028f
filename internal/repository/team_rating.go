package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rift-league/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRatingRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewTeamRatingRepository(sqlDB *sql.DB, logger zerolog.Logger) *TeamRatingRepository {
	return &TeamRatingRepository{db: sqlDB, logger: logger}
}

func (r *TeamRatingRepository) WithTx(tx *sql.Tx) *TeamRatingRepository {
	return &TeamRatingRepository{db: tx, logger: r.logger}
}

// GetOrInit loads a team's ladder state, lazily creating a BRONZE / 0 LP row
// on first reference.
func (r *TeamRatingRepository) GetOrInit(ctx context.Context, teamID string) (*domain.TeamRating, error) {
	rating := &domain.TeamRating{}
	err := r.db.QueryRowContext(ctx, `
		SELECT team_id, lp, tier, wins, losses, win_streak, updated_at
		FROM team_ratings
		WHERE team_id = ?`, teamID).Scan(
		&rating.TeamID, &rating.LP, &rating.Tier, &rating.Wins,
		&rating.Losses, &rating.WinStreak, &rating.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		rating = &domain.TeamRating{
			TeamID:    teamID,
			Tier:      domain.TierBronze,
			UpdatedAt: time.Now(),
		}
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO team_ratings (team_id, lp, tier, updated_at)
			VALUES (?, 0, ?, ?)`,
			teamID, domain.TierBronze, rating.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to init team rating %s: %w", teamID, err)
		}
		r.logger.Debug().Str("team_id", teamID).Msg("initialized team rating")
		return rating, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load team rating %s: %w", teamID, err)
	}
	return rating, nil
}

func (r *TeamRatingRepository) Update(ctx context.Context, rating *domain.TeamRating) error {
	rating.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE team_ratings
		SET lp = ?, tier = ?, wins = ?, losses = ?, win_streak = ?, updated_at = ?
		WHERE team_id = ?`,
		rating.LP, rating.Tier, rating.Wins, rating.Losses,
		rating.WinStreak, rating.UpdatedAt, rating.TeamID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team rating %s: %w", rating.TeamID, err)
	}
	return nil
}
