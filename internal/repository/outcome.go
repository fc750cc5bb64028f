package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rift-league/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type OutcomeRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewOutcomeRepository(sqlDB *sql.DB, logger zerolog.Logger) *OutcomeRepository {
	return &OutcomeRepository{db: sqlDB, logger: logger}
}

func (r *OutcomeRepository) WithTx(tx *sql.Tx) *OutcomeRepository {
	return &OutcomeRepository{db: tx, logger: r.logger}
}

// InsertMatch persists one immutable team-match audit record.
func (r *OutcomeRepository) InsertMatch(ctx context.Context, o *domain.MatchOutcome) error {
	if o.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate outcome id: %w", err)
		}
		o.ID = id
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	events := o.Events
	if events == nil {
		events = []string{}
	}
	encoded, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO match_outcomes (
			id, team_a, team_b, winner,
			laning_a, laning_b, objective_a, objective_b, final_a, final_b,
			total_a, total_b, lp_delta_a, lp_delta_b, events, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.TeamA, o.TeamB, o.Winner,
		o.Laning.TeamA, o.Laning.TeamB,
		o.Objective.TeamA, o.Objective.TeamB,
		o.FinalFight.TeamA, o.FinalFight.TeamB,
		o.TotalA, o.TotalB, o.LPDeltaA, o.LPDeltaB,
		string(encoded), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match outcome: %w", err)
	}
	return nil
}

// GetMatch loads one audit record by id.
func (r *OutcomeRepository) GetMatch(ctx context.Context, id string) (*domain.MatchOutcome, error) {
	o := &domain.MatchOutcome{}
	var events string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_a, team_b, winner,
		       laning_a, laning_b, objective_a, objective_b, final_a, final_b,
		       total_a, total_b, lp_delta_a, lp_delta_b, events, created_at
		FROM match_outcomes
		WHERE id = ?`, id).Scan(
		&o.ID, &o.TeamA, &o.TeamB, &o.Winner,
		&o.Laning.TeamA, &o.Laning.TeamB,
		&o.Objective.TeamA, &o.Objective.TeamB,
		&o.FinalFight.TeamA, &o.FinalFight.TeamB,
		&o.TotalA, &o.TotalB, &o.LPDeltaA, &o.LPDeltaB,
		&events, &o.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load match outcome %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(events), &o.Events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return o, nil
}

// InsertDuel persists one 1v1 contest audit record.
func (r *OutcomeRepository) InsertDuel(ctx context.Context, o *domain.DuelOutcome) error {
	if o.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate duel id: %w", err)
		}
		o.ID = id
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO duel_outcomes (id, season_id, player_a, player_b, winner, rating_delta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.SeasonID, o.PlayerA, o.PlayerB, o.Winner, o.RatingDelta, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert duel outcome: %w", err)
	}
	return nil
}
