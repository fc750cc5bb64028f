package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rift-league/internal/domain"

	"github.com/rs/zerolog"
)

type RosterRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewRosterRepository(sqlDB *sql.DB, logger zerolog.Logger) *RosterRepository {
	return &RosterRepository{db: sqlDB, logger: logger}
}

// WithTx binds the repository to an in-flight transaction.
func (r *RosterRepository) WithTx(tx *sql.Tx) *RosterRepository {
	return &RosterRepository{db: tx, logger: r.logger}
}

const memberColumns = `team_id, player_id, name, position, mental, team_fight,
	cs_ability, vision, judgment, laning, power, condition, form, traits,
	starter, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (domain.RosterMember, error) {
	var m domain.RosterMember
	var traits string
	var starter int
	err := row.Scan(
		&m.TeamID, &m.PlayerID, &m.Name, &m.Position, &m.Mental, &m.TeamFight,
		&m.CSAbility, &m.Vision, &m.Judgment, &m.Laning, &m.Power, &m.Condition,
		&m.Form, &traits, &starter, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.RosterMember{}, err
	}
	m.Starter = starter != 0
	if err := json.Unmarshal([]byte(traits), &m.Traits); err != nil {
		return domain.RosterMember{}, fmt.Errorf("failed to decode traits: %w", err)
	}
	return m, nil
}

// StartingRoster returns the five starters keyed by position, or
// ErrIncompleteRoster naming the first unfilled lane. A team with no members
// at all is ErrTeamNotFound.
func (r *RosterRepository) StartingRoster(ctx context.Context, teamID string) (domain.Roster, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+`
		FROM roster_members
		WHERE team_id = ? AND starter = 1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	roster := make(domain.Roster, len(domain.Positions))
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		roster[m.Position] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
	}
	for _, pos := range domain.Positions {
		if _, ok := roster[pos]; !ok {
			r.logger.Debug().Str("team_id", teamID).Str("position", string(pos)).Msg("roster incomplete")
			return nil, fmt.Errorf("%w: team %s has no starter at %s", domain.ErrIncompleteRoster, teamID, pos)
		}
	}
	return roster, nil
}

// Member loads one player card regardless of team or starter flag.
func (r *RosterRepository) Member(ctx context.Context, playerID string) (domain.RosterMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+`
		FROM roster_members
		WHERE player_id = ?`, playerID)

	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return domain.RosterMember{}, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return domain.RosterMember{}, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}
	return m, nil
}

func (r *RosterRepository) Upsert(ctx context.Context, m domain.RosterMember) error {
	traits := m.Traits
	if traits == nil {
		traits = []string{}
	}
	encoded, err := json.Marshal(traits)
	if err != nil {
		return fmt.Errorf("failed to encode traits: %w", err)
	}

	starter := 0
	if m.Starter {
		starter = 1
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO roster_members (
			team_id, player_id, name, position, mental, team_fight, cs_ability,
			vision, judgment, laning, power, condition, form, traits, starter,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (team_id, player_id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			mental = excluded.mental,
			team_fight = excluded.team_fight,
			cs_ability = excluded.cs_ability,
			vision = excluded.vision,
			judgment = excluded.judgment,
			laning = excluded.laning,
			power = excluded.power,
			condition = excluded.condition,
			form = excluded.form,
			traits = excluded.traits,
			starter = excluded.starter,
			updated_at = excluded.updated_at`,
		m.TeamID, m.PlayerID, m.Name, m.Position, m.Mental, m.TeamFight,
		m.CSAbility, m.Vision, m.Judgment, m.Laning, m.Power, m.Condition,
		m.Form, string(encoded), starter, time.Now(), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert roster member %s: %w", m.PlayerID, err)
	}
	return nil
}
