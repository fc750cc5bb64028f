package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"rift-league/internal/database"
	"rift-league/internal/domain"
	"rift-league/internal/repository"
)

// scriptRNG replays fixed draws: Float64 feeds jitter (0.5 → exactly 1.0),
// Intn feeds dice and the batch shuffle.
type scriptRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRNG) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptRNG) Intn(int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db, zerolog.Nop()))
	t.Cleanup(func() { db.Close() })
	return db
}

type fixtures struct {
	db       *sql.DB
	rosters  *repository.RosterRepository
	teams    *repository.TeamRatingRepository
	ratings  *repository.PlayerRatingRepository
	queue    *repository.QueueRepository
	outcomes *repository.OutcomeRepository
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	db := newTestDB(t)
	nop := zerolog.Nop()
	return &fixtures{
		db:       db,
		rosters:  repository.NewRosterRepository(db, nop),
		teams:    repository.NewTeamRatingRepository(db, nop),
		ratings:  repository.NewPlayerRatingRepository(db, nop),
		queue:    repository.NewQueueRepository(db, nop),
		outcomes: repository.NewOutcomeRepository(db, nop),
	}
}

// seedTeam creates five uniform starters for a team.
func (f *fixtures) seedTeam(t *testing.T, teamID string, power float64, cond domain.Condition) {
	t.Helper()
	for i, pos := range domain.Positions {
		f.seedMember(t, domain.RosterMember{
			TeamID:    teamID,
			PlayerID:  fmt.Sprintf("%s-%d", teamID, i),
			Name:      fmt.Sprintf("%s %s", teamID, pos),
			Position:  pos,
			Mental:    50,
			TeamFight: 50,
			CSAbility: 50,
			Vision:    50,
			Judgment:  50,
			Laning:    50,
			Power:     power,
			Condition: cond,
			Starter:   true,
		})
	}
}

func (f *fixtures) seedMember(t *testing.T, m domain.RosterMember) {
	t.Helper()
	require.NoError(t, f.rosters.Upsert(context.Background(), m))
}

// seedCard creates a standalone player card with uniform attributes, for
// queue tests.
func (f *fixtures) seedCard(t *testing.T, playerID string, pos domain.Position, attrs int) {
	t.Helper()
	f.seedMember(t, domain.RosterMember{
		TeamID:    "pool",
		PlayerID:  playerID,
		Name:      playerID,
		Position:  pos,
		Mental:    attrs,
		TeamFight: attrs,
		CSAbility: attrs,
		Vision:    attrs,
		Judgment:  attrs,
		Laning:    attrs,
		Power:     100,
		Condition: domain.ConditionYellow,
	})
}

// setRating forces a player's season rating to a known value.
func (f *fixtures) setRating(t *testing.T, playerID, seasonID string, pos domain.Position, rating int) {
	t.Helper()
	ctx := context.Background()
	r, err := f.ratings.GetOrInit(ctx, playerID, seasonID, pos)
	require.NoError(t, err)
	r.Rating = rating
	require.NoError(t, f.ratings.Update(ctx, r))
}

func (f *fixtures) queueStatus(t *testing.T, playerID string) domain.QueueStatus {
	t.Helper()
	var status domain.QueueStatus
	err := f.db.QueryRow(`
		SELECT status FROM queue_entries
		WHERE player_id = ?
		ORDER BY enqueued_at DESC, id DESC
		LIMIT 1`, playerID).Scan(&status)
	require.NoError(t, err)
	return status
}
