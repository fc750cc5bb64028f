package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"rift-league/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type QueueRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewQueueRepository(sqlDB *sql.DB, logger zerolog.Logger) *QueueRepository {
	return &QueueRepository{db: sqlDB, logger: logger}
}

func (r *QueueRepository) WithTx(tx *sql.Tx) *QueueRepository {
	return &QueueRepository{db: tx, logger: r.logger}
}

// Insert creates a fresh queue entry. Entries are never reused; a new join
// always gets a new row and id.
func (r *QueueRepository) Insert(ctx context.Context, entry *domain.QueueEntry) error {
	if entry.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate queue entry id: %w", err)
		}
		entry.ID = id
	}
	now := time.Now()
	if entry.EnqueuedAt.IsZero() {
		entry.EnqueuedAt = now
	}
	entry.UpdatedAt = now
	if entry.Status == "" {
		entry.Status = domain.QueueSearching
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO queue_entries (id, player_id, season_id, position, rating, status, enqueued_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.PlayerID, entry.SeasonID, entry.Position,
		entry.Rating, entry.Status, entry.EnqueuedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert queue entry for %s: %w", entry.PlayerID, err)
	}
	return nil
}

func scanEntry(row interface{ Scan(...any) error }) (*domain.QueueEntry, error) {
	e := &domain.QueueEntry{}
	err := row.Scan(&e.ID, &e.PlayerID, &e.SeasonID, &e.Position, &e.Rating,
		&e.Status, &e.EnqueuedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ActiveEntry returns the player's SEARCHING entry, or nil when none exists.
func (r *QueueRepository) ActiveEntry(ctx context.Context, playerID string) (*domain.QueueEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, player_id, season_id, position, rating, status, enqueued_at, updated_at
		FROM queue_entries
		WHERE player_id = ? AND status = ?
		LIMIT 1`, playerID, domain.QueueSearching)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load queue entry for %s: %w", playerID, err)
	}
	return entry, nil
}

// FindOpponent returns the oldest SEARCHING entry in the same season and
// position within the rating window, excluding the joining player. First
// eligible is acceptable; no closest-match search is required.
func (r *QueueRepository) FindOpponent(ctx context.Context, seasonID string, position domain.Position, rating, window int, excludePlayerID string) (*domain.QueueEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, player_id, season_id, position, rating, status, enqueued_at, updated_at
		FROM queue_entries
		WHERE season_id = ? AND position = ? AND status = ?
		  AND player_id != ?
		  AND rating BETWEEN ? AND ?
		ORDER BY enqueued_at ASC
		LIMIT 1`,
		seasonID, position, domain.QueueSearching,
		excludePlayerID, rating-window, rating+window,
	)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find opponent: %w", err)
	}
	return entry, nil
}

// Searching lists SEARCHING entries for one position bucket.
func (r *QueueRepository) Searching(ctx context.Context, seasonID string, position domain.Position, limit int) ([]domain.QueueEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, season_id, position, rating, status, enqueued_at, updated_at
		FROM queue_entries
		WHERE season_id = ? AND position = ? AND status = ?
		ORDER BY enqueued_at ASC
		LIMIT ?`, seasonID, position, domain.QueueSearching, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searching entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// MarkMatched flips the given entries to MATCHED, guarded by their current
// SEARCHING status. It returns the number of rows actually flipped so callers
// can detect a concurrent pairing and abort before commit.
func (r *QueueRepository) MarkMatched(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+2)
	args = append(args, domain.QueueMatched, time.Now())
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, domain.QueueSearching)

	res, err := r.db.ExecContext(ctx, `
		UPDATE queue_entries
		SET status = ?, updated_at = ?
		WHERE id IN (`+placeholders+`) AND status = ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entries matched: %w", err)
	}
	return res.RowsAffected()
}

// Cancel flips a player's SEARCHING entry to CANCELLED. Safe at any time
// before a pairing commits; ErrNotQueued when there is nothing to cancel.
func (r *QueueRepository) Cancel(ctx context.Context, playerID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE queue_entries
		SET status = ?, updated_at = ?
		WHERE player_id = ? AND status = ?`,
		domain.QueueCancelled, time.Now(), playerID, domain.QueueSearching,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel queue entry for %s: %w", playerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotQueued, playerID)
	}
	r.logger.Debug().Str("player_id", playerID).Msg("queue entry cancelled")
	return nil
}
