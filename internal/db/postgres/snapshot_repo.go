package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// SnapshotRepository stores snapshots in the post_snapshots table
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new PostgreSQL snapshot store
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save inserts snap as a new row; earlier snapshots are kept until Prune
func (r *SnapshotRepository) Save(ctx context.Context, snap *state.Snapshot) (*state.SnapshotMeta, error) {
	postsJSON, err := json.Marshal(snap.Posts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot posts: %w", err)
	}

	meta := state.NewSnapshotMeta(snap)

	query := `
		INSERT INTO post_snapshots (id, next_id, post_count, posts, taken_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query,
		meta.ID, int64(meta.NextID), meta.PostCount, postsJSON, meta.TakenAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return meta, nil
}

// Latest returns the most recent snapshot by taken_at
func (r *SnapshotRepository) Latest(ctx context.Context) (*state.Snapshot, *state.SnapshotMeta, error) {
	query := `
		SELECT id, next_id, post_count, posts, taken_at
		FROM post_snapshots
		ORDER BY taken_at DESC
		LIMIT 1
	`

	var (
		meta      state.SnapshotMeta
		nextID    int64
		postsJSON []byte
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&meta.ID, &nextID, &meta.PostCount, &postsJSON, &meta.TakenAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, state.ErrNoSnapshot
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	var stored []*posts.Post
	if err := json.Unmarshal(postsJSON, &stored); err != nil {
		return nil, nil, &state.CorruptStateError{Reason: fmt.Sprintf("snapshot %s posts", meta.ID), Err: err}
	}

	meta.NextID = uint64(nextID)
	snap := &state.Snapshot{NextID: meta.NextID, Posts: stored}
	return snap, &meta, nil
}

// Prune deletes all but the keep most recent snapshots and returns how many were removed
func (r *SnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	query := `
		DELETE FROM post_snapshots
		WHERE id NOT IN (
			SELECT id FROM post_snapshots
			ORDER BY taken_at DESC
			LIMIT $1
		)
	`
	result, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return result.RowsAffected()
}
