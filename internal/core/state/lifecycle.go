package state

import (
	"context"
	"errors"
	"fmt"
	"log"

	"Nest/internal/core/env"
)

// ResumeOptions controls how a State is rebuilt at process start
type ResumeOptions struct {
	// Strict rejects snapshots with duplicate or out-of-range ids instead of
	// rebuilding them last-write-wins.
	Strict bool
}

// Resume loads the latest snapshot from store and rebuilds a State bound to e.
// With no stored snapshot it returns a fresh State bound to e.
func Resume(ctx context.Context, store SnapshotStore, e env.Environment, opts ResumeOptions) (*State, error) {
	snap, meta, err := store.Latest(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		log.Printf("[SNAPSHOT] no snapshot found, starting empty at id %d", FirstPostID)
		s := New()
		s.Bind(e)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if opts.Strict {
		if err := snap.Validate(); err != nil {
			return nil, err
		}
	}

	s := Restore(snap, e)
	log.Printf("[SNAPSHOT] restored %s: %d posts, next id %d", meta.ID, s.Len(), s.NextID())
	return s, nil
}

// Suspend captures s and persists it to store.
// The caller must ensure no other call is running against s.
func Suspend(ctx context.Context, s *State, store SnapshotStore) (*SnapshotMeta, error) {
	meta, err := store.Save(ctx, s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	log.Printf("[SNAPSHOT] saved %s: %d posts, next id %d", meta.ID, meta.PostCount, meta.NextID)
	return meta, nil
}
