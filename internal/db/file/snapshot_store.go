// Package file persists state snapshots as a JSON document on local disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"Nest/internal/core/state"
)

// envelope is the on-disk layout: metadata alongside the snapshot itself
type envelope struct {
	Meta     *state.SnapshotMeta `json:"meta"`
	Snapshot json.RawMessage     `json:"snapshot"`
}

// SnapshotStore keeps the latest snapshot in a single file.
// Writes go to a temp file in the same directory and are renamed into place.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to path
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save replaces the stored snapshot with snap
func (s *SnapshotStore) Save(ctx context.Context, snap *state.Snapshot) (*state.SnapshotMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := state.EncodeSnapshot(snap)
	if err != nil {
		return nil, err
	}
	meta := state.NewSnapshotMeta(snap)
	data, err := json.MarshalIndent(envelope{Meta: meta, Snapshot: body}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot envelope: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp snapshot file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return nil, fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	return meta, nil
}

// Latest reads the stored snapshot; a missing file yields state.ErrNoSnapshot
func (s *SnapshotStore) Latest(ctx context.Context) (*state.Snapshot, *state.SnapshotMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, state.ErrNoSnapshot
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, &state.CorruptStateError{Reason: "malformed snapshot file", Err: err}
	}
	if env.Meta == nil || len(env.Snapshot) == 0 {
		return nil, nil, &state.CorruptStateError{Reason: "snapshot file missing meta or body"}
	}

	snap, err := state.DecodeSnapshot(env.Snapshot)
	if err != nil {
		return nil, nil, err
	}
	return snap, env.Meta, nil
}
