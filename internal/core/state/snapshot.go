package state

import (
	"encoding/json"
	"fmt"

	"Nest/internal/core/env"
	"Nest/internal/core/posts"
)

// Snapshot is the serializable form of a State: the id counter plus every
// post in ascending id order. The Environment is never part of it.
type Snapshot struct {
	Posts  []*posts.Post `json:"posts"`
	NextID uint64        `json:"nextId"`
}

// Snapshot captures the full state. Posts are deep copies, so later
// mutations of s do not leak into the snapshot.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		NextID: s.nextID,
		Posts:  make([]*posts.Post, 0, s.store.Len()),
	}
	s.store.Ascend(func(p *posts.Post) bool {
		snap.Posts = append(snap.Posts, p.Clone())
		return true
	})
	return snap
}

// Restore rebuilds a State from snap and binds it to e.
// Each post is keyed by its own id; when ids repeat, the later post wins.
func Restore(snap *Snapshot, e env.Environment) *State {
	store := posts.NewMemoryStore()
	for _, p := range snap.Posts {
		if p == nil {
			continue
		}
		store.Put(p.Clone())
	}
	return newState(e, store, snap.NextID)
}

// Validate reports ErrCorruptState when snap repeats an id or holds an id
// the counter would hand out again.
func (snap *Snapshot) Validate() error {
	seen := make(map[uint64]struct{}, len(snap.Posts))
	for i, p := range snap.Posts {
		if p == nil {
			return &CorruptStateError{Reason: fmt.Sprintf("post at index %d is null", i)}
		}
		if _, dup := seen[p.ID]; dup {
			return &CorruptStateError{Reason: fmt.Sprintf("duplicate post id %d", p.ID)}
		}
		if p.ID >= snap.NextID {
			return &CorruptStateError{Reason: fmt.Sprintf("post id %d not below next id %d", p.ID, snap.NextID)}
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// EncodeSnapshot serializes snap to JSON
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses JSON produced by EncodeSnapshot
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &CorruptStateError{Reason: "malformed snapshot", Err: err}
	}
	return &snap, nil
}
