package state

import (
	"context"
	"time"

	"github.com/google/uuid"

	"Nest/internal/core/posts"
)

// SnapshotMeta describes a persisted snapshot
type SnapshotMeta struct {
	TakenAt   time.Time `json:"takenAt"`
	ID        uuid.UUID `json:"id"`
	PostCount int       `json:"postCount"`
	NextID    uint64    `json:"nextId"`
}

// SnapshotStore persists snapshots across process restarts
type SnapshotStore interface {
	// Save persists snap and returns the metadata it was stored under
	Save(ctx context.Context, snap *Snapshot) (*SnapshotMeta, error)

	// Latest returns the most recently saved snapshot.
	// Returns ErrNoSnapshot when nothing has been saved.
	Latest(ctx context.Context) (*Snapshot, *SnapshotMeta, error)
}

// NewSnapshotMeta stamps snap with a fresh id and the current time
func NewSnapshotMeta(snap *Snapshot) *SnapshotMeta {
	return &SnapshotMeta{
		ID:        uuid.New(),
		TakenAt:   time.Now().UTC(),
		PostCount: len(snap.Posts),
		NextID:    snap.NextID,
	}
}

// Gateway is the call contract transports use to reach the post core.
// *State implements it.
type Gateway interface {
	CreatePost(ctx context.Context, cmd posts.CreatePostCommand) (uint64, error)
	EditPost(ctx context.Context, cmd posts.EditPostCommand) error
	ChangePostStatus(ctx context.Context, cmd posts.ChangeStatusCommand) error
	DeletePost(ctx context.Context, cmd posts.PostIDCommand) error
	GetPost(ctx context.Context, cmd posts.PostIDCommand) (*posts.Post, error)
	PagePosts(ctx context.Context, query posts.PageQuery) *posts.Page
}
