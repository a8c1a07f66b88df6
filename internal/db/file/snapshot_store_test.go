package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Nest/internal/core/env"
	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

func testSnapshot() *state.Snapshot {
	at := time.Date(2022, 5, 16, 0, 0, 0, 0, time.UTC)
	return &state.Snapshot{
		NextID: 10003,
		Posts: []*posts.Post{
			{
				ID:        10001,
				Author:    "alice",
				Title:     "james title",
				Content:   posts.RichText{Content: "james content", Format: "md"},
				Category:  posts.CategoryTech,
				Photos:    []uint64{30, 20},
				Status:    posts.StatusEnabled,
				CreatedAt: at,
				UpdatedAt: at,
			},
			{
				ID:        10002,
				Author:    "bob",
				Title:     "closed",
				Category:  posts.CategoryOther,
				Status:    posts.StatusClosed,
				CreatedAt: at,
				UpdatedAt: at,
			},
		},
	}
}

func TestSnapshotStore_LatestWithoutFile(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "missing.json"))

	_, _, err := store.Latest(context.Background())
	assert.ErrorIs(t, err, state.ErrNoSnapshot)
}

func TestSnapshotStore_SaveThenLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	store := NewSnapshotStore(path)
	ctx := context.Background()

	saved, err := store.Save(ctx, testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.PostCount)
	assert.Equal(t, uint64(10003), saved.NextID)

	snap, meta, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, meta.ID)
	assert.Equal(t, uint64(10003), snap.NextID)
	require.Len(t, snap.Posts, 2)
	assert.Equal(t, "james title", snap.Posts[0].Title)
	assert.Equal(t, []uint64{30, 20}, snap.Posts[0].Photos)
	assert.Equal(t, posts.StatusClosed, snap.Posts[1].Status)
	assert.EqualValues(t, "bob", snap.Posts[1].Author)

	// No temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSnapshotStore_SaveReplacesPrevious(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	ctx := context.Background()

	_, err := store.Save(ctx, testSnapshot())
	require.NoError(t, err)
	second, err := store.Save(ctx, &state.Snapshot{NextID: 20000})
	require.NoError(t, err)

	snap, meta, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, meta.ID)
	assert.Equal(t, uint64(20000), snap.NextID)
	assert.Empty(t, snap.Posts)
}

func TestSnapshotStore_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{"},
		{name: "missing meta", content: `{"snapshot": {"nextId": 1, "posts": []}}`},
		{name: "bad body", content: `{"meta": {"postCount": 0}, "snapshot": {"nextId": "x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snapshot.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, _, err := NewSnapshotStore(path).Latest(context.Background())
			assert.ErrorIs(t, err, state.ErrCorruptState)
		})
	}
}

func TestSnapshotStore_RoundTripRestoresState(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	ctx := context.Background()

	_, err := store.Save(ctx, testSnapshot())
	require.NoError(t, err)

	snap, _, err := store.Latest(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Validate())

	restored := state.Restore(snap, env.NewSystem())
	assert.Equal(t, uint64(10003), restored.NextID())
	assert.Equal(t, 2, restored.Len())
}

func TestSnapshotStore_CanceledContext(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, testSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
}
