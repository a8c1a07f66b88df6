package state

import (
	"context"
	"log"

	"Nest/internal/core/env"
	"Nest/internal/core/posts"
)

var _ Gateway = (*State)(nil)

// FirstPostID is the first identifier handed out by a fresh State
const FirstPostID uint64 = 10001

// State is the process-wide owner of the post store, the id counter and the
// Environment binding. Its methods are the entry points external callers use:
// each resolves caller and time once, then delegates to the post service.
//
// State performs no locking. The host must not run two calls concurrently.
type State struct {
	env     env.Environment
	store   *posts.MemoryStore
	service posts.Service
	nextID  uint64
}

// New creates an empty State bound to the placeholder environment.
// Use Bind to attach the real environment once the process is live.
func New() *State {
	return newState(env.Empty{}, posts.NewMemoryStore(), FirstPostID)
}

func newState(e env.Environment, store *posts.MemoryStore, nextID uint64) *State {
	return &State{
		env:     e,
		store:   store,
		service: posts.NewPostService(store),
		nextID:  nextID,
	}
}

// Bind replaces the Environment binding
func (s *State) Bind(e env.Environment) {
	s.env = e
}

// NextID returns the identifier the next successful create will receive
func (s *State) NextID() uint64 {
	return s.nextID
}

// Len returns the number of stored posts
func (s *State) Len() int {
	return s.store.Len()
}

// CreatePost stores a new post authored by the caller and returns its id.
// The id counter advances only when the create succeeds.
func (s *State) CreatePost(ctx context.Context, cmd posts.CreatePostCommand) (uint64, error) {
	id := s.nextID
	caller := s.env.Caller(ctx)
	now := s.env.Now()

	created, err := s.service.Create(cmd, id, caller, now)
	if err != nil {
		return 0, err
	}
	s.nextID++
	log.Printf("[POST-CREATE] post %d created by %s", created, caller)
	return created, nil
}

// EditPost replaces the editable fields of a post owned by the caller
func (s *State) EditPost(ctx context.Context, cmd posts.EditPostCommand) error {
	return s.service.Edit(cmd, s.env.Caller(ctx))
}

// ChangePostStatus moves a post owned by the caller out of Enabled
func (s *State) ChangePostStatus(ctx context.Context, cmd posts.ChangeStatusCommand) error {
	return s.service.ChangeStatus(cmd, s.env.Caller(ctx), s.env.Now())
}

// DeletePost removes a post owned by the caller
func (s *State) DeletePost(ctx context.Context, cmd posts.PostIDCommand) error {
	caller := s.env.Caller(ctx)
	if err := s.service.Delete(cmd.ID, caller); err != nil {
		return err
	}
	log.Printf("[POST-DELETE] post %d deleted by %s", cmd.ID, caller)
	return nil
}

// GetPost returns a copy of a single post
func (s *State) GetPost(_ context.Context, cmd posts.PostIDCommand) (*posts.Post, error) {
	return s.service.Get(cmd.ID)
}

// PagePosts returns one page of posts; it never fails
func (s *State) PagePosts(_ context.Context, query posts.PageQuery) *posts.Page {
	return s.service.Page(query)
}
