package posts

import "slices"

// MemoryStore is an ordered map from post id to post.
// It is not safe for concurrent use; the host serializes access.
type MemoryStore struct {
	posts map[uint64]*Post
	ids   []uint64 // sorted ascending, mirrors the keys of posts
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[uint64]*Post)}
}

// Get returns the stored post without copying
func (s *MemoryStore) Get(id uint64) (*Post, bool) {
	p, ok := s.posts[id]
	return p, ok
}

// Put inserts or replaces the post stored under post.ID
func (s *MemoryStore) Put(post *Post) {
	if _, exists := s.posts[post.ID]; !exists {
		i, _ := slices.BinarySearch(s.ids, post.ID)
		s.ids = slices.Insert(s.ids, i, post.ID)
	}
	s.posts[post.ID] = post
}

// Delete removes the post and reports whether it was present
func (s *MemoryStore) Delete(id uint64) bool {
	if _, exists := s.posts[id]; !exists {
		return false
	}
	delete(s.posts, id)
	if i, found := slices.BinarySearch(s.ids, id); found {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	return true
}

// Len returns the number of stored posts
func (s *MemoryStore) Len() int {
	return len(s.posts)
}

// Ascend walks posts in ascending id order until fn returns false
func (s *MemoryStore) Ascend(fn func(post *Post) bool) {
	for _, id := range s.ids {
		if !fn(s.posts[id]) {
			return
		}
	}
}
