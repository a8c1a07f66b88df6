package posts

import "time"

// Service defines the post lifecycle and query operations.
// Callers resolve identity and time themselves and pass them in; the service
// never consults a clock or request context.
type Service interface {
	// Create inserts a new Enabled post under id.
	// Returns ErrAlreadyExists if id is taken; the caller must not advance its
	// id counter in that case.
	Create(cmd CreatePostCommand, id uint64, caller Principal, now time.Time) (uint64, error)

	// Edit replaces title, content, category and photos of a post owned by caller
	Edit(cmd EditPostCommand, caller Principal) error

	// ChangeStatus moves an Enabled post owned by caller to a new status
	ChangeStatus(cmd ChangeStatusCommand, caller Principal, now time.Time) error

	// Delete permanently removes a post owned by caller
	Delete(id uint64, caller Principal) error

	// Get returns a copy of the post with the given id
	Get(id uint64) (*Post, error)

	// Page returns one page of posts in ascending id order
	Page(query PageQuery) *Page
}

// Repository is the in-process record store backing the Service.
// Iteration is always in ascending id order.
type Repository interface {
	Get(id uint64) (*Post, bool)
	Put(post *Post)
	Delete(id uint64) bool
	Len() int
	// Ascend calls fn for each post in ascending id order until fn returns false
	Ascend(fn func(post *Post) bool)
}
