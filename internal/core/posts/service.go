package posts

import (
	"log"
	"slices"
	"strings"
	"time"
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service over repo
func NewPostService(repo Repository) Service {
	return &postService{repo: repo}
}

// Create builds a new Enabled post and stores it under id
func (s *postService) Create(cmd CreatePostCommand, id uint64, caller Principal, now time.Time) (uint64, error) {
	if _, exists := s.repo.Get(id); exists {
		log.Printf("[POST-CREATE] id collision on %d, allocator out of sync with store", id)
		return 0, ErrAlreadyExists
	}

	s.repo.Put(cmd.build(id, caller, now))
	return id, nil
}

// Edit replaces the editable fields of a post.
// Flow: resolve post -> check ownership -> check status policy -> replace fields
func (s *postService) Edit(cmd EditPostCommand, caller Principal) error {
	post, err := s.ownedPost(cmd.ID, caller)
	if err != nil {
		return err
	}
	if err := checkAllowed(post, OpEdit); err != nil {
		return err
	}

	post.Title = cmd.Title
	post.Content = cmd.Content
	post.Category = ParseCategory(cmd.Category)
	post.Photos = slices.Clone(cmd.Photos)
	// Status is only replaceable while the post is still Enabled; a Closed
	// post never returns to Enabled through an edit.
	if post.IsActive() {
		post.Status = ParseStatus(cmd.Status)
	}
	return nil
}

// ChangeStatus moves an Enabled post to the status named in cmd.
// now is accepted for parity with the other mutations; updatedAt is not refreshed.
func (s *postService) ChangeStatus(cmd ChangeStatusCommand, caller Principal, now time.Time) error {
	post, err := s.ownedPost(cmd.ID, caller)
	if err != nil {
		return err
	}
	if err := checkAllowed(post, OpChangeStatus); err != nil {
		return err
	}

	next := ParseStatus(cmd.Status)
	if next != post.Status {
		log.Printf("[POST-STATUS] post %d: %s -> %s", post.ID, post.Status, next)
	}
	post.Status = next
	return nil
}

// Delete removes a post permanently. There is no tombstone.
func (s *postService) Delete(id uint64, caller Principal) error {
	post, err := s.ownedPost(id, caller)
	if err != nil {
		return err
	}
	if err := checkAllowed(post, OpDelete); err != nil {
		return err
	}

	if !s.repo.Delete(id) {
		return NewNotFoundError(id)
	}
	return nil
}

// Get returns a deep copy of the post
func (s *postService) Get(id uint64) (*Post, error) {
	post, ok := s.repo.Get(id)
	if !ok {
		return nil, NewNotFoundError(id)
	}
	return post.Clone(), nil
}

// Page filters posts by literal substring on title or content and returns the
// requested page. TotalCount always reports the unfiltered store size.
func (s *postService) Page(query PageQuery) *Page {
	size := max(query.PageSize, 0)
	num := max(query.PageNum, 0)
	total := s.repo.Len()

	data := make([]*Post, 0, min(size, total))
	// Pages starting past the end are empty; bounding num first keeps num*size from overflowing.
	if size > 0 && num <= total/size {
		skip := num * size
		matched := 0
		s.repo.Ascend(func(p *Post) bool {
			if !matches(p, query.QueryString) {
				return true
			}
			matched++
			if matched <= skip {
				return true
			}
			data = append(data, p.Clone())
			return len(data) < size
		})
	}

	return &Page{
		Data:       data,
		PageSize:   query.PageSize,
		PageNum:    query.PageNum,
		TotalCount: total,
	}
}

// matches is a case-sensitive containment test; an empty query matches everything
func matches(p *Post, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(p.Title, q) || strings.Contains(p.Content.Content, q)
}

// ownedPost resolves id and verifies caller is its author.
// Ownership is checked before any status guard.
func (s *postService) ownedPost(id uint64, caller Principal) (*Post, error) {
	post, ok := s.repo.Get(id)
	if !ok {
		return nil, NewNotFoundError(id)
	}
	if post.Author != caller {
		return nil, ErrUnauthorizedOperation
	}
	return post, nil
}
