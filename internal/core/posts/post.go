package posts

import (
	"slices"
	"strings"
	"time"
)

// Principal identifies the caller that authored a post.
// It is opaque to this package; equality is the only operation performed on it.
type Principal string

// Category classifies a post's subject
type Category string

const (
	CategoryTech  Category = "Tech"
	CategoryLaw   Category = "Law"
	CategoryOther Category = "Other"
)

// ParseCategory maps free text to a Category, ignoring case.
// Unrecognized values fall back to CategoryOther and never produce an error.
func ParseCategory(s string) Category {
	switch strings.ToLower(s) {
	case "tech":
		return CategoryTech
	case "law":
		return CategoryLaw
	default:
		return CategoryOther
	}
}

// Status is the lifecycle state of a post
type Status string

const (
	StatusEnabled   Status = "Enabled"
	StatusCompleted Status = "Completed"
	StatusClosed    Status = "Closed"
)

// ParseStatus maps free text to a Status, ignoring case.
// Unrecognized values fall back to StatusEnabled and never produce an error.
func ParseStatus(s string) Status {
	switch strings.ToLower(s) {
	case "completed":
		return StatusCompleted
	case "closed":
		return StatusClosed
	default:
		return StatusEnabled
	}
}

// RichText is raw post text plus the format it was authored in (e.g. "md")
type RichText struct {
	Content string `json:"content"`
	Format  string `json:"format"`
}

// Post represents a single post record held in the Store
type Post struct {
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Content    RichText  `json:"content"`
	Author     Principal `json:"author"`
	Title      string    `json:"title"`
	Category   Category  `json:"category"`
	Status     Status    `json:"status"`
	Photos     []uint64  `json:"photos"`
	ID         uint64    `json:"id"`
	LikesCount uint64    `json:"likesCount"`
}

// IsActive reports whether the post is still Enabled
func (p *Post) IsActive() bool {
	return p.Status == StatusEnabled
}

// Clone returns a deep copy so callers cannot mutate stored records
func (p *Post) Clone() *Post {
	out := *p
	out.Photos = slices.Clone(p.Photos)
	return &out
}

// CreatePostCommand represents input for creating a new post
type CreatePostCommand struct {
	Title    string   `json:"title"`
	Content  RichText `json:"content"`
	Category string   `json:"category"`
	Photos   []uint64 `json:"photos"`
}

// build turns the command into a fresh Enabled post owned by author
func (c CreatePostCommand) build(id uint64, author Principal, now time.Time) *Post {
	p := &Post{
		ID:        id,
		Author:    author,
		Title:     c.Title,
		Content:   c.Content,
		Category:  ParseCategory(c.Category),
		Status:    StatusEnabled,
		CreatedAt: now,
		UpdatedAt: now,
		Photos:    slices.Clone(c.Photos),
	}
	return p
}

// EditPostCommand replaces the editable fields of an existing post wholesale
type EditPostCommand struct {
	Title    string   `json:"title"`
	Content  RichText `json:"content"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Photos   []uint64 `json:"photos"`
	ID       uint64   `json:"id"`
}

// ChangeStatusCommand moves a post out of Enabled.
// Description is accepted for clients but not stored.
type ChangeStatusCommand struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	ID          uint64 `json:"id"`
}

// PostIDCommand addresses a single post
type PostIDCommand struct {
	ID uint64 `json:"id"`
}

// PageQuery selects one page of posts, optionally filtered by QueryString
type PageQuery struct {
	QueryString string `json:"querystring"`
	PageSize    int    `json:"pageSize"`
	PageNum     int    `json:"pageNum"`
}

// Page is one page of query results.
// TotalCount is the size of the whole store, not the number of filter matches.
type Page struct {
	Data       []*Post `json:"data"`
	PageSize   int     `json:"pageSize"`
	PageNum    int     `json:"pageNum"`
	TotalCount int     `json:"totalCount"`
}
