package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post. Comments form a tree: top-level
// comments have no parent, replies reference their parent comment. A reply
// always belongs to the same post as its parent.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	ParentID  *int64    `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in comments table)
	Images []string     `json:"images"`
	Author *UserSummary `json:"author,omitempty"`
}

// CommentView is a node of the assembled comment thread: the comment plus
// its author display fields, ledger counts, and recursively built replies.
type CommentView struct {
	ID           int64         `json:"id"`
	Content      string        `json:"content"`
	AuthorID     *int64        `json:"author_id"`
	AuthorName   string        `json:"author_name"`
	AuthorAvatar string        `json:"author_avatar"`
	PostID       int64         `json:"post_id"`
	ParentID     *int64        `json:"parent_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Images       []string      `json:"images"`
	LikeCount    int           `json:"like_count"`
	Liked        bool          `json:"liked"`
	Replies      []CommentView `json:"replies,omitempty"`
}

// CommentThreadPage is a page of top-level comment views. Replies are not
// paginated: each node carries its full subtree. Totals count top-level
// comments only.
type CommentThreadPage struct {
	Comments      []CommentView `json:"comments"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"total_elements"`
	TotalPages    int           `json:"total_pages"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	PostID   int64    `json:"post_id"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
	ParentID *int64   `json:"parent_id,omitempty"`
}

// PatchCommentRequest carries the fields an owner may change.
// Post, parent, and author references are immutable.
type PatchCommentRequest struct {
	Content *string  `json:"content"`
	Images  []string `json:"images"`
}

// Comment display fallbacks when the author record is missing.
const (
	UnknownAuthorName    = "Unknown"
	DefaultCommentAvatar = "/uploads/default-avatar.png"
)

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the owner of this comment")
	ErrBodyRequired    = errors.New("comment content is required")

	// ErrParentPostMismatch is returned when a reply's parent belongs to a
	// different post than the one the reply targets.
	ErrParentPostMismatch = errors.New("parent comment belongs to a different post")
)
