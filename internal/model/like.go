package model

import "errors"

// Likes are kept in two independent ledgers: one for posts, one for
// comments. Each ledger row is unique per (user, target); the uniqueness
// constraint at the storage layer is the only serialization point, so two
// concurrent likes from the same user always collapse into one row.

// Like is a post-like ledger entry.
type Like struct {
	ID     int64 `db:"id" json:"id"`
	UserID int64 `db:"user_id" json:"user_id"`
	PostID int64 `db:"post_id" json:"post_id"`
}

// CommentLike is a comment-like ledger entry.
type CommentLike struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	CommentID int64 `db:"comment_id" json:"comment_id"`
}

// LikeRequest is the request body for like endpoints.
type LikeRequest struct {
	UserID int64 `json:"user_id"`
}

var (
	// ErrAlreadyLiked signals that the (user, target) pair already holds an
	// active like. Callers map it to 409; it is not logged as a failure.
	ErrAlreadyLiked = errors.New("already liked")
)
