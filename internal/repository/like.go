package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"corrigeaqui/internal/model"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
// On the like ledgers that code IS the AlreadyLiked signal: the constraint
// is the authoritative guard against the check-then-insert race.
const uniqueViolation = "23505"

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// LikePost inserts a post-like ledger row.
// Returns model.ErrAlreadyLiked when the (user, post) pair already holds one.
func (r *likeRepository) LikePost(ctx context.Context, userID, postID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_likes (user_id, post_id) VALUES ($1, $2)`, userID, postID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert post like: %w", err)
	}
	return nil
}

// UnlikePost deletes a post-like ledger row. Removing an absent like is a
// successful no-op.
func (r *likeRepository) UnlikePost(ctx context.Context, userID, postID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("delete post like: %w", err)
	}
	return nil
}

// CountByPost counts ledger rows for a post at query time. Counts are never
// read from a stored counter, so they cannot drift.
func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count post likes: %w", err)
	}
	return count, nil
}

// CountByPosts returns per-post like counts in one query.
func (r *likeRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	return r.countBy(ctx, `SELECT post_id as target_id, COUNT(*) as count FROM post_likes WHERE post_id = ANY($1) GROUP BY post_id`, postIDs)
}

// HasLikedPost checks whether a user currently likes a post.
func (r *likeRepository) HasLikedPost(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM post_likes WHERE user_id = $1 AND post_id = $2)`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("check post like: %w", err)
	}
	return exists, nil
}

// CheckPostLikes returns post_id -> liked for a batch of posts.
func (r *likeRepository) CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	return r.checkLikes(ctx, `SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)`, userID, postIDs)
}

// LikeComment inserts a comment-like ledger row. The comment ledger is
// structurally independent from the post ledger but enforces the same
// uniqueness rule.
func (r *likeRepository) LikeComment(ctx context.Context, userID, commentID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comment_likes (user_id, comment_id) VALUES ($1, $2)`, userID, commentID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert comment like: %w", err)
	}
	return nil
}

// UnlikeComment deletes a comment-like ledger row, idempotently.
func (r *likeRepository) UnlikeComment(ctx context.Context, userID, commentID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`, userID, commentID)
	if err != nil {
		return fmt.Errorf("delete comment like: %w", err)
	}
	return nil
}

// CountByComment counts ledger rows for a comment at query time.
func (r *likeRepository) CountByComment(ctx context.Context, commentID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("count comment likes: %w", err)
	}
	return count, nil
}

// CountByComments returns per-comment like counts in one query.
func (r *likeRepository) CountByComments(ctx context.Context, commentIDs []int64) (map[int64]int, error) {
	return r.countBy(ctx, `SELECT comment_id as target_id, COUNT(*) as count FROM comment_likes WHERE comment_id = ANY($1) GROUP BY comment_id`, commentIDs)
}

// HasLikedComment checks whether a user currently likes a comment.
func (r *likeRepository) HasLikedComment(ctx context.Context, userID, commentID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM comment_likes WHERE user_id = $1 AND comment_id = $2)`, userID, commentID)
	if err != nil {
		return false, fmt.Errorf("check comment like: %w", err)
	}
	return exists, nil
}

// CheckCommentLikes returns comment_id -> liked for a batch of comments.
func (r *likeRepository) CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	return r.checkLikes(ctx, `SELECT comment_id FROM comment_likes WHERE user_id = $1 AND comment_id = ANY($2)`, userID, commentIDs)
}

func (r *likeRepository) countBy(ctx context.Context, query string, targetIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = 0
	}
	if len(targetIDs) == 0 {
		return result, nil
	}

	type countRow struct {
		TargetID int64 `db:"target_id"`
		Count    int   `db:"count"`
	}
	var rows []countRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(targetIDs)); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	for _, row := range rows {
		result[row.TargetID] = row.Count
	}
	return result, nil
}

func (r *likeRepository) checkLikes(ctx context.Context, query string, userID int64, targetIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = false
	}
	if len(targetIDs) == 0 {
		return result, nil
	}

	var likedIDs []int64
	if err := r.db.SelectContext(ctx, &likedIDs, query, userID, pq.Array(targetIDs)); err != nil {
		return nil, fmt.Errorf("check likes: %w", err)
	}
	for _, id := range likedIDs {
		result[id] = true
	}
	return result, nil
}
