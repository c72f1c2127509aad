package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"corrigeaqui/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment and its images in a transaction.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var created model.Comment
	query := `
		INSERT INTO comments (post_id, author_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, author_id, parent_id, content, created_at
	`
	err = tx.GetContext(ctx, &created, query, comment.PostID, comment.AuthorID, comment.ParentID, comment.Content)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	for i, url := range images {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comment_images (comment_id, image_url, position) VALUES ($1, $2, $3)`,
			created.ID, url, i)
		if err != nil {
			return nil, fmt.Errorf("insert comment image %d: %w", i, err)
		}
	}
	created.Images = images

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a single comment with its images.
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	query := `SELECT id, post_id, author_id, parent_id, content, created_at FROM comments WHERE id = $1`
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	imageMap, err := r.getCommentImages(ctx, []int64{commentID})
	if err != nil {
		return nil, err
	}
	comment.Images = imageMap[commentID]

	return &comment, nil
}

// ListByPost returns every comment of a post with author summaries and
// images joined in, newest first. The thread tree is rebuilt by the caller
// by indexing rows on parent_id; rows never hold live back-references.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	type commentRow struct {
		ID             int64     `db:"id"`
		PostID         int64     `db:"post_id"`
		AuthorID       int64     `db:"author_id"`
		ParentID       *int64    `db:"parent_id"`
		Content        string    `db:"content"`
		CreatedAt      time.Time `db:"created_at"`
		AuthorName     *string   `db:"author_name"`
		AuthorSubtitle *string   `db:"author_subtitle"`
		AuthorVerified *bool     `db:"author_verified"`
		AuthorAvatar   *string   `db:"author_avatar"`
	}

	query := `
		SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.created_at,
		       u.name as author_name, u.subtitle as author_subtitle,
		       u.verified as author_verified, u.avatar as author_avatar
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, postID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	imageMap, err := r.getCommentImages(ctx, ids)
	if err != nil {
		return nil, err
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = model.Comment{
			ID:        row.ID,
			PostID:    row.PostID,
			AuthorID:  row.AuthorID,
			ParentID:  row.ParentID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			Images:    imageMap[row.ID],
		}
		if row.AuthorName != nil {
			summary := model.UserSummary{
				ID:       row.AuthorID,
				Name:     *row.AuthorName,
				Subtitle: row.AuthorSubtitle,
				Avatar:   row.AuthorAvatar,
			}
			if row.AuthorVerified != nil {
				summary.Verified = *row.AuthorVerified
			}
			comments[i].Author = &summary
		}
	}

	return comments, nil
}

// CountByPosts returns per-post comment counts, computed from the comment
// rows at query time.
func (r *commentRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(postIDs))
	for _, id := range postIDs {
		result[id] = 0
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	type countRow struct {
		PostID int64 `db:"post_id"`
		Count  int   `db:"count"`
	}
	var rows []countRow
	query := `SELECT post_id, COUNT(*) as count FROM comments WHERE post_id = ANY($1) GROUP BY post_id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// Patch updates the mutable fields of a comment and returns the new
// snapshot. Post, parent, and author references never change.
func (r *commentRepository) Patch(ctx context.Context, commentID int64, req model.PatchCommentRequest) (*model.Comment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var updated model.Comment
	query := `
		UPDATE comments SET content = COALESCE($2, content)
		WHERE id = $1
		RETURNING id, post_id, author_id, parent_id, content, created_at
	`
	err = tx.GetContext(ctx, &updated, query, commentID, req.Content)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch comment: %w", err)
	}

	if req.Images != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comment_images WHERE comment_id = $1`, commentID); err != nil {
			return nil, fmt.Errorf("clear comment images: %w", err)
		}
		for i, url := range req.Images {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO comment_images (comment_id, image_url, position) VALUES ($1, $2, $3)`,
				commentID, url, i)
			if err != nil {
				return nil, fmt.Errorf("insert comment image %d: %w", i, err)
			}
		}
		updated.Images = req.Images
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	if req.Images == nil {
		imageMap, err := r.getCommentImages(ctx, []int64{commentID})
		if err != nil {
			return nil, err
		}
		updated.Images = imageMap[commentID]
	}

	return &updated, nil
}

// Delete hard-deletes a comment. The self-referential FK on parent_id
// cascades through the whole reply subtree, and each removed comment takes
// its images, comment likes, and reports with it. One statement, atomic.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// Exists checks if a comment exists.
func (r *commentRepository) Exists(ctx context.Context, commentID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, commentID)
	if err != nil {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}

// getCommentImages fetches image lists for multiple comments in one query.
func (r *commentRepository) getCommentImages(ctx context.Context, commentIDs []int64) (map[int64][]string, error) {
	if len(commentIDs) == 0 {
		return map[int64][]string{}, nil
	}

	type imageRow struct {
		CommentID int64  `db:"comment_id"`
		ImageURL  string `db:"image_url"`
	}
	var rows []imageRow
	query := `
		SELECT comment_id, image_url
		FROM comment_images
		WHERE comment_id = ANY($1)
		ORDER BY comment_id, position
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(commentIDs)); err != nil {
		return nil, fmt.Errorf("get comment images: %w", err)
	}

	result := make(map[int64][]string)
	for _, row := range rows {
		result[row.CommentID] = append(result[row.CommentID], row.ImageURL)
	}
	return result, nil
}
