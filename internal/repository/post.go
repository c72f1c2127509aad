package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"corrigeaqui/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, author_id, category_id, title, content, image_url, progress, latitude, longitude, created_at`

// Create inserts a new post and its images in a transaction.
// The first image is mirrored into the legacy image_url column.
func (r *postRepository) Create(ctx context.Context, post *model.Post, images []string) (*model.Post, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var legacyURL *string
	if len(images) > 0 {
		legacyURL = &images[0]
	}

	var created model.Post
	query := `
		INSERT INTO posts (author_id, category_id, title, content, image_url, progress, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + postColumns
	err = tx.GetContext(ctx, &created, query,
		post.AuthorID, post.CategoryID, post.Title, post.Content,
		legacyURL, model.DefaultProgress, post.Latitude, post.Longitude)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	if err := replacePostImages(ctx, tx, created.ID, images); err != nil {
		return nil, err
	}
	created.Images = images

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a single post with its images.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1`, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	imageMap, err := r.getPostImages(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	post.Images = imageMap[postID]

	return &post, nil
}

// List returns one zero-indexed page of posts, newest first, plus the total
// count for pagination headers.
func (r *postRepository) List(ctx context.Context, page, size int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	var posts []model.Post
	err := r.db.SelectContext(ctx, &posts, query, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	if err := r.attachImages(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor returns all posts by an author, newest first.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	var posts []model.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	if err := r.attachImages(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchByTitle returns posts whose title contains q, case-insensitive.
func (r *postRepository) SearchByTitle(ctx context.Context, q string) ([]model.Post, error) {
	var posts []model.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE title ILIKE '%' || $1 || '%' ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &posts, query, q); err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	if err := r.attachImages(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListWithLocation returns all posts that carry both coordinates.
func (r *postRepository) ListWithLocation(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY created_at DESC, id DESC
	`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts with location: %w", err)
	}
	if err := r.attachImages(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Patch updates the mutable fields of a post and returns the new snapshot.
// Author and creation time never change. A non-nil image list replaces the
// whole list (and the legacy image_url) in the same transaction.
func (r *postRepository) Patch(ctx context.Context, postID int64, req model.PatchPostRequest) (*model.Post, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var updated model.Post
	query := `
		UPDATE posts SET
			title       = COALESCE($2, title),
			content     = COALESCE($3, content),
			progress    = COALESCE($4, progress),
			category_id = COALESCE($5, category_id),
			latitude    = COALESCE($6, latitude),
			longitude   = COALESCE($7, longitude)
		WHERE id = $1
		RETURNING ` + postColumns
	err = tx.GetContext(ctx, &updated, query, postID,
		req.Title, req.Content, req.Progress, req.CategoryID, req.Latitude, req.Longitude)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch post: %w", err)
	}

	if req.Images != nil {
		if err := replacePostImages(ctx, tx, postID, req.Images); err != nil {
			return nil, err
		}
		var legacyURL *string
		if len(req.Images) > 0 {
			legacyURL = &req.Images[0]
		}
		if _, err := tx.ExecContext(ctx, `UPDATE posts SET image_url = $2 WHERE id = $1`, postID, legacyURL); err != nil {
			return nil, fmt.Errorf("update legacy image url: %w", err)
		}
		updated.ImageURL = legacyURL
		updated.Images = req.Images
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	if req.Images == nil {
		imageMap, err := r.getPostImages(ctx, []int64{postID})
		if err != nil {
			return nil, err
		}
		updated.Images = imageMap[postID]
	}

	return &updated, nil
}

// SetProgress updates only the citizen-facing progress label.
func (r *postRepository) SetProgress(ctx context.Context, postID int64, progress string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE posts SET progress = $2 WHERE id = $1`, postID, progress)
	if err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Delete hard-deletes a post. Images, the whole comment forest, ledger rows,
// and reports disappear in the same statement via FK ON DELETE CASCADE, so
// the cascade is atomic.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Exists checks if a post exists.
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// attachImages populates Images for a slice of posts in one query.
func (r *postRepository) attachImages(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	imageMap, err := r.getPostImages(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Images = imageMap[posts[i].ID]
	}
	return nil
}

// getPostImages fetches image lists for multiple posts in one query.
func (r *postRepository) getPostImages(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	if len(postIDs) == 0 {
		return map[int64][]string{}, nil
	}

	type imageRow struct {
		PostID   int64  `db:"post_id"`
		ImageURL string `db:"image_url"`
	}
	var rows []imageRow
	query := `
		SELECT post_id, image_url
		FROM post_images
		WHERE post_id = ANY($1)
		ORDER BY post_id, position
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get post images: %w", err)
	}

	result := make(map[int64][]string)
	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.ImageURL)
	}
	return result, nil
}

// replacePostImages swaps the image list of a post inside an open transaction.
func replacePostImages(ctx context.Context, tx *sqlx.Tx, postID int64, images []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_images WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post images: %w", err)
	}
	for i, url := range images {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_images (post_id, image_url, position) VALUES ($1, $2, $3)`,
			postID, url, i)
		if err != nil {
			return fmt.Errorf("insert post image %d: %w", i, err)
		}
	}
	return nil
}
