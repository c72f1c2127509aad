package repository

import (
	"context"

	"corrigeaqui/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// GetSummaries batch-loads public author fields for feed assembly.
	GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
	Patch(ctx context.Context, id int64, req model.PatchUserRequest) (*model.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	// GetByIDs batch-loads categories for marker assembly.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PostRepository is the post half of the content store. Posts carry their
// image list; writes that touch both the posts row and the image table run
// in a single transaction.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post, images []string) (*model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// List returns one zero-indexed page ordered by creation time descending,
	// plus the total number of posts for pagination headers.
	List(ctx context.Context, page, size int) ([]model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error)
	SearchByTitle(ctx context.Context, q string) ([]model.Post, error)
	// ListWithLocation returns all posts that have both coordinates set.
	ListWithLocation(ctx context.Context) ([]model.Post, error)
	Patch(ctx context.Context, postID int64, req model.PatchPostRequest) (*model.Post, error)
	SetProgress(ctx context.Context, postID int64, progress string) error
	// Delete hard-deletes the post; descendant comments, likes, and reports
	// go with it in the same transaction via FK cascades.
	Delete(ctx context.Context, postID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
}

// CommentRepository is the comment half of the content store.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error)
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	// ListByPost returns every comment of a post, newest first, with author
	// summaries and images joined in. Tree assembly happens in the service.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	// CountByPosts returns per-post comment counts for feed assembly.
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error)
	Patch(ctx context.Context, commentID int64, req model.PatchCommentRequest) (*model.Comment, error)
	// Delete hard-deletes the comment and its entire reply subtree plus
	// dependent likes and reports, atomically.
	Delete(ctx context.Context, commentID int64) error
	Exists(ctx context.Context, commentID int64) (bool, error)
}

// LikeRepository is the engagement ledger: deduplicated (user, target) like
// rows for posts and for comments, two structurally independent ledgers.
// Uniqueness is enforced by the storage layer; a duplicate insert surfaces
// as model.ErrAlreadyLiked, never as a crash.
type LikeRepository interface {
	LikePost(ctx context.Context, userID, postID int64) error
	// UnlikePost is idempotent: removing an absent like is a successful no-op.
	UnlikePost(ctx context.Context, userID, postID int64) error
	CountByPost(ctx context.Context, postID int64) (int, error)
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error)
	HasLikedPost(ctx context.Context, userID, postID int64) (bool, error)
	CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)

	LikeComment(ctx context.Context, userID, commentID int64) error
	UnlikeComment(ctx context.Context, userID, commentID int64) error
	CountByComment(ctx context.Context, commentID int64) (int, error)
	CountByComments(ctx context.Context, commentIDs []int64) (map[int64]int, error)
	HasLikedComment(ctx context.Context, userID, commentID int64) (bool, error)
	CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)
}

// ReportRepository is the moderation workflow store.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) (*model.Report, error)
	GetByID(ctx context.Context, reportID int64) (*model.Report, error)
	// List returns one zero-indexed page ordered by creation time descending,
	// plus the total number of reports for pagination headers.
	List(ctx context.Context, page, size int) ([]model.Report, int64, error)
	ListByStatus(ctx context.Context, status model.ReportStatus) ([]model.Report, error)
	ListByReporter(ctx context.Context, reporterID int64) ([]model.Report, error)
	// Transition moves a PENDING report to a terminal status. The guard is
	// part of the UPDATE statement, so a concurrent transition loses cleanly
	// with model.ErrReportFinalized.
	Transition(ctx context.Context, reportID int64, status model.ReportStatus, resolution, notes *string) (*model.Report, error)
	Patch(ctx context.Context, reportID int64, req model.PatchReportRequest) (*model.Report, error)
	Delete(ctx context.Context, reportID int64) error
}
