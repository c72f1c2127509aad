package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

// CommentService handles the comment half of the content store. Comments
// form a tree of unbounded depth; a reply attaches to its named parent, it
// is never reattached to a higher node.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create adds a comment to a post, optionally as a reply to another comment.
func (s *CommentService) Create(ctx context.Context, userID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrBodyRequired
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	// A reply must target a parent on the same post. The parent check runs
	// before any insert, so a mismatched reply leaves no record behind.
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err // ErrCommentNotFound or wrapped error
		}
		if parent.PostID != req.PostID {
			return nil, model.ErrParentPostMismatch
		}
	}

	comment := &model.Comment{
		PostID:   req.PostID,
		AuthorID: userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	created, err := s.commentRepo.Create(ctx, comment, req.Images)
	if err != nil {
		return nil, err
	}

	// Fetch author info for the response
	author, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		created.Author = &model.UserSummary{
			ID:       author.ID,
			Name:     author.Name,
			Subtitle: author.Subtitle,
			Verified: author.Verified,
			Avatar:   author.Avatar,
		}
	}

	log.Printf("[CommentService] User %d commented on post %d", userID, req.PostID)
	return created, nil
}

// GetByID returns one comment.
func (s *CommentService) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	return s.commentRepo.GetByID(ctx, commentID)
}

// Patch updates a comment's content or images. Only the author may edit;
// post, parent, and author references are immutable.
func (s *CommentService) Patch(ctx context.Context, commentID, userID int64, req model.PatchCommentRequest) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, model.ErrNotCommentOwner
	}

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, model.ErrBodyRequired
	}

	updated, err := s.commentRepo.Patch(ctx, commentID, req)
	if err != nil {
		return nil, err
	}

	log.Printf("[CommentService] User %d updated comment %d", userID, commentID)
	return updated, nil
}

// Delete removes a comment and its entire reply subtree. Only the author
// may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return model.ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	log.Printf("[CommentService] User %d deleted comment %d from post %d", userID, commentID, comment.PostID)
	return nil
}
