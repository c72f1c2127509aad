package service

import (
	"context"
	"fmt"
	"log"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

// EngagementService manages the like ledgers for posts and comments. A like
// is a deduplicated (user, target) fact: liking twice surfaces as
// model.ErrAlreadyLiked, unliking an absent like is a no-op.
type EngagementService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *EngagementService {
	return &EngagementService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// LikePost records a like on a post.
func (s *EngagementService) LikePost(ctx context.Context, userID, postID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return model.ErrPostNotFound
	}

	if err := s.likeRepo.LikePost(ctx, userID, postID); err != nil {
		return err // ErrAlreadyLiked or wrapped error
	}

	log.Printf("[EngagementService] User %d liked post %d", userID, postID)
	return nil
}

// UnlikePost removes a like from a post. Succeeds whether or not the like
// existed.
func (s *EngagementService) UnlikePost(ctx context.Context, userID, postID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return model.ErrPostNotFound
	}

	if err := s.likeRepo.UnlikePost(ctx, userID, postID); err != nil {
		return err
	}

	log.Printf("[EngagementService] User %d unliked post %d", userID, postID)
	return nil
}

// PostLikeCount returns the current number of likes on a post, computed
// from the ledger.
func (s *EngagementService) PostLikeCount(ctx context.Context, postID int64) (int, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return 0, model.ErrPostNotFound
	}
	return s.likeRepo.CountByPost(ctx, postID)
}

// HasLikedPost reports whether a user currently likes a post.
func (s *EngagementService) HasLikedPost(ctx context.Context, userID, postID int64) (bool, error) {
	return s.likeRepo.HasLikedPost(ctx, userID, postID)
}

// LikeComment records a like on a comment.
func (s *EngagementService) LikeComment(ctx context.Context, userID, commentID int64) error {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return model.ErrCommentNotFound
	}

	if err := s.likeRepo.LikeComment(ctx, userID, commentID); err != nil {
		return err
	}

	log.Printf("[EngagementService] User %d liked comment %d", userID, commentID)
	return nil
}

// UnlikeComment removes a like from a comment, idempotently.
func (s *EngagementService) UnlikeComment(ctx context.Context, userID, commentID int64) error {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return model.ErrCommentNotFound
	}

	if err := s.likeRepo.UnlikeComment(ctx, userID, commentID); err != nil {
		return err
	}

	log.Printf("[EngagementService] User %d unliked comment %d", userID, commentID)
	return nil
}

// CommentLikeCount returns the current number of likes on a comment.
func (s *EngagementService) CommentLikeCount(ctx context.Context, commentID int64) (int, error) {
	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return 0, fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return 0, model.ErrCommentNotFound
	}
	return s.likeRepo.CountByComment(ctx, commentID)
}

// HasLikedComment reports whether a user currently likes a comment.
func (s *EngagementService) HasLikedComment(ctx context.Context, userID, commentID int64) (bool, error) {
	return s.likeRepo.HasLikedComment(ctx, userID, commentID)
}
