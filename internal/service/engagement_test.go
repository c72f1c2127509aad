package service

import (
	"context"
	"errors"
	"testing"

	"corrigeaqui/internal/model"
)

func TestLikePost_Dedup(t *testing.T) {
	// ARRANGE
	likeRepo := newMockLikeRepository()
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return postID == 10, nil
		},
	}
	svc := NewEngagementService(likeRepo, postRepo, &mockCommentRepository{})
	ctx := context.Background()

	// ACT: first like succeeds
	if err := svc.LikePost(ctx, 1, 10); err != nil {
		t.Fatalf("first like failed: %v", err)
	}

	// ACT: second like from the same user is rejected
	err := svc.LikePost(ctx, 1, 10)

	// ASSERT
	if !errors.Is(err, model.ErrAlreadyLiked) {
		t.Errorf("expected ErrAlreadyLiked, got %v", err)
	}

	count, err := svc.PostLikeCount(ctx, 10)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after duplicate like, got %d", count)
	}
}

func TestLikePost_PostNotFound(t *testing.T) {
	likeRepo := newMockLikeRepository()
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewEngagementService(likeRepo, postRepo, &mockCommentRepository{})

	err := svc.LikePost(context.Background(), 1, 99)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
	if len(likeRepo.postLikes) != 0 {
		t.Errorf("no like should be recorded for a missing post")
	}
}

func TestUnlikePost_Idempotent(t *testing.T) {
	likeRepo := newMockLikeRepository()
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return true, nil
		},
	}
	svc := NewEngagementService(likeRepo, postRepo, &mockCommentRepository{})
	ctx := context.Background()

	if err := svc.LikePost(ctx, 1, 10); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	// Removing the like twice succeeds both times
	if err := svc.UnlikePost(ctx, 1, 10); err != nil {
		t.Errorf("first unlike failed: %v", err)
	}
	if err := svc.UnlikePost(ctx, 1, 10); err != nil {
		t.Errorf("second unlike should be a no-op, got %v", err)
	}

	count, _ := svc.PostLikeCount(ctx, 10)
	if count != 0 {
		t.Errorf("expected count 0 after unlike, got %d", count)
	}
}

func TestLikeUnlikeLike_Restores(t *testing.T) {
	likeRepo := newMockLikeRepository()
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return true, nil
		},
	}
	svc := NewEngagementService(likeRepo, postRepo, &mockCommentRepository{})
	ctx := context.Background()

	if err := svc.LikePost(ctx, 1, 10); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if err := svc.UnlikePost(ctx, 1, 10); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if err := svc.LikePost(ctx, 1, 10); err != nil {
		t.Errorf("re-like after unlike should succeed, got %v", err)
	}

	liked, _ := svc.HasLikedPost(ctx, 1, 10)
	if !liked {
		t.Errorf("expected HasLikedPost true after re-like")
	}
}

func TestLikeComment_Dedup(t *testing.T) {
	likeRepo := newMockLikeRepository()
	commentRepo := &mockCommentRepository{
		existsFn: func(ctx context.Context, commentID int64) (bool, error) {
			return commentID == 5, nil
		},
	}
	svc := NewEngagementService(likeRepo, &mockPostRepository{}, commentRepo)
	ctx := context.Background()

	if err := svc.LikeComment(ctx, 2, 5); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if err := svc.LikeComment(ctx, 2, 5); !errors.Is(err, model.ErrAlreadyLiked) {
		t.Errorf("expected ErrAlreadyLiked, got %v", err)
	}

	// A different user liking the same comment is independent
	if err := svc.LikeComment(ctx, 3, 5); err != nil {
		t.Errorf("like from another user failed: %v", err)
	}

	count, _ := svc.CommentLikeCount(ctx, 5)
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestLikeComment_CommentNotFound(t *testing.T) {
	likeRepo := newMockLikeRepository()
	commentRepo := &mockCommentRepository{
		existsFn: func(ctx context.Context, commentID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewEngagementService(likeRepo, &mockPostRepository{}, commentRepo)

	err := svc.LikeComment(context.Background(), 2, 99)
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestPostAndCommentLedgersAreIndependent(t *testing.T) {
	likeRepo := newMockLikeRepository()
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	commentRepo := &mockCommentRepository{
		existsFn: func(ctx context.Context, commentID int64) (bool, error) { return true, nil },
	}
	svc := NewEngagementService(likeRepo, postRepo, commentRepo)
	ctx := context.Background()

	// Same user, same numeric ID, different target kinds
	if err := svc.LikePost(ctx, 1, 7); err != nil {
		t.Fatalf("like post failed: %v", err)
	}
	if err := svc.LikeComment(ctx, 1, 7); err != nil {
		t.Errorf("comment like must not collide with post like, got %v", err)
	}

	if err := svc.UnlikeComment(ctx, 1, 7); err != nil {
		t.Fatalf("unlike comment failed: %v", err)
	}
	liked, _ := svc.HasLikedPost(ctx, 1, 7)
	if !liked {
		t.Errorf("unliking the comment must not remove the post like")
	}
}
