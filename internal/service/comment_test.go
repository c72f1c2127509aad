package service

import (
	"context"
	"errors"
	"testing"

	"corrigeaqui/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestCreateComment_Success(t *testing.T) {
	// ARRANGE
	commentRepo := &mockCommentRepository{
		createFn: func(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error) {
			comment.ID = 100
			comment.Images = images
			return comment, nil
		},
	}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return postID == 10, nil },
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Ana"}, nil
		},
	}
	svc := NewCommentService(commentRepo, postRepo, userRepo)

	// ACT
	created, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:  10,
		Content: "Mesmo problema na minha rua",
	})

	// ASSERT
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 100 {
		t.Errorf("expected ID 100, got %d", created.ID)
	}
	if created.AuthorID != 1 {
		t.Errorf("expected author 1, got %d", created.AuthorID)
	}
	if created.Author == nil || created.Author.Name != "Ana" {
		t.Errorf("expected author summary to be attached")
	}
	if commentRepo.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", commentRepo.createCalls)
	}
}

func TestCreateComment_BlankContent(t *testing.T) {
	commentRepo := &mockCommentRepository{}
	svc := NewCommentService(commentRepo, &mockPostRepository{}, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:  10,
		Content: "   ",
	})

	if !errors.Is(err, model.ErrBodyRequired) {
		t.Errorf("expected ErrBodyRequired, got %v", err)
	}
	if commentRepo.createCalls != 0 {
		t.Errorf("no create call should happen for blank content")
	}
}

func TestCreateComment_PostNotFound(t *testing.T) {
	commentRepo := &mockCommentRepository{}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return false, nil },
	}
	svc := NewCommentService(commentRepo, postRepo, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:  99,
		Content: "hello",
	})

	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCreateComment_ReplyOnSamePost(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 10, AuthorID: 2}, nil
		},
		createFn: func(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error) {
			comment.ID = 101
			return comment, nil
		},
	}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	svc := NewCommentService(commentRepo, postRepo, &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Bruno"}, nil
		},
	})

	created, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:   10,
		Content:  "reply",
		ParentID: int64Ptr(50),
	})

	if err != nil {
		t.Fatalf("reply create failed: %v", err)
	}
	if created.ParentID == nil || *created.ParentID != 50 {
		t.Errorf("expected parent 50 to be preserved")
	}
}

func TestCreateComment_ParentPostMismatch(t *testing.T) {
	// Parent comment lives on post 20, reply targets post 10
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 20, AuthorID: 2}, nil
		},
	}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	svc := NewCommentService(commentRepo, postRepo, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:   10,
		Content:  "reply",
		ParentID: int64Ptr(50),
	})

	if !errors.Is(err, model.ErrParentPostMismatch) {
		t.Errorf("expected ErrParentPostMismatch, got %v", err)
	}
	if commentRepo.createCalls != 0 {
		t.Errorf("mismatched reply must not reach the repository, got %d create calls", commentRepo.createCalls)
	}
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return nil, model.ErrCommentNotFound
		},
	}
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	svc := NewCommentService(commentRepo, postRepo, &mockUserRepository{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		PostID:   10,
		Content:  "reply",
		ParentID: int64Ptr(404),
	})

	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestPatchComment_OwnerOnly(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 10, AuthorID: 1, Content: "original"}, nil
		},
		patchFn: func(ctx context.Context, commentID int64, req model.PatchCommentRequest) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 10, AuthorID: 1, Content: *req.Content}, nil
		},
	}
	svc := NewCommentService(commentRepo, &mockPostRepository{}, &mockUserRepository{})
	ctx := context.Background()

	// Owner may edit
	updated, err := svc.Patch(ctx, 100, 1, model.PatchCommentRequest{Content: strPtr("edited")})
	if err != nil {
		t.Fatalf("owner patch failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("expected edited content, got %q", updated.Content)
	}

	// Anyone else may not
	_, err = svc.Patch(ctx, 100, 2, model.PatchCommentRequest{Content: strPtr("hijack")})
	if !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("expected ErrNotCommentOwner, got %v", err)
	}
}

func TestPatchComment_BlankContent(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, AuthorID: 1}, nil
		},
	}
	svc := NewCommentService(commentRepo, &mockPostRepository{}, &mockUserRepository{})

	_, err := svc.Patch(context.Background(), 100, 1, model.PatchCommentRequest{Content: strPtr("  ")})
	if !errors.Is(err, model.ErrBodyRequired) {
		t.Errorf("expected ErrBodyRequired, got %v", err)
	}
}

func TestDeleteComment_OwnerOnly(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 10, AuthorID: 1}, nil
		},
	}
	svc := NewCommentService(commentRepo, &mockPostRepository{}, &mockUserRepository{})
	ctx := context.Background()

	if err := svc.Delete(ctx, 100, 2); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("expected ErrNotCommentOwner, got %v", err)
	}
	if commentRepo.deleteCalls != 0 {
		t.Errorf("non-owner delete must not reach the repository")
	}

	if err := svc.Delete(ctx, 100, 1); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if commentRepo.deleteCalls != 1 {
		t.Errorf("expected 1 delete call, got %d", commentRepo.deleteCalls)
	}
}
