package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/queue"
	"corrigeaqui/internal/repository"
)

// PostService handles the post half of the content store: citizen-filed
// issue reports with their images, location, and progress label.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	publisher    queue.Publisher
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	publisher queue.Publisher,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Create files a new issue post. New posts always start in the default
// progress state regardless of what the client sends.
func (s *PostService) Create(ctx context.Context, authorID int64, req model.CreatePostRequest) (*model.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, model.ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("check category exists: %w", err)
		}
		if !exists {
			return nil, model.ErrCategoryNotFound
		}
	}

	post := &model.Post{
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Progress:   model.DefaultProgress,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	created, err := s.postRepo.Create(ctx, post, req.Images)
	if err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d created post %d", authorID, created.ID)

	// Publish after commit, best-effort
	if s.publisher != nil {
		event := queue.NewPostCreatedEvent(created.ID, authorID)
		if _, err := s.publisher.Publish(ctx, queue.StreamPosts, event); err != nil {
			log.Printf("[PostService] Failed to publish PostCreated event: %v", err)
		}
	}

	return created, nil
}

// GetByID returns one post with its images.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ListByAuthor returns all posts filed by a user, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

// SearchByTitle returns posts whose title matches the query, newest first.
// An empty query matches nothing.
func (s *PostService) SearchByTitle(ctx context.Context, q string) ([]model.Post, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.Post{}, nil
	}
	return s.postRepo.SearchByTitle(ctx, q)
}

// Patch updates a post. Only the author may edit; author identity and
// creation time never change.
func (s *PostService) Patch(ctx context.Context, postID, userID int64, req model.PatchPostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, model.ErrNotPostOwner
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, model.ErrTitleRequired
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("check category exists: %w", err)
		}
		if !exists {
			return nil, model.ErrCategoryNotFound
		}
	}

	updated, err := s.postRepo.Patch(ctx, postID, req)
	if err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d updated post %d", userID, postID)

	if s.publisher != nil {
		event := queue.NewPostUpdatedEvent(postID, userID)
		if _, err := s.publisher.Publish(ctx, queue.StreamPosts, event); err != nil {
			log.Printf("[PostService] Failed to publish PostUpdated event: %v", err)
		}
	}

	return updated, nil
}

// Delete removes a post together with its entire comment tree, likes, and
// reports. Only the author may delete. Once the delete commits, no dependent
// record of the post survives.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return model.ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	log.Printf("[PostService] User %d deleted post %d", userID, postID)

	if s.publisher != nil {
		event := queue.NewPostDeletedEvent(postID, userID)
		if _, err := s.publisher.Publish(ctx, queue.StreamPosts, event); err != nil {
			log.Printf("[PostService] Failed to publish PostDeleted event: %v", err)
		}
	}

	return nil
}
