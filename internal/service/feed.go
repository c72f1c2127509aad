package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"corrigeaqui/internal/cache"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

const (
	// DefaultPageSize is the default number of items per page
	DefaultPageSize = 10

	// MaxPageSize is the maximum number of items per page
	MaxPageSize = 50
)

// FeedService assembles the read-side views: the paginated post feed with
// engagement counts, the nested comment thread of a post, and the map
// marker list. Counts always come from the ledgers at read time; nothing
// here writes.
type FeedService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	markerCache  cache.MarkerCache
}

func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	markerCache cache.MarkerCache,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		markerCache:  markerCache,
	}
}

// GetFeed returns one page of the global feed, newest posts first.
// viewerID is optional: when nil, items carry no likedByUser flag.
//
// Flow:
// 1. Fetch the page of posts plus the total count
// 2. Batch-load authors, like counts, comment counts, viewer like flags
// 3. Assemble items, filling author placeholders for missing records
func (s *FeedService) GetFeed(ctx context.Context, viewerID *int64, page, size int) (*model.FeedPage, error) {
	startTime := time.Now()

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	posts, total, err := s.postRepo.List(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	items, err := s.assembleFeedItems(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	log.Printf("[FeedService] GetFeed OK: page=%d size=%d items=%d total=%d duration=%v",
		page, size, len(items), total, time.Since(startTime))

	return &model.FeedPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// assembleFeedItems enriches raw posts with author blocks, ledger counts,
// and viewer like flags.
func (s *FeedService) assembleFeedItems(ctx context.Context, viewerID *int64, posts []model.Post) ([]model.FeedItem, error) {
	postIDs := make([]int64, len(posts))
	authorIDSet := make(map[int64]struct{})
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDSet[p.AuthorID] = struct{}{}
	}
	authorIDs := make([]int64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("get author summaries: %w", err)
	}

	likeCounts, err := s.likeRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("count post likes: %w", err)
	}

	commentCounts, err := s.commentRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("count post comments: %w", err)
	}

	var likeStatus map[int64]bool
	if viewerID != nil {
		likeStatus, err = s.likeRepo.CheckPostLikes(ctx, *viewerID, postIDs)
		if err != nil {
			return nil, fmt.Errorf("check post likes: %w", err)
		}
	}

	items := make([]model.FeedItem, len(posts))
	for i, p := range posts {
		items[i] = model.FeedItem{
			ID:       p.ID,
			Author:   s.buildFeedAuthor(p.AuthorID, authors),
			Progress: p.Progress,
			Title:    p.Title,
			Content:  p.Content,
			Images:   feedImages(p),
			Stats: model.FeedStats{
				Likes:    likeCounts[p.ID],
				Comments: commentCounts[p.ID],
			},
			CreatedAt: p.CreatedAt,
		}
		if likeStatus != nil {
			liked := likeStatus[p.ID]
			items[i].LikedByUser = &liked
		}
	}
	return items, nil
}

// buildFeedAuthor fills the author block, substituting placeholders for
// fields the author record is missing.
func (s *FeedService) buildFeedAuthor(authorID int64, authors map[int64]model.UserSummary) model.FeedAuthor {
	summary, ok := authors[authorID]
	if !ok {
		return model.FeedAuthor{
			Name:   model.UnknownAuthorName,
			Avatar: model.FallbackAuthorAvatarURL,
		}
	}

	author := model.FeedAuthor{
		Name:     summary.Name,
		Verified: summary.Verified,
	}
	if summary.Subtitle != nil {
		author.Subtitle = *summary.Subtitle
	}
	if summary.Avatar != nil && *summary.Avatar != "" {
		author.Avatar = *summary.Avatar
	} else {
		author.Avatar = fmt.Sprintf(model.DefaultAuthorAvatarFmt, authorID)
	}
	return author
}

// feedImages returns the post's image list, falling back to the legacy
// single-image column for posts created before the image table existed.
func feedImages(p model.Post) []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		return []string{*p.ImageURL}
	}
	return []string{}
}

// GetCommentThread returns the nested comment tree of a post, newest-first
// at every level. Top-level comments are paginated; each node carries its
// full reply subtree.
func (s *FeedService) GetCommentThread(ctx context.Context, postID int64, viewerID *int64, page, size int) (*model.CommentThreadPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	commentIDs := make([]int64, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	likeCounts, err := s.likeRepo.CountByComments(ctx, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("count comment likes: %w", err)
	}

	var likeStatus map[int64]bool
	if viewerID != nil {
		likeStatus, err = s.likeRepo.CheckCommentLikes(ctx, *viewerID, commentIDs)
		if err != nil {
			return nil, fmt.Errorf("check comment likes: %w", err)
		}
	}

	// Index rows by parent so each level can be built in one pass. Rows are
	// already newest-first; indexing preserves that order within each level.
	children := make(map[int64][]model.Comment)
	var roots []model.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(c model.Comment) model.CommentView
	build = func(c model.Comment) model.CommentView {
		view := model.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			PostID:    c.PostID,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
			Images:    c.Images,
			LikeCount: likeCounts[c.ID],
		}
		if view.Images == nil {
			view.Images = []string{}
		}
		if likeStatus != nil {
			view.Liked = likeStatus[c.ID]
		}
		if c.Author != nil {
			authorID := c.Author.ID
			view.AuthorID = &authorID
			view.AuthorName = c.Author.Name
			if c.Author.Avatar != nil && *c.Author.Avatar != "" {
				view.AuthorAvatar = *c.Author.Avatar
			} else {
				view.AuthorAvatar = model.DefaultCommentAvatar
			}
		} else {
			view.AuthorName = model.UnknownAuthorName
			view.AuthorAvatar = model.DefaultCommentAvatar
		}
		for _, reply := range children[c.ID] {
			view.Replies = append(view.Replies, build(reply))
		}
		return view
	}

	// Paginate top-level comments only
	start := page * size
	if start > len(roots) {
		start = len(roots)
	}
	end := start + size
	if end > len(roots) {
		end = len(roots)
	}

	views := make([]model.CommentView, 0, end-start)
	for _, root := range roots[start:end] {
		views = append(views, build(root))
	}

	totalPages := (len(roots) + size - 1) / size

	return &model.CommentThreadPage{
		Comments:      views,
		Page:          page,
		Size:          size,
		TotalElements: int64(len(roots)),
		TotalPages:    totalPages,
	}, nil
}

// GetMarkers returns the map pin view of every post with coordinates,
// served from cache when possible.
func (s *FeedService) GetMarkers(ctx context.Context) ([]model.MapMarker, error) {
	if s.markerCache != nil {
		markers, found, err := s.markerCache.Get(ctx)
		if err != nil {
			log.Printf("[FeedService] Marker cache read failed: %v", err)
			// Fall through to DB
		}
		if found {
			return markers, nil
		}
	}

	markers, err := s.buildMarkers(ctx)
	if err != nil {
		return nil, err
	}

	if s.markerCache != nil {
		if err := s.markerCache.Set(ctx, markers); err != nil {
			log.Printf("[FeedService] Marker cache write failed: %v", err)
		}
	}

	return markers, nil
}

// buildMarkers assembles the marker list from the database.
func (s *FeedService) buildMarkers(ctx context.Context) ([]model.MapMarker, error) {
	posts, err := s.postRepo.ListWithLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts with location: %w", err)
	}

	categoryIDSet := make(map[int64]struct{})
	for _, p := range posts {
		if p.CategoryID != nil {
			categoryIDSet[*p.CategoryID] = struct{}{}
		}
	}
	categoryIDs := make([]int64, 0, len(categoryIDSet))
	for id := range categoryIDSet {
		categoryIDs = append(categoryIDs, id)
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	markers := make([]model.MapMarker, 0, len(posts))
	for _, p := range posts {
		marker := model.MapMarker{
			ID:            p.ID,
			Lat:           *p.Latitude,
			Lng:           *p.Longitude,
			Category:      model.DefaultCategoryName,
			CategoryColor: model.DefaultCategoryColor,
			Title:         p.Title,
			Description:   p.Content,
			Status:        p.Progress,
			Images:        feedImages(p),
		}
		if p.CategoryID != nil {
			if c, ok := categories[*p.CategoryID]; ok {
				marker.Category = c.Name
				marker.CategoryColor = c.Color
			}
		}
		markers = append(markers, marker)
	}

	return markers, nil
}
