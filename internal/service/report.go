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

// ReportService runs the moderation workflow. A report flags exactly one
// post or one comment, starts PENDING, and moves once into RESOLVED or
// REJECTED. Terminal reports never move again.
type ReportService struct {
	reportRepo  repository.ReportRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	publisher   queue.Publisher
}

func NewReportService(
	reportRepo repository.ReportRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	publisher queue.Publisher,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
	}
}

// ReportPost files a report against a post.
func (s *ReportService) ReportPost(ctx context.Context, reporterID, postID int64, reason string) (*model.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrReasonRequired
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	report := &model.Report{
		Reason:     reason,
		ReporterID: reporterID,
		PostID:     &postID,
	}
	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	log.Printf("[ReportService] User %d reported post %d (report %d)", reporterID, postID, created.ID)
	return created, nil
}

// ReportComment files a report against a comment.
func (s *ReportService) ReportComment(ctx context.Context, reporterID, commentID int64, reason string) (*model.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrReasonRequired
	}

	exists, err := s.commentRepo.Exists(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return nil, model.ErrCommentNotFound
	}

	report := &model.Report{
		Reason:     reason,
		ReporterID: reporterID,
		CommentID:  &commentID,
	}
	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	log.Printf("[ReportService] User %d reported comment %d (report %d)", reporterID, commentID, created.ID)
	return created, nil
}

// GetByID returns one report.
func (s *ReportService) GetByID(ctx context.Context, reportID int64) (*model.Report, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

// List returns one zero-indexed page of reports, newest first, plus the
// total report count.
func (s *ReportService) List(ctx context.Context, page, size int) ([]model.Report, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return s.reportRepo.List(ctx, page, size)
}

// ListByStatus returns all reports in the given status.
func (s *ReportService) ListByStatus(ctx context.Context, status model.ReportStatus) ([]model.Report, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidReportStatus
	}
	return s.reportRepo.ListByStatus(ctx, status)
}

// ListByReporter returns all reports filed by a user.
func (s *ReportService) ListByReporter(ctx context.Context, reporterID int64) ([]model.Report, error) {
	return s.reportRepo.ListByReporter(ctx, reporterID)
}

// Transition moves a PENDING report to a terminal status. Resolving a
// post-targeted report also marks the post resolved, via the lifecycle
// worker.
func (s *ReportService) Transition(ctx context.Context, reportID int64, req model.TransitionReportRequest) (*model.Report, error) {
	if !req.Status.Valid() {
		return nil, model.ErrInvalidReportStatus
	}
	if !req.Status.Terminal() {
		// PENDING -> PENDING is not a transition
		return nil, model.ErrInvalidReportStatus
	}

	updated, err := s.reportRepo.Transition(ctx, reportID, req.Status, req.Resolution, req.Notes)
	if err != nil {
		return nil, err // ErrReportNotFound, ErrReportFinalized, or wrapped error
	}

	log.Printf("[ReportService] Report %d transitioned to %s", reportID, updated.Status)

	if updated.Status == model.ReportResolved && updated.PostID != nil && s.publisher != nil {
		event := queue.NewReportResolvedEvent(updated.ID, *updated.PostID)
		if _, err := s.publisher.Publish(ctx, queue.StreamPosts, event); err != nil {
			log.Printf("[ReportService] Failed to publish ReportResolved event: %v", err)
		}
	}

	return updated, nil
}

// Patch updates a report's free-text fields without touching its status.
func (s *ReportService) Patch(ctx context.Context, reportID int64, req model.PatchReportRequest) (*model.Report, error) {
	if req.Reason != nil && strings.TrimSpace(*req.Reason) == "" {
		return nil, model.ErrReasonRequired
	}
	return s.reportRepo.Patch(ctx, reportID, req)
}

// Delete removes a report.
func (s *ReportService) Delete(ctx context.Context, reportID int64) error {
	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		return err
	}
	log.Printf("[ReportService] Report %d deleted", reportID)
	return nil
}
