package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
	"corrigeaqui/internal/service"
)

// The stubs embed the repository interfaces so only the methods a listing
// actually touches need an implementation.

type stubReportRepo struct {
	repository.ReportRepository
}

func (stubReportRepo) List(ctx context.Context, page, size int) ([]model.Report, int64, error) {
	return []model.Report{{ID: 2, Status: model.ReportPending}, {ID: 1, Status: model.ReportPending}}, 25, nil
}

type stubPostRepo struct {
	repository.PostRepository
}

func (stubPostRepo) Exists(ctx context.Context, postID int64) (bool, error) {
	return true, nil
}

type stubCommentRepo struct {
	repository.CommentRepository
}

func (stubCommentRepo) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return []model.Comment{
		{ID: 3, PostID: postID, AuthorID: 1, Content: "c3"},
		{ID: 2, PostID: postID, AuthorID: 1, Content: "c2"},
		{ID: 1, PostID: postID, AuthorID: 1, Content: "c1"},
	}, nil
}

type stubLikeRepo struct {
	repository.LikeRepository
}

func (stubLikeRepo) CountByComments(ctx context.Context, commentIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(commentIDs))
	for _, id := range commentIDs {
		counts[id] = 0
	}
	return counts, nil
}

func assertPageHeaders(t *testing.T, rec *httptest.ResponseRecorder, page, size, totalElements, totalPages string) {
	t.Helper()
	headers := map[string]string{
		"X-Page":           page,
		"X-Size":           size,
		"X-Total-Elements": totalElements,
		"X-Total-Pages":    totalPages,
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("expected %s=%s, got %q", name, want, got)
		}
	}
}

func TestListReports_SetsPageHeaders(t *testing.T) {
	// ARRANGE
	svc := service.NewReportService(stubReportRepo{}, nil, nil, nil)
	h := NewReportHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports?page=0&size=10", nil)
	rec := httptest.NewRecorder()

	// ACT
	h.List(rec, req)

	// ASSERT
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assertPageHeaders(t, rec, "0", "10", "25", "3")
}

func TestListComments_SetsPageHeaders(t *testing.T) {
	// ARRANGE: 3 top-level comments, pages of 2
	feedSvc := service.NewFeedService(stubPostRepo{}, stubCommentRepo{}, stubLikeRepo{}, nil, nil, nil)
	h := NewCommentHandler(nil, feedSvc)

	req := httptest.NewRequest(http.MethodGet, "/posts/10/comments?page=0&size=2", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "10")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	// ACT
	h.List(rec, req)

	// ASSERT
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assertPageHeaders(t, rec, "0", "2", "3", "2")
}
