package service

import (
	"context"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/queue"
)

// Function-field mocks shared by the service tests. Each test sets only the
// functions it needs; unset functions return zero values or not-found.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	getSummariesFn  func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
	patchFn         func(ctx context.Context, id int64, req model.PatchUserRequest) (*model.User, error)

	createCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	if m.getSummariesFn != nil {
		return m.getSummariesFn(ctx, ids)
	}
	return map[int64]model.UserSummary{}, nil
}

func (m *mockUserRepository) Patch(ctx context.Context, id int64, req model.PatchUserRequest) (*model.User, error) {
	if m.patchFn != nil {
		return m.patchFn(ctx, id, req)
	}
	return nil, model.ErrUserNotFound
}

type mockCategoryRepository struct {
	createFn   func(ctx context.Context, category *model.Category) error
	getByIDFn  func(ctx context.Context, id int64) (*model.Category, error)
	getByIDsFn func(ctx context.Context, ids []int64) (map[int64]model.Category, error)
	listFn     func(ctx context.Context) ([]model.Category, error)
	existsFn   func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCategoryNotFound
}

func (m *mockCategoryRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Category, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return map[int64]model.Category{}, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockPostRepository struct {
	createFn           func(ctx context.Context, post *model.Post, images []string) (*model.Post, error)
	getByIDFn          func(ctx context.Context, postID int64) (*model.Post, error)
	listFn             func(ctx context.Context, page, size int) ([]model.Post, int64, error)
	listByAuthorFn     func(ctx context.Context, authorID int64) ([]model.Post, error)
	searchByTitleFn    func(ctx context.Context, q string) ([]model.Post, error)
	listWithLocationFn func(ctx context.Context) ([]model.Post, error)
	patchFn            func(ctx context.Context, postID int64, req model.PatchPostRequest) (*model.Post, error)
	setProgressFn      func(ctx context.Context, postID int64, progress string) error
	deleteFn           func(ctx context.Context, postID int64) error
	existsFn           func(ctx context.Context, postID int64) (bool, error)

	createCalls int
	deleteCalls int
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post, images []string) (*model.Post, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, post, images)
	}
	return post, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) List(ctx context.Context, page, size int) ([]model.Post, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, size)
	}
	return nil, 0, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepository) SearchByTitle(ctx context.Context, q string) ([]model.Post, error) {
	if m.searchByTitleFn != nil {
		return m.searchByTitleFn(ctx, q)
	}
	return nil, nil
}

func (m *mockPostRepository) ListWithLocation(ctx context.Context) ([]model.Post, error) {
	if m.listWithLocationFn != nil {
		return m.listWithLocationFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepository) Patch(ctx context.Context, postID int64, req model.PatchPostRequest) (*model.Post, error) {
	if m.patchFn != nil {
		return m.patchFn(ctx, postID, req)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) SetProgress(ctx context.Context, postID int64, progress string) error {
	if m.setProgressFn != nil {
		return m.setProgressFn(ctx, postID, progress)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return false, nil
}

type mockCommentRepository struct {
	createFn       func(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error)
	getByIDFn      func(ctx context.Context, commentID int64) (*model.Comment, error)
	listByPostFn   func(ctx context.Context, postID int64) ([]model.Comment, error)
	countByPostsFn func(ctx context.Context, postIDs []int64) (map[int64]int, error)
	patchFn        func(ctx context.Context, commentID int64, req model.PatchCommentRequest) (*model.Comment, error)
	deleteFn       func(ctx context.Context, commentID int64) error
	existsFn       func(ctx context.Context, commentID int64) (bool, error)

	createCalls int
	deleteCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment, images []string) (*model.Comment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, comment, images)
	}
	return comment, nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	if m.countByPostsFn != nil {
		return m.countByPostsFn(ctx, postIDs)
	}
	counts := make(map[int64]int, len(postIDs))
	for _, id := range postIDs {
		counts[id] = 0
	}
	return counts, nil
}

func (m *mockCommentRepository) Patch(ctx context.Context, commentID int64, req model.PatchCommentRequest) (*model.Comment, error) {
	if m.patchFn != nil {
		return m.patchFn(ctx, commentID, req)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

func (m *mockCommentRepository) Exists(ctx context.Context, commentID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, commentID)
	}
	return false, nil
}

// mockLikeRepository keeps an in-memory ledger so tests can assert the
// dedup and idempotency behavior rather than stubbing it.
type mockLikeRepository struct {
	postLikes    map[[2]int64]bool // (userID, postID)
	commentLikes map[[2]int64]bool // (userID, commentID)
}

func newMockLikeRepository() *mockLikeRepository {
	return &mockLikeRepository{
		postLikes:    make(map[[2]int64]bool),
		commentLikes: make(map[[2]int64]bool),
	}
}

func (m *mockLikeRepository) LikePost(ctx context.Context, userID, postID int64) error {
	key := [2]int64{userID, postID}
	if m.postLikes[key] {
		return model.ErrAlreadyLiked
	}
	m.postLikes[key] = true
	return nil
}

func (m *mockLikeRepository) UnlikePost(ctx context.Context, userID, postID int64) error {
	delete(m.postLikes, [2]int64{userID, postID})
	return nil
}

func (m *mockLikeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	count := 0
	for key := range m.postLikes {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

func (m *mockLikeRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(postIDs))
	for _, id := range postIDs {
		counts[id], _ = m.CountByPost(ctx, id)
	}
	return counts, nil
}

func (m *mockLikeRepository) HasLikedPost(ctx context.Context, userID, postID int64) (bool, error) {
	return m.postLikes[[2]int64{userID, postID}], nil
}

func (m *mockLikeRepository) CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		result[id] = m.postLikes[[2]int64{userID, id}]
	}
	return result, nil
}

func (m *mockLikeRepository) LikeComment(ctx context.Context, userID, commentID int64) error {
	key := [2]int64{userID, commentID}
	if m.commentLikes[key] {
		return model.ErrAlreadyLiked
	}
	m.commentLikes[key] = true
	return nil
}

func (m *mockLikeRepository) UnlikeComment(ctx context.Context, userID, commentID int64) error {
	delete(m.commentLikes, [2]int64{userID, commentID})
	return nil
}

func (m *mockLikeRepository) CountByComment(ctx context.Context, commentID int64) (int, error) {
	count := 0
	for key := range m.commentLikes {
		if key[1] == commentID {
			count++
		}
	}
	return count, nil
}

func (m *mockLikeRepository) CountByComments(ctx context.Context, commentIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(commentIDs))
	for _, id := range commentIDs {
		counts[id], _ = m.CountByComment(ctx, id)
	}
	return counts, nil
}

func (m *mockLikeRepository) HasLikedComment(ctx context.Context, userID, commentID int64) (bool, error) {
	return m.commentLikes[[2]int64{userID, commentID}], nil
}

func (m *mockLikeRepository) CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(commentIDs))
	for _, id := range commentIDs {
		result[id] = m.commentLikes[[2]int64{userID, id}]
	}
	return result, nil
}

type mockReportRepository struct {
	createFn         func(ctx context.Context, report *model.Report) (*model.Report, error)
	getByIDFn        func(ctx context.Context, reportID int64) (*model.Report, error)
	listFn           func(ctx context.Context, page, size int) ([]model.Report, int64, error)
	listByStatusFn   func(ctx context.Context, status model.ReportStatus) ([]model.Report, error)
	listByReporterFn func(ctx context.Context, reporterID int64) ([]model.Report, error)
	transitionFn     func(ctx context.Context, reportID int64, status model.ReportStatus, resolution, notes *string) (*model.Report, error)
	patchFn          func(ctx context.Context, reportID int64, req model.PatchReportRequest) (*model.Report, error)
	deleteFn         func(ctx context.Context, reportID int64) error

	createCalls int
}

func (m *mockReportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, report)
	}
	report.Status = model.ReportPending
	return report, nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, reportID int64) (*model.Report, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, reportID)
	}
	return nil, model.ErrReportNotFound
}

func (m *mockReportRepository) List(ctx context.Context, page, size int) ([]model.Report, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, size)
	}
	return nil, 0, nil
}

func (m *mockReportRepository) ListByStatus(ctx context.Context, status model.ReportStatus) ([]model.Report, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *mockReportRepository) ListByReporter(ctx context.Context, reporterID int64) ([]model.Report, error) {
	if m.listByReporterFn != nil {
		return m.listByReporterFn(ctx, reporterID)
	}
	return nil, nil
}

func (m *mockReportRepository) Transition(ctx context.Context, reportID int64, status model.ReportStatus, resolution, notes *string) (*model.Report, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, reportID, status, resolution, notes)
	}
	return nil, model.ErrReportNotFound
}

func (m *mockReportRepository) Patch(ctx context.Context, reportID int64, req model.PatchReportRequest) (*model.Report, error) {
	if m.patchFn != nil {
		return m.patchFn(ctx, reportID, req)
	}
	return nil, model.ErrReportNotFound
}

func (m *mockReportRepository) Delete(ctx context.Context, reportID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, reportID)
	}
	return nil
}

// mockPublisher records published events.
type mockPublisher struct {
	events []queue.LifecycleEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.LifecycleEvent) (string, error) {
	m.events = append(m.events, event)
	return "0-1", nil
}

// mockMarkerCache is a trivial in-memory MarkerCache.
type mockMarkerCache struct {
	markers     []model.MapMarker
	stored      bool
	invalidated int
}

func (m *mockMarkerCache) Get(ctx context.Context) ([]model.MapMarker, bool, error) {
	return m.markers, m.stored, nil
}

func (m *mockMarkerCache) Set(ctx context.Context, markers []model.MapMarker) error {
	m.markers = markers
	m.stored = true
	return nil
}

func (m *mockMarkerCache) Invalidate(ctx context.Context) error {
	m.markers = nil
	m.stored = false
	m.invalidated++
	return nil
}
