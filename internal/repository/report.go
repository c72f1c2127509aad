package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"corrigeaqui/internal/model"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `id, reason, status, reporter_id, post_id, comment_id, resolution, notes, created_at, updated_at`

// Create inserts a new report in state PENDING. Several reports against the
// same target are allowed; reports are not deduplicated like likes are.
func (r *reportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	var created model.Report
	query := `
		INSERT INTO reports (reason, reporter_id, post_id, comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reportColumns
	err := r.db.GetContext(ctx, &created, query,
		report.Reason, report.ReporterID, report.PostID, report.CommentID)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a single report.
func (r *reportRepository) GetByID(ctx context.Context, reportID int64) (*model.Report, error) {
	var report model.Report
	err := r.db.GetContext(ctx, &report, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, reportID)
	if err == sql.ErrNoRows {
		return nil, model.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &report, nil
}

// List returns one zero-indexed page of reports, newest first, plus the
// total count for pagination headers.
func (r *reportRepository) List(ctx context.Context, page, size int) ([]model.Report, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports`); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	var reports []model.Report
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &reports, query, size, page*size); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	return reports, total, nil
}

// ListByStatus returns all reports in the given status, newest first.
func (r *reportRepository) ListByStatus(ctx context.Context, status model.ReportStatus) ([]model.Report, error) {
	var reports []model.Report
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &reports, query, status); err != nil {
		return nil, fmt.Errorf("list reports by status: %w", err)
	}
	return reports, nil
}

// ListByReporter returns all reports filed by a user, newest first.
func (r *reportRepository) ListByReporter(ctx context.Context, reporterID int64) ([]model.Report, error) {
	var reports []model.Report
	query := `SELECT ` + reportColumns + ` FROM reports WHERE reporter_id = $1 ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &reports, query, reporterID); err != nil {
		return nil, fmt.Errorf("list reports by reporter: %w", err)
	}
	return reports, nil
}

// Transition moves a PENDING report to the given status. The status guard
// lives in the WHERE clause, so a report already in a terminal state (or a
// concurrent winner) makes this a zero-row update which is classified as
// ErrReportFinalized, not silently re-applied.
func (r *reportRepository) Transition(ctx context.Context, reportID int64, status model.ReportStatus, resolution, notes *string) (*model.Report, error) {
	var updated model.Report
	query := `
		UPDATE reports SET
			status     = $2,
			resolution = COALESCE($3, resolution),
			notes      = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING ` + reportColumns
	err := r.db.GetContext(ctx, &updated, query, reportID, status, resolution, notes, model.ReportPending)
	if err == sql.ErrNoRows {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)`, reportID); err != nil {
			return nil, fmt.Errorf("check report exists: %w", err)
		}
		if exists {
			return nil, model.ErrReportFinalized
		}
		return nil, model.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("transition report: %w", err)
	}
	return &updated, nil
}

// Patch updates a report's free-text fields without touching its status.
func (r *reportRepository) Patch(ctx context.Context, reportID int64, req model.PatchReportRequest) (*model.Report, error) {
	var updated model.Report
	query := `
		UPDATE reports SET
			reason     = COALESCE($2, reason),
			resolution = COALESCE($3, resolution),
			notes      = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns
	err := r.db.GetContext(ctx, &updated, query, reportID, req.Reason, req.Resolution, req.Notes)
	if err == sql.ErrNoRows {
		return nil, model.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch report: %w", err)
	}
	return &updated, nil
}

// Delete removes a report.
func (r *reportRepository) Delete(ctx context.Context, reportID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrReportNotFound
	}
	return nil
}
