package model

import (
	"errors"
	"time"
)

// ReportStatus is the moderation state of a report.
// PENDING is the only non-terminal state.
type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportResolved ReportStatus = "RESOLVED"
	ReportRejected ReportStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportResolved, ReportRejected:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportResolved || s == ReportRejected
}

// Report is an abuse flag against exactly one of a post or a comment.
// The target references are immutable after creation; status moves only
// through the moderation workflow.
type Report struct {
	ID         int64        `db:"id" json:"id"`
	Reason     string       `db:"reason" json:"reason"`
	Status     ReportStatus `db:"status" json:"status"`
	ReporterID int64        `db:"reporter_id" json:"user_id"`
	PostID     *int64       `db:"post_id" json:"post_id,omitempty"`
	CommentID  *int64       `db:"comment_id" json:"comment_id,omitempty"`
	Resolution *string      `db:"resolution" json:"resolution,omitempty"`
	Notes      *string      `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// CreateReportRequest is the request body for reporting a post or comment.
type CreateReportRequest struct {
	UserID    int64  `json:"user_id"`
	PostID    *int64 `json:"post_id,omitempty"`
	CommentID *int64 `json:"comment_id,omitempty"`
	Reason    string `json:"reason"`
}

// TransitionReportRequest moves a report out of PENDING.
type TransitionReportRequest struct {
	Status     ReportStatus `json:"status"`
	Resolution *string      `json:"resolution"`
	Notes      *string      `json:"notes"`
}

// PatchReportRequest updates a report's free-text fields.
type PatchReportRequest struct {
	Reason     *string `json:"reason"`
	Resolution *string `json:"resolution"`
	Notes      *string `json:"notes"`
}

// Report errors
var (
	ErrReportNotFound = errors.New("report not found")
	ErrReasonRequired = errors.New("report reason is required")

	// ErrReportFinalized is returned when transitioning a report that is
	// already in a terminal state.
	ErrReportFinalized = errors.New("report already finalized")

	// ErrInvalidReportStatus is returned for an unknown target status.
	ErrInvalidReportStatus = errors.New("invalid report status")
)
