package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"corrigeaqui/internal/httputil"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/service"
	"corrigeaqui/internal/transport/http/middleware"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /reports
// Files a report against exactly one of a post or a comment.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Exactly one target
	if (req.PostID == nil) == (req.CommentID == nil) {
		httputil.WriteBadRequest(w, "Report must target exactly one of a post or a comment")
		return
	}

	var report *model.Report
	var err error
	if req.PostID != nil {
		report, err = h.reportService.ReportPost(r.Context(), userID, *req.PostID, req.Reason)
	} else {
		report, err = h.reportService.ReportComment(r.Context(), userID, *req.CommentID, req.Reason)
	}

	if err != nil {
		switch {
		case errors.Is(err, model.ErrReasonRequired):
			httputil.WriteBadRequest(w, "Report reason is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		default:
			log.Printf("[ERROR] Create report handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to create report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, report)
}

// List handles GET /reports
// Supports status=, reporter=, and page/size filters. Moderator only.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		reports, err := h.reportService.ListByStatus(r.Context(), model.ReportStatus(status))
		if err != nil {
			if errors.Is(err, model.ErrInvalidReportStatus) {
				httputil.WriteBadRequest(w, "Invalid report status")
				return
			}
			log.Printf("[ERROR] List reports handler: status=%s err=%v", status, err)
			httputil.WriteInternalError(w, "Failed to list reports")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, reports)
		return
	}

	if reporter := r.URL.Query().Get("reporter"); reporter != "" {
		reporterID, err := strconv.ParseInt(reporter, 10, 64)
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid reporter ID")
			return
		}
		reports, err := h.reportService.ListByReporter(r.Context(), reporterID)
		if err != nil {
			log.Printf("[ERROR] List reports handler: reporter=%d err=%v", reporterID, err)
			httputil.WriteInternalError(w, "Failed to list reports")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, reports)
		return
	}

	page, size := parsePageParams(r)
	reports, total, err := h.reportService.List(r.Context(), page, size)
	if err != nil {
		log.Printf("[ERROR] List reports handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list reports")
		return
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	httputil.SetPageHeaders(w, page, size, total, totalPages)
	httputil.WriteJSON(w, http.StatusOK, reports)
}

// GetByID handles GET /reports/{id}
func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetByID(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			httputil.WriteNotFound(w, "Report not found")
			return
		}
		log.Printf("[ERROR] GetByID report handler: report=%d err=%v", reportID, err)
		httputil.WriteInternalError(w, "Failed to get report")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

// Transition handles PUT /reports/{id}/status
// Moves a PENDING report to RESOLVED or REJECTED. Moderator only.
func (h *ReportHandler) Transition(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid report ID")
		return
	}

	var req model.TransitionReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	report, err := h.reportService.Transition(r.Context(), reportID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrReportNotFound):
			httputil.WriteNotFound(w, "Report not found")
		case errors.Is(err, model.ErrInvalidReportStatus):
			httputil.WriteBadRequest(w, "Invalid report status")
		case errors.Is(err, model.ErrReportFinalized):
			httputil.WriteConflict(w, "Report already finalized")
		default:
			log.Printf("[ERROR] Transition report handler: report=%d err=%v", reportID, err)
			httputil.WriteInternalError(w, "Failed to transition report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

// Update handles PATCH /reports/{id}
// Updates a report's free-text fields. Moderator only.
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid report ID")
		return
	}

	var req model.PatchReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	report, err := h.reportService.Patch(r.Context(), reportID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrReportNotFound):
			httputil.WriteNotFound(w, "Report not found")
		case errors.Is(err, model.ErrReasonRequired):
			httputil.WriteBadRequest(w, "Report reason is required")
		default:
			log.Printf("[ERROR] Update report handler: report=%d err=%v", reportID, err)
			httputil.WriteInternalError(w, "Failed to update report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

// Delete handles DELETE /reports/{id}
// Moderator only.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid report ID")
		return
	}

	err = h.reportService.Delete(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			httputil.WriteNotFound(w, "Report not found")
			return
		}
		log.Printf("[ERROR] Delete report handler: report=%d err=%v", reportID, err)
		httputil.WriteInternalError(w, "Failed to delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
