package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"corrigeaqui/internal/cache"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/queue"
)

// ProgressSetter abstracts the post progress update so workers don't depend
// on the repository layer directly.
type ProgressSetter interface {
	// SetProgress stamps a post with a new progress label.
	SetProgress(ctx context.Context, postID int64, progress string) error
}

// Handler processes lifecycle events from the queue.
type Handler struct {
	markerCache cache.MarkerCache
	progress    ProgressSetter
}

// NewHandler creates a new event handler.
func NewHandler(markerCache cache.MarkerCache, progress ProgressSetter) *Handler {
	return &Handler{
		markerCache: markerCache,
		progress:    progress,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.LifecycleEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventPostCreated, queue.EventPostUpdated, queue.EventPostDeleted:
		err = h.handlePostChanged(ctx, event)
	case queue.EventReportResolved:
		err = h.handleReportResolved(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handlePostChanged drops the marker cache. Any post change can move,
// recolor, or remove a map pin, so the whole list is rebuilt lazily on the
// next read.
func (h *Handler) handlePostChanged(ctx context.Context, event queue.LifecycleEvent) error {
	log.Printf("[Worker] PostChanged: type=%s post=%d author=%d", event.Type, event.PostID, event.AuthorID)

	if err := h.markerCache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate marker cache: %w", err)
	}

	return nil
}

// handleReportResolved stamps the reported post as resolved and refreshes
// the marker cache so the pin shows the new status. The post may already be
// gone; that is not an error worth retrying.
func (h *Handler) handleReportResolved(ctx context.Context, event queue.LifecycleEvent) error {
	log.Printf("[Worker] ReportResolved: report=%d post=%d", event.ReportID, event.PostID)

	if event.PostID == 0 {
		return nil
	}

	if err := h.progress.SetProgress(ctx, event.PostID, model.ResolvedProgress); err != nil {
		if err == model.ErrPostNotFound {
			log.Printf("[Worker] ReportResolved: post=%d already deleted", event.PostID)
			return nil
		}
		return fmt.Errorf("set post progress: %w", err)
	}

	if err := h.markerCache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate marker cache: %w", err)
	}

	log.Printf("[Worker] ReportResolved DONE: post=%d marked %q", event.PostID, model.ResolvedProgress)
	return nil
}
