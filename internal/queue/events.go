package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the post lifecycle stream
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventReportResolved = "report_resolved"
)

// Stream names
const (
	StreamPosts = "stream:posts"
)

// Consumer group name for lifecycle workers
const (
	ConsumerGroupPosts = "post_workers"
)

// LifecycleEvent represents an event published to the post lifecycle stream.
// All lifecycle events share this structure.
type LifecycleEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	// Post events (PostCreated, PostUpdated, PostDeleted)
	PostID   int64 `json:"post_id,omitempty"`
	AuthorID int64 `json:"author_id,omitempty"`

	// Report event (ReportResolved). PostID is set when the report
	// targeted a post.
	ReportID int64 `json:"report_id,omitempty"`
}

// NewPostCreatedEvent creates an event for when a citizen files a post.
// Worker will invalidate the map marker cache.
func NewPostCreatedEvent(postID, authorID int64) LifecycleEvent {
	return LifecycleEvent{
		Type:      EventPostCreated,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
		AuthorID:  authorID,
	}
}

// NewPostUpdatedEvent creates an event for when a post changes. Location,
// category, and progress edits all move map pins, so updates invalidate the
// marker cache the same way creates do.
func NewPostUpdatedEvent(postID, authorID int64) LifecycleEvent {
	return LifecycleEvent{
		Type:      EventPostUpdated,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
		AuthorID:  authorID,
	}
}

// NewPostDeletedEvent creates an event for when a post is removed.
func NewPostDeletedEvent(postID, authorID int64) LifecycleEvent {
	return LifecycleEvent{
		Type:      EventPostDeleted,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
		AuthorID:  authorID,
	}
}

// NewReportResolvedEvent creates an event for when a moderator resolves a
// report. For post-targeted reports the worker stamps the post as resolved
// and refreshes the marker cache.
func NewReportResolvedEvent(reportID, postID int64) LifecycleEvent {
	return LifecycleEvent{
		Type:      EventReportResolved,
		Timestamp: time.Now().Unix(),
		ReportID:  reportID,
		PostID:    postID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e LifecycleEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseLifecycleEvent parses a LifecycleEvent from Redis stream message values.
func ParseLifecycleEvent(values map[string]interface{}) (LifecycleEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return LifecycleEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event LifecycleEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return LifecycleEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
